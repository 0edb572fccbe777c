package web

import (
	"encoding/json"
	"net/http"

	"fabric-inventory/internal/core"
)

func (h *Handler) createRefund(w http.ResponseWriter, r *http.Request) {
	var req core.CreateRefundInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "VALIDATION_FAILED", http.StatusBadRequest)
		return
	}

	refund, err := h.svc.CreateRefund(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, refund)
}

func (h *Handler) getRefund(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	refund, err := h.svc.GetRefund(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refund)
}

func (h *Handler) listRefunds(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListRefunds(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Refunds)
}
