package web

import (
	"encoding/json"
	"net/http"

	"fabric-inventory/internal/core"
)

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req core.CreateInvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "VALIDATION_FAILED", http.StatusBadRequest)
		return
	}

	invoice, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	invoice, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// listInvoices handles GET /api/invoices?status=PENDING|PAID.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	var status *core.InvoiceStatus
	switch q := r.URL.Query().Get("status"); q {
	case "":
	case string(core.InvoiceStatusPending), string(core.InvoiceStatusPaid):
		s := core.InvoiceStatus(q)
		status = &s
	default:
		writeError(w, r, "status must be PENDING or PAID", "VALIDATION_FAILED", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ListInvoices(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Invoices)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	var req core.UpdateInvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "VALIDATION_FAILED", http.StatusBadRequest)
		return
	}

	invoice, err := h.svc.UpdateInvoice(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) removeInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveInvoice(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
