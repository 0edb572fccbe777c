package web

import (
	"net/http"
	"strconv"

	"fabric-inventory/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))

		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.createCustomer)
		r.Get("/api/customers/{id}", h.getCustomer)

		r.Get("/api/warehouses", h.listWarehouses)
		r.Post("/api/warehouses", h.createWarehouse)
		r.Get("/api/warehouses/{id}", h.getWarehouse)

		r.Get("/api/fabrics", h.listFabrics)
		r.Post("/api/fabrics", h.createFabric)
		r.Get("/api/colors", h.listColors)
		r.Post("/api/colors", h.createColor)

		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Put("/api/products/{id}", h.updateProduct)

		r.Get("/api/stock", h.stockLevels)

		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Patch("/api/invoices/{id}", h.updateInvoice)
		r.Delete("/api/invoices/{id}", h.removeInvoice)

		r.Get("/api/refunds", h.listRefunds)
		r.Post("/api/refunds", h.createRefund)
		r.Get("/api/refunds/{id}", h.getRefund)
	})

	h.router = r
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// urlParamInt parses a chi URL parameter as a positive integer. The bool is
// false when it already wrote a 400 response.
func urlParamInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		writeError(w, r, "invalid "+name, "VALIDATION_FAILED", http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
