// Package api exposes the service layer over a JSON HTTP API. Every
// endpoint answers with the GenericResponse envelope.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marketpos/backend/internal/service"
)

// Server holds the handlers' dependencies.
type Server struct {
	catalog     *service.CatalogService
	invoices    *service.InvoiceService
	allocations *service.AllocationService
}

// NewServer creates a Server over the given services.
func NewServer(catalog *service.CatalogService, invoices *service.InvoiceService, allocations *service.AllocationService) *Server {
	return &Server{
		catalog:     catalog,
		invoices:    invoices,
		allocations: allocations,
	}
}

// Router builds the HTTP routing tree.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusOK, "ok")
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", s.listVendors)
			r.Post("/", s.createVendor)
			r.Put("/{id}", s.updateVendor)
			r.Delete("/{id}", s.deleteVendor)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", s.listItems)
			r.Post("/", s.createItem)
			r.Put("/{id}", s.updateItem)
			r.Delete("/{id}", s.deleteItem)
		})

		r.Route("/payment-methods", func(r chi.Router) {
			r.Get("/", s.listPaymentMethods)
			r.Post("/", s.createPaymentMethod)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", s.listInvoices)
			r.Post("/", s.createInvoice)
			r.Delete("/{id}", s.archiveInvoice)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/", s.getConfig)
			r.Put("/", s.updateConfig)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/payment-totals", s.paymentTotals)
			r.Get("/vendor-totals", s.vendorTotals)
			r.Post("/allocations", s.runAllocations)
		})
	})

	return router
}
