package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marketpos/backend/internal/service"
)

func (s *Server) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.invoices.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, invoices)
}

func (s *Server) createInvoice(w http.ResponseWriter, r *http.Request) {
	var input service.CreateInvoiceInput
	if err := decode(r, &input); err != nil {
		respondError(w, err)
		return
	}
	invoice, err := s.invoices.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, invoice)
}

func (s *Server) archiveInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.invoices.Archive(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "invoice archived")
}
