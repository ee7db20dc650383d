package api

import (
	"net/http"

	"github.com/marketpos/backend/internal/service"
)

func (s *Server) paymentTotals(w http.ResponseWriter, r *http.Request) {
	report, err := s.allocations.PaymentTotals(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, report)
}

func (s *Server) vendorTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.allocations.VendorTotals(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, totals)
}

// runAllocations is a POST because the form input matters, but it persists
// nothing; the admin iterates on it until the plan looks right.
func (s *Server) runAllocations(w http.ResponseWriter, r *http.Request) {
	var req service.AllocationRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}
	report, err := s.allocations.Allocate(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, report)
}
