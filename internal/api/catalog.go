package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marketpos/backend/internal/models"
)

func (s *Server) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.catalog.ListVendors(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, vendors)
}

func (s *Server) createVendor(w http.ResponseWriter, r *http.Request) {
	var vendor models.Vendor
	if err := decode(r, &vendor); err != nil {
		respondError(w, err)
		return
	}
	if err := s.catalog.CreateVendor(r.Context(), &vendor); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, vendor)
}

func (s *Server) updateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor models.Vendor
	if err := decode(r, &vendor); err != nil {
		respondError(w, err)
		return
	}
	vendor.ID = chi.URLParam(r, "id")
	if err := s.catalog.UpdateVendor(r.Context(), &vendor); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, vendor)
}

func (s *Server) deleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteVendor(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "vendor deleted")
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.ListItems(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := decode(r, &item); err != nil {
		respondError(w, err)
		return
	}
	if err := s.catalog.CreateItem(r.Context(), &item); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := decode(r, &item); err != nil {
		respondError(w, err)
		return
	}
	item.ID = chi.URLParam(r, "id")
	if err := s.catalog.UpdateItem(r.Context(), &item); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "item deleted")
}

func (s *Server) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.catalog.ListPaymentMethods(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, methods)
}

func (s *Server) createPaymentMethod(w http.ResponseWriter, r *http.Request) {
	method := models.PaymentMethod{Active: true}
	if err := decode(r, &method); err != nil {
		respondError(w, err)
		return
	}
	if err := s.catalog.CreatePaymentMethod(r.Context(), &method); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, method)
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.catalog.GetConfig(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, cfg)
}

func (s *Server) updateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.GlobalConfig
	if err := decode(r, &cfg); err != nil {
		respondError(w, err)
		return
	}
	if err := s.catalog.UpdateConfig(r.Context(), &cfg); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, cfg)
}
