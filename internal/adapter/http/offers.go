package httpadapter

import (
	"net/http"

	"vitrine/internal/core/port"
)

type offerItemPayload struct {
	Kind        string `json:"kind"`
	Quantity    int    `json:"quantity"`
	Requirement string `json:"requirement"`
}

type offerPayload struct {
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Platform       string             `json:"platform"`
	Niche          string             `json:"niche"`
	Language       string             `json:"language"`
	PriceFromCents int64              `json:"price_from_cents"`
	City           string             `json:"city"`
	State          string             `json:"state"`
	Country        string             `json:"country"`
	Lat            *float64           `json:"lat,omitempty"`
	Lng            *float64           `json:"lng,omitempty"`
	IsPublic       bool               `json:"is_public"`
	IsActive       bool               `json:"is_active"`
	Items          []offerItemPayload `json:"items"`
}

func (p offerPayload) toReq() port.OfferReq {
	req := port.OfferReq{
		Title:          p.Title,
		Description:    p.Description,
		Platform:       p.Platform,
		Niche:          p.Niche,
		Language:       p.Language,
		PriceFromCents: p.PriceFromCents,
		City:           p.City,
		State:          p.State,
		Country:        p.Country,
		Lat:            p.Lat,
		Lng:            p.Lng,
		IsPublic:       p.IsPublic,
		IsActive:       p.IsActive,
	}
	for _, it := range p.Items {
		req.Items = append(req.Items, port.OfferItemReq{
			Kind:        it.Kind,
			Quantity:    it.Quantity,
			Requirement: it.Requirement,
		})
	}
	return req
}

func (h *Handler) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	var p offerPayload
	if !h.decode(w, r, &p) {
		return
	}
	o, err := h.offers.CreateOffer(r.Context(), actor, p.toReq())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleUpdateOffer(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}
	var p offerPayload
	if !h.decode(w, r, &p) {
		return
	}
	o, err := h.offers.UpdateOffer(r.Context(), actor, id, p.toReq())
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, o)
}

func (h *Handler) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}
	if err = h.offers.DeleteOffer(r.Context(), actor, id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListMyOffers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	out, err := h.offers.ListMyOffers(r.Context(), actor)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}
