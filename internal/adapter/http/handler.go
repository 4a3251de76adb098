package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitrine/internal/core/port"
)

// Handler is the inbound HTTP adapter. It holds the usecase ports and a
// logger for structured logging. Routes are registered on a chi.Router for
// convenient method handling.
type Handler struct {
	lifecycle port.LifecycleUseCase
	discovery port.DiscoveryUseCase
	offers    port.OfferUseCase
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(lifecycle port.LifecycleUseCase, discovery port.DiscoveryUseCase, offers port.OfferUseCase, logger *slog.Logger) *Handler {
	h := &Handler{lifecycle: lifecycle, discovery: discovery, offers: offers, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/campaigns", h.handleCreateCampaign)
		r.Post("/campaigns/{id}/publish", h.handlePublishCampaign)
		r.Post("/campaigns/{id}/status", h.handleAdvanceCampaign)
		r.Get("/campaigns", h.handleListCampaigns)
		r.Post("/campaigns/{id}/proposals", h.handleSendProposal)
		r.Post("/campaigns/{id}/ratings", h.handleSubmitRating)

		r.Post("/proposals/{id}/accept", h.handleAcceptProposal)
		r.Post("/proposals/{id}/reject", h.handleRejectProposal)

		r.Post("/agreements/{id}/submissions", h.handleSubmitProof)
		r.Post("/submissions/{id}/review", h.handleReviewSubmission)

		r.Post("/offers", h.handleCreateOffer)
		r.Put("/offers/{id}", h.handleUpdateOffer)
		r.Delete("/offers/{id}", h.handleDeleteOffer)
		r.Get("/offers/mine", h.handleListMyOffers)
		r.Get("/offers/search", h.handleSearchOffers)

		r.Post("/offers/{id}/inquiries", h.handleSendInquiry)
		r.Post("/inquiries/{id}/respond", h.handleRespondInquiry)
		r.Post("/inquiries/{id}/close", h.handleCloseInquiry)
		r.Post("/inquiries/{id}/promote", h.handlePromoteInquiry)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
