package httpadapter

import (
	"net/http"
	"strings"
	"time"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

type deliverablePayload struct {
	Kind        string     `json:"kind"`
	Quantity    int        `json:"quantity"`
	Requirement string     `json:"requirement"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type createCampaignPayload struct {
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Type              string               `json:"type"`
	Compensation      string               `json:"compensation"`
	FixedFeeCents     *int64               `json:"fixed_fee_cents,omitempty"`
	CommissionRateBps *int32               `json:"commission_rate_bps,omitempty"`
	Products          []string             `json:"products,omitempty"`
	ContentRules      string               `json:"content_rules"`
	ProofRequired     string               `json:"proof_required"`
	City              string               `json:"city"`
	State             string               `json:"state"`
	Country           string               `json:"country"`
	Deliverables      []deliverablePayload `json:"deliverables"`
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	var p createCampaignPayload
	if !h.decode(w, r, &p) {
		return
	}
	req := port.CreateCampaignReq{
		Title:             p.Title,
		Description:       p.Description,
		Type:              domain.CampaignType(p.Type),
		Compensation:      domain.CompensationModel(p.Compensation),
		FixedFeeCents:     p.FixedFeeCents,
		CommissionRateBps: p.CommissionRateBps,
		Products:          p.Products,
		ContentRules:      p.ContentRules,
		ProofRequired:     p.ProofRequired,
		City:              p.City,
		State:             p.State,
		Country:           p.Country,
	}
	for _, d := range p.Deliverables {
		req.Deliverables = append(req.Deliverables, port.DeliverableReq{
			Kind:        d.Kind,
			Quantity:    d.Quantity,
			Requirement: d.Requirement,
			DueDate:     d.DueDate,
		})
	}
	c, err := h.lifecycle.CreateCampaign(r.Context(), actor, req)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handlePublishCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	if err = h.lifecycle.PublishCampaign(r.Context(), actor, id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdvanceCampaign(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var p struct {
		Status string `json:"status"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	if err = h.lifecycle.AdvanceCampaign(r.Context(), actor, id, domain.CampaignStatus(p.Status)); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	var statuses []domain.CampaignStatus
	if raw := r.URL.Query().Get("statuses"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, domain.CampaignStatus(strings.TrimSpace(s)))
		}
	}
	out, err := h.lifecycle.ListCampaigns(r.Context(), actor, statuses)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleSendProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var p struct {
		PriceCents int64  `json:"price_cents"`
		Message    string `json:"message"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	proposal, err := h.lifecycle.SendProposal(r.Context(), actor, port.SendProposalReq{
		CampaignID: campaignID,
		PriceCents: p.PriceCents,
		Message:    p.Message,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, proposal)
}

func (h *Handler) handleAcceptProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid proposal id", http.StatusBadRequest)
		return
	}
	a, err := h.lifecycle.AcceptProposal(r.Context(), actor, id)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleRejectProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid proposal id", http.StatusBadRequest)
		return
	}
	if err = h.lifecycle.RejectProposal(r.Context(), actor, id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	agreementID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid agreement id", http.StatusBadRequest)
		return
	}
	var p struct {
		DeliverableID string `json:"deliverable_id"`
		ProofURL      string `json:"proof_url"`
		Notes         string `json:"notes"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	deliverableID, err := parseUUID(p.DeliverableID)
	if err != nil {
		http.Error(w, "invalid deliverable id", http.StatusBadRequest)
		return
	}
	s, err := h.lifecycle.SubmitProof(r.Context(), actor, port.SubmitProofReq{
		AgreementID:   agreementID,
		DeliverableID: deliverableID,
		ProofURL:      p.ProofURL,
		Notes:         p.Notes,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid submission id", http.StatusBadRequest)
		return
	}
	var p struct {
		Approve       bool   `json:"approve"`
		ReviewerNotes string `json:"reviewer_notes"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	err = h.lifecycle.ReviewSubmission(r.Context(), actor, port.ReviewSubmissionReq{
		SubmissionID:  id,
		Approve:       p.Approve,
		ReviewerNotes: p.ReviewerNotes,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSendInquiry(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	offerID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid offer id", http.StatusBadRequest)
		return
	}
	var p struct {
		BudgetCents int64  `json:"budget_cents"`
		Message     string `json:"message"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	iq, err := h.lifecycle.SendInquiry(r.Context(), actor, port.SendInquiryReq{
		OfferID:     offerID,
		BudgetCents: p.BudgetCents,
		Message:     p.Message,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, iq)
}

func (h *Handler) handleRespondInquiry(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid inquiry id", http.StatusBadRequest)
		return
	}
	var p struct {
		Accept bool `json:"accept"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	if err = h.lifecycle.RespondInquiry(r.Context(), actor, id, p.Accept); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCloseInquiry(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid inquiry id", http.StatusBadRequest)
		return
	}
	if err = h.lifecycle.CloseInquiry(r.Context(), actor, id); err != nil {
		h.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handlePromoteInquiry(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid inquiry id", http.StatusBadRequest)
		return
	}
	var p struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	c, err := h.lifecycle.PromoteInquiry(r.Context(), actor, id, port.PromoteInquiryReq{
		Title:       p.Title,
		Description: p.Description,
		Type:        domain.CampaignType(p.Type),
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	var p struct {
		ToUserID string `json:"to_user_id"`
		Stars    int    `json:"stars"`
		Comment  string `json:"comment"`
	}
	if !h.decode(w, r, &p) {
		return
	}
	toUserID, err := parseUUID(p.ToUserID)
	if err != nil {
		http.Error(w, "invalid to_user_id", http.StatusBadRequest)
		return
	}
	rating, err := h.lifecycle.SubmitRating(r.Context(), actor, port.SubmitRatingReq{
		CampaignID: campaignID,
		ToUserID:   toUserID,
		Stars:      p.Stars,
		Comment:    p.Comment,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rating)
}
