package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// Lifecycle implements port.LifecycleUseCase. It validates input, checks
// ownership and source state, and delegates the invariant-critical steps to
// the repository, which runs them transactionally.
type Lifecycle struct {
	repo   port.LifecycleRepository
	offers port.OfferRepository
	now    func() time.Time
}

// NewLifecycle creates the engine over the given repositories.
func NewLifecycle(repo port.LifecycleRepository, offers port.OfferRepository) *Lifecycle {
	return &Lifecycle{repo: repo, offers: offers, now: time.Now}
}

// CreateCampaign validates the campaign-type variant and persists the
// campaign with its deliverables in draft state.
func (l *Lifecycle) CreateCampaign(ctx context.Context, actor domain.Actor, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if actor.Role != domain.RoleBrand && actor.Role != domain.RoleAdmin {
		return nil, &domain.OwnershipError{Reason: "only brands create campaigns"}
	}
	if req.Title == "" {
		return nil, &domain.ValidationError{Reason: "campaign title is required"}
	}
	comp := req.Compensation
	if comp == "" {
		comp = req.Type.DefaultCompensation()
	}
	proof := req.ProofRequired
	if proof == "" {
		proof = req.Type.DefaultProofRequirement()
	}

	now := l.now().UTC()
	c := &domain.Campaign{
		ID:                uuid.New(),
		BrandID:           actor.ID,
		Title:             req.Title,
		Description:       req.Description,
		Type:              req.Type,
		Compensation:      comp,
		FixedFeeCents:     req.FixedFeeCents,
		CommissionRateBps: req.CommissionRateBps,
		Products:          req.Products,
		ContentRules:      req.ContentRules,
		ProofRequired:     proof,
		City:              req.City,
		State:             req.State,
		Country:           req.Country,
		Status:            domain.CampaignDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, d := range req.Deliverables {
		c.Deliverables = append(c.Deliverables, domain.Deliverable{
			ID:          uuid.New(),
			CampaignID:  c.ID,
			Kind:        d.Kind,
			Quantity:    d.Quantity,
			Requirement: d.Requirement,
			DueDate:     d.DueDate,
			CreatedAt:   now,
		})
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := l.repo.CreateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PublishCampaign moves a draft campaign to open.
func (l *Lifecycle) PublishCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) error {
	return l.AdvanceCampaign(ctx, actor, campaignID, domain.CampaignOpen)
}

// AdvanceCampaign applies a brand-driven status change via the transition
// table. Awarded is never a legal target here, and reopening is refused
// once an agreement exists.
func (l *Lifecycle) AdvanceCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, to domain.CampaignStatus) error {
	if !to.Valid() {
		return &domain.ValidationError{Reason: "unknown campaign status"}
	}
	c, err := l.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if c == nil {
		return &domain.NotFoundError{Entity: "campaign"}
	}
	if !actor.Is(c.BrandID) {
		return &domain.OwnershipError{Reason: "campaign belongs to another brand"}
	}
	if to == domain.CampaignAwarded {
		return &domain.ConflictError{Reason: "awarded is only reached by accepting a proposal"}
	}
	if to == domain.CampaignOpen && c.Status != domain.CampaignDraft {
		return &domain.ConflictError{Reason: "campaign cannot be reopened"}
	}
	if to == domain.CampaignCancelled {
		if c.Status.Terminal() {
			return &domain.ConflictError{Reason: "campaign already finished"}
		}
	} else if !c.Status.CanTransition(to) {
		return &domain.ConflictError{Reason: "illegal campaign transition"}
	}
	ok, err := l.repo.UpdateCampaignStatus(ctx, campaignID, c.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ConflictError{Reason: "campaign state changed concurrently"}
	}
	return nil
}

// ListCampaigns returns the actor-side campaigns in the given statuses.
func (l *Lifecycle) ListCampaigns(ctx context.Context, actor domain.Actor, statuses []domain.CampaignStatus) ([]domain.Campaign, error) {
	for _, s := range statuses {
		if !s.Valid() {
			return nil, &domain.ValidationError{Reason: "unknown campaign status"}
		}
	}
	return l.repo.ListCampaigns(ctx, actor.ID, actor.Role == domain.RoleBrand, statuses)
}

// SendProposal records a creator's bid on an open campaign. The partial
// unique index on live proposals backstops the precheck under races.
func (l *Lifecycle) SendProposal(ctx context.Context, actor domain.Actor, req port.SendProposalReq) (*domain.Proposal, error) {
	if actor.Role != domain.RoleCreator {
		return nil, &domain.OwnershipError{Reason: "only creators send proposals"}
	}
	if req.PriceCents <= 0 {
		return nil, &domain.ValidationError{Reason: "proposal price must be positive"}
	}
	c, err := l.repo.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "campaign"}
	}
	if c.Status != domain.CampaignOpen {
		return nil, &domain.ConflictError{Reason: "campaign is not open for proposals"}
	}

	now := l.now().UTC()
	p := &domain.Proposal{
		ID:         uuid.New(),
		CampaignID: req.CampaignID,
		CreatorID:  actor.ID,
		PriceCents: req.PriceCents,
		Message:    req.Message,
		Status:     domain.ProposalSent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = l.repo.CreateProposal(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

const defaultAgreementTerms = "Standard terms: deliverables as specified in the campaign, payment on approval."

// AcceptProposal runs the award transaction. Ownership and source state are
// checked first; the repository then performs the five steps atomically, so
// concurrent accepts on the same campaign leave exactly one winner.
func (l *Lifecycle) AcceptProposal(ctx context.Context, actor domain.Actor, proposalID uuid.UUID) (*domain.Agreement, error) {
	p, err := l.repo.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "proposal"}
	}
	c, err := l.repo.GetCampaign(ctx, p.CampaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "campaign"}
	}
	if !actor.Is(c.BrandID) {
		return nil, &domain.OwnershipError{Reason: "campaign belongs to another brand"}
	}
	if p.Status != domain.ProposalSent {
		return nil, &domain.ConflictError{Reason: "proposal already resolved"}
	}
	return l.repo.AcceptProposal(ctx, port.AcceptProposalParams{
		CampaignID: c.ID,
		ProposalID: p.ID,
		BrandID:    c.BrandID,
		CreatorID:  p.CreatorID,
		PriceCents: p.PriceCents,
		Terms:      defaultAgreementTerms,
	})
}

// RejectProposal is a single-row terminal update.
func (l *Lifecycle) RejectProposal(ctx context.Context, actor domain.Actor, proposalID uuid.UUID) error {
	p, err := l.repo.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if p == nil {
		return &domain.NotFoundError{Entity: "proposal"}
	}
	c, err := l.repo.GetCampaign(ctx, p.CampaignID)
	if err != nil {
		return err
	}
	if c == nil {
		return &domain.NotFoundError{Entity: "campaign"}
	}
	if !actor.Is(c.BrandID) {
		return &domain.OwnershipError{Reason: "campaign belongs to another brand"}
	}
	if p.Status != domain.ProposalSent {
		return &domain.ConflictError{Reason: "proposal already resolved"}
	}
	ok, err := l.repo.UpdateProposalStatus(ctx, proposalID, domain.ProposalSent, domain.ProposalRejected)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ConflictError{Reason: "proposal already resolved"}
	}
	return nil
}

// SubmitProof appends a submission against a deliverable of an active
// agreement. Resubmission after a rejection is allowed.
func (l *Lifecycle) SubmitProof(ctx context.Context, actor domain.Actor, req port.SubmitProofReq) (*domain.Submission, error) {
	if req.ProofURL == "" {
		return nil, &domain.ValidationError{Reason: "proof URL is required"}
	}
	a, err := l.repo.GetAgreement(ctx, req.AgreementID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &domain.NotFoundError{Entity: "agreement"}
	}
	if !actor.Is(a.CreatorID) {
		return nil, &domain.OwnershipError{Reason: "agreement belongs to another creator"}
	}
	if a.Status != domain.AgreementActive {
		return nil, &domain.ConflictError{Reason: "agreement is not active"}
	}
	d, err := l.repo.GetDeliverable(ctx, req.DeliverableID)
	if err != nil {
		return nil, err
	}
	if d == nil || d.CampaignID != a.CampaignID {
		return nil, &domain.NotFoundError{Entity: "deliverable"}
	}

	s := &domain.Submission{
		ID:            uuid.New(),
		DeliverableID: d.ID,
		AgreementID:   a.ID,
		CreatorID:     actor.ID,
		ProofURL:      req.ProofURL,
		Notes:         req.Notes,
		Status:        domain.SubmissionSubmitted,
		CreatedAt:     l.now().UTC(),
	}
	if err = l.repo.CreateSubmission(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ReviewSubmission writes the brand's terminal verdict. A second review of
// the same submission is a conflict, never an overwrite.
func (l *Lifecycle) ReviewSubmission(ctx context.Context, actor domain.Actor, req port.ReviewSubmissionReq) error {
	s, err := l.repo.GetSubmission(ctx, req.SubmissionID)
	if err != nil {
		return err
	}
	if s == nil {
		return &domain.NotFoundError{Entity: "submission"}
	}
	a, err := l.repo.GetAgreement(ctx, s.AgreementID)
	if err != nil {
		return err
	}
	if a == nil {
		return &domain.NotFoundError{Entity: "agreement"}
	}
	if !actor.Is(a.BrandID) {
		return &domain.OwnershipError{Reason: "only the campaign's brand reviews submissions"}
	}
	if s.Status.Terminal() {
		return &domain.ConflictError{Reason: "submission already reviewed"}
	}
	status := domain.SubmissionRejected
	if req.Approve {
		status = domain.SubmissionApproved
	}
	ok, err := l.repo.ReviewSubmission(ctx, port.ReviewSubmissionParams{
		SubmissionID:  req.SubmissionID,
		Status:        status,
		ReviewerNotes: req.ReviewerNotes,
		ReviewedAt:    l.now().UTC(),
	})
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ConflictError{Reason: "submission already reviewed"}
	}
	return nil
}

// SendInquiry records a brand's interest against a public offer.
func (l *Lifecycle) SendInquiry(ctx context.Context, actor domain.Actor, req port.SendInquiryReq) (*domain.Inquiry, error) {
	if actor.Role != domain.RoleBrand {
		return nil, &domain.OwnershipError{Reason: "only brands send inquiries"}
	}
	if req.BudgetCents <= 0 {
		return nil, &domain.ValidationError{Reason: "inquiry budget must be positive"}
	}
	o, err := l.offers.GetOffer(ctx, req.OfferID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Entity: "offer"}
	}
	if !o.IsPublic || !o.IsActive {
		return nil, &domain.ConflictError{Reason: "offer is not open for inquiries"}
	}

	now := l.now().UTC()
	iq := &domain.Inquiry{
		ID:          uuid.New(),
		OfferID:     req.OfferID,
		BrandID:     actor.ID,
		BudgetCents: req.BudgetCents,
		Message:     req.Message,
		Status:      domain.InquirySent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = l.repo.CreateInquiry(ctx, iq); err != nil {
		return nil, err
	}
	return iq, nil
}

// RespondInquiry lets the offer's creator accept or reject a sent inquiry.
func (l *Lifecycle) RespondInquiry(ctx context.Context, actor domain.Actor, inquiryID uuid.UUID, accept bool) error {
	_, o, err := l.getInquiryWithOffer(ctx, inquiryID)
	if err != nil {
		return err
	}
	if !actor.Is(o.CreatorID) {
		return &domain.OwnershipError{Reason: "inquiry targets another creator's offer"}
	}
	to := domain.InquiryRejected
	if accept {
		to = domain.InquiryAccepted
	}
	ok, err := l.repo.UpdateInquiryStatus(ctx, inquiryID, []domain.InquiryStatus{domain.InquirySent}, to)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ConflictError{Reason: "inquiry already resolved"}
	}
	return nil
}

// CloseInquiry may be called by either party while the inquiry is sent or
// accepted.
func (l *Lifecycle) CloseInquiry(ctx context.Context, actor domain.Actor, inquiryID uuid.UUID) error {
	iq, o, err := l.getInquiryWithOffer(ctx, inquiryID)
	if err != nil {
		return err
	}
	if !actor.Is(o.CreatorID) && !actor.Is(iq.BrandID) {
		return &domain.OwnershipError{Reason: "inquiry involves other parties"}
	}
	ok, err := l.repo.UpdateInquiryStatus(ctx, inquiryID,
		[]domain.InquiryStatus{domain.InquirySent, domain.InquiryAccepted}, domain.InquiryClosed)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ConflictError{Reason: "inquiry already resolved"}
	}
	return nil
}

// PromoteInquiry converts an accepted inquiry into a draft campaign exactly
// once. The campaign carries the offer's creator and items as deliverables
// and the type-default compensation model; the unique source-inquiry key
// turns re-promotion into a conflict.
func (l *Lifecycle) PromoteInquiry(ctx context.Context, actor domain.Actor, inquiryID uuid.UUID, req port.PromoteInquiryReq) (*domain.Campaign, error) {
	iq, o, err := l.getInquiryWithOffer(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if !actor.Is(iq.BrandID) {
		return nil, &domain.OwnershipError{Reason: "inquiry belongs to another brand"}
	}
	if iq.Status != domain.InquiryAccepted {
		return nil, &domain.ConflictError{Reason: "only accepted inquiries can be promoted"}
	}

	typ := req.Type
	if typ == "" {
		typ = domain.CampaignMention
	}
	if !typ.Valid() {
		return nil, &domain.ValidationError{Reason: "unknown campaign type"}
	}
	title := req.Title
	if title == "" {
		title = o.Title
	}

	now := l.now().UTC()
	sourceID := iq.ID
	c := &domain.Campaign{
		ID:              uuid.New(),
		BrandID:         iq.BrandID,
		CreatorID:       &o.CreatorID,
		Title:           title,
		Description:     req.Description,
		Type:            typ,
		Compensation:    typ.DefaultCompensation(),
		ProofRequired:   typ.DefaultProofRequirement(),
		City:            o.City,
		State:           o.State,
		Country:         o.Country,
		SourceInquiryID: &sourceID,
		Status:          domain.CampaignDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if typ == domain.CampaignAffiliate {
		rate := int32(1000) // 10% placeholder until the brand edits the draft
		c.CommissionRateBps = &rate
		c.Products = []string{o.Title}
	} else {
		fee := iq.BudgetCents
		c.FixedFeeCents = &fee
	}
	for _, it := range o.Items {
		c.Deliverables = append(c.Deliverables, domain.Deliverable{
			ID:          uuid.New(),
			CampaignID:  c.ID,
			Kind:        it.Kind,
			Quantity:    it.Quantity,
			Requirement: it.Requirement,
			CreatedAt:   now,
		})
	}
	if len(c.Deliverables) == 0 {
		c.Deliverables = append(c.Deliverables, domain.Deliverable{
			ID:          uuid.New(),
			CampaignID:  c.ID,
			Kind:        o.Platform,
			Quantity:    1,
			Requirement: o.Title,
			CreatedAt:   now,
		})
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	if err = l.repo.PromoteInquiry(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SubmitRating records a counterparty review once the campaign is closed.
// The store's unique key keeps it to one rating per rater per campaign.
func (l *Lifecycle) SubmitRating(ctx context.Context, actor domain.Actor, req port.SubmitRatingReq) (*domain.Rating, error) {
	c, err := l.repo.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: "campaign"}
	}
	if c.Status != domain.CampaignClosed {
		return nil, &domain.ConflictError{Reason: "ratings are only allowed on closed campaigns"}
	}
	party := actor.ID == c.BrandID
	if c.CreatorID != nil && actor.ID == *c.CreatorID {
		party = true
	}
	if !party && actor.Role != domain.RoleAdmin {
		return nil, &domain.OwnershipError{Reason: "only campaign parties may rate"}
	}

	r := &domain.Rating{
		ID:         uuid.New(),
		CampaignID: req.CampaignID,
		FromUserID: actor.ID,
		ToUserID:   req.ToUserID,
		Stars:      req.Stars,
		Comment:    req.Comment,
		CreatedAt:  l.now().UTC(),
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	if err = l.repo.CreateRating(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (l *Lifecycle) getInquiryWithOffer(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, *domain.Offer, error) {
	iq, err := l.repo.GetInquiry(ctx, inquiryID)
	if err != nil {
		return nil, nil, err
	}
	if iq == nil {
		return nil, nil, &domain.NotFoundError{Entity: "inquiry"}
	}
	o, err := l.offers.GetOffer(ctx, iq.OfferID)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, &domain.NotFoundError{Entity: "offer"}
	}
	return iq, o, nil
}
