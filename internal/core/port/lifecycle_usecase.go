package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/core/domain"
)

// LifecycleUseCase is the inbound port of the partnership lifecycle engine.
// Every operation is synchronous and single-attempt; constraint violations
// surface as *domain.ConflictError, bad actors as *domain.OwnershipError.
type LifecycleUseCase interface {
	CreateCampaign(ctx context.Context, actor domain.Actor, req CreateCampaignReq) (*domain.Campaign, error)
	// PublishCampaign moves a draft campaign to open.
	PublishCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID) error
	// AdvanceCampaign applies a brand-driven status advance. Transitions
	// into awarded are rejected: only AcceptProposal reaches it.
	AdvanceCampaign(ctx context.Context, actor domain.Actor, campaignID uuid.UUID, to domain.CampaignStatus) error
	ListCampaigns(ctx context.Context, actor domain.Actor, statuses []domain.CampaignStatus) ([]domain.Campaign, error)

	SendProposal(ctx context.Context, actor domain.Actor, req SendProposalReq) (*domain.Proposal, error)
	// AcceptProposal runs the atomic award transaction. Exactly one accept
	// per campaign can ever succeed; later attempts get a conflict.
	AcceptProposal(ctx context.Context, actor domain.Actor, proposalID uuid.UUID) (*domain.Agreement, error)
	RejectProposal(ctx context.Context, actor domain.Actor, proposalID uuid.UUID) error

	SubmitProof(ctx context.Context, actor domain.Actor, req SubmitProofReq) (*domain.Submission, error)
	// ReviewSubmission approves or rejects a pending submission. Reviews
	// are terminal; a second review returns a conflict.
	ReviewSubmission(ctx context.Context, actor domain.Actor, req ReviewSubmissionReq) error

	SendInquiry(ctx context.Context, actor domain.Actor, req SendInquiryReq) (*domain.Inquiry, error)
	// RespondInquiry lets the offer's creator accept or reject a sent
	// inquiry.
	RespondInquiry(ctx context.Context, actor domain.Actor, inquiryID uuid.UUID, accept bool) error
	// CloseInquiry may be called by either party.
	CloseInquiry(ctx context.Context, actor domain.Actor, inquiryID uuid.UUID) error
	// PromoteInquiry converts an accepted inquiry into a draft campaign,
	// once. Re-promotion returns a conflict.
	PromoteInquiry(ctx context.Context, actor domain.Actor, inquiryID uuid.UUID, req PromoteInquiryReq) (*domain.Campaign, error)

	// SubmitRating records a review of the counterparty on a closed
	// campaign. One rating per (campaign, rater).
	SubmitRating(ctx context.Context, actor domain.Actor, req SubmitRatingReq) (*domain.Rating, error)
}

type DeliverableReq struct {
	Kind        string
	Quantity    int
	Requirement string
	DueDate     *time.Time
}

type CreateCampaignReq struct {
	Title             string
	Description       string
	Type              domain.CampaignType
	Compensation      domain.CompensationModel
	FixedFeeCents     *int64
	CommissionRateBps *int32
	Products          []string
	ContentRules      string
	ProofRequired     string
	City              string
	State             string
	Country           string
	Deliverables      []DeliverableReq
}

type SendProposalReq struct {
	CampaignID uuid.UUID
	PriceCents int64
	Message    string
}

type SubmitProofReq struct {
	AgreementID   uuid.UUID
	DeliverableID uuid.UUID
	ProofURL      string
	Notes         string
}

type ReviewSubmissionReq struct {
	SubmissionID  uuid.UUID
	Approve       bool
	ReviewerNotes string
}

type SendInquiryReq struct {
	OfferID     uuid.UUID
	BudgetCents int64
	Message     string
}

// PromoteInquiryReq carries the campaign framing chosen at promotion. Type
// defaults to mention; the compensation model always follows the type.
type PromoteInquiryReq struct {
	Title       string
	Description string
	Type        domain.CampaignType
}

type SubmitRatingReq struct {
	CampaignID uuid.UUID
	ToUserID   uuid.UUID
	Stars      int
	Comment    string
}
