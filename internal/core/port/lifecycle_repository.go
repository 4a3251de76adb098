package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/core/domain"
)

// LifecycleRepository is the outbound persistence port for the partnership
// lifecycle. Implementations must map store-level uniqueness violations to
// *domain.ConflictError and run AcceptProposal, PromoteInquiry and
// ReviewSubmission in single transactions.
type LifecycleRepository interface {
	CreateCampaign(ctx context.Context, c *domain.Campaign) error
	GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	// ListCampaigns returns the actor-side campaigns in any of the given
	// statuses, newest first.
	ListCampaigns(ctx context.Context, userID uuid.UUID, asBrand bool, statuses []domain.CampaignStatus) ([]domain.Campaign, error)
	// UpdateCampaignStatus compare-and-sets the status and reports whether
	// the row was in the expected state.
	UpdateCampaignStatus(ctx context.Context, id uuid.UUID, from, to domain.CampaignStatus) (bool, error)

	CreateProposal(ctx context.Context, p *domain.Proposal) error
	GetProposal(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	// UpdateProposalStatus compare-and-sets from sent to a terminal status.
	UpdateProposalStatus(ctx context.Context, id uuid.UUID, from, to domain.ProposalStatus) (bool, error)

	// AcceptProposal runs the compound award transaction: guard against an
	// existing agreement, accept the proposal, bulk-reject competing sent
	// proposals, insert the agreement and move the campaign to awarded.
	// A lost race returns *domain.ConflictError.
	AcceptProposal(ctx context.Context, p AcceptProposalParams) (*domain.Agreement, error)
	GetAgreement(ctx context.Context, id uuid.UUID) (*domain.Agreement, error)
	GetAgreementByCampaign(ctx context.Context, campaignID uuid.UUID) (*domain.Agreement, error)

	GetDeliverable(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error)
	CreateSubmission(ctx context.Context, s *domain.Submission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	// ReviewSubmission writes the terminal review iff the submission is
	// still in submitted state; it reports false when already reviewed.
	ReviewSubmission(ctx context.Context, p ReviewSubmissionParams) (bool, error)

	CreateInquiry(ctx context.Context, iq *domain.Inquiry) error
	GetInquiry(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, id uuid.UUID, from []domain.InquiryStatus, to domain.InquiryStatus) (bool, error)
	// PromoteInquiry inserts the campaign derived from an accepted inquiry.
	// The unique source-inquiry key makes a second promotion return
	// *domain.ConflictError.
	PromoteInquiry(ctx context.Context, c *domain.Campaign) error

	CreateRating(ctx context.Context, r *domain.Rating) error
}

// AcceptProposalParams carries the pre-checked inputs of the award
// transaction.
type AcceptProposalParams struct {
	CampaignID uuid.UUID
	ProposalID uuid.UUID
	BrandID    uuid.UUID
	CreatorID  uuid.UUID
	PriceCents int64
	Terms      string
}

// ReviewSubmissionParams carries a brand's terminal review.
type ReviewSubmissionParams struct {
	SubmissionID  uuid.UUID
	Status        domain.SubmissionStatus
	ReviewerNotes string
	ReviewedAt    time.Time
}
