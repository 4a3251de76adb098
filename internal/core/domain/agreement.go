package domain

import (
	"time"

	"github.com/google/uuid"
)

// AgreementStatus tracks the binding contract. An agreement exists iff a
// proposal on the campaign was accepted; at most one per campaign.
type AgreementStatus string

const (
	AgreementActive    AgreementStatus = "active"
	AgreementCompleted AgreementStatus = "completed"
	AgreementCancelled AgreementStatus = "cancelled"
)

func (s AgreementStatus) Valid() bool {
	switch s {
	case AgreementActive, AgreementCompleted, AgreementCancelled:
		return true
	}
	return false
}

// Agreement is created atomically by the accept-proposal transaction.
type Agreement struct {
	ID              uuid.UUID
	CampaignID      uuid.UUID
	ProposalID      uuid.UUID
	BrandID         uuid.UUID
	CreatorID       uuid.UUID
	TotalValueCents int64
	Terms           string
	Status          AgreementStatus
	CreatedAt       time.Time
}
