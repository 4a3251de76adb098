package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProposalStatus: sent -> accepted | rejected, both terminal.
type ProposalStatus string

const (
	ProposalSent     ProposalStatus = "sent"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalSent, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

func (s ProposalStatus) Terminal() bool { return s != ProposalSent }

// Proposal is a creator's bid on an open campaign. A creator holds at most
// one non-terminal proposal per campaign.
type Proposal struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	CreatorID  uuid.UUID
	PriceCents int64
	Message    string
	Status     ProposalStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
