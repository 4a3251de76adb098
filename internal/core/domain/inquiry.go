package domain

import (
	"time"

	"github.com/google/uuid"
)

// InquiryStatus: sent -> accepted | rejected, with closed reachable from
// sent or accepted by either party.
type InquiryStatus string

const (
	InquirySent     InquiryStatus = "sent"
	InquiryAccepted InquiryStatus = "accepted"
	InquiryRejected InquiryStatus = "rejected"
	InquiryClosed   InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquirySent, InquiryAccepted, InquiryRejected, InquiryClosed:
		return true
	}
	return false
}

// Inquiry is a brand's interest signal against a public offer. An accepted
// inquiry may be promoted into a campaign exactly once.
type Inquiry struct {
	ID          uuid.UUID
	OfferID     uuid.UUID
	BrandID     uuid.UUID
	BudgetCents int64
	Message     string
	Status      InquiryStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
