package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus: submitted -> approved | rejected. The review is
// terminal; a rejected deliverable is retried with a new submission.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionApproved  SubmissionStatus = "approved"
	SubmissionRejected  SubmissionStatus = "rejected"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionSubmitted, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

func (s SubmissionStatus) Terminal() bool { return s != SubmissionSubmitted }

// Submission is a creator's proof of deliverable completion.
type Submission struct {
	ID            uuid.UUID
	DeliverableID uuid.UUID
	AgreementID   uuid.UUID
	CreatorID     uuid.UUID
	ProofURL      string
	Notes         string
	Status        SubmissionStatus
	ReviewerNotes string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}
