package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a one-directional review tied to a closed campaign. At most
// one rating per (campaign, rater) pair.
type Rating struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Stars      int
	Comment    string
	CreatedAt  time.Time
}

func (r *Rating) Validate() error {
	if r.Stars < 1 || r.Stars > 5 {
		return &ValidationError{Reason: "stars must be between 1 and 5"}
	}
	if r.FromUserID == r.ToUserID {
		return &ValidationError{Reason: "cannot rate yourself"}
	}
	return nil
}
