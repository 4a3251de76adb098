package domain

import (
	"time"

	"github.com/google/uuid"
)

// OfferItem is one line of a creator's standing listing.
type OfferItem struct {
	ID          uuid.UUID
	OfferID     uuid.UUID
	Kind        string
	Quantity    int
	Requirement string
	CreatedAt   time.Time
}

// Offer is a creator's publishable listing, independent of any campaign.
// Only offers with IsPublic and IsActive set are eligible for discovery.
type Offer struct {
	ID             uuid.UUID
	CreatorID      uuid.UUID
	Title          string
	Description    string
	Platform       string
	Niche          string
	Language       string
	PriceFromCents int64
	City           string
	State          string
	Country        string
	Lat            *float64
	Lng            *float64
	IsPublic       bool
	IsActive       bool
	Items          []OfferItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the fields a creator must always supply.
func (o *Offer) Validate() error {
	if o.Title == "" {
		return &ValidationError{Reason: "offer title is required"}
	}
	if o.Platform == "" {
		return &ValidationError{Reason: "offer platform is required"}
	}
	if o.PriceFromCents < 0 {
		return &ValidationError{Reason: "offer price must not be negative"}
	}
	if (o.Lat == nil) != (o.Lng == nil) {
		return &ValidationError{Reason: "latitude and longitude must be set together"}
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return &ValidationError{Reason: "offer item quantity must be positive"}
		}
	}
	return nil
}
