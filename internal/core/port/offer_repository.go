package port

import (
	"context"

	"github.com/google/uuid"

	"vitrine/internal/core/domain"
)

// OfferFilter is the attribute filter set of a discovery query. Zero
// values mean "no constraint"; Country "ALL" is the explicit wildcard.
type OfferFilter struct {
	Platform      string
	Niche         string
	MaxPriceCents int64
	Country       string
	State         string
	Cities        []string
}

// OfferHit is one search result. DistanceKm is set only by radius queries.
type OfferHit struct {
	Offer      domain.Offer
	DistanceKm *float64
}

// OfferRepository is the outbound port for offer storage and search. Search
// methods only ever return public, active offers, newest first.
type OfferRepository interface {
	CreateOffer(ctx context.Context, o *domain.Offer) error
	GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	UpdateOffer(ctx context.Context, o *domain.Offer) error
	DeleteOffer(ctx context.Context, id uuid.UUID) error
	ListOffersByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Offer, error)

	// SearchOffers runs the plain attribute query.
	SearchOffers(ctx context.Context, f OfferFilter) ([]OfferHit, error)
	// SearchOffersWithin runs the attribute query restricted to the
	// haversine radius around center, annotating each hit with distance.
	SearchOffersWithin(ctx context.Context, f OfferFilter, center domain.Point, radiusKm float64) ([]OfferHit, error)
}
