package port

import (
	"context"

	"github.com/google/uuid"

	"vitrine/internal/core/domain"
)

// SearchRequest is an immutable discovery query. Geographic narrowing is
// attempted in this order: explicit Center coordinates, geocoding Place,
// then — on failure — a plain city filter derived from Place.
type SearchRequest struct {
	Filter   OfferFilter
	RadiusKm float64
	Center   *domain.Point
	// Place is free text ("Maceió - AL") to geocode when Center is unset.
	Place string
	// OrderByDistance re-sorts radius results by proximity instead of the
	// default recency order.
	OrderByDistance bool
}

// SearchResult carries the hits plus degradation signals. Degraded is true
// whenever radius semantics were requested but could not be applied; the
// warning explains why.
type SearchResult struct {
	Hits     []OfferHit
	Degraded bool
	Warning  string
}

// DiscoveryUseCase is the inbound port of the offer search path. Search
// never fails because of the geocoder; it degrades and says so.
type DiscoveryUseCase interface {
	SearchOffers(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// OfferUseCase is the inbound port for a creator's own listings.
type OfferUseCase interface {
	CreateOffer(ctx context.Context, actor domain.Actor, req OfferReq) (*domain.Offer, error)
	UpdateOffer(ctx context.Context, actor domain.Actor, offerID uuid.UUID, req OfferReq) (*domain.Offer, error)
	DeleteOffer(ctx context.Context, actor domain.Actor, offerID uuid.UUID) error
	ListMyOffers(ctx context.Context, actor domain.Actor) ([]domain.Offer, error)
}

type OfferItemReq struct {
	Kind        string
	Quantity    int
	Requirement string
}

type OfferReq struct {
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
	Items          []OfferItemReq
}
