package port

import (
	"context"

	"vitrine/internal/core/domain"
)

// Place is a resolved coordinate with its canonical display name.
type Place struct {
	Point       domain.Point
	DisplayName string
}

// Geocoder resolves free place text to coordinates. Implementations return
// (nil, nil) when the place is unknown and *domain.UpstreamError on
// transport failure or timeout; they never retry.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (*Place, error)
}
