package usecase

import (
	"context"
	"sort"
	"strings"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// Discovery implements port.DiscoveryUseCase: attribute filtering plus the
// geo-radius path with its fallback chain. The geocoder and the geo query
// may fail; the search result then degrades instead of erroring.
type Discovery struct {
	offers          port.OfferRepository
	geocoder        port.Geocoder
	defaultRadiusKm float64
}

// NewDiscovery creates the search service. defaultRadiusKm applies when the
// caller supplied coordinates but no radius.
func NewDiscovery(offers port.OfferRepository, geocoder port.Geocoder, defaultRadiusKm float64) *Discovery {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 25
	}
	return &Discovery{offers: offers, geocoder: geocoder, defaultRadiusKm: defaultRadiusKm}
}

// SearchOffers resolves the query in order: explicit coordinates, geocoded
// place text, then the degraded city filter. Radius hits get country, state
// and city constraints re-applied as a post-filter because the radius query
// widens the pool geographically on purpose.
func (d *Discovery) SearchOffers(ctx context.Context, req port.SearchRequest) (*port.SearchResult, error) {
	f := normalizeFilter(req.Filter)

	center := req.Center
	radius := req.RadiusKm
	wantRadius := radius > 0 || center != nil
	if wantRadius && radius <= 0 {
		radius = d.defaultRadiusKm
	}

	if wantRadius && center == nil {
		place := strings.TrimSpace(req.Place)
		if place == "" {
			return d.plain(ctx, f, true, "radius requested without coordinates or place")
		}
		resolved, err := d.geocoder.Resolve(ctx, place)
		if err != nil || resolved == nil {
			// Timeout, transport failure or no result: drop the radius and
			// fall back to a city filter derived from the place text.
			if token := domain.CityToken(place); token != "" && len(f.Cities) == 0 {
				f.Cities = []string{token}
			}
			return d.plain(ctx, f, true, "could not locate the place; filtering by city only")
		}
		center = &resolved.Point
	}

	if !wantRadius {
		return d.plain(ctx, f, false, "")
	}

	hits, err := d.offers.SearchOffersWithin(ctx, f, *center, radius)
	if err != nil {
		return d.plain(ctx, f, true, "radius filter unavailable; showing attribute matches only")
	}
	hits = postFilter(hits, f)
	if req.OrderByDistance {
		sort.SliceStable(hits, func(i, j int) bool {
			di, dj := hits[i].DistanceKm, hits[j].DistanceKm
			if di == nil || dj == nil {
				return dj == nil && di != nil
			}
			return *di < *dj
		})
	}
	return &port.SearchResult{Hits: hits}, nil
}

func (d *Discovery) plain(ctx context.Context, f port.OfferFilter, degraded bool, warning string) (*port.SearchResult, error) {
	hits, err := d.offers.SearchOffers(ctx, f)
	if err != nil {
		return nil, err
	}
	return &port.SearchResult{Hits: hits, Degraded: degraded, Warning: warning}, nil
}

func normalizeFilter(f port.OfferFilter) port.OfferFilter {
	f.Platform = strings.TrimSpace(f.Platform)
	f.Niche = strings.TrimSpace(f.Niche)
	f.State = strings.TrimSpace(f.State)
	f.Country = strings.TrimSpace(f.Country)
	if strings.EqualFold(f.Country, "ALL") {
		f.Country = ""
	}
	cities := f.Cities[:0:0]
	for _, c := range f.Cities {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	f.Cities = cities
	return f
}

// postFilter re-applies the hard geographic attributes over radius results.
func postFilter(hits []port.OfferHit, f port.OfferFilter) []port.OfferHit {
	out := hits[:0]
	for _, h := range hits {
		if f.Country != "" && !strings.EqualFold(h.Offer.Country, f.Country) {
			continue
		}
		if f.State != "" && !strings.EqualFold(h.Offer.State, f.State) {
			continue
		}
		if len(f.Cities) > 0 && !cityMatch(h.Offer.City, f.Cities) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func cityMatch(city string, cities []string) bool {
	for _, c := range cities {
		if strings.EqualFold(city, c) {
			return true
		}
	}
	return false
}
