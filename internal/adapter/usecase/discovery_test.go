package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// fakeOfferSearch records the queries Discovery issues and serves canned
// hits, so the tests pin down which repository path was taken.
type fakeOfferSearch struct {
	fakeStore

	plainHits  []port.OfferHit
	plainErr   error
	radiusHits []port.OfferHit
	radiusErr  error

	plainCalls  []port.OfferFilter
	radiusCalls []radiusCall
}

type radiusCall struct {
	filter   port.OfferFilter
	center   domain.Point
	radiusKm float64
}

func (f *fakeOfferSearch) SearchOffers(_ context.Context, flt port.OfferFilter) ([]port.OfferHit, error) {
	f.plainCalls = append(f.plainCalls, flt)
	return f.plainHits, f.plainErr
}

func (f *fakeOfferSearch) SearchOffersWithin(_ context.Context, flt port.OfferFilter, center domain.Point, radiusKm float64) ([]port.OfferHit, error) {
	f.radiusCalls = append(f.radiusCalls, radiusCall{filter: flt, center: center, radiusKm: radiusKm})
	return f.radiusHits, f.radiusErr
}

// fakeGeocoder resolves a single known place and fails on everything else.
type fakeGeocoder struct {
	known map[string]domain.Point
	err   error
	calls int
}

func (g *fakeGeocoder) Resolve(_ context.Context, place string) (*port.Place, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if p, ok := g.known[place]; ok {
		return &port.Place{Point: p, DisplayName: place}, nil
	}
	return nil, nil
}

func hit(city, state, country string, distance *float64) port.OfferHit {
	return port.OfferHit{
		Offer:      domain.Offer{Title: "t", Platform: "Instagram", City: city, State: state, Country: country},
		DistanceKm: distance,
	}
}

func km(v float64) *float64 { return &v }

func TestSearchOffersPlainFilter(t *testing.T) {
	repo := &fakeOfferSearch{plainHits: []port.OfferHit{hit("Maceió", "AL", "BR", nil)}}
	geo := &fakeGeocoder{}
	svc := NewDiscovery(repo, geo, 25)

	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		Filter: port.OfferFilter{Platform: " Instagram ", Country: "all", Cities: []string{" Maceió ", ""}},
	})
	require.NoError(t, err)
	require.False(t, res.Degraded)
	require.Len(t, res.Hits, 1)
	require.Zero(t, geo.calls)

	// the filter reaches the store normalized: trimmed, ALL country dropped,
	// empty city removed
	require.Len(t, repo.plainCalls, 1)
	got := repo.plainCalls[0]
	require.Equal(t, "Instagram", got.Platform)
	require.Empty(t, got.Country)
	require.Equal(t, []string{"Maceió"}, got.Cities)
}

func TestSearchOffersRadiusWithCoordinates(t *testing.T) {
	repo := &fakeOfferSearch{radiusHits: []port.OfferHit{
		hit("Maceió", "AL", "BR", km(3.2)),
		hit("Marechal Deodoro", "AL", "BR", km(18.9)),
	}}
	geo := &fakeGeocoder{}
	svc := NewDiscovery(repo, geo, 25)

	center := domain.Point{Lat: -9.6658, Lng: -35.7353}
	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		RadiusKm: 20,
		Center:   &center,
	})
	require.NoError(t, err)
	require.False(t, res.Degraded)
	require.Len(t, res.Hits, 2)
	require.Zero(t, geo.calls)

	require.Len(t, repo.radiusCalls, 1)
	require.Equal(t, center, repo.radiusCalls[0].center)
	require.Equal(t, 20.0, repo.radiusCalls[0].radiusKm)
}

func TestSearchOffersGeocodesPlace(t *testing.T) {
	maceio := domain.Point{Lat: -9.6658, Lng: -35.7353}
	repo := &fakeOfferSearch{radiusHits: []port.OfferHit{hit("Maceió", "AL", "BR", km(1.1))}}
	geo := &fakeGeocoder{known: map[string]domain.Point{"Maceió - AL": maceio}}
	svc := NewDiscovery(repo, geo, 25)

	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		RadiusKm: 50,
		Place:    " Maceió - AL ",
	})
	require.NoError(t, err)
	require.False(t, res.Degraded)
	require.Len(t, res.Hits, 1)
	require.Equal(t, 1, geo.calls)
	require.Len(t, repo.radiusCalls, 1)
	require.Equal(t, maceio, repo.radiusCalls[0].center)
}

// coordinates without a radius still run a radius query at the default
// radius.
func TestSearchOffersDefaultRadius(t *testing.T) {
	repo := &fakeOfferSearch{}
	svc := NewDiscovery(repo, &fakeGeocoder{}, 25)

	center := domain.Point{Lat: -8.05, Lng: -34.9}
	_, err := svc.SearchOffers(context.Background(), port.SearchRequest{Center: &center})
	require.NoError(t, err)
	require.Len(t, repo.radiusCalls, 1)
	require.Equal(t, 25.0, repo.radiusCalls[0].radiusKm)
}

// Geocoder failure degrades to a plain city filter derived from the place
// text instead of failing the search.
func TestSearchOffersDegradesOnGeocoderFailure(t *testing.T) {
	repo := &fakeOfferSearch{plainHits: []port.OfferHit{hit("Maceió", "AL", "BR", nil)}}
	geo := &fakeGeocoder{err: &domain.UpstreamError{Op: "geocode", Err: context.DeadlineExceeded}}
	svc := NewDiscovery(repo, geo, 25)

	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		RadiusKm: 30,
		Place:    "Maceió - AL",
	})
	require.NoError(t, err)
	require.True(t, res.Degraded)
	require.NotEmpty(t, res.Warning)
	require.Len(t, res.Hits, 1)

	// no radius query was attempted; the plain query carries the city token
	require.Empty(t, repo.radiusCalls)
	require.Len(t, repo.plainCalls, 1)
	require.Equal(t, []string{"Maceió"}, repo.plainCalls[0].Cities)
}

// An unknown place (geocoder answers with no result) degrades the same way.
func TestSearchOffersDegradesOnUnknownPlace(t *testing.T) {
	repo := &fakeOfferSearch{}
	geo := &fakeGeocoder{known: map[string]domain.Point{}}
	svc := NewDiscovery(repo, geo, 25)

	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		RadiusKm: 30,
		Place:    "Atlantis, ZZ",
	})
	require.NoError(t, err)
	require.True(t, res.Degraded)
	require.Len(t, repo.plainCalls, 1)
	require.Equal(t, []string{"Atlantis"}, repo.plainCalls[0].Cities)
}

// Explicit city filters supplied by the caller are never overwritten by the
// fallback token.
func TestSearchOffersFallbackKeepsExplicitCities(t *testing.T) {
	repo := &fakeOfferSearch{}
	geo := &fakeGeocoder{err: &domain.UpstreamError{Op: "geocode", Err: context.DeadlineExceeded}}
	svc := NewDiscovery(repo, geo, 25)

	_, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		Filter:   port.OfferFilter{Cities: []string{"Recife"}},
		RadiusKm: 10,
		Place:    "Olinda - PE",
	})
	require.NoError(t, err)
	require.Len(t, repo.plainCalls, 1)
	require.Equal(t, []string{"Recife"}, repo.plainCalls[0].Cities)
}

// A failing radius query falls back to the attribute-only search.
func TestSearchOffersDegradesOnStoreGeoFailure(t *testing.T) {
	repo := &fakeOfferSearch{
		radiusErr: &domain.StoreError{Err: context.DeadlineExceeded},
		plainHits: []port.OfferHit{hit("Maceió", "AL", "BR", nil)},
	}
	svc := NewDiscovery(repo, &fakeGeocoder{}, 25)

	center := domain.Point{Lat: -9.6658, Lng: -35.7353}
	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		RadiusKm: 20,
		Center:   &center,
	})
	require.NoError(t, err)
	require.True(t, res.Degraded)
	require.Len(t, res.Hits, 1)
}

// Radius hits get country, state and cities re-applied: a nearby offer
// across the border is dropped.
func TestSearchOffersPostFilter(t *testing.T) {
	repo := &fakeOfferSearch{radiusHits: []port.OfferHit{
		hit("Maceió", "AL", "BR", km(2)),
		hit("Maceió", "AL", "AR", km(4)),
		hit("Satuba", "AL", "BR", km(9)),
	}}
	svc := NewDiscovery(repo, &fakeGeocoder{}, 25)

	center := domain.Point{Lat: -9.6658, Lng: -35.7353}
	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		Filter:   port.OfferFilter{Country: "br", Cities: []string{"maceió"}},
		RadiusKm: 10,
		Center:   &center,
	})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	require.Equal(t, "BR", res.Hits[0].Offer.Country)
	require.Equal(t, "Maceió", res.Hits[0].Offer.City)
}

func TestSearchOffersOrderByDistance(t *testing.T) {
	repo := &fakeOfferSearch{radiusHits: []port.OfferHit{
		hit("B", "", "", km(12.5)),
		hit("A", "", "", km(0.4)),
		hit("C", "", "", km(7.1)),
	}}
	svc := NewDiscovery(repo, &fakeGeocoder{}, 25)

	center := domain.Point{Lat: 0, Lng: 0}
	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{
		RadiusKm:        50,
		Center:          &center,
		OrderByDistance: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Hits, 3)
	require.Equal(t, "A", res.Hits[0].Offer.City)
	require.Equal(t, "C", res.Hits[1].Offer.City)
	require.Equal(t, "B", res.Hits[2].Offer.City)
}

// A radius without coordinates or place cannot be honored and degrades
// immediately.
func TestSearchOffersRadiusWithoutLocation(t *testing.T) {
	repo := &fakeOfferSearch{}
	svc := NewDiscovery(repo, &fakeGeocoder{}, 25)

	res, err := svc.SearchOffers(context.Background(), port.SearchRequest{RadiusKm: 15})
	require.NoError(t, err)
	require.True(t, res.Degraded)
	require.Empty(t, repo.radiusCalls)
	require.Len(t, repo.plainCalls, 1)
}
