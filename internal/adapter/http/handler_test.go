package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

// stubLifecycle stubs port.LifecycleUseCase with per-method hooks; only the
// hooks a test sets are expected to run.
type stubLifecycle struct {
	createCampaign func(domain.Actor, port.CreateCampaignReq) (*domain.Campaign, error)
	acceptProposal func(domain.Actor, uuid.UUID) (*domain.Agreement, error)
}

func (s *stubLifecycle) CreateCampaign(_ context.Context, a domain.Actor, req port.CreateCampaignReq) (*domain.Campaign, error) {
	return s.createCampaign(a, req)
}

func (s *stubLifecycle) PublishCampaign(context.Context, domain.Actor, uuid.UUID) error {
	return nil
}

func (s *stubLifecycle) AdvanceCampaign(context.Context, domain.Actor, uuid.UUID, domain.CampaignStatus) error {
	return nil
}

func (s *stubLifecycle) ListCampaigns(context.Context, domain.Actor, []domain.CampaignStatus) ([]domain.Campaign, error) {
	return nil, nil
}

func (s *stubLifecycle) SendProposal(context.Context, domain.Actor, port.SendProposalReq) (*domain.Proposal, error) {
	return nil, nil
}

func (s *stubLifecycle) AcceptProposal(_ context.Context, a domain.Actor, id uuid.UUID) (*domain.Agreement, error) {
	return s.acceptProposal(a, id)
}

func (s *stubLifecycle) RejectProposal(context.Context, domain.Actor, uuid.UUID) error { return nil }

func (s *stubLifecycle) SubmitProof(context.Context, domain.Actor, port.SubmitProofReq) (*domain.Submission, error) {
	return nil, nil
}

func (s *stubLifecycle) ReviewSubmission(context.Context, domain.Actor, port.ReviewSubmissionReq) error {
	return nil
}

func (s *stubLifecycle) SendInquiry(context.Context, domain.Actor, port.SendInquiryReq) (*domain.Inquiry, error) {
	return nil, nil
}

func (s *stubLifecycle) RespondInquiry(context.Context, domain.Actor, uuid.UUID, bool) error {
	return nil
}

func (s *stubLifecycle) CloseInquiry(context.Context, domain.Actor, uuid.UUID) error { return nil }

func (s *stubLifecycle) PromoteInquiry(context.Context, domain.Actor, uuid.UUID, port.PromoteInquiryReq) (*domain.Campaign, error) {
	return nil, nil
}

func (s *stubLifecycle) SubmitRating(context.Context, domain.Actor, port.SubmitRatingReq) (*domain.Rating, error) {
	return nil, nil
}

type stubDiscovery struct {
	search func(port.SearchRequest) (*port.SearchResult, error)
}

func (s *stubDiscovery) SearchOffers(_ context.Context, req port.SearchRequest) (*port.SearchResult, error) {
	return s.search(req)
}

type stubOffers struct{}

func (stubOffers) CreateOffer(context.Context, domain.Actor, port.OfferReq) (*domain.Offer, error) {
	return nil, nil
}

func (stubOffers) UpdateOffer(context.Context, domain.Actor, uuid.UUID, port.OfferReq) (*domain.Offer, error) {
	return nil, nil
}

func (stubOffers) DeleteOffer(context.Context, domain.Actor, uuid.UUID) error { return nil }

func (stubOffers) ListMyOffers(context.Context, domain.Actor) ([]domain.Offer, error) {
	return nil, nil
}

func newTestHandler(lc port.LifecycleUseCase, d port.DiscoveryUseCase) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(lc, d, stubOffers{}, logger)
}

func withActor(r *http.Request, role domain.Role) *http.Request {
	r.Header.Set("X-User-Id", uuid.NewString())
	r.Header.Set("X-User-Role", string(role))
	return r
}

func TestIdentityHeaders(t *testing.T) {
	h := newTestHandler(&stubLifecycle{}, &stubDiscovery{})

	// missing identity
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// unknown role
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil)
	req.Header.Set("X-User-Id", uuid.NewString())
	req.Header.Set("X-User-Role", "superuser")
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid identity passes through
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, withActor(httptest.NewRequest(http.MethodGet, "/api/v1/campaigns", nil), domain.RoleBrand))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &domain.ValidationError{Reason: "bad"}, http.StatusBadRequest},
		{"conflict", &domain.ConflictError{Reason: "raced"}, http.StatusConflict},
		{"not found", &domain.NotFoundError{Entity: "proposal"}, http.StatusNotFound},
		{"ownership", &domain.OwnershipError{Reason: "not yours"}, http.StatusForbidden},
		{"store", &domain.StoreError{Err: context.DeadlineExceeded}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := &stubLifecycle{
				acceptProposal: func(domain.Actor, uuid.UUID) (*domain.Agreement, error) {
					return nil, tt.err
				},
			}
			h := newTestHandler(lc, &stubDiscovery{})
			rec := httptest.NewRecorder()
			url := "/api/v1/proposals/" + uuid.NewString() + "/accept"
			h.Router().ServeHTTP(rec, withActor(httptest.NewRequest(http.MethodPost, url, nil), domain.RoleBrand))
			require.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestCreateCampaignDecoding(t *testing.T) {
	var got port.CreateCampaignReq
	lc := &stubLifecycle{
		createCampaign: func(_ domain.Actor, req port.CreateCampaignReq) (*domain.Campaign, error) {
			got = req
			return &domain.Campaign{ID: uuid.New(), Status: domain.CampaignDraft}, nil
		},
	}
	h := newTestHandler(lc, &stubDiscovery{})

	body := `{
		"title": "Spring drop",
		"type": "affiliate",
		"commission_rate_bps": 800,
		"products": ["Serum"],
		"deliverables": [{"kind": "TikTok", "quantity": 2, "requirement": "unboxing"}]
	}`
	rec := httptest.NewRecorder()
	req := withActor(httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(body)), domain.RoleBrand)
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Spring drop", got.Title)
	require.Equal(t, domain.CampaignAffiliate, got.Type)
	require.NotNil(t, got.CommissionRateBps)
	require.Equal(t, int32(800), *got.CommissionRateBps)
	require.Len(t, got.Deliverables, 1)
	require.Equal(t, 2, got.Deliverables[0].Quantity)

	// malformed JSON is rejected before the usecase runs
	rec = httptest.NewRecorder()
	req = withActor(httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader("{")), domain.RoleBrand)
	h.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchOffersQueryParsing(t *testing.T) {
	var got port.SearchRequest
	d := &stubDiscovery{
		search: func(req port.SearchRequest) (*port.SearchResult, error) {
			got = req
			dist := 3.4
			return &port.SearchResult{
				Hits:     []port.OfferHit{{Offer: domain.Offer{Title: "x"}, DistanceKm: &dist}},
				Degraded: true,
				Warning:  "could not locate the place; filtering by city only",
			}, nil
		},
	}
	h := newTestHandler(&stubLifecycle{}, d)

	rec := httptest.NewRecorder()
	url := "/api/v1/offers/search?platform=Instagram&cities=Macei%C3%B3,%20Recife&radius_km=30&place=Macei%C3%B3%20-%20AL&order=distance"
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Instagram", got.Filter.Platform)
	require.Equal(t, []string{"Maceió", "Recife"}, got.Filter.Cities)
	require.Equal(t, 30.0, got.RadiusKm)
	require.Equal(t, "Maceió - AL", got.Place)
	require.True(t, got.OrderByDistance)
	require.Contains(t, rec.Body.String(), `"degraded":true`)
	require.Contains(t, rec.Body.String(), `"distance_km":3.4`)

	// lat without lng is a bad request
	rec = httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/offers/search?lat=-9.6", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
