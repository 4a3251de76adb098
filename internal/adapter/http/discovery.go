package httpadapter

import (
	"net/http"
	"strconv"
	"strings"

	"vitrine/internal/core/domain"
	"vitrine/internal/core/port"
)

type searchHit struct {
	Offer      domain.Offer `json:"offer"`
	DistanceKm *float64     `json:"distance_km,omitempty"`
}

type searchResponse struct {
	Results  []searchHit `json:"results"`
	Degraded bool        `json:"degraded"`
	Warning  string      `json:"warning,omitempty"`
}

// handleSearchOffers runs a discovery query built from URL parameters:
// platform, niche, max_price_cents, country, state, cities (comma list),
// radius_km, lat/lng, place, order=distance. Geocoding problems degrade the
// search instead of failing it; the response says so.
func (h *Handler) handleSearchOffers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := port.SearchRequest{
		Filter: port.OfferFilter{
			Platform: q.Get("platform"),
			Niche:    q.Get("niche"),
			Country:  q.Get("country"),
			State:    q.Get("state"),
		},
		Place:           q.Get("place"),
		OrderByDistance: q.Get("order") == "distance",
	}
	if raw := q.Get("cities"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				req.Filter.Cities = append(req.Filter.Cities, c)
			}
		}
	}
	if raw := q.Get("max_price_cents"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			http.Error(w, "invalid max_price_cents", http.StatusBadRequest)
			return
		}
		req.Filter.MaxPriceCents = v
	}
	if raw := q.Get("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			http.Error(w, "invalid radius_km", http.StatusBadRequest)
			return
		}
		req.RadiusKm = v
	}
	latRaw, lngRaw := q.Get("lat"), q.Get("lng")
	if latRaw != "" || lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			http.Error(w, "invalid coordinates", http.StatusBadRequest)
			return
		}
		req.Center = &domain.Point{Lat: lat, Lng: lng}
	}

	res, err := h.discovery.SearchOffers(r.Context(), req)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	resp := searchResponse{
		Results:  make([]searchHit, 0, len(res.Hits)),
		Degraded: res.Degraded,
		Warning:  res.Warning,
	}
	for _, hit := range res.Hits {
		resp.Results = append(resp.Results, searchHit{Offer: hit.Offer, DistanceKm: hit.DistanceKm})
	}
	h.writeJSON(w, http.StatusOK, resp)
}
