package configs

import "time"

// Geocoder configures the outbound place-resolution client. TimeoutSeconds
// bounds every call; there are no retries. DefaultRadiusKm is applied when
// a caller searches around coordinates without naming a radius.
type Geocoder struct {
	// BaseURL is the search endpoint of a Nominatim-compatible service.
	BaseURL string `env:"BASE_URL" envDefault:"https://nominatim.openstreetmap.org/search"`
	// UserAgent identifies this application to the geocoding service,
	// which Nominatim's usage policy requires.
	UserAgent string `env:"USER_AGENT" envDefault:"vitrine/1.0"`
	// TimeoutSeconds bounds each geocoding call.
	TimeoutSeconds int `env:"TIMEOUT_SECONDS" envDefault:"8"`
	// DefaultRadiusKm is the radius used for "near me" searches that did
	// not specify one.
	DefaultRadiusKm float64 `env:"DEFAULT_RADIUS_KM" envDefault:"25"`
}

// Timeout returns the call bound as a duration, falling back to 8 seconds
// for non-positive values.
func (c Geocoder) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 8 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
