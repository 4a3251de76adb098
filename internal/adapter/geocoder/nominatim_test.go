package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vitrine/internal/core/domain"
)

func TestResolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "Maceió - AL", r.URL.Query().Get("q"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		require.Equal(t, "vitrine-test", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"-9.6658","lon":"-35.7353","display_name":"Maceió, Alagoas, Brasil"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "vitrine-test", time.Second)
	p, err := c.Resolve(context.Background(), "Maceió - AL")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.InDelta(t, -9.6658, p.Point.Lat, 1e-9)
	require.InDelta(t, -35.7353, p.Point.Lng, 1e-9)
	require.Equal(t, "Maceió, Alagoas, Brasil", p.DisplayName)
}

func TestResolveNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p, err := New(srv.URL, "vitrine-test", time.Second).Resolve(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestResolveMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"-35.7","display_name":"x"}]`))
	}))
	defer srv.Close()

	p, err := New(srv.URL, "vitrine-test", time.Second).Resolve(context.Background(), "x")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestResolveUpstreamErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := New(srv.URL, "vitrine-test", time.Second).Resolve(context.Background(), "x")
		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "vitrine-test", 20*time.Millisecond).Resolve(context.Background(), "x")
		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
	})

	t.Run("garbage body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "vitrine-test", time.Second).Resolve(context.Background(), "x")
		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
	})
}
