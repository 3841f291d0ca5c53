package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sportsdigest/config"
	"sportsdigest/fetcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "sportsdigest")
		w.Write([]byte("<rss/>"))
	}))
	defer srv.Close()

	f := fetcher.New(5 * time.Second)
	body, err := f.Fetch(context.Background(), config.Feed{Sport: "npb", URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, []byte("<rss/>"), body)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := fetcher.New(5 * time.Second)
	_, err := f.Fetch(context.Background(), config.Feed{Sport: "npb", URL: srv.URL})
	assert.ErrorContains(t, err, "unexpected status 500")
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections from now on

	f := fetcher.New(time.Second)
	_, err := f.Fetch(context.Background(), config.Feed{Sport: "npb", URL: srv.URL})
	assert.Error(t, err)
}
