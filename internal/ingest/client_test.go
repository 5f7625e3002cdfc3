package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withRemoteCap(t *testing.T, n int64) {
	t.Helper()
	prev := maxRemoteBytes
	maxRemoteBytes = n
	t.Cleanup(func() { maxRemoteBytes = prev })
}

func TestFetchHandles500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), NewHTTPClient(2*time.Second), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-2xx: 500")
}

func TestFetchHandles404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), NewHTTPClient(2*time.Second), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-2xx: 404")
}

func TestFetchHandlesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), NewHTTPClient(200*time.Millisecond), srv.URL)
	require.Error(t, err)
}

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Campaign name,Amount spent (INR)\nA,10\n"))
	}))
	defer srv.Close()

	body, err := fetch(context.Background(), NewHTTPClient(2*time.Second), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Campaign name,Amount spent (INR)\nA,10\n", string(body))
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	withRemoteCap(t, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 17)))
	}))
	defer srv.Close()

	_, err := fetch(context.Background(), NewHTTPClient(2*time.Second), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestFetchAcceptsBodyAtCap(t *testing.T) {
	withRemoteCap(t, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 16)))
	}))
	defer srv.Close()

	body, err := fetch(context.Background(), NewHTTPClient(2*time.Second), srv.URL)
	require.NoError(t, err)
	require.Len(t, body, 16)
}
