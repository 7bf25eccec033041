package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func serve(h http.Handler, method, addr string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, "http://example/habits", strings.NewReader(`{"habit":"x"}`))
	r.RemoteAddr = addr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestWriteLimit_AllowsThenRejectsSameKey(t *testing.T) {
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	rejected := ""
	h := WriteLimit(Options{
		Store:               NewClientStore(0.02, 1),
		RetryAfter:          2500 * time.Millisecond,
		AddRateLimitHeaders: true,
		OnReject:            func(_ *http.Request, key string) { rejected = key },
	})(next)

	w1 := serve(h, http.MethodPost, "10.0.0.1:1234")
	require.Equal(t, http.StatusOK, w1.Code)
	require.Equal(t, "10.0.0.1", w1.Header().Get("X-RateLimit-Key"))
	require.Equal(t, "0.02", w1.Header().Get("X-RateLimit-RPS"))
	require.Equal(t, "1", w1.Header().Get("X-RateLimit-Burst"))

	w2 := serve(h, http.MethodPost, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
	// int(2.5s.Seconds()) == 2
	require.Equal(t, "2", w2.Header().Get("Retry-After"))
	require.Equal(t, "10.0.0.1", rejected)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &body))
	require.Equal(t, "Too many requests", body["message"])

	require.Equal(t, 1, calls)
}

func TestWriteLimit_ReadsAreNotLimited(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := WriteLimit(Options{Store: NewClientStore(0.02, 1)})(next)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.1:1234").Code)
	}
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodPost, "10.0.0.1:1234").Code)
}

func TestWriteLimit_SeparateBucketsPerClient(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := WriteLimit(Options{Store: NewClientStore(0.02, 1)})(next)

	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "10.0.0.2:1234").Code)
}

func TestWriteLimit_NilStoreIsPassthrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := WriteLimit(Options{})(next)
	require.Equal(t, http.StatusTeapot, serve(h, http.MethodPost, "10.0.0.1:1").Code)
}
