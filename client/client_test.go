package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"habit-tracker/habits/application"
	"habit-tracker/habits/domain"
	"habit-tracker/habits/httpapi"
	"habit-tracker/habits/infra"

	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, initial ...domain.Habit) *httptest.Server {
	t.Helper()
	svc := &application.Service{
		Store: infra.NewMemoryStore(initial...),
		Gate:  infra.NewChanPool(1),
	}
	srv := httptest.NewServer(httpapi.NewRouter(&httpapi.Handler{Service: svc}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RoundTrip(t *testing.T) {
	srv := newServer(t, "Recycle")
	c := New(srv.URL + "/")
	ctx := context.Background()

	res, err := c.Add(ctx, "Compost")
	require.NoError(t, err)
	require.Equal(t, "Habit added successfully!", res.Message)
	require.Equal(t, []string{"Recycle", "Compost"}, res.Habits)

	del, err := c.Delete(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "Recycle", del.DeletedHabit)
	require.Equal(t, 0, del.DeletedIndex)

	last, ok, err := c.LastDeleted(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Recycle", last)

	undo, err := c.Undo(ctx, "Recycle")
	require.NoError(t, err)
	require.Equal(t, []string{"Compost", "Recycle"}, undo.Habits)

	_, ok, err = c.LastDeleted(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Compost", "Recycle"}, list)
}

func TestClient_DecodesAPIErrors(t *testing.T) {
	srv := newServer(t, "Recycle")
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Add(ctx, "Recycle")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Habit already exists", apiErr.Message)

	_, err = c.Delete(ctx, 9)
	require.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_ListEmptyIsNotNil(t *testing.T) {
	srv := newServer(t)
	list, err := New(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestClient_ListDoesNotRetryAPIErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, WithListAttempts(3)).List(context.Background())
	require.True(t, IsStatus(err, http.StatusServiceUnavailable))
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_ListRetriesTransportErrors(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	_, err := New(url, WithListAttempts(2)).List(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.False(t, errors.As(err, &apiErr), "transport failure should not be an APIError")
}

func TestClient_ListAttemptsClampedToOne(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// derruba a conexão: erro de transporte, que o List re-tentaria
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithListAttempts(0))
	require.Equal(t, uint(1), c.attempts)

	// com tentativas ilimitadas isso nunca retornaria
	_, err := c.List(context.Background())
	require.Error(t, err)
	require.NotZero(t, calls.Load())
}
