package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *FrankfurterClient {
	return &FrankfurterClient{
		baseURL:     serverURL,
		httpClient:  &http.Client{Timeout: time.Second},
		maxAttempts: 3,
		retryWait:   time.Millisecond,
	}
}

func TestFetchRates_Success(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/2025-11-10", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"EUR","date":"2025-11-10","rates":{"USD":1.1,"GBP":0.85}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	rates, err := client.FetchRates(context.Background(), "EUR", date)

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates["USD"].Equal(decimal.RequireFromString("1.1")))
	assert.True(t, rates["GBP"].Equal(decimal.RequireFromString("0.85")))
}

func TestFetchRates_RetriesThenSucceeds(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"rates":{"USD":1.1}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	rates, err := client.FetchRates(context.Background(), "EUR", date)

	require.NoError(t, err)
	assert.True(t, rates["USD"].Equal(decimal.RequireFromString("1.1")))
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchRates_ExhaustedAttempts(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchRates(context.Background(), "EUR", date)

	require.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, int32(3), hits.Load())
}

func TestFetchRates_MissingRatesTable(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"EUR"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchRates(context.Background(), "EUR", date)

	require.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestFetchRates_ContextCancelledDuringRetryWait(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(server.URL)
	client.retryWait = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.FetchRates(ctx, "EUR", date)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("FetchRates did not return after context cancellation")
	}
}

func TestNewFrankfurterClient_BaseURL(t *testing.T) {
	client := NewFrankfurterClient("frankfurter", "8080", 10*time.Second)

	assert.Equal(t, "http://frankfurter:8080", client.baseURL)
	assert.Equal(t, defaultMaxAttempts, client.maxAttempts)
	assert.Equal(t, defaultRetryWait, client.retryWait)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}
