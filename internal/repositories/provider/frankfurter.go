// Package provider contains the HTTP client for the external rate provider.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/shopspring/decimal"
)

const (
	defaultMaxAttempts = 3
	defaultRetryWait   = 5 * time.Second
)

// FrankfurterClient fetches daily rate tables from a Frankfurter-compatible
// service at GET /v1/{date}?base={code}. Transient failures are retried with
// a bounded number of attempts and a fixed wait between them; every request
// carries the client timeout so a stuck provider cannot stall an ingest run.
type FrankfurterClient struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	retryWait   time.Duration
}

// Ensure implementation matches interface
var _ ports.RateProvider = (*FrankfurterClient)(nil)

// NewFrankfurterClient creates a client for the provider at host:port.
func NewFrankfurterClient(host, port string, timeout time.Duration) *FrankfurterClient {
	return &FrankfurterClient{
		baseURL:     fmt.Sprintf("http://%s:%s", host, port),
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: defaultMaxAttempts,
		retryWait:   defaultRetryWait,
	}
}

type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates returns the counter-currency -> rate table for one base currency
// and date. Failures after the last attempt wrap apperrors.ErrUpstream.
func (c *FrankfurterClient) FetchRates(ctx context.Context, base string, date time.Time) (map[string]decimal.Decimal, error) {
	fetchURL := fmt.Sprintf("%s/v1/%s?base=%s", c.baseURL, date.Format(time.DateOnly), url.QueryEscape(base))

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		rates, err := c.fetchOnce(ctx, fetchURL)
		if err == nil {
			return rates, nil
		}
		lastErr = err

		if attempt < c.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryWait):
			}
		}
	}
	return nil, fmt.Errorf("%w: fetching rates for base %s failed after %d attempts: %v",
		apperrors.ErrUpstream, base, c.maxAttempts, lastErr)
}

func (c *FrankfurterClient) fetchOnce(ctx context.Context, fetchURL string) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider responded with status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("provider response is missing the rates table")
	}
	return body.Rates, nil
}
