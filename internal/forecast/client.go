// Package forecast calls the external forecasting service. The
// collaborator is opaque: it accepts a single number and returns a
// single number. Failures are surfaced as errors and handled at the
// aggregation boundary, never propagated as a crash.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type request struct {
	Data decimal.Decimal `json:"data"`
}

type response struct {
	Forecast decimal.Decimal `json:"forecast"`
}

// Predict posts the aggregated expenditure value and returns the
// forecast value computed by the external service.
func (c *Client) Predict(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	body, err := json.Marshal(request{Data: value})
	if err != nil {
		return decimal.Zero, fmt.Errorf("marshal forecast request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("call forecast service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("forecast service returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Zero, fmt.Errorf("decode forecast response: %w", err)
	}

	return out.Forecast, nil
}
