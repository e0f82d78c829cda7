// Package telephony places outbound calls through the Twilio REST API.
// Without credentials the client runs in simulation mode: calls are logged
// and given synthetic identifiers, which keeps local development and tests
// off the paid API.
package telephony

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/graminseva/asha/internal/config"
)

const (
	defaultBaseURL = "https://api.twilio.com/2010-04-01"
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// Call is the provider's view of a placed call.
type Call struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Client places calls against one Twilio account.
type Client struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
	simulate   bool
}

// NewClient builds a client from telephony configuration. Missing
// credentials switch the client into simulation mode.
func NewClient(cfg config.TelephonyConfig) *Client {
	return &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromNumber,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		simulate: !cfg.Configured(),
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(cfg config.TelephonyConfig, baseURL string) *Client {
	c := NewClient(cfg)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Simulated reports whether the client fakes calls instead of dialing.
func (c *Client) Simulated() bool {
	return c.simulate
}

// PlaceCall dials the given number and plays the markup. In simulation mode
// it returns a synthetic call immediately.
func (c *Client) PlaceCall(ctx context.Context, to string, markup []byte) (Call, error) {
	if to == "" {
		return Call{}, fmt.Errorf("empty destination number")
	}

	if c.simulate {
		call := Call{SID: "SIM" + strings.ReplaceAll(uuid.NewString(), "-", ""), Status: "simulated"}
		slog.Info("simulated outbound call", "to", to, "sid", call.SID)
		return call, nil
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Twiml", string(markup))
	body := form.Encode()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		call, err := c.doPlaceCall(ctx, body)
		if err == nil {
			return call, nil
		}

		if !isRateLimit(err) {
			return Call{}, err
		}

		lastErr = err
		if attempt < maxRetries-1 {
			backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))
			select {
			case <-ctx.Done():
				return Call{}, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return Call{}, fmt.Errorf("rate limited after %d retries: %w", maxRetries, lastErr)
}

// rateLimitError is returned on HTTP 429.
type rateLimitError struct {
	status int
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("rate limited (HTTP %d)", e.status)
}

func isRateLimit(err error) bool {
	_, ok := err.(*rateLimitError)
	return ok
}

func (c *Client) doPlaceCall(ctx context.Context, body string) (Call, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Calls.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return Call{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Call{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return Call{}, &rateLimitError{status: resp.StatusCode}
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return Call{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var call Call
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return Call{}, fmt.Errorf("decoding response: %w", err)
	}
	return call, nil
}
