// internal/adapters/n8n/client.go
package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"sentiment_intel/internal/adapters/observability"
)

// DefaultTimeout bounds one workflow run. The workflow fans out to feeds and
// an LLM, so runs are legitimately slow.
const DefaultTimeout = 300 * time.Second

const errBodyExcerpt = 200

var (
	ErrURLRequired = errors.New("Webhook URL is required.")
	ErrURLScheme   = errors.New("URL must start with http:// or https://")
	ErrURLShape    = errors.New("URL should contain 'webhook' (e.g. /webhook/meta-sentiment)")
)

// ValidateURL rejects obviously wrong webhook URLs before any network call:
// non-blank, http(s) scheme, and the path must look like an n8n webhook.
func ValidateURL(raw string) error {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return ErrURLRequired
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return ErrURLScheme
	}
	low := strings.ToLower(u)
	if !strings.Contains(low, "webhook") && !strings.Contains(low, "n8n") {
		return ErrURLShape
	}
	return nil
}

// Client triggers one n8n workflow over its production webhook.
type Client struct {
	url string
	hc  *http.Client
	rl  *rate.Limiter
}

func New(url string, timeout time.Duration, rps int) (*Client, error) {
	if err := ValidateURL(url); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		url: strings.TrimRight(strings.TrimSpace(url), "/"),
		hc:  &http.Client{Timeout: timeout},
		rl:  rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Run POSTs an empty JSON object to the webhook and returns the decoded
// response body. An empty 2xx body decodes to an empty object. Errors carry
// the failure class: remote status (with a body excerpt), transport, or
// invalid JSON.
func (c *Client) Run(ctx context.Context) (any, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sentiment-intel/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("n8n", "run", 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("cannot reach n8n: %v. Is n8n running and the workflow active?", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	observability.ObserveExternal("n8n", "run", resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("cannot read n8n response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("n8n returned %d: %s", resp.StatusCode, excerpt(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}
	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("n8n returned invalid JSON: %v", err)
	}
	return out, nil
}

// excerpt trims the body to the first errBodyExcerpt characters, cutting on a
// rune boundary so the error message stays valid UTF-8.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if r := []rune(s); len(r) > errBodyExcerpt {
		s = string(r[:errBodyExcerpt])
	}
	return s
}
