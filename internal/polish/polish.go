// Package polish rewrites free text through an external language model
// endpoint. Every failure falls back to the original text.
package polish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"care-hub-go/internal/config"
	"care-hub-go/pkg/logger"
	"golang.org/x/time/rate"
)

type Kind string

const (
	KindServiceLog Kind = "progress"
	KindRequest    Kind = "request"
)

func (k Kind) Valid() bool {
	return k == KindServiceLog || k == KindRequest
}

var instructions = map[Kind]string{
	KindServiceLog: "Rewrite this volunteer service log so it is professional, warm and concise. Keep the key facts: what was done and what was observed.",
	KindRequest:    "Rewrite this formal request (funding, leave or schedule change) so it is polite, clear and professional.",
}

type Polisher interface {
	Polish(ctx context.Context, text string, kind Kind) string
}

type Noop struct{}

func (Noop) Polish(_ context.Context, text string, _ Kind) string {
	return text
}

type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	log      logger.Logger
}

type polishRequest struct {
	Text        string `json:"text"`
	Kind        Kind   `json:"kind"`
	Instruction string `json:"instruction"`
}

type polishResponse struct {
	Text string `json:"text"`
}

// New returns Noop when no endpoint is configured.
func New(cfg config.PolishConfig, log logger.Logger) Polisher {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		log.Warn("polish endpoint not configured, returning original text")
		return Noop{}
	}
	return NewClient(cfg, log)
}

func NewClient(cfg config.PolishConfig, log logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(2), 4),
		log:      log,
	}
}

func (c *Client) Polish(ctx context.Context, text string, kind Kind) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	polished, err := c.call(ctx, text, kind)
	if err != nil {
		c.log.Warn("polish failed, returning original text", "kind", kind, "error", err)
		return text
	}
	return polished
}

func (c *Client) call(ctx context.Context, text string, kind Kind) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(polishRequest{Text: text, Kind: kind, Instruction: instructions[kind]})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("polish endpoint returned %d", resp.StatusCode)
	}

	var payload polishResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode polish response: %w", err)
	}
	polished := strings.TrimSpace(payload.Text)
	if polished == "" {
		return "", fmt.Errorf("polish endpoint returned empty text")
	}
	return polished, nil
}
