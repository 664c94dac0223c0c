package gateway

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Config holds env-driven settings for the HTTP gateway client.
type Config struct {
	Endpoint string        `env:"GATEWAY_URL,required"`                // Endpoint is the registration backend URL.
	Secret   string        `env:"GATEWAY_SHARED_SECRET"`               // Secret is sent with every commit so the backend can reject strangers.
	Timeout  time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`    // Timeout bounds a single commit call.
}

const (
	headerSharedSecret   = "X-Shared-Secret"
	headerIdempotencyKey = "Idempotency-Key"
	headerRequestID      = "X-Request-Id"
)

// Client implements Gateway over HTTP. It is safe for concurrent use.
type Client struct {
	endpoint   string
	secret     string
	httpClient *http.Client
}

// ClientOption configures the HTTP gateway client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. Useful for testing.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient creates an HTTP gateway client from the config.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		endpoint:   cfg.Endpoint,
		secret:     cfg.Secret,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Commit posts the registration to the backend. It makes exactly one attempt;
// retrying on failure is deliberately left to the user restarting the flow.
func (c *Client) Commit(ctx context.Context, req Request) (Summary, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrEncodeRequest, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(headerIdempotencyKey, IdempotencyKey(req))
	httpReq.Header.Set(headerRequestID, uuid.NewString())
	if c.secret != "" {
		httpReq.Header.Set(headerSharedSecret, c.secret)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Summary{}, &CommitError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return summary, nil
}

// IdempotencyKey derives a stable key from the request contents, so a
// duplicate delivery of the same terminal event maps to the same commit.
func IdempotencyKey(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", req.Mode, req.Image.ExternalID, req.Image.URL)
	if req.Attributes != nil {
		a := req.Attributes
		fmt.Fprintf(h, "|%s|%d|%d|%d|%d|%d|%d|%s",
			a.Name, a.HP, a.Attack, a.Defense, a.Speed, a.Magic, a.Luck, a.Description)
	}
	return hex.EncodeToString(h.Sum(nil))
}
