package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds env-driven settings for the push client.
type Config struct {
	Endpoint string        `env:"MESSENGER_PUSH_URL"`                  // Endpoint is the platform's push message URL.
	Token    string        `env:"MESSENGER_TOKEN"`                     // Token is the channel access token.
	Timeout  time.Duration `env:"MESSENGER_TIMEOUT" envDefault:"10s"`  // Timeout bounds a single push call.
}

// PushClient implements Messenger over the chat platform's push endpoint.
type PushClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// PushOption configures the push client.
type PushOption func(*PushClient)

// WithHTTPClient sets a custom HTTP client. Useful for testing.
func WithHTTPClient(c *http.Client) PushOption {
	return func(p *PushClient) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// NewPushClient creates a push messenger from the config.
func NewPushClient(cfg Config, opts ...PushOption) (*PushClient, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &PushClient{
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type pushPayload struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// Send pushes the messages to the user. Empty batches are a no-op.
func (p *PushClient) Send(ctx context.Context, userID string, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}

	body, err := json.Marshal(pushPayload{To: userID, Messages: msgs})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, string(msg))
	}
	return nil
}
