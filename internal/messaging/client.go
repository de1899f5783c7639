// Package messaging turns a message into a chat deep link and opens it.
package messaging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alpiedelaletra/storefront/internal/config"
)

// DefaultTimeout bounds a single link probe
const DefaultTimeout = 10 * time.Second

// Opener performs the hand-off of a built link
type Opener interface {
	Open(ctx context.Context, link string) error
}

// Client opens links by requesting them over HTTP
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new probing opener
func NewClient(cfg config.MessagingConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Open issues a GET for the link. Transport errors and status codes of 400
// or above count as a failed hand-off.
func (c *Client) Open(ctx context.Context, link string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("messaging link error: status %d", resp.StatusCode)
	}

	c.logger.Debug("Hand-off link reachable", zap.Int("status", resp.StatusCode))
	return nil
}

// RedirectOpener leaves opening the link to the browser that receives it
type RedirectOpener struct {
	logger *zap.Logger
}

func NewRedirectOpener(logger *zap.Logger) *RedirectOpener {
	return &RedirectOpener{logger: logger}
}

// Open succeeds unless the request has already been cancelled
func (o *RedirectOpener) Open(ctx context.Context, link string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to hand off link: %w", err)
	}
	o.logger.Debug("Hand-off link returned to client", zap.Int("length", len(link)))
	return nil
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(ctx context.Context, link string) error

func (f OpenerFunc) Open(ctx context.Context, link string) error {
	return f(ctx, link)
}
