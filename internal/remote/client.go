package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tessro/vortex/internal/config"
	"github.com/tessro/vortex/internal/core"
	vxerrors "github.com/tessro/vortex/internal/errors"
)

const (
	userAgent = "vortex/1.0"

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 1 << 20
)

// Client talks to the player service over HTTP.
type Client struct {
	httpClient *http.Client
	endpoints  config.Endpoints
	logger     *zap.Logger
}

// New creates a client for the given endpoints. A zero timeout leaves requests
// bounded only by their context.
func New(endpoints config.Endpoints, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoints:  endpoints,
		logger:     logger,
	}
}

// NewFromConfig resolves endpoints from cfg and creates a client.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	endpoints, err := cfg.ResolveEndpoints()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vxerrors.ErrInvalidConfig, err)
	}
	return New(endpoints, cfg.RequestTimeout(), logger), nil
}

// FetchStatus reads the current player state.
//
// A service reply with success:false yields a *core.ApplicationError; every
// other failure is a transport error.
func (c *Client) FetchStatus(ctx context.Context) (*core.Snapshot, error) {
	body, err := c.get(ctx, c.endpoints.Status)
	if err != nil {
		return nil, err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", vxerrors.ErrInvalidResponse, err)
	}

	if !resp.Success {
		return nil, &core.ApplicationError{Message: resp.Error}
	}

	return resp.snapshot(), nil
}

// Send issues a command. The response body is discarded; only transport
// failures are reported.
func (c *Client) Send(ctx context.Context, cmd core.Command) error {
	url, ok := c.endpoints.URL(cmd)
	if !ok {
		return fmt.Errorf("%w: %s", vxerrors.ErrUnknownCommand, cmd)
	}
	_, err := c.get(ctx, url)
	return err
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", zap.String("method", req.Method), zap.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", vxerrors.ErrServerUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("response", zap.String("url", url), zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", vxerrors.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}
