package battlemetrics

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/battletracker/battletracker/internal/errors"
	"github.com/battletracker/battletracker/internal/logger"
	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://api.battlemetrics.com"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 5 * time.Second

	maxResponseBodySize = 1 << 20 // 1MB

	// RequestIDHeader carries a per-request correlation ID.
	RequestIDHeader = "X-Request-ID"
)

// connection pooling limits; every monitor talks to the same host
const (
	defaultMaxIdleConns        = 50
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
)

// Client fetches server resources from the API.
//
// Timeouts are applied per request via context rather than on the
// underlying http.Client, so callers can still cancel early.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	userAgent  string
	log        logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests, mirrors).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the sink for request diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = logger.OrNoop(l)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client with pooled connections and a 5s timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: "battletracker",
		log:       logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// ServerURL returns the resource URL for id.
func (c *Client) ServerURL(id string) string {
	return c.baseURL + "/servers/" + url.PathEscape(id)
}

// Fetch retrieves the server with the given id.
//
// Errors are *errors.Error with one of the codes ErrNotFound (404),
// ErrNetwork (transport failure or timeout), ErrHTTP (any other non-2xx)
// or ErrMalformed (body isn't the expected JSON shape).
func (c *Client) Fetch(ctx context.Context, id string) (*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqID := uuid.NewString()
	target := c.ServerURL(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Can't build request for server %s", id),
			"Check api.base_url in your config")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("GET %s failed after %s [%s]: %v", target, time.Since(start).Round(time.Millisecond), reqID, err)
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.WrapWithCode(err, errors.ErrNetwork,
				fmt.Sprintf("Request for server %s timed out after %s", id, c.timeout),
				"The API may be slow or unreachable; it will be retried next cycle")
		}
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Can't reach the API for server %s", id),
			"Check your network connection")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	latency := time.Since(start).Round(time.Millisecond)
	c.log.Debug("GET %s -> %d in %s [%s]", target, resp.StatusCode, latency, reqID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Failed reading response for server %s", id),
			"")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Invalid server ID: %s", id),
			"IDs can be found in the server's BattleMetrics URL")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.WrapWithCode(
			fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			errors.ErrHTTP,
			fmt.Sprintf("Unexpected response for server %s", id),
			"")
	}

	server, err := decodeServer(id, body)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Server %s (ID: %s) response: %s", server.Name, id, truncate(string(body), 512))
	c.log.Info("Server %s (ID: %s) player count: %d", server.Name, id, server.Players)

	return server, nil
}

// Close releases idle connections. The client stays usable.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// decodeServer parses a /servers/{id} body.
func decodeServer(id string, body []byte) (*Server, error) {
	var payload serverResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrMalformed,
			fmt.Sprintf("Unreadable response for server %s", id),
			"")
	}

	if payload.Data == nil || payload.Data.Attributes == nil {
		return nil, errors.New(errors.ErrMalformed,
			fmt.Sprintf("Response for server %s has no data.attributes", id),
			"")
	}

	attrs := payload.Data.Attributes
	if attrs.Name == nil || attrs.Players == nil {
		return nil, errors.New(errors.ErrMalformed,
			fmt.Sprintf("Response for server %s is missing name or players", id),
			"")
	}

	return &Server{
		ID:         id,
		Name:       *attrs.Name,
		Players:    *attrs.Players,
		MaxPlayers: attrs.MaxPlayers,
		Status:     attrs.Status,
		Time:       detailString(attrs.Details, "time"),
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
