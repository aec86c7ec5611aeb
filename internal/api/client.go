// Package api is the REST client for the railway booking backend. It
// owns the transport, the bearer-credential plumbing, and the mapping
// of HTTP failures onto the client's error taxonomy. Nothing in this
// package retries automatically.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Zakhar-Rapitskyi/railbook/internal/logging"
	"github.com/Zakhar-Rapitskyi/railbook/internal/metrics"
	"github.com/Zakhar-Rapitskyi/railbook/internal/session"
)

// DefaultBaseURL matches the backend's development address.
const DefaultBaseURL = "http://localhost:8080/api"

// Responses larger than this are treated as a transport failure.
const maxResponseBody = 10 * 1024 * 1024

// newHTTPClient builds the dedicated HTTP client for backend calls,
// configured with explicit timeouts and transport limits to avoid the
// pitfalls of http.DefaultClient (no timeout, shared global state).
// The transport is cloned from http.DefaultTransport to preserve
// important defaults (ProxyFromEnvironment, DialContext, HTTP/2,
// keepalives).
func newHTTPClient() *http.Client {
	var transport *http.Transport
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = t.Clone()
	} else {
		transport = &http.Transport{}
	}
	transport.MaxIdleConns = 50
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = 90 * time.Second
	transport.TLSHandshakeTimeout = 10 * time.Second
	transport.ExpectContinueTimeout = 1 * time.Second

	return &http.Client{
		// Absolute safety net per request; callers are expected to pass
		// a context with a stricter deadline and the stricter of the
		// two wins.
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// Client talks to the booking backend. All methods are safe for
// concurrent use. The session store is injected so that credential
// state never lives in a package-level global.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	logger     *slog.Logger
	metrics    *metrics.Metrics
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a structured logger; defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics enables Prometheus instrumentation of outgoing requests.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRateLimit throttles outgoing requests to ratePerSecond with the
// given burst. Zero or negative values disable throttling.
func WithRateLimit(ratePerSecond float64, burst int) Option {
	return func(c *Client) {
		if ratePerSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
		}
	}
}

// New creates a Client for the backend at baseURL. An empty baseURL
// falls back to DefaultBaseURL.
func New(baseURL string, sess *session.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(),
		session:    sess,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the injected credential store.
func (c *Client) Session() *session.Store {
	return c.session
}

// errorBody is the backend's error response shape.
type errorBody struct {
	Message string `json:"message"`
}

// do issues one request and decodes the JSON response into out (when
// out is non-nil). Failures are returned as *Error; the caller decides
// whether and when to retry.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindTransport, Op: op, cause: err}
		}
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Op: op, cause: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, cause: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger := logging.FromContextOr(ctx, c.logger).With(
		slog.String("component", "api_client"),
		slog.String("operation", op))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(op, 0, time.Since(start))
		logging.LogError(logger, "request failed", err, slog.String("url", reqURL))
		return &Error{Kind: KindTransport, Op: op, cause: err}
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "http_response_body")

	c.metrics.ObserveRequest(op, resp.StatusCode, time.Since(start))

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, StatusCode: resp.StatusCode,
			cause: fmt.Errorf("failed to read response body: %w", err)}
	}
	if int64(len(respBody)) > maxResponseBody {
		return &Error{Kind: KindTransport, Op: op, StatusCode: resp.StatusCode,
			cause: fmt.Errorf("response exceeds size limit of %d bytes", maxResponseBody)}
	}

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(op, resp.StatusCode, respBody, logger)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Kind: KindTransport, Op: op, StatusCode: resp.StatusCode,
				cause: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}

// errorFromResponse maps a non-2xx response to an *Error, surfacing the
// server's own message when the body carried one. A 401 invalidates the
// session: the token is cleared so the next flow starts at login.
func (c *Client) errorFromResponse(op string, status int, body []byte, logger *slog.Logger) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	if status == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			logging.LogError(logger, "failed to clear expired session", err)
		}
	}

	apiErr := &Error{
		Kind:       kindForStatus(status),
		Op:         op,
		StatusCode: status,
		Message:    parsed.Message,
	}
	logger.Warn("backend rejected request",
		slog.Int("status", status),
		slog.String("kind", apiErr.Kind.String()),
		slog.String("message", parsed.Message))
	return apiErr
}

// get is a convenience wrapper for GET requests.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}
