package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"restaurant-site/internal/model"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is used when no backend origin is configured.
	DefaultBaseURL = "http://localhost:5001/api"

	// DefaultTimeout is the client-side budget for a single request.
	DefaultTimeout = 10 * time.Second
)

// TokenSource supplies the admin bearer token, if any.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	HTTPClient  *http.Client
	TokenSource TokenSource
}

// Request describes a single call against the backend.
type Request struct {
	Method  string // defaults to GET
	Path    string // relative to the base URL
	Query   url.Values
	Header  http.Header // overrides the default headers
	Body    any         // JSON-encoded when set
	RawBody []byte      // sent verbatim; takes precedence over Body
}

// Client issues requests against the REST backend. Every request carries
// the default JSON headers, the shared cookie jar and, when available, the
// admin bearer token.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	tokens  TokenSource
	logger  zerolog.Logger
}

// New creates a new API client.
func New(opts Options, logger zerolog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger = logger.With().Str("component", "api-client").Str("base_url", baseURL).Logger()

	hc := &http.Client{}
	if opts.HTTPClient != nil {
		*hc = *opts.HTTPClient
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	// The per-request context carries the budget.
	hc.Timeout = 0

	transport := hc.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc.Transport = Chain(transport, RequestID(), Logging(logger))

	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    hc,
		tokens:  opts.TokenSource,
		logger:  logger,
	}, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req and decodes a JSON response body into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	data, _, err := c.send(ctx, req)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error().Err(err).Str("path", req.Path).Msg("failed to decode response body")
		return &model.Error{
			Kind:    model.KindHTTP,
			Status:  http.StatusOK,
			Message: "Invalid response from server",
			Err:     err,
		}
	}

	return nil
}

// Fetch performs req and returns the raw response body, for non-JSON
// resources such as CSV exports.
func (c *Client) Fetch(ctx context.Context, req Request) ([]byte, http.Header, error) {
	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, req Request) ([]byte, http.Header, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	endpoint := c.endpoint(req.Path, req.Query)

	var body io.Reader
	switch {
	case req.RawBody != nil:
		body = bytes.NewReader(req.RawBody)
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, nil, c.classify(ctx, method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, c.classify(ctx, method, req.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := model.NewHTTPError(resp.StatusCode, errorMessage(data))
		c.logger.Debug().
			Str("method", method).
			Str("path", req.Path).
			Int("status", resp.StatusCode).
			Str("error", httpErr.Message).
			Msg("backend returned an error")
		return nil, nil, httpErr
	}

	return data, resp.Header, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// classify maps a transport failure onto the closed error taxonomy.
func (c *Client) classify(parent context.Context, method, path string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Dur("timeout", c.timeout).Msg("request timed out")
		return model.NewTimeoutError(err)
	case errors.Is(err, context.Canceled) && parent.Err() != nil:
		c.logger.Debug().Str("method", method).Str("path", path).Msg("request cancelled by caller")
		e := model.NewNetworkError(err)
		e.Message = "Request cancelled"
		return e
	default:
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return model.NewNetworkError(err)
	}
}

// errorMessage extracts the server-supplied message from an error body.
// Empty, non-JSON or unexpected bodies yield "" so the caller falls back to
// a status-derived message.
func errorMessage(data []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}

	for _, key := range []string{"error", "message"} {
		raw, ok := body[key]
		if !ok {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}

		// Some hosts nest the message: {"error": {"message": "..."}}.
		var nested model.ErrorResponse
		if err := json.Unmarshal(raw, &nested); err == nil {
			if nested.Message != "" {
				return nested.Message
			}
			if nested.Error != "" {
				return nested.Error
			}
		}
	}

	return ""
}
