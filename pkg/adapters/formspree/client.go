// Package formspree delivers contact form submissions to a Formspree-style
// endpoint: a form-encoded request answered with JSON.
package formspree

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/pkg/ports"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "fitlanding/0.1"
	maxResponseBytes = 64 << 10
)

var (
	// ErrUnexpectedStatus is returned for non-2xx answers.
	ErrUnexpectedStatus = errors.New("formspree: unexpected status")
	// ErrInvalidResponse is returned when a 2xx answer is not JSON.
	ErrInvalidResponse = errors.New("formspree: response is not JSON")
)

// Response is the JSON body Formspree answers with. Unknown fields are ignored.
type Response struct {
	OK     bool   `json:"ok"`
	Next   string `json:"next,omitempty"`
	Errors []struct {
		Field   string `json:"field,omitempty"`
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// Client implements ports.Submitter over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

var _ ports.Submitter = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (15s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient = &http.Client{Timeout: d}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the values to s.Action with s.Method. POST bodies are
// application/x-www-form-urlencoded; GET values go to the query string.
// The submission succeeded only when the status is 2xx and the body is JSON.
func (c *Client) Submit(ctx context.Context, s ports.Submission) error {
	method := strings.ToUpper(strings.TrimSpace(s.Method))
	if method == "" {
		method = http.MethodPost
	}

	var (
		req *http.Request
		err error
	)
	if method == http.MethodGet {
		target := s.Action
		if q := s.Values.Encode(); q != "" {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + q
		}
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, s.Action, strings.NewReader(s.Values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return fmt.Errorf("formspree: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("formspree: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("formspree: read response: %w", err)
	}
	c.logger.Debug("formspree answered", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Detail: detail(body)}
	}

	var decoded Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// StatusError carries the status and endpoint message of a rejected submission.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %d", ErrUnexpectedStatus, e.Code)
	}
	return fmt.Sprintf("%s %d: %s", ErrUnexpectedStatus, e.Code, e.Detail)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// detail extracts the endpoint's error messages, falling back to a short body excerpt.
func detail(body []byte) string {
	var r Response
	if err := json.Unmarshal(body, &r); err == nil && len(r.Errors) > 0 {
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
