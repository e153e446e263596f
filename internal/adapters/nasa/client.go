// Package nasa implements the feed source backed by the NASA NeoWs REST API.
package nasa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kamal-hamza/neo-cli/internal/core/domain"
	"github.com/kamal-hamza/neo-cli/internal/core/ports"
)

const (
	// DateLayout is the date format accepted by the feed endpoint
	DateLayout = "2006-01-02"

	// MaxRangeDays is the widest range the feed endpoint serves in one call
	MaxRangeDays = 7

	maxBodyBytes = 32 << 20
)

// ErrInvalidRange is returned for malformed or oversized date ranges
var ErrInvalidRange = errors.New("invalid date range")

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("nasa api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("nasa api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Options configures the client
type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RetryMax          int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RequestsPerSecond float64
	Logger            *zap.Logger
}

// Client fetches feeds over HTTP with retries and client-side rate limiting
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Ensure it implements the interface
var _ ports.FeedSource = (*Client)(nil)

// NewClient creates a client from options
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}
	if opts.Timeout > 0 {
		rc.HTTPClient.Timeout = opts.Timeout
	}
	// The request URL carries the API key; attempts are logged by path only
	rc.Logger = nil
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		logger.Debug("nasa request", zap.String("path", req.URL.Path), zap.Int("attempt", attempt))
	}
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	rps := opts.RequestsPerSecond
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		http:    rc,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// ValidateRange checks that both dates parse and span at most MaxRangeDays
func ValidateRange(startDate, endDate string) error {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return fmt.Errorf("%w: start date %q is not YYYY-MM-DD", ErrInvalidRange, startDate)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return fmt.Errorf("%w: end date %q is not YYYY-MM-DD", ErrInvalidRange, endDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidRange, endDate, startDate)
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, MaxRangeDays)
	}
	return nil
}

// FetchFeed retrieves the feed for an inclusive date range
func (c *Client) FetchFeed(ctx context.Context, startDate, endDate string) (*domain.Feed, error) {
	if endDate == "" {
		endDate = startDate
	}
	if err := ValidateRange(startDate, endDate); err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	query.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/feed?" + query.Encode()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	c.logger.Info("feed fetched",
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return domain.ParseFeed(body)
}

// errorMessage extracts a short message from an error body
func errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// redact strips the API key from transport errors, which embed the URL
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}
