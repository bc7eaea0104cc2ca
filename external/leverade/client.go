package leverade

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/platform/logging"
	"github.com/riskibarqy/federated-matches/internal/platform/resilience"
	"github.com/riskibarqy/federated-matches/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL      = "https://api.leverade.com"
	defaultRetryBackoff = time.Second
	matchesPath         = "/matches"
	maxResponseBytes    = 8 << 20
)

var errLeveradeTransient = crerr.New("leverade transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads compound match documents from the Leverade JSON:API. One
// client serves every federation; the manager filter tells them apart.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

var _ federation.Fetcher = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}

	breaker := resilience.NewCircuitBreaker("leverade", cfg.CircuitBreaker)
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "dependency", name, "from", from, "to", to)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		logger:       logger,
		breaker:      breaker,
	}
}

// FetchMatches issues one paged GET against the matches collection.
func (c *Client) FetchMatches(ctx context.Context, query federation.Query) (federation.Document, error) {
	values := matchesQueryValues(query)

	raw, err := c.doRequest(ctx, matchesPath, values)
	if err != nil {
		return federation.Document{}, fmt.Errorf("fetch matches federation=%s: %w", query.FederationKey, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return federation.Document{}, fmt.Errorf("federation=%s: %w", query.FederationKey, err)
	}

	c.logger.DebugContext(ctx, "leverade matches fetched",
		"federation", query.FederationKey,
		"matches", len(doc.Matches),
		"included", len(doc.Included),
	)
	return doc, nil
}

func matchesQueryValues(query federation.Query) url.Values {
	values := url.Values{}
	if filter := query.FilterExpression(); filter != "" {
		values.Set("filter", filter)
	}
	values.Set("sort", query.SortExpression())
	if include := query.IncludeExpression(); include != "" {
		values.Set("include", include)
	}
	if query.PageSize > 0 {
		values.Set("page[size]", strconv.Itoa(query.PageSize))
	}
	pageNumber := query.PageNumber
	if pageNumber <= 0 {
		pageNumber = 1
	}
	values.Set("page[number]", strconv.Itoa(pageNumber))
	return values
}

func (c *Client) doRequest(ctx context.Context, path string, values url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// The shared request outlives any single caller. Each attempt is still
	// bounded by the HTTP client timeout.
	sharedCtx := context.WithoutCancel(ctx)
	results := c.flight.DoChan(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(sharedCtx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})

	var (
		out any
		err error
	)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		out, err = res.Val, res.Err
	}
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "leverade circuit breaker rejected request", "state", c.breaker.State())
			return nil, crerr.Wrap(crerr.Mark(err, usecase.ErrDependencyUnavailable), "federation document store is temporarily unavailable")
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/vnd.api+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errLeveradeTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errLeveradeTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: leverade status=%d body=%s", errLeveradeTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("leverade status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("leverade request failed")
	}
	c.logger.WarnContext(ctx, "leverade request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	if crerr.Is(err, context.Canceled) {
		return false
	}
	return crerr.Is(err, errLeveradeTransient) || crerr.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) <= 300 {
		return text
	}
	return text[:300] + "..."
}
