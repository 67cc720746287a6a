package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/pl-predictor/internal/platform/logging"
	"github.com/riskibarqy/pl-predictor/internal/platform/resilience"
	"github.com/riskibarqy/pl-predictor/internal/usecase"
)

const (
	defaultBaseURL      = "https://api.football-data.org/v4"
	defaultCompetition  = "PL"
	defaultTimeout      = 30 * time.Second
	defaultRetryBackoff = time.Second
	maxBodyPreview      = 300
)

var authTokenRegex = regexp.MustCompile(`(?i)x-auth-token[:=]\s*[^\s&"']+`)
var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Competition    string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads gameweek matches from football-data.org v4.
type Client struct {
	httpClient   *fasthttp.Client
	baseURL      string
	competition  string
	token        string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "pl-predictor",
			MaxConnsPerHost:     16,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	competition := strings.TrimSpace(cfg.Competition)
	if competition == "" {
		competition = defaultCompetition
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.State) {
		logger.Warn("football-data circuit breaker state changed", "from", from.String(), "to", to.String())
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		competition:  competition,
		token:        strings.TrimSpace(cfg.Token),
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(breakerCfg),
	}
}

// FetchGameweekMatches returns every match the competition lists for the
// matchday. Nothing is sent when no token is configured.
func (c *Client) FetchGameweekMatches(ctx context.Context, gameweek int) ([]usecase.ExternalMatch, error) {
	if gameweek <= 0 {
		return nil, fmt.Errorf("%w: gameweek must be greater than zero", usecase.ErrInvalidInput)
	}
	if c.token == "" {
		return nil, fmt.Errorf("%w: football-data api key is not configured", usecase.ErrUnauthorized)
	}

	var payload matchesEnvelope
	if err := c.doJSON(ctx, c.matchesURL(gameweek), &payload); err != nil {
		return nil, fmt.Errorf("fetch matches gameweek=%d: %w", gameweek, err)
	}

	out := make([]usecase.ExternalMatch, 0, len(payload.Matches))
	for _, item := range payload.Matches {
		out = append(out, item.toExternal())
	}
	c.logger.DebugContext(ctx, "football-data matches fetched", "gameweek", gameweek, "count", len(out))
	return out, nil
}

func (c *Client) matchesURL(gameweek int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString("/competitions/")
	_, _ = buf.WriteString(c.competition)
	_, _ = buf.WriteString("/matches?matchday=")
	_, _ = buf.WriteString(strconv.Itoa(gameweek))
	return buf.String()
}

func (c *Client) doJSON(ctx context.Context, fullURL string, target any) error {
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State().String())
		return fmt.Errorf("%w: match provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.send(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: %w: send request: %s", usecase.ErrDependencyUnavailable, errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: %w: football-data status=%d body=%s", usecase.ErrDependencyUnavailable, errFootballDataTransient, status, abbreviateBody(raw, c.token))
		default:
			lastErr = fmt.Errorf("%w: football-data status=%d body=%s", usecase.ErrDependencyUnavailable, status, abbreviateBody(raw, c.token))
			c.logger.WarnContext(ctx, "football-data request rejected", "url", fullURL, "status", status)
			return nil, lastErr
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

	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Auth-Token", c.token)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return authTokenRegex.ReplaceAllString(value, "X-Auth-Token: REDACTED")
}

func abbreviateBody(body []byte, token string) string {
	text := sanitizeSensitiveText(string(body), token)
	if len(text) > maxBodyPreview {
		return text[:maxBodyPreview] + "..."
	}
	return text
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFootballDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= 500
}
