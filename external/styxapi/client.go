package styxapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/platform/logging"
	"github.com/Baguimon/STYX-sub000/internal/platform/resilience"
	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

const (
	defaultTimeout      = 5 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBody     = 4 << 20
)

var (
	errRemoteTransient = crerr.New("roster api transient failure")
	errRemoteNotFound  = crerr.New("roster api resource not found")
)

type Config struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Circuit      resilience.CircuitBreakerConfig
}

// Client talks to the remote roster REST service. Identical concurrent GETs
// share one round trip.
type Client struct {
	http         *fasthttp.Client
	baseURL      string
	token        string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	breaker      *resilience.CircuitBreaker
	flight       singleflight.Group
	logger       *logging.Logger
}

func NewClient(cfg Config, logger *logging.Logger) (*Client, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid REMOTE_API_BASE_URL")
	}
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	c := &Client{
		http: &fasthttp.Client{
			Name:                "styx-roster-api",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBody,
		},
		baseURL:      baseURL,
		token:        strings.TrimSpace(cfg.Token),
		timeout:      timeout,
		maxRetries:   retries,
		retryBackoff: backoff,
		breaker:      resilience.NewCircuitBreaker(cfg.Circuit),
		logger:       logger.Named("styxapi"),
	}
	c.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		c.logger.Warn("roster api circuit state changed", "from", string(from), "to", string(to))
	})
	return c, nil
}

// get decodes the resource at path into target. A 404 reports found=false.
// The shared round trip outlives any single caller so one cancelled request
// does not fail the others waiting on it.
func (c *Client) get(ctx context.Context, path string, target any) (bool, error) {
	ch := c.flight.DoChan(path, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedFetchTimeout())
		defer cancel()

		raw, err := c.call(sharedCtx, fasthttp.MethodGet, path, nil, c.maxRetries)
		if isCircuitFailure(err) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return raw, err
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res = <-ch:
	}

	if crerr.Is(res.Err, errRemoteNotFound) {
		return false, nil
	}
	if res.Err != nil {
		return false, res.Err
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected response payload type %T", res.Val)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, crerr.Wrapf(err, "decode %s", path)
	}
	return true, nil
}

// write sends a mutation once. Writes are not idempotent, so a transient
// failure leaves the outcome unknown and is reported as a stale snapshot as
// well: the caller re-fetches and sees whether the change landed.
func (c *Client) write(ctx context.Context, method, path string, payload any) error {
	var body []byte
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return crerr.Wrapf(err, "marshal %s %s", method, path)
		}
		body = encoded
	}

	_, err := c.call(ctx, method, path, body, 0)
	switch {
	case err == nil:
		return nil
	case crerr.Is(err, errRemoteNotFound):
		return fmt.Errorf("%w: %s %s returned not found", assignment.ErrStaleSnapshot, method, path)
	case isCircuitFailure(err):
		return fmt.Errorf("%w: %w: outcome unknown: %v", usecase.ErrDependencyUnavailable, assignment.ErrStaleSnapshot, err)
	default:
		return err
	}
}

func (c *Client) call(ctx context.Context, method, path string, body []byte, retries int) ([]byte, error) {
	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, method, path, body, retries)
		return reqErr
	}, isCircuitFailure)

	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "roster api circuit breaker rejected request", "method", method, "path", path)
		return nil, fmt.Errorf("%w: roster api circuit open", usecase.ErrDependencyUnavailable)
	}
	return raw, err
}

// sharedFetchTimeout bounds a GET with all its retries and backoff waits.
func (c *Client) sharedFetchTimeout() time.Duration {
	n := time.Duration(c.maxRetries)
	return c.timeout*(n+1) + c.retryBackoff*n*(n+1)/2
}

func (c *Client) executeRequest(ctx context.Context, method, path string, body []byte, retries int) ([]byte, error) {
	fullURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.roundTrip(ctx, method, fullURL, body)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Wrapf(err, "%s %s", method, path), errRemoteTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case status == fasthttp.StatusNotFound:
			return nil, crerr.Wrapf(errRemoteNotFound, "%s %s", method, path)
		case status == fasthttp.StatusConflict:
			return nil, fmt.Errorf("%w: %s %s rejected version", assignment.ErrStaleSnapshot, method, path)
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("%s %s status=%d body=%s", method, path, status, abbreviateBody(raw)), errRemoteTransient)
		default:
			return nil, crerr.Newf("%s %s status=%d body=%s", method, path, status, abbreviateBody(raw))
		}

		if attempt == retries {
			break
		}
		c.logger.WarnContext(ctx, "roster api request failed, retrying", "method", method, "path", path, "attempt", attempt+1, "error", lastErr)

		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, fullURL string, body []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	// resp is released on return, its body must be copied out.
	raw := append([]byte(nil), resp.Body()...)
	return raw, resp.StatusCode(), nil
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errRemoteTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

// resourcePath joins escaped segments into an absolute path.
func resourcePath(segments ...string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, segment := range segments {
		_ = buf.WriteByte('/')
		_, _ = buf.WriteString(url.PathEscape(segment))
	}
	return buf.String()
}

func versionQuery(path string, expectedVersion int64) string {
	return path + "?expected_version=" + strconv.FormatInt(expectedVersion, 10)
}
