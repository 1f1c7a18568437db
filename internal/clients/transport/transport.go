package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/platform/ctxutil"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const maxBodyBytes = 8 << 20

// ErrEncode marks a request body that could not be encoded as JSON.
var ErrEncode = errors.New("request body encoding failed")

// HTTPError is a non-2xx answer from a collaborator.
type HTTPError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s http %d: %s", e.Method, e.URL, e.Status, strings.TrimSpace(e.Body))
}

// StatusOf returns the collaborator status carried by err, or 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

// CallObserver receives one observation per outbound call.
type CallObserver interface {
	ObserveCollaborator(collaborator, operation, outcome string, d time.Duration)
}

type Config struct {
	Name    string
	BaseURL string
	Timeout time.Duration
	Breaker breaker.Config
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
	Observer   CallObserver
}

// Client issues JSON requests to one collaborator through a circuit breaker.
type Client struct {
	log     *logger.Logger
	name    string
	baseURL string
	http    *http.Client
	breaker *breaker.Breaker
	obs     CallObserver
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: invalid base url %q", cfg.Name, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = NewHTTPClient(cfg.Timeout)
	}
	bcfg := cfg.Breaker
	if bcfg.Name == "" {
		bcfg.Name = cfg.Name
	}
	if bcfg.IsSuccessful == nil {
		bcfg.IsSuccessful = clientErrorsAreSuccessful
	}
	log = log.With("client", cfg.Name)
	return &Client{
		log:     log,
		name:    cfg.Name,
		baseURL: base,
		http:    hc,
		breaker: breaker.New(log, bcfg),
		obs:     cfg.Observer,
	}, nil
}

// NewHTTPClient returns an http.Client whose transport emits client spans.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (c *Client) Name() string { return c.name }

func (c *Client) Breaker() *breaker.Breaker { return c.breaker }

// clientErrorsAreSuccessful keeps 4xx answers from tripping the breaker; the
// collaborator is reachable, it just rejected the input.
func clientErrorsAreSuccessful(err error) bool {
	if err == nil {
		return true
	}
	s := StatusOf(err)
	return s >= 400 && s < 500
}

// DoJSON sends body (when non-nil) as JSON to path and decodes the answer into T.
// An empty answer decodes to the zero value. A body that cannot be encoded
// fails before the breaker is consulted.
func DoJSON[T any](c *Client, ctx context.Context, op, method, path string, query url.Values, body any) (T, error) {
	ctx = ctxutil.Default(ctx)
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("%s %s: %w: %v", c.name, op, ErrEncode, err)
		}
		payload = raw
	}
	start := time.Now()
	out, err := breaker.Call(ctx, c.breaker, func(ctx context.Context) (T, error) {
		return do[T](c, ctx, method, path, query, payload)
	})
	if c.obs != nil {
		c.obs.ObserveCollaborator(c.name, op, outcome(err), time.Since(start))
	}
	if err != nil {
		c.log.Debug("collaborator call failed", "operation", op, "error", err)
	}
	return out, err
}

func do[T any](c *Client, ctx context.Context, method, path string, query url.Values, payload []byte) (T, error) {
	var out T

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if td := ctxutil.GetTraceData(ctx); td != nil && td.RequestID != "" {
		req.Header.Set("X-Request-Id", td.RequestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("%s read body: %w", c.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &HTTPError{Method: method, URL: c.baseURL + path, Status: resp.StatusCode, Body: string(raw)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s decode error: %w; raw=%s", c.name, err, truncate(string(raw), 256))
	}
	return out, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, breaker.ErrOpen):
		return "breaker_open"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case StatusOf(err) >= 400 && StatusOf(err) < 500:
		return "client_error"
	default:
		return "error"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
