// Package mwapi reads page data from a wiki's action API.
package mwapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/mobilefrontend/internal/platform/timeouts"
	"github.com/louisbranch/mobilefrontend/internal/services/mobile/domain/langlinks"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	tracerName = "github.com/louisbranch/mobilefrontend/internal/services/mobile/integration/mwapi"

	defaultUserAgent = "mobilefrontend/1.0"
	maxResponseBytes = 4 << 20

	// Outcomes passed to the observer.
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// ErrAPI reports an error object returned by the action API.
var ErrAPI = errors.New("action api error")

// ErrStatus reports a non-200 response.
var ErrStatus = errors.New("action api status")

// Config holds the client settings.
type Config struct {
	// Endpoint is the api.php URL, e.g. "https://en.wikipedia.org/w/api.php".
	Endpoint string
	Timeout  time.Duration
	// RequestsPerSecond limits outbound calls; zero disables the limit.
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
}

// Article is the page data the languages page needs.
type Article struct {
	Title  string
	Exists bool
	// Language is the page content language, e.g. "sr".
	Language string
	Links    []langlinks.RawLink
}

// Observer receives the outcome and latency of every API call.
type Observer func(outcome string, elapsed time.Duration)

// Option configures a Client.
type Option func(*Client)

// WithObserver sets the call observer.
func WithObserver(observe Observer) Option {
	return func(c *Client) {
		c.observe = observe
	}
}

// WithTransport replaces the base HTTP transport. It is still wrapped for
// tracing.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.http.Transport = otelhttp.NewTransport(rt)
		}
	}
}

// Client calls one wiki's action API.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	observe   Observer
	tracer    trace.Tracer
}

// New returns a client for cfg.Endpoint.
func New(cfg Config, opts ...Option) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse api endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("api endpoint %q must be an http or https URL", cfg.Endpoint)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.APIRequest
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter:   limiter,
		userAgent: userAgent,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Article fetches the interlanguage links of title. A missing or invalid
// page is returned with Exists false and no error.
func (c *Client) Article(ctx context.Context, title string) (article Article, err error) {
	ctx, span := c.tracer.Start(ctx, "mwapi.Article",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("wiki.title", title)),
	)
	started := time.Now()
	defer func() {
		outcome := OutcomeOK
		if err != nil {
			outcome = OutcomeError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("wiki.langlinks", len(article.Links)))
		}
		span.End()
		if c.observe != nil {
			c.observe(outcome, time.Since(started))
		}
	}()

	var payload queryResponse
	if err := c.get(ctx, articleQuery(title), &payload); err != nil {
		return Article{}, err
	}
	return payload.article(title), nil
}

func articleQuery(title string) url.Values {
	return url.Values{
		"action":        {"query"},
		"prop":          {"info|langlinks"},
		"llprop":        {"url"},
		"lllimit":       {"max"},
		"titles":        {title},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}
}

func (c *Client) get(ctx context.Context, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("action api rate limit: %w", err)
	}

	u := *c.endpoint
	u.RawQuery = query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("action api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read action api response: %w", err)
	}
	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("decode action api response: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("%w: %s: %s", ErrAPI, envelope.Error.Code, envelope.Error.Info)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode action api response: %w", err)
	}
	return nil
}
