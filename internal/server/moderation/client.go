// Package moderation talks to the external bad-words provider that censors
// user text before it is stored.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/logging"
	"github.com/dmitrijs2005/gophqa/internal/retryx"
	"golang.org/x/time/rate"
)

// DefaultURL is the apilayer bad_words endpoint replacing matches with '*'.
const DefaultURL = "https://api.apilayer.com/bad_words?censor_character=*"

const maxBodyBytes = 1 << 20

// Config holds the provider endpoint and the retry policy knobs.
type Config struct {
	URL         string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// RateLimit caps outgoing requests per second; zero disables limiting.
	RateLimit float64
}

// Checker censors text. *Client implements it.
type Checker interface {
	Check(ctx context.Context, text string) (string, error)
}

// Client is safe for concurrent use. It is immutable after NewClient.
type Client struct {
	url     string
	apiKey  string
	http    *http.Client
	policy  retryx.Policy
	limiter *rate.Limiter
	metrics *Metrics
	log     logging.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(cfg Config, opts ...Option) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}

	c := &Client{
		url:    url,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: cfg.Timeout},
		policy: retryx.Policy{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     retryx.Exponential(cfg.BaseDelay, cfg.MaxDelay),
			Retryable:   retryable,
		},
		log: logging.Nop{},
	}
	if cfg.BaseDelay <= 0 {
		c.policy.Backoff = nil
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("module", "moderation")
	return c
}

var errMissingContent = errors.New("verdict has no censored_content")

type verdict struct {
	CensoredContent *string `json:"censored_content"`
	BadWordsTotal   int    `json:"bad_words_total"`
}

type providerError struct {
	Message string `json:"message"`
}

// Check returns text with offending words censored. Failures are always
// *Error: KindClientFault after a single 4xx, KindServiceFault when 5xx
// responses outlast the retry policy or a 2xx body cannot be decoded, and
// KindUnreachable when no response could be obtained.
func (c *Client) Check(ctx context.Context, text string) (string, error) {
	start := time.Now()

	out, err := retryx.Do(ctx, c.policy, func(ctx context.Context, attempt int) (string, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return "", &Error{Kind: KindUnreachable, Err: err}
			}
		}
		s, err := c.once(ctx, text)
		c.metrics.attempt(kindOf(err))
		if err != nil {
			c.log.Debug(ctx, "moderation attempt failed", "attempt", attempt, "error", err)
		}
		return s, err
	})
	if err != nil {
		merr := finalize(err)
		c.metrics.result(merr.Kind, start)
		if merr.Kind == KindClientFault {
			c.log.Error(ctx, "moderation request rejected", "status", merr.Status, "error", merr)
		} else {
			c.log.Warn(ctx, "moderation provider unavailable", "status", merr.Status, "error", merr)
		}
		return "", merr
	}

	c.metrics.result(KindNone, start)
	return out, nil
}

func (c *Client) once(ctx context.Context, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(text))
	if err != nil {
		return "", &Error{Kind: KindClientFault, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", &Error{Kind: KindUnreachable, Err: ctx.Err()}
		}
		return "", &Error{Kind: Classify(0, err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{Kind: KindTransient, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	kind := Classify(resp.StatusCode, nil)
	if kind != KindNone {
		return "", &Error{Kind: kind, Status: resp.StatusCode, Message: providerMessage(body)}
	}

	var v verdict
	if err := json.Unmarshal(body, &v); err != nil {
		return "", &Error{Kind: KindServiceFault, Status: resp.StatusCode, Err: fmt.Errorf("decode verdict: %w", err)}
	}
	if v.CensoredContent == nil {
		return "", &Error{Kind: KindServiceFault, Status: resp.StatusCode, Err: errMissingContent}
	}
	return *v.CensoredContent, nil
}

// finalize turns the last attempt's error into a terminal one.
func finalize(err error) *Error {
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Kind: KindUnreachable, Err: err}
	}
	if e.Kind != KindTransient {
		return e
	}
	out := *e
	if e.Status != 0 {
		out.Kind = KindServiceFault
	} else {
		out.Kind = KindUnreachable
	}
	return &out
}

func providerMessage(body []byte) string {
	var pe providerError
	if err := json.Unmarshal(body, &pe); err == nil && pe.Message != "" {
		return pe.Message
	}
	return strings.TrimSpace(string(body))
}

func kindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnreachable
}
