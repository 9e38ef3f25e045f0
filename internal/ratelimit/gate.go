// Package ratelimit serializes and throttles access to external provider APIs.
//
// Each provider gets exactly one Gate. The Gate holds its lock across both the
// proactive throttling delay and the HTTP call itself, so concurrent callers
// queue up and the provider never sees overlapping requests, regardless of how
// many goroutines are doing lookups.
package ratelimit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/lkarjala/curator/internal/errors"
	"golang.org/x/time/rate"
)

// Config describes one provider's quota shape. Immutable after NewGate.
type Config struct {
	// RequestsPerMinute caps requests inside a rolling minute window.
	RequestsPerMinute int
	// RequestsPerDay caps requests per calendar day.
	RequestsPerDay int
	// MinInterval is the minimum spacing between consecutive requests.
	MinInterval time.Duration
	// MaxRetryPause is the longest reset wait worth sleeping out on a 429.
	// Anything further away is treated as daily quota exhaustion.
	MaxRetryPause time.Duration
}

// Validate checks the config invariants.
func (c Config) Validate() error {
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests per minute must be positive, got %d", c.RequestsPerMinute)
	}
	if c.RequestsPerDay <= 0 {
		return fmt.Errorf("requests per day must be positive, got %d", c.RequestsPerDay)
	}
	if c.MinInterval < 0 {
		return fmt.Errorf("min interval must not be negative, got %s", c.MinInterval)
	}
	if c.MaxRetryPause <= 0 {
		return fmt.Errorf("max retry pause must be positive, got %s", c.MaxRetryPause)
	}
	return nil
}

// ResetParser extracts the quota reset time from a 429 response.
// The second return value is false when the response carries no usable signal.
type ResetParser func(resp *http.Response, now time.Time) (time.Time, bool)

// DefaultResetParser understands Retry-After (delta seconds or HTTP date)
// and X-RateLimit-Reset (unix seconds).
func DefaultResetParser(resp *http.Response, now time.Time) (time.Time, bool) {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return now.Add(time.Duration(secs) * time.Second), true
		}
		if t, err := http.ParseTime(v); err == nil {
			return t, true
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil && unix > 0 {
			return time.Unix(unix, 0), true
		}
	}
	return time.Time{}, false
}

// Gate owns one provider's rate limit state. All fields below mu are guarded
// by it; the lock is held for the full duration of Do.
type Gate struct {
	name   string
	cfg    Config
	parser ResetParser
	clock  func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error

	mu            sync.Mutex
	spacing       *rate.Limiter
	minuteStart   time.Time
	minuteCount   int
	day           time.Time
	dayCount      int
	lastRequest   time.Time
	cooldownUntil time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source. For tests.
func WithClock(clock func() time.Time) Option {
	return func(g *Gate) { g.clock = clock }
}

// WithSleep overrides the context-aware sleep function. For tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Gate) { g.sleep = sleep }
}

// WithResetParser sets a provider-specific 429 reset header parser.
func WithResetParser(p ResetParser) Option {
	return func(g *Gate) {
		if p != nil {
			g.parser = p
		}
	}
}

// NewGate creates the single gate for a named provider.
func NewGate(name string, cfg Config, opts ...Option) (*Gate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rate limit config for %s: %w", name, err)
	}
	g := &Gate{
		name:   name,
		cfg:    cfg,
		parser: DefaultResetParser,
		clock:  time.Now,
		sleep:  sleepContext,
	}
	if cfg.MinInterval > 0 {
		g.spacing = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the provider name this gate guards.
func (g *Gate) Name() string {
	return g.name
}

// sendState tracks the bounded retry loop inside Do. The transitions make the
// single-retry guarantee explicit: limited may only step back to sending once.
type sendState int

const (
	stateThrottled sendState = iota
	stateSending
	stateLimited
)

// Do performs one throttled HTTP attempt through fn, retrying at most once
// after a short burst limit. It returns the response for any non-429 status;
// interpreting 404s and 5xxs is the caller's job. Expected limit conditions
// come back as RateLimitError or QuotaExhaustedError.
func (g *Gate) Do(ctx context.Context, fn func(context.Context) (*http.Response, error)) (*http.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var resp *http.Response
	retried := false
	state := stateThrottled
	for {
		switch state {
		case stateThrottled:
			if err := g.throttle(ctx); err != nil {
				return nil, err
			}
			state = stateSending

		case stateSending:
			r, err := fn(ctx)
			if err != nil {
				// Transient failure (timeout, connection error). The request
				// may never have reached the provider, so counters stay put.
				return nil, err
			}
			if r.StatusCode == http.StatusTooManyRequests {
				resp = r
				state = stateLimited
				continue
			}
			g.record(r.StatusCode)
			return r, nil

		case stateLimited:
			drainBody(resp)
			reset, ok := g.parser(resp, g.clock())
			if !ok {
				slog.Warn("429 without a usable reset header", "provider", g.name)
				return nil, errors.NewRateLimitError(g.name, "reset time unknown, not retrying")
			}
			wait := clampDuration(reset.Sub(g.clock()))
			if wait > g.cfg.MaxRetryPause {
				slog.Error("provider quota exhausted", "provider", g.name, "reset", reset, "wait", wait)
				return nil, errors.NewQuotaExhaustedError(g.name, reset)
			}
			if retried {
				return nil, errors.NewRateLimitError(g.name, "still limited after burst retry")
			}
			slog.Warn("burst limit hit, pausing before retry", "provider", g.name, "wait", wait)
			g.cooldownUntil = reset
			if err := g.sleep(ctx, wait); err != nil {
				return nil, err
			}
			g.minuteStart = g.clock()
			g.minuteCount = 0
			retried = true
			state = stateSending
		}
	}
}

// throttle applies the proactive limits in order: window rollover, daily cap,
// per-minute cap, leftover burst cooldown, then inter-request spacing.
// Called with g.mu held.
func (g *Gate) throttle(ctx context.Context) error {
	now := g.clock()
	g.rollover(now)

	if g.dayCount >= g.cfg.RequestsPerDay {
		// Waiting out a daily window could take hours; fail fast instead.
		reset := startOfNextDay(now)
		slog.Error("daily quota exhausted", "provider", g.name, "used", g.dayCount, "reset", reset)
		return errors.NewQuotaExhaustedError(g.name, reset)
	}

	if g.minuteCount >= g.cfg.RequestsPerMinute {
		wait := clampDuration(g.minuteStart.Add(time.Minute).Sub(now))
		slog.Debug("per-minute quota reached, pausing", "provider", g.name, "wait", wait)
		if err := g.sleep(ctx, wait); err != nil {
			return err
		}
		g.minuteStart = g.clock()
		g.minuteCount = 0
	}

	if now := g.clock(); now.Before(g.cooldownUntil) {
		// A previous caller hit a burst limit; honor its cooldown without
		// probing the provider again.
		if err := g.sleep(ctx, clampDuration(g.cooldownUntil.Sub(now))); err != nil {
			return err
		}
	}

	if g.spacing != nil {
		if err := g.spacing.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait for %s: %w", g.name, err)
		}
	}
	return nil
}

// rollover resets the minute and day windows when they have elapsed.
// Called with g.mu held.
func (g *Gate) rollover(now time.Time) {
	if g.minuteStart.IsZero() || now.Sub(g.minuteStart) >= time.Minute {
		g.minuteStart = now
		g.minuteCount = 0
	}
	if !sameDay(g.day, now) {
		g.day = now
		g.dayCount = 0
	}
}

// record updates the counters after a confirmed response. Only 2xx responses
// consume budget. Called with g.mu held.
func (g *Gate) record(status int) {
	if status < 200 || status >= 300 {
		return
	}
	now := g.clock()
	g.minuteCount++
	g.dayCount++
	g.lastRequest = now
}

// Stats is a snapshot of the gate's counters, for telemetry and tests.
type Stats struct {
	MinuteCount   int
	DayCount      int
	LastRequest   time.Time
	CooldownUntil time.Time
}

// Stats returns the current counter snapshot.
func (g *Gate) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Stats{
		MinuteCount:   g.minuteCount,
		DayCount:      g.dayCount,
		LastRequest:   g.lastRequest,
		CooldownUntil: g.cooldownUntil,
	}
}

func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfNextDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// clampDuration guards sleep computations against a clock that moved
// backward: a negative wait becomes zero instead of a huge or negative sleep.
func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
