package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// QuotaHeaders holds the normalized X-RateLimit-* header trio some providers
// attach to every response. Zero values mean the header was absent.
type QuotaHeaders struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// ParseQuotaHeaders reads the X-RateLimit-Limit/Remaining/Reset headers.
// The second return value is false when none were present.
func ParseQuotaHeaders(h http.Header) (QuotaHeaders, bool) {
	var q QuotaHeaders
	found := false
	if v := h.Get("X-RateLimit-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
			found = true
		}
	}
	if v := h.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Remaining = n
			found = true
		}
	}
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil && unix > 0 {
			q.Reset = time.Unix(unix, 0)
			found = true
		}
	}
	return q, found
}

// LogQuotaHeaders emits quota telemetry for a provider response. Logging only;
// throttling decisions are made by the Gate.
func LogQuotaHeaders(provider string, h http.Header) {
	q, ok := ParseQuotaHeaders(h)
	if !ok {
		return
	}
	slog.Debug("provider quota",
		"provider", provider,
		"limit", q.Limit,
		"remaining", q.Remaining,
		"reset", q.Reset)
}
