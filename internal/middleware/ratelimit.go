package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/ratelimit"
	"go.uber.org/zap"
)

// rateLimitedBody is the 429 response payload. The shape is part of the
// public API contract, so it is written directly rather than through the
// framework's error model.
type rateLimitedBody struct {
	Detail     string `json:"detail"`
	Type       string `json:"type"`
	RetryAfter int64  `json:"retry_after"`
}

// RateLimit returns a Huma middleware that enforces per-client, per-endpoint
// quotas. Requests are keyed by source IP and request path; bypass paths are
// passed through untouched. Admitted responses carry X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset headers; rejected requests get
// a 429 with the same headers and never reach the downstream handler.
func RateLimit(limiter *ratelimit.Limiter, logger *zap.Logger, bypass ...string) func(ctx huma.Context, next func(huma.Context)) {
	bypassed := make(map[string]struct{}, len(bypass))
	for _, path := range bypass {
		bypassed[path] = struct{}{}
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		url := ctx.URL()
		if _, ok := bypassed[url.Path]; ok {
			next(ctx)

			return
		}

		key := clientIP(ctx)

		limited, info := limiter.Check(key, url.Path, 0)

		ctx.SetHeader("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		ctx.SetHeader("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		ctx.SetHeader("X-RateLimit-Reset", strconv.FormatInt(info.Reset, 10))

		if !limited {
			next(ctx)

			return
		}

		retryAfter := info.Reset - time.Now().Unix()
		if retryAfter < 0 {
			retryAfter = 0
		}

		logger.Warn("rate limit exceeded",
			zap.String("client", key),
			zap.String("endpoint", url.Path),
			zap.Int("limit", info.Limit),
			zap.Int64("retry_after", retryAfter),
		)

		ctx.SetHeader("Content-Type", "application/json")
		ctx.SetStatus(http.StatusTooManyRequests)

		body, _ := json.Marshal(rateLimitedBody{
			Detail:     "Too many requests",
			Type:       "rate_limit_exceeded",
			RetryAfter: retryAfter,
		})
		_, _ = ctx.BodyWriter().Write(body)
	}
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	// X-Forwarded-For may contain multiple IPs; the first is the client.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.RemoteAddr()

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
