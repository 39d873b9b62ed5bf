package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sayafh/curriculum-chat/internal/api/response"
	"github.com/sayafh/curriculum-chat/internal/repository/redis"
)

// RateLimitMiddleware bounds question throughput per session.
type RateLimitMiddleware struct {
	rateLimiter *redis.RateLimiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rateLimiter *redis.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter}
}

// Limit applies rate limiting keyed by session ID.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := GetSessionID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, resetTime, err := m.rateLimiter.Allow(r.Context(), sessionID)
		if err != nil {
			// If the limiter is unreachable the request still goes through.
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", resetTime.Format(time.RFC3339))

		if !allowed {
			response.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
