package server

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"gentlix-bank/internal/errors"
	"gentlix-bank/internal/handler"
	"gentlix-bank/internal/session"
)

// SessionHeader is the alternative to "Authorization: Bearer <token>".
const SessionHeader = "X-Session-Token"

// loggingMiddleware adds request logging
func loggingMiddleware(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.statusCode).
				Dur("duration", time.Since(start)).
				Str("user_agent", r.UserAgent()).
				Msg("request completed")
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// sessionMiddleware resolves the session token and attaches the session to
// the request context. Requests without a live session are rejected.
func sessionMiddleware(sessions *session.Manager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Lookup(sessionToken(r))
			if err != nil {
				handler.WriteError(w, errors.ErrSessionNotFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.Header.Get(SessionHeader)
}

// rateLimitMiddleware throttles requests per client IP.
func rateLimitMiddleware(rl *RateLimiter, logger zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)

			if !rl.Allow(client) {
				retryAfter := int(math.Ceil(rl.RetryAfter(client).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}

				w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.Limit()))
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

				logger.Warn().
					Str("client", client).
					Str("path", r.URL.Path).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				handler.WriteError(w, errors.ErrTooManyRequests.WithDetails(
					fmt.Sprintf("retry after %d seconds", retryAfter)))
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.Limit()))
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
