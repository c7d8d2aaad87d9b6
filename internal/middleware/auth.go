package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"scorehub/internal/domain"
	"scorehub/internal/service"
	"scorehub/pkg/errors"
	"scorehub/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// SessionContextKey is the key for session claims in context
	SessionContextKey ContextKey = "session"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// Auth creates an authentication middleware that requires a valid Bearer
// session token and places its claims into the request context.
func Auth(sessions service.SessionService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, appErr := bearerToken(r)
			if appErr != nil {
				writeErrorResponse(w, appErr, log)
				return
			}

			ctx := r.Context()
			claims, err := sessions.Validate(ctx, token)
			if err != nil {
				log.WithError(err).Debug("Session validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired session"), log)
				return
			}

			ctx = context.WithValue(ctx, SessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth validates a session when one is presented and otherwise lets
// the request through anonymously. A presented-but-invalid token is still
// rejected.
func OptionalAuth(sessions service.SessionService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, appErr := bearerToken(r)
			if appErr != nil {
				writeErrorResponse(w, appErr, log)
				return
			}

			ctx := r.Context()
			claims, err := sessions.Validate(ctx, token)
			if err != nil {
				log.WithError(err).Debug("Session validation failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired session"), log)
				return
			}

			ctx = context.WithValue(ctx, SessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the claims placed by Auth, nil when the request
// is anonymous.
func SessionFromContext(ctx context.Context) *domain.SessionClaims {
	claims, _ := ctx.Value(SessionContextKey).(*domain.SessionClaims)
	return claims
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) (string, *errors.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.NewAuthenticationError("Authorization header is required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.NewAuthenticationError("Invalid authorization header format")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", errors.NewAuthenticationError("Token is required")
	}

	return token, nil
}

// RequestID creates a middleware that tags each request with a unique id,
// echoed back in the X-Request-ID header. An id supplied by the caller is
// kept so traces can span services.
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request id placed by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, log *logger.Logger) {
	log.WithError(appErr).Warn("Request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"type":    string(appErr.Type),
			"message": appErr.Message,
		},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.WithError(err).Error("Failed to encode error response")
	}
}
