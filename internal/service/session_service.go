package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"scorehub/internal/domain"
	"scorehub/pkg/errors"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

// sessionService mints and validates HS256 session tokens. Every token
// carries a jti whose Redis key must exist for the token to be accepted, so
// sign-out revokes a session immediately instead of waiting out the expiry.
type sessionService struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	log    *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(secret string, ttl time.Duration, redisClient *redis.Client, log *logger.Logger) SessionService {
	return &sessionService{
		secret: []byte(secret),
		ttl:    ttl,
		redis:  redisClient,
		log:    log.WithComponent("session"),
	}
}

// Issue mints a session token for a provisioned profile
func (s *sessionService) Issue(ctx context.Context, profile *domain.UserProfile) (string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":     profile.UserID,
		"name":    profile.DisplayName,
		"email":   profile.Email,
		"picture": profile.PhotoURL,
		"anon":    profile.IsAnonymous,
		"jti":     jti,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.NewInternalError("failed to sign session token", err)
	}

	// The key's lifetime matches the token's, so Redis expires the session
	// right when the token itself stops verifying.
	if err := s.redis.Set(ctx, s.redis.KeyBuilder.KeySession(jti), profile.UserID, s.ttl); err != nil {
		return "", errors.NewInternalError("failed to store session", err)
	}

	s.log.WithFields(map[string]interface{}{
		"user_id": profile.UserID,
		"ttl":     s.ttl.String(),
	}).Debug("session issued")

	return signed, nil
}

// Validate checks a token's signature, expiry, and revocation status and
// returns its claims.
func (s *sessionService) Validate(ctx context.Context, tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, errors.NewAuthenticationError("invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewAuthenticationError("invalid session claims")
	}

	userID := claimString(claims, "sub")
	jti := claimString(claims, "jti")
	if userID == "" || jti == "" {
		return nil, errors.NewAuthenticationError("session token missing required claims")
	}

	// Revocation check: the token is only good while its key lives.
	n, err := s.redis.Exists(ctx, s.redis.KeyBuilder.KeySession(jti))
	if err != nil {
		return nil, errors.NewInternalError("failed to check session", err)
	}
	if n == 0 {
		return nil, errors.NewAuthenticationError("session revoked or expired")
	}

	sessionClaims := &domain.SessionClaims{
		UserID:      userID,
		Email:       claimString(claims, "email"),
		Name:        claimString(claims, "name"),
		Picture:     claimString(claims, "picture"),
		IsAnonymous: claimBool(claims, "anon"),
		JTI:         jti,
	}
	if exp, ok := claims["exp"].(float64); ok {
		sessionClaims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return sessionClaims, nil
}

// Revoke invalidates the session with the given token id
func (s *sessionService) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return errors.NewValidationError("session id is required", nil)
	}

	if err := s.redis.Delete(ctx, s.redis.KeyBuilder.KeySession(jti)); err != nil {
		return errors.NewInternalError("failed to revoke session", err)
	}

	s.log.Debug("session revoked")
	return nil
}

// Helper functions to safely extract values from token claims
func claimString(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func claimBool(claims jwt.MapClaims, key string) bool {
	if val, ok := claims[key].(bool); ok {
		return val
	}
	return false
}
