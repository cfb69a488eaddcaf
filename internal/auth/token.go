// AngelaMos | 2026
// token.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/config"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/middleware"
)

const (
	claimEmail = "email"
	claimRole  = "role"
)

var errEmptySecret = errors.New("jwt secret is empty")

// TokenManager issues and verifies HS256 session tokens with a single
// process-wide secret.
type TokenManager struct {
	secret []byte
	config config.JWTConfig
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, errEmptySecret
	}
	if cfg.Expire <= 0 {
		return nil, fmt.Errorf("jwt expire must be positive, got %s", cfg.Expire)
	}

	return &TokenManager{
		secret: []byte(cfg.Secret),
		config: cfg,
		now:    time.Now,
	}, nil
}

type TokenClaims struct {
	UserID string
	Email  string
	Role   core.Role
}

// Issue signs claims and returns the token with its expiry.
func (m *TokenManager) Issue(claims TokenClaims) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.Expire)

	token, err := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(claims.UserID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim(claimEmail, claims.Email).
		Claim(claimRole, claims.Role.String()).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return string(signed), expiresAt, nil
}

// VerifyToken checks the signature first and the registered claims second,
// so a forged token is never reported as merely expired.
func (m *TokenManager) VerifyToken(
	_ context.Context,
	tokenString string,
) (*middleware.Claims, error) {
	raw := []byte(tokenString)

	token, err := jwt.Parse(raw,
		jwt.WithKey(jwa.HS256(), m.secret),
		jwt.WithValidate(false),
	)
	if err != nil {
		if _, perr := jwt.ParseInsecure(raw); perr != nil {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenMalformed)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenSignature)
	}

	err = jwt.Validate(token,
		jwt.WithClock(jwt.ClockFunc(m.now)),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %v: %w", err, core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenMalformed,
		)
	}

	var email string
	if err := token.Get(claimEmail, &email); err != nil || email == "" {
		return nil, fmt.Errorf(
			"verify token: missing email claim: %w",
			core.ErrTokenMalformed,
		)
	}

	var roleStr string
	if err := token.Get(claimRole, &roleStr); err != nil {
		return nil, fmt.Errorf(
			"verify token: missing role claim: %w",
			core.ErrTokenMalformed,
		)
	}

	role, err := core.ParseRole(roleStr)
	if err != nil {
		return nil, fmt.Errorf(
			"verify token: %v: %w",
			err,
			core.ErrTokenMalformed,
		)
	}

	expiresAt, _ := token.Expiration()

	return &middleware.Claims{
		UserID:    subject,
		Email:     email,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

var _ middleware.TokenVerifier = (*TokenManager)(nil)
