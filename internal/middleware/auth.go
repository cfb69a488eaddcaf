// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type contextKey string

const (
	ClaimsKey    contextKey = "jwt_claims"
	RequestIDKey contextKey = "request_id"
)

const bearerPrefix = "Bearer "

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// RoleLookup resolves the stored role of the account behind an email.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (core.Role, error)
}

type Claims struct {
	UserID    string
	Email     string
	Role      core.Role
	ExpiresAt time.Time
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.TokenMissingError())
				return
			}

			claims, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				slog.DebugContext(r.Context(), "token rejected",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				core.JSONError(w, core.TokenInvalidError())
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin reads the caller's role from storage on every request instead
// of trusting the role claim, so a demotion takes effect before the token
// expires.
func RequireAdmin(lookup RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil || claims.Email == "" {
				core.JSONError(w, core.UnauthorizedError("authentication required"))
				return
			}

			role, err := lookup.RoleByEmail(r.Context(), claims.Email)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				core.InternalServerError(w, err)
				return
			}

			if err != nil || !role.IsAdmin() {
				core.JSONError(w, core.ForbiddenError("Forbidden: Admin access required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken returns the credential from an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func ExtractToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func GetClaims(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(ClaimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}

func GetUserEmail(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Email
	}
	return ""
}

func GetUserRole(ctx context.Context) core.Role {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Role
	}
	return ""
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}
