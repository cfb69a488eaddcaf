// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type stubVerifier struct {
	claims *Claims
	err    error
	seen   string
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (*Claims, error) {
	s.seen = token
	return s.claims, s.err
}

type stubLookup struct {
	roles map[string]core.Role
	err   error
	calls int
}

func (s *stubLookup) RoleByEmail(_ context.Context, email string) (core.Role, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	role, ok := s.roles[email]
	if !ok {
		return "", core.ErrNotFound
	}
	return role, nil
}

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"Bearer  padded ", "padded"},
		{"Basic dXNlcjpwYXNz", ""},
		{"bearer abc", ""},
		{"Bearerabc", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, ExtractToken(r), tt.header)
	}
}

func TestAuthenticator_MissingToken(t *testing.T) {
	verifier := &stubVerifier{}
	called := false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artist", nil)
	req.Header.Set("Authorization", "Token abc")

	Authenticator(verifier)(okHandler(t, &called)).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized: Missing token")
	assert.Empty(t, verifier.seen)
}

func TestAuthenticator_VerificationFailuresLookAlike(t *testing.T) {
	var bodies []string

	for _, verr := range []error{core.ErrTokenExpired, core.ErrTokenSignature, core.ErrTokenMalformed} {
		verifier := &stubVerifier{err: verr}
		called := false

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/artist", nil)
		req.Header.Set("Authorization", "Bearer abc")

		Authenticator(verifier)(okHandler(t, &called)).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
	assert.Contains(t, bodies[0], "Unauthorized: Invalid token")
}

func TestAuthenticator_PassesClaims(t *testing.T) {
	want := &Claims{UserID: "u-1", Email: "a@b.com", Role: core.RoleStandard}
	verifier := &stubVerifier{claims: want}

	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r.Context())
		assert.Equal(t, "u-1", GetUserID(r.Context()))
		assert.Equal(t, "a@b.com", GetUserEmail(r.Context()))
		assert.Equal(t, core.RoleStandard, GetUserRole(r.Context()))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/artist", nil)
	req.Header.Set("Authorization", "Bearer abc")

	Authenticator(verifier)(next).ServeHTTP(rec, req)

	assert.Equal(t, "abc", verifier.seen)
	assert.Same(t, want, got)
}

func serveAdmin(lookup RoleLookup, claims *Claims) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPut, "/user/update", nil)
	if claims != nil {
		req = req.WithContext(WithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	RequireAdmin(lookup)(next).ServeHTTP(rec, req)
	return rec, called
}

func TestRequireAdmin(t *testing.T) {
	lookup := &stubLookup{roles: map[string]core.Role{
		"admin@music.dev": core.RoleAdmin,
		"a@b.com":         core.RoleStandard,
	}}

	rec, called := serveAdmin(lookup, &Claims{Email: "admin@music.dev", Role: core.RoleStandard})
	assert.True(t, called, "stored role wins over the token claim")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, called = serveAdmin(lookup, &Claims{Email: "a@b.com", Role: core.RoleAdmin})
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Forbidden: Admin access required")

	rec, called = serveAdmin(lookup, &Claims{Email: "ghost@b.com"})
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, called = serveAdmin(lookup, nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, 3, lookup.calls)
}

func TestRequireAdmin_LookupFailure(t *testing.T) {
	lookup := &stubLookup{err: errors.New("connection reset")}

	rec, called := serveAdmin(lookup, &Claims{Email: "admin@music.dev"})
	require.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
