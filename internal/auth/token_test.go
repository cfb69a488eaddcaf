// AngelaMos | 2026
// token_test.go

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/config"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:   testSecret,
		Expire:   168 * time.Hour,
		Issuer:   "music-api",
		Audience: "music-web",
	}
}

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	return m
}

func TestNewTokenManager_Rejects(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	_, err := NewTokenManager(cfg)
	assert.Error(t, err)

	cfg = testJWTConfig()
	cfg.Expire = 0
	_, err = NewTokenManager(cfg)
	assert.Error(t, err)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := newTestTokenManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token, expiresAt, err := m.Issue(TokenClaims{
		UserID: "7c7e0f52-6d0e-4b43-9a0f-3f1f0d3f2b11",
		Email:  "a@b.com",
		Role:   core.RoleStandard,
	})
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiresAt)

	claims, err := m.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "7c7e0f52-6d0e-4b43-9a0f-3f1f0d3f2b11", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, core.RoleStandard, claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestTokenManager_Expired(t *testing.T) {
	m := newTestTokenManager(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, _, err := m.Issue(TokenClaims{
		UserID: "u1",
		Email:  "a@b.com",
		Role:   core.RoleAdmin,
	})
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(8 * 24 * time.Hour) }

	_, err = m.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenManager_ForeignSignature(t *testing.T) {
	m := newTestTokenManager(t)

	cfg := testJWTConfig()
	cfg.Secret = strings.Repeat("x", 32)
	other, err := NewTokenManager(cfg)
	require.NoError(t, err)

	token, _, err := other.Issue(TokenClaims{
		UserID: "u1",
		Email:  "a@b.com",
		Role:   core.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = m.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenSignature)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenManager_TamperedPayload(t *testing.T) {
	m := newTestTokenManager(t)

	standard, _, err := m.Issue(TokenClaims{
		UserID: "u1",
		Email:  "a@b.com",
		Role:   core.RoleStandard,
	})
	require.NoError(t, err)
	admin, _, err := m.Issue(TokenClaims{
		UserID: "u2",
		Email:  "root@b.com",
		Role:   core.RoleAdmin,
	})
	require.NoError(t, err)

	s := strings.Split(standard, ".")
	a := strings.Split(admin, ".")
	require.Len(t, s, 3)
	require.Len(t, a, 3)

	forged := strings.Join([]string{s[0], a[1], s[2]}, ".")

	_, err = m.VerifyToken(context.Background(), forged)
	assert.ErrorIs(t, err, core.ErrTokenSignature)
}

func TestTokenManager_Malformed(t *testing.T) {
	m := newTestTokenManager(t)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.VerifyToken(context.Background(), raw)
		assert.ErrorIs(t, err, core.ErrTokenMalformed, raw)
	}
}

func TestTokenManager_MissingClaims(t *testing.T) {
	m := newTestTokenManager(t)
	now := time.Now()

	tok, err := jwt.NewBuilder().
		Issuer("music-api").
		Audience([]string{"music-web"}).
		Subject("u1").
		IssuedAt(now).
		Expiration(now.Add(time.Hour)).
		Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), []byte(testSecret)))
	require.NoError(t, err)

	_, err = m.VerifyToken(context.Background(), string(signed))
	assert.ErrorIs(t, err, core.ErrTokenMalformed)
}

func TestTokenManager_WrongAudience(t *testing.T) {
	m := newTestTokenManager(t)

	cfg := testJWTConfig()
	cfg.Audience = "someone-else"
	other, err := NewTokenManager(cfg)
	require.NoError(t, err)

	token, _, err := other.Issue(TokenClaims{
		UserID: "u1",
		Email:  "a@b.com",
		Role:   core.RoleStandard,
	})
	require.NoError(t, err)

	_, err = m.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
	assert.NotErrorIs(t, err, core.ErrTokenExpired)
}
