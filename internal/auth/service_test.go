// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*UserInfo
	calls   int
	failGet error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*UserInfo)}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failGet != nil {
		return nil, f.failGet
	}
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	_, ok := f.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (f *fakeUsers) Create(
	_ context.Context,
	email, passwordHash string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	key := strings.ToLower(email)
	if _, ok := f.byEmail[key]; ok {
		return nil, core.ErrDuplicateKey
	}
	u := &UserInfo{
		ID:           uuid.NewString(),
		Email:        key,
		PasswordHash: passwordHash,
		Role:         core.RoleStandard,
	}
	f.byEmail[key] = u
	return u, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeUsers) RoleByEmail(_ context.Context, email string) (core.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return "", core.ErrNotFound
	}
	return u.Role, nil
}

func (f *fakeUsers) storageCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(t *testing.T) (*Service, *fakeUsers) {
	t.Helper()
	users := newFakeUsers()
	return NewService(users, newTestTokenManager(t)), users
}

func TestService_SignUpThenSignIn(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SignUp(ctx, SignUpRequest{
		Email:           "a@b.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, SignInRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, core.RoleStandard, resp.Role)

	claims, err := svc.tokens.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, core.RoleStandard, claims.Role)
}

func TestService_SignUpValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		req  SignUpRequest
		want string
	}{
		{
			name: "missing confirmation",
			req:  SignUpRequest{Email: "bad", Password: "x"},
			want: "Please fill in all fields",
		},
		{
			name: "bad email before mismatch",
			req:  SignUpRequest{Email: "bad", Password: "secret1", ConfirmPassword: "other"},
			want: "Invalid email",
		},
		{
			name: "mismatch before length",
			req:  SignUpRequest{Email: "a@b.com", Password: "abc", ConfirmPassword: "abd"},
			want: "Passwords do not match",
		},
		{
			name: "too short",
			req:  SignUpRequest{Email: "a@b.com", Password: "abc", ConfirmPassword: "abc"},
			want: "Password must be at least 6 characters",
		},
		{
			name: "too long",
			req: SignUpRequest{
				Email:           "a@b.com",
				Password:        strings.Repeat("p", 73),
				ConfirmPassword: strings.Repeat("p", 73),
			},
			want: "Password must be at most 72 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestService(t)

			err := svc.SignUp(context.Background(), tt.req)

			var appErr *core.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.want, appErr.Message)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
			assert.Zero(t, users.storageCalls())
		})
	}
}

func TestService_SignUpDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, SignUpRequest{
		Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1",
	}))

	for _, pw := range []string{"secret1", "another-password"} {
		err := svc.SignUp(ctx, SignUpRequest{
			Email: "A@B.com", Password: pw, ConfirmPassword: pw,
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	}
}

func TestService_SignInInvalidCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, SignUpRequest{
		Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1",
	}))

	_, err := svc.SignIn(ctx, SignInRequest{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, SignInRequest{Email: "nobody@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_SignInMissingFields(t *testing.T) {
	svc, users := newTestService(t)

	_, err := svc.SignIn(context.Background(), SignInRequest{Email: "a@b.com"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Zero(t, users.storageCalls())
}

func TestService_SignInStoreFailure(t *testing.T) {
	svc, users := newTestService(t)
	users.failGet = errors.New("connection reset")

	_, err := svc.SignIn(context.Background(), SignInRequest{
		Email: "a@b.com", Password: "secret1",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 500, core.StatusFor(err))
}
