// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	PasswordHash string
	Role         core.Role
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email, passwordHash string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	users     UserProvider
	tokens    *TokenManager
	validator *validator.Validate
}

func NewService(users UserProvider, tokens *TokenManager) *Service {
	return &Service{
		users:     users,
		tokens:    tokens,
		validator: core.NewValidator(),
	}
}

// SignUp registers a standard account. No token is issued; the client signs
// in as a separate step.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) error {
	if err := req.Validate(s.validator); err != nil {
		return err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.users.Create(ctx, req.Email, passwordHash); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// SignIn never reveals whether the email or the password was wrong.
func (s *Service) SignIn(
	ctx context.Context,
	req SignInRequest,
) (*SignInResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalizes timing with the wrong-password path
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if core.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, req.Password)
	}

	token, expiresAt, err := s.tokens.Issue(TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &SignInResponse{
		Success:   true,
		Message:   msgLoginSuccessful,
		Token:     token,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) rehash(ctx context.Context, userID, password string) {
	newHash, err := core.HashPassword(password)
	if err == nil {
		err = s.users.UpdatePassword(ctx, userID, newHash)
	}
	if err != nil {
		slog.WarnContext(ctx, "password rehash failed",
			"user_id", userID,
			"error", err,
		)
	}
}
