// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/auth"
	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

type Service struct {
	repo      Repository
	validator *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: core.NewValidator(),
	}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, normalizeEmail(email))
}

// Create stores a self-registered account, which always starts as standard.
func (s *Service) Create(
	ctx context.Context,
	email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         core.RoleStandard,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// RoleByEmail returns the stored role, which is authoritative over whatever
// role a token claims.
func (s *Service) RoleByEmail(ctx context.Context, email string) (core.Role, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}
	if req.Password != nil {
		if err := auth.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != "" {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}

	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if req.Role != nil && *req.Role != "" {
		role, err := core.ParseRole(*req.Role)
		if err != nil {
			return nil, core.ValidationError("Invalid role")
		}
		user.Role = role
	}

	if req.Password != nil {
		hash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateUser is the admin path for adding an account with an explicit role.
func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" ||
		req.Phone == "" {
		return nil, core.ValidationError(msgFillAllFields)
	}
	if err := s.validator.Var(req.Email, "email_pattern"); err != nil {
		return nil, core.ValidationError(msgInvalidEmail)
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, core.ValidationError(core.FormatValidationError(err))
	}

	role := core.RoleStandard
	if req.Role != "" {
		parsed, err := core.ParseRole(req.Role)
		if err != nil {
			return nil, core.ValidationError("Invalid role")
		}
		role = parsed
	}

	return s.create(ctx, req.Email, req.Password, req.Username, req.Phone, role)
}

// EnsureAdmin creates the bootstrap administrator when no account uses
// email yet. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	exists, err := s.repo.ExistsByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := s.create(ctx, email, password, "admin", "", core.RoleAdmin); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return false, nil
		}
		return false, err
	}

	slog.InfoContext(ctx, "bootstrap admin created", "email", normalizeEmail(email))
	return true, nil
}

func (s *Service) create(
	ctx context.Context,
	email, password, username, phone string,
	role core.Role,
) (*User, error) {
	hash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Username:     strings.TrimSpace(username),
		Phone:        strings.TrimSpace(phone),
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != ownerID {
		return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

var _ auth.UserProvider = (*Service)(nil)
