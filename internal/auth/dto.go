// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

const (
	MinPasswordLength = 6

	msgFillAllFields      = "Please fill in all fields"
	msgInvalidEmail       = "Invalid email"
	msgPasswordMismatch   = "Passwords do not match"
	msgPasswordTooShort   = "Password must be at least 6 characters"
	msgPasswordTooLong    = "Password must be at most 72 characters"
	msgInvalidCredentials = "Invalid email or password"
	msgUserExists         = "User already exists"
	msgUserCreated        = "User created successfully"
	msgLoginSuccessful    = "Login successful"
)

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate reports the first failing rule, checked in a fixed order so
// clients always see the same message for the same input.
func (r SignUpRequest) Validate(v *validator.Validate) error {
	if r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return core.ValidationError(msgFillAllFields)
	}
	if err := v.Var(r.Email, "email_pattern"); err != nil {
		return core.ValidationError(msgInvalidEmail)
	}
	if r.Password != r.ConfirmPassword {
		return core.ValidationError(msgPasswordMismatch)
	}
	return ValidatePassword(r.Password)
}

// ValidatePassword applies the length rules shared by sign-up and the admin
// user endpoints.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return core.ValidationError(msgPasswordTooShort)
	}
	if len(password) > core.MaxPasswordBytes {
		return core.ValidationError(msgPasswordTooLong)
	}
	return nil
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignInRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return core.ValidationError(msgFillAllFields)
	}
	return nil
}

type SignInResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	Role      core.Role `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
