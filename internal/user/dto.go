// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/tuanvi2605/ProjectWebNangCao/internal/core"
)

const (
	msgInvalidUserID = "Invalid or missing User ID"
	msgPhoneString   = "Phone must be a string"
	msgFillAllFields = "Please fill in all fields"
	msgInvalidEmail  = "Invalid email"
	msgUserExists    = "User already exists"
	msgUserCreated   = "User created successfully"
	msgUserUpdated   = "User updated successfully"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"max=100"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"    validate:"max=32"`
	Role     string `json:"role"     validate:"omitempty,oneof=standard admin"`
}

// UpdateUserRequest is a partial update. Nil fields are left as stored.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email_pattern"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"    validate:"omitempty,max=32"`
	Role     *string `json:"role"     validate:"omitempty,oneof=standard admin"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Role      core.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
