// AngelaMos | 2026
// role.go

package core

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts the canonical names as well as the legacy values written
// by the previous storage layer, where "1" marked an administrator.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "1":
		return RoleAdmin, nil
	case "standard", "user", "0", "":
		return RoleStandard, nil
	default:
		return "", fmt.Errorf("parse role %q: %w", s, ErrInvalidInput)
	}
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleAdmin
}

func (r *Role) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		raw = ""
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}

	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) Value() (driver.Value, error) {
	if r == "" {
		return string(RoleStandard), nil
	}
	if !r.Valid() {
		return nil, fmt.Errorf("store role %q: %w", string(r), ErrInvalidInput)
	}
	return string(r), nil
}
