package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the access level of an identity
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a wire value into a Role
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// UnmarshalText rejects roles outside the enumeration
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is the authenticated user's profile and role as seen by a client
type Identity struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Active      bool      `json:"active"`
}

// Credentials are exchanged for a session on login
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// IdentityPatch holds the profile fields a user may change
type IdentityPatch struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitnil,notblank,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitnil,email,max=255"`
}

// IsEmpty reports whether the patch changes nothing
func (p IdentityPatch) IsEmpty() bool {
	return p.DisplayName == nil && p.Email == nil
}

// AccessPatch holds the access fields an admin may change on another user
type AccessPatch struct {
	Role   *Role `json:"role,omitempty" validate:"omitnil,oneof=admin user"`
	Active *bool `json:"active,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p AccessPatch) IsEmpty() bool {
	return p.Role == nil && p.Active == nil
}
