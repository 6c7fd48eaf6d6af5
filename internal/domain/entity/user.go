package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ToIdentity converts User to the client-facing Identity
func (u *User) ToIdentity() *Identity {
	return &Identity{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		Active:      u.IsActive,
	}
}

// Apply copies the set fields of patch onto the user
func (u *User) Apply(patch IdentityPatch) {
	if patch.DisplayName != nil {
		u.DisplayName = *patch.DisplayName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
}

// ApplyAccess copies the set fields of patch onto the user
func (u *User) ApplyAccess(patch AccessPatch) {
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Active != nil {
		u.IsActive = *patch.Active
	}
}
