package models

import (
	"slices"
	"time"
)

// Role labels. Every account carries at least RoleUser.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is an account managed through the admin screens. PasswordHash holds
// the bcrypt hash; plaintext never reaches the model.
type User struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string
	PasswordHash string
	Email        string
	Roles        []string
}

// NewUser returns an unsaved user with the default role and equal creation
// and update timestamps.
func NewUser(username, email string) *User {
	now := time.Now().UTC()
	return &User{
		CreatedAt: now,
		UpdatedAt: now,
		Username:  username,
		Email:     email,
		Roles:     []string{RoleUser},
	}
}

// SetUpdatedAt moves the update timestamp. For users an update at exactly
// the creation instant is fine; only strictly earlier values are rejected.
// (Task keeps its own setter; the two invariants are intentionally not
// unified.)
func (u *User) SetUpdatedAt(ts time.Time) error {
	if ts.Before(u.CreatedAt) {
		return ErrInvalidOrdering
	}
	u.UpdatedAt = ts
	return nil
}

// SetRoles replaces the role set, keeping it non-empty: an empty input
// falls back to the default role.
func (u *User) SetRoles(roles []string) {
	if len(roles) == 0 {
		u.Roles = []string{RoleUser}
		return
	}
	u.Roles = slices.Clone(roles)
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// Ref returns the minimal reference embedded into tasks.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Username: u.Username}
}

// Clone returns a deep copy for change-detection snapshots.
func (u *User) Clone() *User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	return &c
}
