// Package diff decides whether a submitted edit actually changes anything.
// Handlers use it as a gate so no-op edits neither hit storage nor produce
// a misleading "updated" message.
package diff

import (
	"slices"

	"github.com/dkolesnikov/tasklist/internal/server/models"
)

// VerifyFunc checks a plaintext password against a stored hash.
type VerifyFunc func(hash, plaintext string) bool

// TaskChanged compares the pre-bind snapshot with the edited task by full
// value equality. Any field difference counts as a change.
func TaskChanged(before, after *models.Task) bool {
	return !before.Equal(after)
}

// UserProfile is the projection of a user edit form that participates in
// change detection. The password travels separately as plaintext.
type UserProfile struct {
	Username string
	Email    string
	Roles    []string
}

// ProfileOf extracts the comparable projection from a user entity.
func ProfileOf(u *models.User) UserProfile {
	return UserProfile{
		Username: u.Username,
		Email:    u.Email,
		Roles:    slices.Clone(u.Roles),
	}
}

// UserChanged compares the original user with the submitted projection.
// When the projection is identical the submitted password decides: an empty
// password or one that still verifies against the original hash means
// nothing changed; a non-matching password is itself the change.
func UserChanged(original *models.User, submitted UserProfile, plaintext string, verify VerifyFunc) bool {
	if !profileEqual(ProfileOf(original), submitted) {
		return true
	}
	if plaintext == "" {
		return false
	}
	return !verify(original.PasswordHash, plaintext)
}

func profileEqual(a, b UserProfile) bool {
	if a.Username != b.Username || a.Email != b.Email {
		return false
	}
	if len(a.Roles) != len(b.Roles) {
		return false
	}
	// order-insensitive: ROLE_ADMIN,ROLE_USER == ROLE_USER,ROLE_ADMIN
	ar := slices.Clone(a.Roles)
	br := slices.Clone(b.Roles)
	slices.Sort(ar)
	slices.Sort(br)
	return slices.Equal(ar, br)
}
