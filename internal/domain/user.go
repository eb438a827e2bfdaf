package domain

import "time"

// UserRole distinguishes family members from authority accounts.
type UserRole string

const (
	RoleFamily    UserRole = "family"
	RoleAuthority UserRole = "authority"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r UserRole) bool {
	return r == RoleFamily || r == RoleAuthority
}

// User is a registered account. Family accounts are verified at creation;
// authority accounts stay unverified until another authority approves them.
// Token mirrors the last issued session token and serves only as a
// revocation hint, never as the source of truth for authentication.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         UserRole
	Verified     bool
	Organization *string
	Position     *string
	Details      *string
	Token        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
