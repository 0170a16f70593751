package domain

import "strings"

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"

	// RoleUnknown is assigned when the server omits the role field, so callers
	// never have to distinguish "no role" from "unrecognised role".
	RoleUnknown = "unknown"
)

// UserProfile models the authenticated actor as returned by the remote API.
// Role is a free-form string; comparisons are always case-insensitive.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`

	// Extra carries any additional server-supplied profile fields verbatim.
	Extra map[string]any `json:"-"`
}

// HasRole reports whether the profile's role equals role, ignoring case.
func (u *UserProfile) HasRole(role string) bool {
	if u == nil || u.Role == "" {
		return false
	}
	return strings.EqualFold(u.Role, role)
}

// HasAnyRole reports whether any element of roles matches the profile's role,
// ignoring case.
func (u *UserProfile) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}
