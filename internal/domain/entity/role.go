// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"strings"
)

// Role represents the authorization tier of a user.
type Role string

const (
	// RoleAdmin is granted to the first account ever registered.
	RoleAdmin Role = "ADMIN"
	// RoleManager is assigned explicitly by an authorized principal.
	RoleManager Role = "MANAGER"
	// RoleAuthenticated is reached through email verification.
	RoleAuthenticated Role = "AUTHENTICATED"
	// RoleAnonymous is the starting role of every later registration.
	RoleAnonymous Role = "ANONYMOUS"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleAuthenticated, RoleAnonymous:
		return true
	default:
		return false
	}
}

// ParseRole converts a case-insensitive role name, reporting whether it is known.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		if role, ok := ParseRole(s); ok {
			result = append(result, role)
		}
	}

	return result
}
