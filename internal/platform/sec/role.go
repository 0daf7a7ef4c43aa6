// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// UserRole is a role marker stored on a user record and copied into tokens.
type UserRole string

const (
	// Full access, including other administrators
	RoleSuperAdmin UserRole = "ROLE_SUPERADMIN"

	// Can read the privileged projection of every collection
	RoleAdmin UserRole = "ROLE_ADMIN"

	// Default role for registered users
	RoleUser UserRole = "ROLE_USER"
)

// adminMarker is the substring that grants administrative privilege.
const adminMarker = "ADMIN"

// # Role Hierarchy

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleSuperAdmin:
		return 30
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Role Sets

// IsAdmin reports whether any role contains the administrative marker.
func IsAdmin(roles []string) bool {
	for _, role := range roles {
		if strings.Contains(role, adminMarker) {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the roles include [RoleSuperAdmin].
func IsSuperAdmin(roles []string) bool {
	for _, role := range roles {
		if UserRole(role) == RoleSuperAdmin {
			return true
		}
	}
	return false
}

// Highest returns the strongest known role in the set, or "" when none is known.
func Highest(roles []string) UserRole {
	var best UserRole
	for _, role := range roles {
		candidate := UserRole(role)
		if candidate.level() > best.level() {
			best = candidate
		}
	}
	return best
}
