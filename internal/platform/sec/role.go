// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"github.com/taibuivan/taskboard/internal/platform/constants"
	"github.com/taibuivan/taskboard/pkg/convert"
)

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Can manage every account and see every task
	RoleAdmin UserRole = "ADMIN"

	// Default role for registered users
	RoleUser UserRole = "USER"
)

// ParseRole converts a role name into a [UserRole], ignoring case and padding.
func ParseRole(name string) (UserRole, bool) {
	role := UserRole(convert.ToUpperTrim(name))
	return role, role.Valid()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// String implements [fmt.Stringer].
func (r UserRole) String() string {
	return string(r)
}

// Authority returns the authority string granted by this role (ROLE_ADMIN).
func (r UserRole) Authority() string {
	return constants.AuthorityPrefix + string(r)
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() > 0 && r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
