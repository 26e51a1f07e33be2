package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Routing and access decisions
// switch on this type; raw role strings never leave this package.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole converts a stored role string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is a member of the closed set
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

func (r Role) String() string {
	return string(r)
}
