package auth

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Unknown values are rejected when
// parsed, so a role can never be an arbitrary string past the boundary.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleEmployee Role = "Employee"
)

// ParseRole matches case-insensitively.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "admin":
		return RoleAdmin, nil
	case "employee":
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// Identity is the verified caller attached to a request context. The engine
// trusts it as given; capability checks happen in the HTTP layer.
type Identity struct {
	EmployeeID string
	Name       string
	Role       Role
}
