package employee

import (
	"time"

	"lms/internal/domain/auth"
)

// Employee is a provisioned account. Identity fields are immutable once
// created; employees are never deleted.
type Employee struct {
	ID             string    `json:"id"`
	EmployeeNumber string    `json:"employeeNumber"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           auth.Role `json:"role"`
	DateOfJoining  time.Time `json:"dateOfJoining"`
	IsPermanent    bool      `json:"isPermanent"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewEmployee is the provisioning payload; Password is hashed before it
// reaches the store.
type NewEmployee struct {
	EmployeeNumber string
	Name           string
	Email          string
	Password       string
	Role           auth.Role
	DateOfJoining  time.Time
	IsPermanent    bool
}
