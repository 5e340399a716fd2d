package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lms/internal/domain/auth"
	"lms/internal/platform/querier"
)

var (
	ErrNotFound  = errors.New("employee not found")
	ErrDuplicate = errors.New("employee with the same number or email already exists")
)

type Service struct {
	DB querier.Querier
}

func NewService(db querier.Querier) *Service {
	return &Service{DB: db}
}

// Create provisions an employee. The employee number and email must both be
// unique across the directory.
func (s *Service) Create(ctx context.Context, payload NewEmployee) (string, error) {
	var taken bool
	if err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM employees WHERE employee_number = $1 OR email = $2)
  `, payload.EmployeeNumber, payload.Email).Scan(&taken); err != nil {
		return "", err
	}
	if taken {
		return "", ErrDuplicate
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, name, email, password_hash, role, date_of_joining, is_permanent)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, payload.EmployeeNumber, payload.Name, payload.Email, hash, payload.Role, payload.DateOfJoining, payload.IsPermanent).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Credentials is what the login flow needs to verify a caller.
type Credentials struct {
	ID           string
	Name         string
	Role         auth.Role
	PasswordHash string
}

// FindByNumber resolves login credentials by employee number.
func (s *Service) FindByNumber(ctx context.Context, employeeNumber string) (Credentials, error) {
	var creds Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, role, password_hash
    FROM employees
    WHERE employee_number = $1
  `, employeeNumber).Scan(&creds.ID, &creds.Name, &creds.Role, &creds.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// GetByID fetches one employee.
func (s *Service) GetByID(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_number, name, email, role, date_of_joining, is_permanent, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.EmployeeNumber, &emp.Name, &emp.Email, &emp.Role, &emp.DateOfJoining, &emp.IsPermanent, &emp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

// List returns the directory ordered by employee number.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_number, name, email, role, date_of_joining, is_permanent, created_at
    FROM employees
    ORDER BY employee_number
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.EmployeeNumber, &emp.Name, &emp.Email, &emp.Role, &emp.DateOfJoining, &emp.IsPermanent, &emp.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
