package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"lms/internal/domain/auth"
	"lms/internal/platform/config"
)

// Seed provisions the initial admin account when the directory is empty.
// Without it there is nobody who can create employees.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		slog.Warn("seed skipped: SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD not set")
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO employees (employee_number, name, email, password_hash, role, date_of_joining, is_permanent)
    VALUES ($1,$2,$3,$4,$5,$6,true)
  `, cfg.SeedAdminNumber, cfg.SeedAdminName, cfg.SeedAdminEmail, hash, auth.RoleAdmin, time.Now().UTC())
	if err != nil {
		return err
	}
	slog.Info("seeded admin account", "employeeNumber", cfg.SeedAdminNumber)
	return nil
}
