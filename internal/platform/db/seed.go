package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"reviewhub/internal/domain/auth"
	"reviewhub/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	orgID, err := ensureOrganization(ctx, pool, cfg.SeedOrgName)
	if err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, orgID, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureOrganization(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO organizations (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, orgID, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}

	var userID string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE organization_id = $1 AND email = $2", orgID, email).Scan(&userID)
	if err == nil {
		return nil
	}

	var employeeID string
	err = pool.QueryRow(ctx, `
    INSERT INTO employees (organization_id, full_name, department, email)
    VALUES ($1, 'HR Administrator', 'People Operations', $2)
    RETURNING id
  `, orgID, email).Scan(&employeeID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (organization_id, employee_id, email, password_hash, role, display_name)
    VALUES ($1, $2, $3, $4, $5, 'HR Administrator')
  `, orgID, employeeID, email, hash, auth.RoleHR)
	return err
}
