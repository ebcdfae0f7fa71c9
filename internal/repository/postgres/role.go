package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nattapongw/calendar-api/internal/model"
)

func (r *roleRepository) Get(ctx context.Context, userID string) (*model.UserRole, error) {
	query := `
		SELECT user_id, role, display_name, updated_at
		FROM roles
		WHERE user_id = $1
	`
	var role model.UserRole
	err := r.db.GetContext(ctx, &role, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return &role, nil
}

func (r *roleRepository) Upsert(ctx context.Context, role *model.UserRole) error {
	query := `
		INSERT INTO roles (user_id, role, display_name, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			role = EXCLUDED.role,
			display_name = EXCLUDED.display_name,
			updated_at = EXCLUDED.updated_at
	`
	role.UpdatedAt = time.Now()

	if _, err := r.db.ExecContext(ctx, query,
		role.UserID,
		role.Role,
		role.DisplayName,
		role.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert role: %w", err)
	}
	return nil
}

func (r *roleRepository) List(ctx context.Context) ([]*model.UserRole, error) {
	query := `
		SELECT user_id, role, display_name, updated_at
		FROM roles
		ORDER BY updated_at DESC
	`
	var roles []*model.UserRole
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (r *roleRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.UserRole, error) {
	query := `
		SELECT user_id, role, display_name, updated_at
		FROM roles
		WHERE role = $1
	`
	var roles []*model.UserRole
	if err := r.db.SelectContext(ctx, &roles, query, role); err != nil {
		return nil, fmt.Errorf("failed to list roles by role: %w", err)
	}
	return roles, nil
}
