package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nattapongw/calendar-api/internal/model"
)

func (r *auditRepository) Create(ctx context.Context, log *model.AuditLog) error {
	query := `
        INSERT INTO audit_logs (id, actor, action, entity, payload, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			log.ID,
			log.Actor,
			log.Action,
			log.Entity,
			log.Payload,
			log.CreatedAt,
		)
		return err
	})
}

func (r *auditRepository) List(ctx context.Context, action string, limit int) ([]*model.AuditLog, error) {
	query := `
        SELECT id, actor, action, entity, payload, created_at
        FROM audit_logs
    `
	var args []interface{}

	if action != "" {
		query += fmt.Sprintf(" WHERE action = $%d", len(args)+1)
		args = append(args, action)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	var logs []*model.AuditLog
	if err := r.GetDB().SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return logs, nil
}

func (r *auditRepository) ListRecentUsers(ctx context.Context, limit int) ([]*model.RecentUser, error) {
	query := `
        SELECT actor, created_at
        FROM audit_logs
        WHERE action = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	var users []*model.RecentUser
	if err := r.GetDB().SelectContext(ctx, &users, query, model.AuditActionAutoRegister, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}

	return users, nil
}

func (r *auditRepository) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	query := `
        DELETE FROM audit_logs
        WHERE created_at < $1
    `

	result, err := r.GetDB().ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup audit logs: %w", err)
	}

	return result.RowsAffected()
}
