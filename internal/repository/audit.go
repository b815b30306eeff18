package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ufosc/minihack-registration/internal/model"
)

// AuditRepository appends events to the ClickHouse audit_log table.
// Rows are never mutated or deleted by this service.
type AuditRepository interface {
	InsertEvent(ctx context.Context, ev model.AuditEvent) error
}

type auditRepository struct {
	ch *sqlx.DB // ClickHouse connection
}

func NewAuditRepository(ch *sqlx.DB) AuditRepository {
	return &auditRepository{ch: ch}
}

func (r *auditRepository) InsertEvent(ctx context.Context, ev model.AuditEvent) error {
	const q = `
		INSERT INTO audit_log (action, table_name, ip_address, user_agent, details, ts)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.ch.ExecContext(ctx, q,
		ev.Action.String(), ev.TableName, ev.IPAddress, ev.UserAgent, ev.Details, ev.Timestamp,
	)
	return err
}
