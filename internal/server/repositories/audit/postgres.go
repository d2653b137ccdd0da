package audit

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactdesk/internal/dbx"
	"github.com/dmitrijs2005/contactdesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository accepts any DBTX so the contacts repository can
// record entries inside its own transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, entries []models.AuditEntry) error {
	query :=
		`INSERT INTO contact_audit (id, contact_id, field_name, old_value, new_value, changed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	for _, e := range entries {
		if _, err := r.db.ExecContext(ctx, query,
			e.ID, e.ContactID, e.FieldName, e.OldValue, e.NewValue, e.ChangedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListByContact(ctx context.Context, contactID string) ([]models.AuditEntry, error) {
	query :=
		`SELECT id, contact_id, field_name, old_value, new_value, changed_at FROM contact_audit
		 WHERE contact_id = $1
		 ORDER BY changed_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ContactID, &e.FieldName, &e.OldValue, &e.NewValue, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}
