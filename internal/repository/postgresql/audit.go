package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Record(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("encode audit changes: %w", err)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO audit_entries (
			id, company_id, entity_name, record_id, action, actor_id, reason, changes, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW()
		)
	`

	_, err = q.Exec(ctx, query,
		entry.ID, entry.CompanyID, entry.EntityName, entry.RecordID, entry.Action, entry.ActorID, entry.Reason, changes,
	)
	return err
}

func (r *auditRepositoryImpl) ListByRecord(ctx context.Context, companyID, entityName, recordID string) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, entity_name, record_id, action, actor_id, reason, changes, created_at
		FROM audit_entries
		WHERE company_id = $1 AND entity_name = $2 AND record_id = $3
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, companyID, entityName, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]audit.Entry, 0)
	for rows.Next() {
		var entry audit.Entry
		var changesRaw []byte
		if err := rows.Scan(
			&entry.ID, &entry.CompanyID, &entry.EntityName, &entry.RecordID,
			&entry.Action, &entry.ActorID, &entry.Reason, &changesRaw, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(changesRaw) > 0 {
			if err := json.Unmarshal(changesRaw, &entry.Changes); err != nil {
				return nil, fmt.Errorf("decode audit changes: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
