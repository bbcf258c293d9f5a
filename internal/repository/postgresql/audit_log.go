package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/domain/auditlog"
	"github.com/teamtrack-hq/timetrack-backend-go/internal/pkg/database"
)

type auditLogRepository struct {
	db *database.DB
}

// Create implements auditlog.AuditLogRepository.
func (r *auditLogRepository) Create(ctx context.Context, entry auditlog.Entry) (auditlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry.ID = uuid.New().String()

	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, metadata, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Metadata,
		entry.IPAddress,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return auditlog.Entry{}, fmt.Errorf("failed to create audit log: %w", err)
	}

	return entry, nil
}

// List implements auditlog.AuditLogRepository.
func (r *auditLogRepository) List(ctx context.Context, filter auditlog.Filter) ([]auditlog.Entry, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.EntityType != nil && *filter.EntityType != "" {
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", argIdx))
		args = append(args, *filter.EntityType)
		argIdx++
	}

	query := `
		SELECT id, user_id, action, entity_type, entity_id, metadata, ip_address, created_at
		FROM audit_logs
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []auditlog.Entry
	for rows.Next() {
		var entry auditlog.Entry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType, &entry.EntityID,
			&entry.Metadata, &entry.IPAddress, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}

	return entries, nil
}

func NewAuditLogRepository(db *database.DB) auditlog.AuditLogRepository {
	return &auditLogRepository{db: db}
}
