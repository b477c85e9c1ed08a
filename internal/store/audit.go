// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/models"
)

// AuditStore appends to and purges the immutable audit log. Entries are
// never updated; the only delete path is the retention purge.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates a new AuditStore with the given database connection.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Insert appends one audit entry.
func (s *AuditStore) Insert(ctx context.Context, entry *models.AuditLogEntry) error {
	details := entry.Details
	if len(details) == 0 {
		details = []byte("{}")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (action, entity_type, entity_id, actor, site_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.Action, entry.EntityType, entry.EntityID, entry.Actor, entry.SiteID, []byte(details))
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListBySite returns a site's audit trail, newest first, capped at limit.
func (s *AuditStore) ListBySite(siteID uuid.UUID, limit int) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, action, entity_type, entity_id, actor, site_id, details, created_at
		FROM audit_log
		WHERE site_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, siteID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		var details []byte
		if err := rows.Scan(
			&e.ID, &e.Action, &e.EntityType, &e.EntityID, &e.Actor,
			&e.SiteID, &details, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Details = details
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Purge deletes entries created before the cutoff and reports how many
// were removed. Invoked by the retention loop with a 90-day window.
func (s *AuditStore) Purge(before time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM audit_log WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("purge audit entries: %w", err)
	}
	return res.RowsAffected()
}
