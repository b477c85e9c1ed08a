// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/models"
)

// AnalyticsStore persists daily page-view counters per site and path.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore with the given database connection.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// RecordView increments the counter for one site, path and day. The row
// is created on first view and bumped afterwards.
func (s *AnalyticsStore) RecordView(siteID uuid.UUID, path string, day time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO site_analytics (site_id, date, path, views)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT ON CONSTRAINT site_analytics_site_day_key
		DO UPDATE SET views = site_analytics.views + 1
	`, siteID, day.UTC().Truncate(24*time.Hour), path)
	if err != nil {
		return fmt.Errorf("record page view: %w", err)
	}
	return nil
}

// ListBySite returns per-day, per-path view counts for the last N days,
// newest day first.
func (s *AnalyticsStore) ListBySite(siteID uuid.UUID, days int) ([]models.SiteAnalyticsRecord, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(`
		SELECT site_id, date, path, views
		FROM site_analytics
		WHERE site_id = $1 AND date >= $2
		ORDER BY date DESC, views DESC
	`, siteID, since)
	if err != nil {
		return nil, fmt.Errorf("list site analytics: %w", err)
	}
	defer rows.Close()

	var records []models.SiteAnalyticsRecord
	for rows.Next() {
		var r models.SiteAnalyticsRecord
		if err := rows.Scan(&r.SiteID, &r.Date, &r.Path, &r.Views); err != nil {
			return nil, fmt.Errorf("scan analytics record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
