// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package audit records tenant-facing mutations to the append-only audit
// log. Recording is best effort: a failed write is logged and dropped,
// never surfaced to the request that triggered it.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/models"
	"siteforge/internal/store"
)

// writeTimeout bounds each background insert so a stuck database does not
// pile up goroutines.
const writeTimeout = 5 * time.Second

// Recorder writes audit entries asynchronously.
type Recorder struct {
	store *store.AuditStore
}

// NewRecorder creates a Recorder over the given audit store.
func NewRecorder(s *store.AuditStore) *Recorder {
	return &Recorder{store: s}
}

// Record appends one audit entry in the background. details may be nil.
// The write detaches from the request context so an aborted request still
// leaves its trail.
func (r *Recorder) Record(action models.AuditAction, entityType, entityID, actor string, siteID *uuid.UUID, details any) {
	if r == nil || r.store == nil {
		return
	}

	var raw json.RawMessage
	if details != nil {
		encoded, err := json.Marshal(details)
		if err != nil {
			slog.Warn("audit details not serializable, dropping details",
				"action", action, "entity_type", entityType, "error", err)
		} else {
			raw = encoded
		}
	}

	entry := &models.AuditLogEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		SiteID:     siteID,
		Details:    raw,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := r.store.Insert(ctx, entry); err != nil {
			slog.Warn("audit entry dropped",
				"action", action,
				"entity_type", entityType,
				"entity_id", entityID,
				"error", err,
			)
		}
	}()
}

// PurgeLoop deletes entries older than retention every interval until the
// context is cancelled. Run from main as a background goroutine.
func (r *Recorder) PurgeLoop(ctx context.Context, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := r.store.Purge(time.Now().Add(-retention))
			if err != nil {
				slog.Error("audit purge failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("audit entries purged", "removed", removed, "retention", retention)
			}
		}
	}
}
