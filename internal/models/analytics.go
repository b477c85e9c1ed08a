// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteAnalyticsRecord is a per (site, day, path) view counter, upserted
// with increment semantics by the public render path.
type SiteAnalyticsRecord struct {
	SiteID uuid.UUID `json:"site_id"`
	Date   time.Time `json:"date"`
	Path   string    `json:"path"`
	Views  int64     `json:"views"`
}
