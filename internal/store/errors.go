// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds all database access for sites, pages, audit entries,
// and analytics counters. Stores return (nil, nil) for not-found lookups
// and surface unique-constraint violations as ConflictError so handlers
// can distinguish conflicts from other failures.
package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique-constraint hits.
const uniqueViolation = "23505"

// ConflictError reports a duplicate value for a unique field (subdomain,
// custom domain, or per-site slug).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// constraintFields maps unique-constraint names from the schema to the
// caller-facing field names reported on conflict.
var constraintFields = map[string]string{
	"sites_subdomain_key":         "subdomain",
	"sites_custom_domain_key":     "custom_domain",
	"pages_site_id_slug_key":      "slug",
	"site_analytics_site_day_key": "path",
}

// conflictOr translates a unique violation into a ConflictError, or wraps
// the original error with context otherwise.
func conflictOr(err error, context string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		field, ok := constraintFields[pgErr.ConstraintName]
		if !ok {
			field = "value"
		}
		return &ConflictError{Field: field}
	}
	return fmt.Errorf("%s: %w", context, err)
}
