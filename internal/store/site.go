// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"siteforge/internal/models"
)

// siteColumns is the canonical select list scanned by scanSite.
const siteColumns = `
	id, tenant_id, name, subdomain, custom_domain, styles, navigation,
	head_code, body_code, is_template, template_category,
	template_description, thumbnail_url, banned, created_at, updated_at`

// SiteStore handles all site-related database operations.
type SiteStore struct {
	db *sql.DB
}

// NewSiteStore creates a new SiteStore with the given database connection.
func NewSiteStore(db *sql.DB) *SiteStore {
	return &SiteStore{db: db}
}

// Create inserts a new site and returns it with generated fields. A
// duplicate subdomain or custom domain surfaces as a ConflictError.
func (s *SiteStore) Create(site *models.Site) (*models.Site, error) {
	styles, navigation, err := encodeSiteJSON(site)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO sites (tenant_id, name, subdomain, custom_domain, styles, navigation,
		                   head_code, body_code, is_template, template_category,
		                   template_description, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING`+siteColumns,
		site.TenantID, site.Name, site.Subdomain, site.CustomDomain, styles, navigation,
		site.HeadCode, site.BodyCode, site.IsTemplate, site.TemplateCategory,
		site.TemplateDescription, site.ThumbnailURL,
	)
	created, err := scanSite(row)
	if err != nil {
		return nil, conflictOr(err, "create site")
	}
	return created, nil
}

// FindByID retrieves a site by its UUID. Returns nil if not found.
func (s *SiteStore) FindByID(id uuid.UUID) (*models.Site, error) {
	row := s.db.QueryRow(`SELECT`+siteColumns+` FROM sites WHERE id = $1`, id)
	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site by id: %w", err)
	}
	return site, nil
}

// FindBySubdomain retrieves a site by its platform subdomain. The input
// must already be normalized to lowercase. Returns nil if not found.
func (s *SiteStore) FindBySubdomain(subdomain string) (*models.Site, error) {
	row := s.db.QueryRow(`SELECT`+siteColumns+` FROM sites WHERE subdomain = $1`, subdomain)
	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site by subdomain: %w", err)
	}
	return site, nil
}

// FindByCustomDomain retrieves a site by its normalized custom domain.
// Returns nil if not found.
func (s *SiteStore) FindByCustomDomain(domain string) (*models.Site, error) {
	row := s.db.QueryRow(`SELECT`+siteColumns+` FROM sites WHERE custom_domain = $1`, domain)
	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find site by custom domain: %w", err)
	}
	return site, nil
}

// ListByTenant returns every site owned by a tenant, newest first.
func (s *SiteStore) ListByTenant(tenantID uuid.UUID) ([]models.Site, error) {
	rows, err := s.db.Query(`
		SELECT`+siteColumns+` FROM sites
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sites by tenant: %w", err)
	}
	return collectSites(rows)
}

// ListTemplates returns every site flagged as a template, for the
// "start from a template" gallery.
func (s *SiteStore) ListTemplates() ([]models.Site, error) {
	rows, err := s.db.Query(`
		SELECT` + siteColumns + ` FROM sites
		WHERE is_template = TRUE
		ORDER BY template_category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list template sites: %w", err)
	}
	return collectSites(rows)
}

// Update modifies a site's settings. Domain conflicts surface as
// ConflictError.
func (s *SiteStore) Update(site *models.Site) error {
	styles, navigation, err := encodeSiteJSON(site)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE sites SET
			name = $1, custom_domain = $2, styles = $3, navigation = $4,
			head_code = $5, body_code = $6, is_template = $7,
			template_category = $8, template_description = $9,
			thumbnail_url = $10, banned = $11, updated_at = NOW()
		WHERE id = $12
	`, site.Name, site.CustomDomain, styles, navigation,
		site.HeadCode, site.BodyCode, site.IsTemplate,
		site.TemplateCategory, site.TemplateDescription,
		site.ThumbnailURL, site.Banned, site.ID,
	)
	if err != nil {
		return conflictOr(err, "update site")
	}
	return nil
}

// Delete removes a site; its pages cascade at the database level.
func (s *SiteStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete site: %w", err)
	}
	return nil
}

// encodeSiteJSON marshals the JSON-typed site columns.
func encodeSiteJSON(site *models.Site) (styles, navigation []byte, err error) {
	styles, err = json.Marshal(site.Styles)
	if err != nil {
		return nil, nil, fmt.Errorf("encode site styles: %w", err)
	}
	nav := site.Navigation
	if nav == nil {
		nav = []models.NavLink{}
	}
	navigation, err = json.Marshal(nav)
	if err != nil {
		return nil, nil, fmt.Errorf("encode site navigation: %w", err)
	}
	return styles, navigation, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSite reads one site row including its JSON columns.
func scanSite(row rowScanner) (*models.Site, error) {
	site := &models.Site{}
	var styles, navigation []byte
	err := row.Scan(
		&site.ID, &site.TenantID, &site.Name, &site.Subdomain, &site.CustomDomain,
		&styles, &navigation, &site.HeadCode, &site.BodyCode, &site.IsTemplate,
		&site.TemplateCategory, &site.TemplateDescription, &site.ThumbnailURL,
		&site.Banned, &site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(styles) > 0 {
		if err := json.Unmarshal(styles, &site.Styles); err != nil {
			return nil, fmt.Errorf("decode site styles: %w", err)
		}
	}
	if len(navigation) > 0 {
		if err := json.Unmarshal(navigation, &site.Navigation); err != nil {
			return nil, fmt.Errorf("decode site navigation: %w", err)
		}
	}
	return site, nil
}

// collectSites drains a multi-row result set.
func collectSites(rows *sql.Rows) ([]models.Site, error) {
	defer rows.Close()
	var sites []models.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}
