// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/contenthash"
	"siteforge/internal/models"
)

// pageColumns is the canonical select list scanned by scanPage.
const pageColumns = `
	id, site_id, name, slug, draft_content, published_content,
	last_published_at, seo_title, seo_description, seo_keywords, seo_image,
	is_home_page, created_at, updated_at`

// PageStore owns the two-copy content model: the editor writes
// draft_content, and published_content is only ever written by
// PublishSite's transaction.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// Create inserts a new page. A duplicate slug within the site surfaces as
// a ConflictError.
func (s *PageStore) Create(page *models.Page) (*models.Page, error) {
	// A page created without content has a SQL NULL draft, which the
	// publish transaction skips until the first editor save.
	var draft []byte
	if page.DraftContent != nil {
		var err error
		draft, err = encodeContent(page.DraftContent)
		if err != nil {
			return nil, err
		}
	}

	row := s.db.QueryRow(`
		INSERT INTO pages (site_id, name, slug, draft_content, seo_title,
		                   seo_description, seo_keywords, seo_image, is_home_page)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING`+pageColumns,
		page.SiteID, page.Name, page.Slug, draft, page.SEOTitle,
		page.SEODescription, page.SEOKeywords, page.SEOImage, page.IsHomePage,
	)
	created, err := scanPage(row)
	if err != nil {
		return nil, conflictOr(err, "create page")
	}
	return created, nil
}

// FindByID retrieves a page by its UUID. Returns nil if not found.
func (s *PageStore) FindByID(id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRow(`SELECT`+pageColumns+` FROM pages WHERE id = $1`, id)
	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return page, nil
}

// FindBySlug retrieves a page by exact slug within a site. Returns nil if
// not found; there is no fuzzy or prefix matching.
func (s *PageStore) FindBySlug(siteID uuid.UUID, slug string) (*models.Page, error) {
	row := s.db.QueryRow(`SELECT`+pageColumns+` FROM pages WHERE site_id = $1 AND slug = $2`, siteID, slug)
	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return page, nil
}

// ListBySite returns a site's pages in creation order ascending, the order
// home-page resolution breaks ties in.
func (s *PageStore) ListBySite(siteID uuid.UUID) ([]models.Page, error) {
	rows, err := s.db.Query(`
		SELECT`+pageColumns+` FROM pages
		WHERE site_id = $1
		ORDER BY created_at ASC
	`, siteID)
	if err != nil {
		return nil, fmt.Errorf("list pages by site: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *page)
	}
	return pages, rows.Err()
}

// SaveDraft overwrites one page's draft content and bumps updated_at.
// No validation happens here beyond structural shape; published content is
// untouched. Saving identical content is a no-op in effect.
func (s *PageStore) SaveDraft(pageID uuid.UUID, content models.Blocks) error {
	if content == nil {
		content = models.Blocks{}
	}
	draft, err := encodeContent(content)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		UPDATE pages SET draft_content = $1, updated_at = NOW()
		WHERE id = $2
	`, draft, pageID)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// UpdateMeta modifies a page's name, slug, SEO fields, and home flag.
// Slug conflicts surface as ConflictError.
func (s *PageStore) UpdateMeta(page *models.Page) error {
	_, err := s.db.Exec(`
		UPDATE pages SET
			name = $1, slug = $2, seo_title = $3, seo_description = $4,
			seo_keywords = $5, seo_image = $6, is_home_page = $7, updated_at = NOW()
		WHERE id = $8
	`, page.Name, page.Slug, page.SEOTitle, page.SEODescription,
		page.SEOKeywords, page.SEOImage, page.IsHomePage, page.ID,
	)
	if err != nil {
		return conflictOr(err, "update page")
	}
	return nil
}

// Delete removes a page by ID. Only the draft/published content of this
// page is affected; the site and sibling pages are untouched.
func (s *PageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// PublishResult is the structured outcome of a site publish. Failure is
// reported here rather than through the error chain so callers treat
// Success as the primary signal.
type PublishResult struct {
	Success        bool       `json:"success"`
	PagesPublished int        `json:"pages_published"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// PublishSite copies draft content to published content for every page of
// the site in one all-or-nothing transaction. Pages that have never had a
// draft saved are skipped without aborting the transaction. Either every
// page's published content advances, or none do.
func (s *PageStore) PublishSite(ctx context.Context, siteID uuid.UUID) PublishResult {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return publishFailure(siteID, "begin publish transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE pages SET
			published_content = draft_content,
			last_published_at = $1,
			updated_at = $1
		WHERE site_id = $2 AND draft_content IS NOT NULL
	`, now, siteID)
	if err != nil {
		return publishFailure(siteID, "publish pages", err)
	}

	published, err := res.RowsAffected()
	if err != nil {
		return publishFailure(siteID, "publish rows affected", err)
	}

	if err := tx.Commit(); err != nil {
		return publishFailure(siteID, "commit publish transaction", err)
	}

	return PublishResult{
		Success:        true,
		PagesPublished: int(published),
		PublishedAt:    &now,
	}
}

// publishFailure logs the rolled-back publish and builds the structured
// failure result. No partial state survives — the deferred rollback
// discards everything the transaction touched.
func publishFailure(siteID uuid.UUID, context string, err error) PublishResult {
	slog.Error("site publish failed, rolled back",
		"site_id", siteID,
		"stage", context,
		"error", err,
	)
	return PublishResult{
		Success: false,
		Error:   fmt.Sprintf("%s: %v", context, err),
	}
}

// HasUnpublishedChanges reports whether a page's draft differs from its
// published snapshot. Comparison uses the canonical content hash, so field
// ordering inside block data never produces a false positive. A page that
// has neither draft nor published content reports false.
func (s *PageStore) HasUnpublishedChanges(pageID uuid.UUID) (bool, error) {
	page, err := s.FindByID(pageID)
	if err != nil {
		return false, err
	}
	if page == nil {
		return false, fmt.Errorf("page %s not found", pageID)
	}
	return pageHasChanges(page)
}

// pageHasChanges implements the draft-vs-published comparison on an
// already-loaded page.
func pageHasChanges(page *models.Page) (bool, error) {
	if !page.IsPublished() {
		// Nothing published yet: only a non-empty draft counts as a change.
		return len(page.DraftContent) > 0, nil
	}

	draft := page.DraftContent
	if draft == nil {
		draft = models.Blocks{}
	}
	published := page.PublishedContent
	if published == nil {
		published = models.Blocks{}
	}

	draftHash, err := contenthash.Hash(draft)
	if err != nil {
		return false, fmt.Errorf("hash draft content: %w", err)
	}
	publishedHash, err := contenthash.Hash(published)
	if err != nil {
		return false, fmt.Errorf("hash published content: %w", err)
	}
	return draftHash != publishedHash, nil
}

// encodeContent marshals a block array for a JSONB content column.
func encodeContent(content models.Blocks) ([]byte, error) {
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return encoded, nil
}

// scanPage reads one page row including both content columns. A NULL
// published_content stays nil, marking the page as never published
// together with last_published_at.
func scanPage(row rowScanner) (*models.Page, error) {
	page := &models.Page{}
	var draft, published []byte
	err := row.Scan(
		&page.ID, &page.SiteID, &page.Name, &page.Slug, &draft, &published,
		&page.LastPublishedAt, &page.SEOTitle, &page.SEODescription,
		&page.SEOKeywords, &page.SEOImage, &page.IsHomePage,
		&page.CreatedAt, &page.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		if err := json.Unmarshal(draft, &page.DraftContent); err != nil {
			return nil, fmt.Errorf("decode draft content: %w", err)
		}
		if page.DraftContent == nil {
			page.DraftContent = models.Blocks{}
		}
	}
	if published != nil {
		if err := json.Unmarshal(published, &page.PublishedContent); err != nil {
			return nil, fmt.Errorf("decode published content: %w", err)
		}
		if page.PublishedContent == nil {
			page.PublishedContent = models.Blocks{}
		}
	}
	return page, nil
}
