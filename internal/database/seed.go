package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Seed populates the database with initial development data: one demo
// site with a published home page and an about page with unpublished
// draft edits, plus a starter template for the gallery. It is a no-op
// when any site already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sites").Scan(&count); err != nil {
		return fmt.Errorf("seed check sites: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	styles, _ := json.Marshal(map[string]string{
		"primaryColor":    "#4f46e5",
		"backgroundColor": "#ffffff",
		"fontFamily":      "Inter",
	})
	navigation, _ := json.Marshal([]map[string]string{
		{"label": "Home", "href": "/", "type": "page"},
		{"label": "About", "href": "/about", "type": "page"},
	})

	var siteID string
	err := db.QueryRow(`
		INSERT INTO sites (tenant_id, name, subdomain, styles, navigation)
		VALUES (gen_random_uuid(), 'Demo Bakery', 'demo', $1, $2)
		RETURNING id
	`, styles, navigation).Scan(&siteID)
	if err != nil {
		return fmt.Errorf("seed insert demo site: %w", err)
	}

	homeContent, _ := json.Marshal([]map[string]any{
		{"id": "blk-hero", "type": "hero", "data": map[string]any{
			"title":       "Fresh bread, every morning",
			"subtitle":    "Family bakery in the heart of town since 1987.",
			"buttonLabel": "See our story",
			"buttonHref":  "/about",
		}},
		{"id": "blk-feat", "type": "features", "data": map[string]any{
			"heading": "Why people keep coming back",
			"items": []map[string]any{
				{"title": "Sourdough", "text": "Slow fermented for 24 hours."},
				{"title": "Local flour", "text": "Milled twenty minutes away."},
				{"title": "No shortcuts", "text": "Everything shaped by hand."},
			},
		}},
	})
	aboutDraft, _ := json.Marshal([]map[string]any{
		{"id": "blk-text", "type": "richtext", "data": map[string]any{
			"markdown": "## Our story\n\nWe opened our doors in **1987** with a single oven.",
		}},
	})

	now := time.Now().UTC()
	// Home is published; about exists only as a draft so the development
	// environment exercises both sides of the draft/published split.
	_, err = db.Exec(`
		INSERT INTO pages (site_id, name, slug, draft_content, published_content, last_published_at, is_home_page)
		VALUES ($1, 'Home', 'home', $2, $2, $3, TRUE)
	`, siteID, homeContent, now)
	if err != nil {
		return fmt.Errorf("seed insert home page: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO pages (site_id, name, slug, draft_content)
		VALUES ($1, 'About', 'about', $2)
	`, siteID, aboutDraft)
	if err != nil {
		return fmt.Errorf("seed insert about page: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO sites (tenant_id, name, subdomain, styles, navigation, is_template,
		                   template_category, template_description)
		VALUES (gen_random_uuid(), 'Starter Landing', 'template-starter-landing', $1, $2, TRUE,
		        'Business', 'A one-page landing with hero, features and contact form.')
	`, styles, navigation)
	if err != nil {
		return fmt.Errorf("seed insert starter template: %w", err)
	}

	slog.Info("database seeded with demo site",
		"subdomain", "demo",
		"pages", 2,
	)

	return nil
}
