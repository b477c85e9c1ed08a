// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is one routable document within a Site. Draft and published content
// are held separately: the editor only ever mutates DraftContent, and
// PublishedContent is only ever written by the site-wide publish operation.
// A page with a nil LastPublishedAt has never been published.
type Page struct {
	ID     uuid.UUID `json:"id"`
	SiteID uuid.UUID `json:"site_id"`
	Name   string    `json:"name"`

	// Slug is the URL path segment, unique within the site. The empty
	// slug is valid and participates in home-page resolution.
	Slug string `json:"slug"`

	DraftContent     Blocks     `json:"draft_content"`
	PublishedContent Blocks     `json:"published_content,omitempty"`
	LastPublishedAt  *time.Time `json:"last_published_at,omitempty"`

	// SEO metadata rendered into the page head.
	SEOTitle       *string `json:"seo_title,omitempty"`
	SEODescription *string `json:"seo_description,omitempty"`
	SEOKeywords    *string `json:"seo_keywords,omitempty"`
	SEOImage       *string `json:"seo_image,omitempty"`

	IsHomePage bool `json:"is_home_page"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished reports whether the page has ever been published.
func (p *Page) IsPublished() bool {
	return p.LastPublishedAt != nil
}

// ResolveHomePage selects the page that serves a site's root path.
// Priority: the IsHomePage flag, then slug "home", then the empty slug.
// Pages must be passed in creation order ascending; within a priority tier
// the earliest-created page wins.
func ResolveHomePage(pages []Page) *Page {
	for i := range pages {
		if pages[i].IsHomePage {
			return &pages[i]
		}
	}
	for i := range pages {
		if pages[i].Slug == "home" {
			return &pages[i]
		}
	}
	for i := range pages {
		if pages[i].Slug == "" {
			return &pages[i]
		}
	}
	return nil
}
