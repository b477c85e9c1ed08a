// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Site is one tenant-owned website, addressed by subdomain or custom domain.
// Subdomain and CustomDomain are each globally unique across all sites,
// enforced by database constraints at write time.
type Site struct {
	ID           uuid.UUID   `json:"id"`
	TenantID     uuid.UUID   `json:"tenant_id"`
	Name         string      `json:"name"`
	Subdomain    string      `json:"subdomain"`
	CustomDomain *string     `json:"custom_domain,omitempty"`
	Styles       StyleConfig `json:"styles"`
	Navigation   []NavLink   `json:"navigation"`

	// Optional raw snippets injected into every rendered page's head and
	// end of body (analytics tags, custom fonts, chat widgets).
	HeadCode *string `json:"head_code,omitempty"`
	BodyCode *string `json:"body_code,omitempty"`

	// Template metadata — sites flagged as templates appear in the
	// "start from a template" gallery instead of being served publicly.
	IsTemplate          bool    `json:"is_template"`
	TemplateCategory    *string `json:"template_category,omitempty"`
	TemplateDescription *string `json:"template_description,omitempty"`
	ThumbnailURL        *string `json:"thumbnail_url,omitempty"`

	// Banned sites resolve but are never served; the public layer shows a
	// suspension notice distinct from not-found.
	Banned bool `json:"banned"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StyleConfig is the per-site style configuration stored as JSON.
// Empty fields fall back to the theme package defaults at render time.
type StyleConfig struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
	AccentColor     string `json:"accent_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
	BorderRadius    string `json:"border_radius,omitempty"`
}

// NavLinkType distinguishes internal page links from external URLs.
type NavLinkType string

const (
	NavLinkPage     NavLinkType = "page"
	NavLinkExternal NavLinkType = "external"
)

// NavLink is one entry in a site's ordered navigation list.
type NavLink struct {
	Label string      `json:"label"`
	Href  string      `json:"href"`
	Type  NavLinkType `json:"type"`
}

// IsExternal reports whether the link points outside the site, so the
// render layer can apply new-tab and no-referrer semantics.
func (n *NavLink) IsExternal() bool {
	return n.Type == NavLinkExternal
}
