package handlers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"siteforge/internal/blocks"
	"siteforge/internal/models"
	"siteforge/internal/theme"
)

// Validation limits for site and page fields.
const (
	maxNameLen     = 200
	maxSlugLen     = 200
	maxSEOFieldLen = 500
	maxInjectLen   = 20_000
	maxNavLinks    = 50
	maxBlockCount  = 200
)

// validateSiteName checks the site display name.
func validateSiteName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Site name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Site name is too long (max 200 characters)."
	}
	return ""
}

// validateStyles checks the color and font fields an editor can set. Theme
// resolution falls back silently for bad values when rendering; the API
// rejects them up front so editors see the mistake.
func validateStyles(s models.StyleConfig) string {
	colors := map[string]string{
		"primary_color":    s.PrimaryColor,
		"secondary_color":  s.SecondaryColor,
		"accent_color":     s.AccentColor,
		"background_color": s.BackgroundColor,
	}
	for field, v := range colors {
		if v != "" && !theme.ValidHex(v) {
			return "Invalid hex color for " + field + "."
		}
	}
	if s.FontFamily != "" && !theme.AllowedFont(s.FontFamily) {
		return "Font family is not in the allowed list."
	}
	return ""
}

// validateNavigation checks the typed navigation list.
func validateNavigation(links []models.NavLink) string {
	if len(links) > maxNavLinks {
		return "Too many navigation links (max 50)."
	}
	for _, l := range links {
		if strings.TrimSpace(l.Label) == "" {
			return "Navigation links need a label."
		}
		if strings.TrimSpace(l.Href) == "" {
			return "Navigation links need a target."
		}
		if l.Type != models.NavLinkPage && l.Type != models.NavLinkExternal {
			return "Navigation link type must be \"page\" or \"external\"."
		}
	}
	return ""
}

// validateInjection bounds the raw head/body snippets.
func validateInjection(code *string) string {
	if code != nil && utf8.RuneCountInString(*code) > maxInjectLen {
		return "Injected code is too long (max 20,000 characters)."
	}
	return ""
}

// validatePageMeta checks page name, slug and SEO fields.
func validatePageMeta(name, slug string, seo ...*string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Page name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Page name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 200 characters)."
	}
	for _, field := range seo {
		if field != nil && utf8.RuneCountInString(*field) > maxSEOFieldLen {
			return "SEO fields are limited to 500 characters."
		}
	}
	return ""
}

// validateBlocks checks draft content against the block registry: every
// block must carry a registered type and data satisfying its schema.
// Hidden blocks are validated too, since they publish with the page.
func validateBlocks(registry *blocks.Registry, content models.Blocks) string {
	if len(content) > maxBlockCount {
		return "Too many blocks on one page (max 200)."
	}
	for i, b := range content {
		def, ok := registry.Resolve(b.Type)
		if !ok {
			return "Unknown block type \"" + b.Type + "\"."
		}
		if err := def.ValidateData(b.Data); err != nil {
			return "Block " + strconv.Itoa(i) + " (" + b.Type + "): " + err.Error()
		}
	}
	return ""
}
