// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "siteforge/internal/models"

// NavItem is one resolved navigation entry ready for the render layer.
// External links carry new-tab and no-referrer link semantics.
type NavItem struct {
	Label    string
	Href     string
	External bool
	Target   string // "_blank" for external links, "" otherwise
	Rel      string // "noopener noreferrer" for external links, "" otherwise
}

// ResolveNavigation translates a site's stored navigation list into render
// entries, preserving order. Entries without a label or href are dropped
// rather than rendered as broken links.
func ResolveNavigation(links []models.NavLink) []NavItem {
	items := make([]NavItem, 0, len(links))
	for _, l := range links {
		if l.Label == "" || l.Href == "" {
			continue
		}
		item := NavItem{Label: l.Label, Href: l.Href}
		if l.IsExternal() {
			item.External = true
			item.Target = "_blank"
			item.Rel = "noopener noreferrer"
		}
		items = append(items, item)
	}
	return items
}
