// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"siteforge/internal/blocks"
)

// Blocks serves the block palette the editor builds its sidebar from.
type Blocks struct {
	registry *blocks.Registry
}

// NewBlocks creates the block palette handler.
func NewBlocks(registry *blocks.Registry) *Blocks {
	return &Blocks{registry: registry}
}

// paletteEntry is one block definition as the editor sees it: the type
// identifier, display info, the data schema, and defaults for insertion.
type paletteEntry struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Defaults    map[string]any  `json:"defaults"`
}

// List handles GET /api/v1/blocks, in registration order.
func (h *Blocks) List(w http.ResponseWriter, r *http.Request) {
	defs := h.registry.All()
	palette := make([]paletteEntry, 0, len(defs))
	for _, d := range defs {
		palette = append(palette, paletteEntry{
			Type:        d.Type,
			Name:        d.Name,
			Description: d.Description,
			Schema:      json.RawMessage(d.Schema),
			Defaults:    d.Defaults,
		})
	}
	respondJSON(w, http.StatusOK, palette)
}
