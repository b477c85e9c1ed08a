// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
)

// Block is the atomic content unit within a page's content array.
// Type is a key into the block registry; Data is the schema-shaped payload
// for that type. Order within a page is the array index.
type Block struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Data    map[string]any `json:"data"`
	Visible *bool          `json:"visible,omitempty"`
}

// IsVisible reports whether the block should be rendered. A missing
// visible flag means visible.
func (b *Block) IsVisible() bool {
	return b.Visible == nil || *b.Visible
}

// Blocks is an ordered block sequence as stored in a page's draft or
// published content column.
type Blocks []Block

// ParseBlocks decodes a raw JSON content payload into a block sequence.
// The payload must be a JSON array; anything else is rejected so malformed
// editor submissions never reach the database.
func ParseBlocks(raw []byte) (Blocks, error) {
	var blocks Blocks
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, fmt.Errorf("content must be a JSON array of blocks: %w", err)
	}
	return blocks, nil
}
