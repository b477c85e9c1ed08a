// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for page paths and
// normalization rules for subdomains and custom domains.
package slug

import (
	"regexp"
	"strings"
)

// maxSlugLen caps generated slugs; page names can be long but their URL
// path should stay readable.
const maxSlugLen = 80

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxSlugLen {
		result = result[:maxSlugLen]
		// Never cut mid-word when a hyphen boundary is available.
		if idx := strings.LastIndexByte(result, '-'); idx > 0 {
			result = result[:idx]
		}
		result = strings.Trim(result, "-")
	}
	return result
}
