// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme translates a site's stored style configuration into the
// concrete styling tokens consumed by the render layer. Derivation is
// deterministic: the same configuration always yields the same tokens, and
// partial or missing configuration falls back to the documented defaults
// rather than failing.
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"siteforge/internal/models"
)

// Tokens is the resolved styling contract for one site. Foreground tokens
// are derived from their base color by the luminance rule so text on
// colored surfaces stays readable without per-site tuning.
type Tokens struct {
	Primary             string
	PrimaryForeground   string
	Secondary           string
	SecondaryForeground string
	Accent              string
	AccentForeground    string
	Background          string
	Text                string
	FontFamily          string
	FontStack           string
	Radius              string
}

// Default style values applied when a site leaves fields unset.
const (
	DefaultPrimary    = "#4f46e5"
	DefaultSecondary  = "#0f172a"
	DefaultAccent     = "#f59e0b"
	DefaultBackground = "#ffffff"
	DefaultFont       = "Inter"
	DefaultRadius     = "0.5rem"

	// Foreground colors chosen by the luminance rule.
	darkText  = "#111827"
	lightText = "#f9fafb"
)

// fontStacks is the fixed allow-list of supported font families.
// Unrecognized names fall back to the default rather than loading an
// arbitrary external resource.
var fontStacks = map[string]string{
	"Inter":            `"Inter", system-ui, sans-serif`,
	"Roboto":           `"Roboto", system-ui, sans-serif`,
	"Open Sans":        `"Open Sans", system-ui, sans-serif`,
	"Montserrat":       `"Montserrat", system-ui, sans-serif`,
	"Poppins":          `"Poppins", system-ui, sans-serif`,
	"Lora":             `"Lora", Georgia, serif`,
	"Playfair Display": `"Playfair Display", Georgia, serif`,
	"Merriweather":     `"Merriweather", Georgia, serif`,
	"JetBrains Mono":   `"JetBrains Mono", ui-monospace, monospace`,
}

// AllowedFont reports whether a font family is in the allow-list.
func AllowedFont(name string) bool {
	_, ok := fontStacks[name]
	return ok
}

// ValidHex reports whether a string parses as a #rgb or #rrggbb color.
func ValidHex(hex string) bool {
	_, _, _, ok := parseHex(hex)
	return ok
}

// Resolve derives the full token set from a style configuration.
func Resolve(cfg models.StyleConfig) Tokens {
	primary := colorOrDefault(cfg.PrimaryColor, DefaultPrimary)
	secondary := colorOrDefault(cfg.SecondaryColor, DefaultSecondary)
	accent := colorOrDefault(cfg.AccentColor, DefaultAccent)
	background := colorOrDefault(cfg.BackgroundColor, DefaultBackground)

	font := DefaultFont
	if _, ok := fontStacks[cfg.FontFamily]; ok {
		font = cfg.FontFamily
	}

	radius := DefaultRadius
	if r := strings.TrimSpace(cfg.BorderRadius); r != "" && validRadius(r) {
		radius = r
	}

	return Tokens{
		Primary:             primary,
		PrimaryForeground:   ForegroundFor(primary),
		Secondary:           secondary,
		SecondaryForeground: ForegroundFor(secondary),
		Accent:              accent,
		AccentForeground:    ForegroundFor(accent),
		Background:          background,
		Text:                ForegroundFor(background),
		FontFamily:          font,
		FontStack:           fontStacks[font],
		Radius:              radius,
	}
}

// CSS renders the tokens as a :root custom-property block injected into
// every page head.
func (t Tokens) CSS() string {
	var b strings.Builder
	b.WriteString(":root{")
	fmt.Fprintf(&b, "--sf-primary:%s;", t.Primary)
	fmt.Fprintf(&b, "--sf-primary-fg:%s;", t.PrimaryForeground)
	fmt.Fprintf(&b, "--sf-secondary:%s;", t.Secondary)
	fmt.Fprintf(&b, "--sf-secondary-fg:%s;", t.SecondaryForeground)
	fmt.Fprintf(&b, "--sf-accent:%s;", t.Accent)
	fmt.Fprintf(&b, "--sf-accent-fg:%s;", t.AccentForeground)
	fmt.Fprintf(&b, "--sf-bg:%s;", t.Background)
	fmt.Fprintf(&b, "--sf-text:%s;", t.Text)
	fmt.Fprintf(&b, "--sf-font:%s;", t.FontStack)
	fmt.Fprintf(&b, "--sf-radius:%s;", t.Radius)
	b.WriteString("}")
	return b.String()
}

// ForegroundFor picks a readable text color for the given background hex:
// above 50% perceived lightness gets dark text, below gets light text.
func ForegroundFor(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return darkText
	}
	// Perceived lightness weights from ITU-R BT.601.
	lightness := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255.0
	if lightness > 0.5 {
		return darkText
	}
	return lightText
}

// colorOrDefault returns the configured hex color when well-formed,
// otherwise the fallback.
func colorOrDefault(hex, fallback string) string {
	hex = strings.ToLower(strings.TrimSpace(hex))
	if _, _, _, ok := parseHex(hex); ok {
		return hex
	}
	return fallback
}

// parseHex decodes "#rgb" or "#rrggbb" into 0-255 channels.
func parseHex(hex string) (r, g, b uint8, ok bool) {
	if !strings.HasPrefix(hex, "#") {
		return 0, 0, 0, false
	}
	h := hex[1:]
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8 & 0xff), uint8(v & 0xff), true
}

// validRadius accepts simple CSS length values like "8px", "0.5rem", "0".
func validRadius(r string) bool {
	for _, suffix := range []string{"px", "rem", "em", "%"} {
		if v, found := strings.CutSuffix(r, suffix); found {
			_, err := strconv.ParseFloat(v, 64)
			return err == nil
		}
	}
	_, err := strconv.ParseFloat(r, 64)
	return err == nil
}
