// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// domain.go normalizes and validates the hostnames a site is addressed by:
// platform subdomains and tenant-owned custom domains.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minSubdomainLen = 3
	maxSubdomainLen = 63
)

var (
	// subdomainRe matches lowercase alphanumeric labels with interior hyphens.
	subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

	// domainRe matches a bare domain name: two or more dot-separated labels,
	// the last being an alphabetic TLD.
	domainRe = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

	// reservedSubdomains can never be claimed by tenants because they
	// collide with platform infrastructure hostnames.
	reservedSubdomains = map[string]bool{
		"www": true, "api": true, "admin": true, "app": true,
		"mail": true, "cdn": true, "static": true, "assets": true,
	}
)

// NormalizeSubdomain lowercases and trims a subdomain candidate.
func NormalizeSubdomain(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateSubdomain checks a normalized subdomain against the platform
// rules: 3-63 characters, lowercase alphanumeric plus interior hyphens,
// and not a reserved platform name. Returns "" when valid, otherwise a
// caller-facing message.
func ValidateSubdomain(s string) string {
	if len(s) < minSubdomainLen {
		return fmt.Sprintf("Subdomain must be at least %d characters.", minSubdomainLen)
	}
	if len(s) > maxSubdomainLen {
		return fmt.Sprintf("Subdomain must be at most %d characters.", maxSubdomainLen)
	}
	if !subdomainRe.MatchString(s) {
		return "Subdomain may only contain lowercase letters, digits, and interior hyphens."
	}
	if reservedSubdomains[s] {
		return "This subdomain is reserved."
	}
	return ""
}

// NormalizeDomain canonicalizes a custom domain for storage and comparison:
// scheme, path, port, leading "www.", and trailing dots are stripped, and
// the result is lowercased. "https://www.Example.com/" becomes "example.com".
func NormalizeDomain(d string) string {
	d = strings.ToLower(strings.TrimSpace(d))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimSuffix(d, ".")
	d = strings.TrimPrefix(d, "www.")
	return d
}

// ValidateDomain checks a normalized custom domain for well-formed
// domain-name shape. Returns "" when valid.
func ValidateDomain(d string) string {
	if d == "" {
		return "Domain is required."
	}
	if len(d) > 253 {
		return "Domain is too long."
	}
	if !domainRe.MatchString(d) {
		return "Domain is not a valid domain name."
	}
	return ""
}

// NormalizeHost prepares an inbound request hostname for site resolution:
// lowercase, port and trailing dot stripped.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}
