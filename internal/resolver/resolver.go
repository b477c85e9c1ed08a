// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package resolver maps an incoming request (host, path) to a site and a
// page. Hosts under the platform root domain resolve by subdomain; every
// other host is treated as a custom domain. Paths match slugs exactly,
// with the root path going through home-page resolution.
package resolver

import (
	"fmt"
	"strings"

	"siteforge/internal/models"
	"siteforge/internal/slug"
	"siteforge/internal/store"
)

// Resolver performs host and path resolution against the site store.
type Resolver struct {
	sites      *store.SiteStore
	pages      *store.PageStore
	rootDomain string
}

// New creates a Resolver for the given platform root domain.
func New(sites *store.SiteStore, pages *store.PageStore, rootDomain string) *Resolver {
	return &Resolver{
		sites:      sites,
		pages:      pages,
		rootDomain: strings.ToLower(strings.TrimSuffix(rootDomain, ".")),
	}
}

// ResolveSite finds the site serving the given request host. Returns nil
// when no site matches; the caller renders a generic not-found page.
func (r *Resolver) ResolveSite(host string) (*models.Site, error) {
	host = slug.NormalizeHost(host)
	if host == "" {
		return nil, nil
	}

	if sub, ok := r.subdomainOf(host); ok {
		if sub == "" {
			// The bare root domain is the platform itself, not a tenant site.
			return nil, nil
		}
		site, err := r.sites.FindBySubdomain(sub)
		if err != nil {
			return nil, fmt.Errorf("resolve subdomain %q: %w", sub, err)
		}
		return site, nil
	}

	site, err := r.sites.FindByCustomDomain(host)
	if err != nil {
		return nil, fmt.Errorf("resolve custom domain %q: %w", host, err)
	}
	if site == nil {
		// Stored domains are normalized without the "www." prefix, so a
		// visitor on www.example.com still reaches example.com's site.
		if bare, found := strings.CutPrefix(host, "www."); found {
			site, err = r.sites.FindByCustomDomain(bare)
			if err != nil {
				return nil, fmt.Errorf("resolve custom domain %q: %w", bare, err)
			}
		}
	}
	return site, nil
}

// subdomainOf extracts the subdomain when host is under the root domain.
// Nested labels ("a.b.root") do not resolve; only one label is allowed.
func (r *Resolver) subdomainOf(host string) (string, bool) {
	if host == r.rootDomain {
		return "", true
	}
	prefix, found := strings.CutSuffix(host, "."+r.rootDomain)
	if !found {
		return "", false
	}
	if strings.Contains(prefix, ".") {
		return "", true // resolves to no site
	}
	return prefix, true
}

// ResolvePage finds the page for a request path within a site. The root
// path selects the home page; any other path requires an exact slug
// match. Returns nil when nothing matches.
func (r *Resolver) ResolvePage(site *models.Site, path string) (*models.Page, error) {
	path = strings.Trim(path, "/")

	if path == "" {
		pages, err := r.pages.ListBySite(site.ID)
		if err != nil {
			return nil, fmt.Errorf("list pages for home resolution: %w", err)
		}
		return models.ResolveHomePage(pages), nil
	}

	page, err := r.pages.FindBySlug(site.ID, path)
	if err != nil {
		return nil, fmt.Errorf("resolve page slug %q: %w", path, err)
	}
	return page, nil
}
