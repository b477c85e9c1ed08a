// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"siteforge/internal/cache"
	"siteforge/internal/models"
	"siteforge/internal/render"
	"siteforge/internal/resolver"
	"siteforge/internal/store"
)

// Public serves tenant sites by hostname. It checks the Valkey page
// cache before resolving and rendering, stores rendered published pages
// on miss, and fire-and-forgets a view counter increment.
type Public struct {
	resolver       *resolver.Resolver
	renderer       *render.Renderer
	siteStore      *store.SiteStore
	analyticsStore *store.AnalyticsStore
	pageCache      *cache.PageCache
}

// NewPublic creates the public serving handler. pageCache and
// analyticsStore may be nil (cache disabled, analytics disabled).
func NewPublic(res *resolver.Resolver, ren *render.Renderer, sites *store.SiteStore, analytics *store.AnalyticsStore, pc *cache.PageCache) *Public {
	return &Public{
		resolver:       res,
		renderer:       ren,
		siteStore:      sites,
		analyticsStore: analytics,
		pageCache:      pc,
	}
}

// Serve handles every request that reaches a tenant hostname. Cached
// responses still count a view; only published content is ever cached.
func (p *Public) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	site, err := p.resolver.ResolveSite(r.Host)
	if err != nil {
		slog.Error("site resolution failed", "host", r.Host, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if site == nil {
		writeHTML(w, http.StatusNotFound, render.NotFound())
		return
	}
	if site.Banned {
		// Gone, not not-found: the site exists but will not be served.
		writeHTML(w, http.StatusGone, render.Suspended())
		return
	}
	if site.IsTemplate {
		// Templates live in the gallery, never on a public hostname.
		writeHTML(w, http.StatusNotFound, render.NotFound())
		return
	}

	path := r.URL.Path
	p.countView(site, path)

	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, cache.Key(site.ID, path)); ok {
			writeHTML(w, http.StatusOK, cached)
			return
		}
	}

	page, err := p.resolver.ResolvePage(site, path)
	if err != nil {
		slog.Error("page resolution failed", "site_id", site.ID, "path", path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil {
		if path == "/" || path == "" {
			// A site with no home page at all is still "coming soon".
			writeHTML(w, http.StatusOK, p.renderer.ComingSoon(site))
			return
		}
		writeHTML(w, http.StatusNotFound, render.NotFound())
		return
	}

	html := p.renderer.RenderPage(site, page, render.ModePublished)
	if p.pageCache != nil && page.IsPublished() {
		p.pageCache.Set(ctx, cache.Key(site.ID, path), html)
	}
	writeHTML(w, http.StatusOK, html)
}

// Preview handles GET /__preview/{siteID}/* on the platform domain: the
// editor's live preview of draft content. Never cached, never counted.
// Drafts are private, so the preview is only served to the owning tenant.
func (p *Public) Preview(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	siteID, ok := uuidParam(w, r, "siteID")
	if !ok {
		return
	}
	site, err := p.siteStore.FindByID(siteID)
	if err != nil {
		respondStoreError(w, err, "find site")
		return
	}
	if site == nil || site.TenantID != tenantID {
		writeHTML(w, http.StatusNotFound, render.NotFound())
		return
	}

	path := "/" + chi.URLParam(r, "*")
	page, err := p.resolver.ResolvePage(site, path)
	if err != nil {
		slog.Error("preview resolution failed", "site_id", site.ID, "path", path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil {
		writeHTML(w, http.StatusNotFound, render.NotFound())
		return
	}

	writeHTML(w, http.StatusOK, p.renderer.RenderPage(site, page, render.ModeDraft))
}

// countView increments the day's counter for the path in the background.
// A lost view is invisible to the visitor; failures only log.
func (p *Public) countView(site *models.Site, path string) {
	if p.analyticsStore == nil {
		return
	}
	siteID := site.ID
	go func() {
		if err := p.analyticsStore.RecordView(siteID, path, time.Now().UTC()); err != nil {
			slog.Warn("view count dropped", "site_id", siteID, "path", path, "error", err)
		}
	}()
}

// writeHTML writes a rendered document with the right content type.
func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
