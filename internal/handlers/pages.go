// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"siteforge/internal/audit"
	"siteforge/internal/blocks"
	"siteforge/internal/cache"
	"siteforge/internal/models"
	"siteforge/internal/slug"
	"siteforge/internal/store"
)

// Pages groups the page editor API handlers.
type Pages struct {
	pageStore *store.PageStore
	siteStore *store.SiteStore
	registry  *blocks.Registry
	pageCache *cache.PageCache
	recorder  *audit.Recorder
}

// NewPages creates the page handler group.
func NewPages(pages *store.PageStore, sites *store.SiteStore, registry *blocks.Registry, pc *cache.PageCache, rec *audit.Recorder) *Pages {
	return &Pages{
		pageStore: pages,
		siteStore: sites,
		registry:  registry,
		pageCache: pc,
		recorder:  rec,
	}
}

// createPageRequest is the POST /sites/{siteID}/pages payload. Slug is
// optional; when empty it is generated from the name.
type createPageRequest struct {
	Name       string        `json:"name"`
	Slug       *string       `json:"slug"`
	Content    models.Blocks `json:"content"`
	IsHomePage bool          `json:"is_home_page"`
}

// Create handles POST /api/v1/sites/{siteID}/pages.
func (h *Pages) Create(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}

	var req createPageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// The empty slug is legal (it participates in home-page resolution),
	// but only when asked for explicitly.
	pageSlug := slug.Generate(req.Name)
	if req.Slug != nil {
		pageSlug = slug.Generate(*req.Slug)
		if *req.Slug == "" {
			pageSlug = ""
		}
	}

	if msg := validatePageMeta(req.Name, pageSlug); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Content != nil {
		if msg := validateBlocks(h.registry, req.Content); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
	}

	page, err := h.pageStore.Create(&models.Page{
		SiteID:       site.ID,
		Name:         req.Name,
		Slug:         pageSlug,
		DraftContent: req.Content,
		IsHomePage:   req.IsHomePage,
	})
	if err != nil {
		respondStoreError(w, err, "create page")
		return
	}

	h.recorder.Record(models.AuditActionCreate, "page", page.ID.String(), actorFrom(r), &site.ID,
		map[string]any{"slug": page.Slug})
	respondJSON(w, http.StatusCreated, page)
}

// ListBySite handles GET /api/v1/sites/{siteID}/pages, in creation order.
func (h *Pages) ListBySite(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}
	pages, err := h.pageStore.ListBySite(site.ID)
	if err != nil {
		respondStoreError(w, err, "list pages")
		return
	}
	if pages == nil {
		pages = []models.Page{}
	}
	respondJSON(w, http.StatusOK, pages)
}

// Get handles GET /api/v1/pages/{pageID}.
func (h *Pages) Get(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// updatePageRequest is the PUT /pages/{pageID} payload: name, slug, SEO
// metadata and home flag. Draft content has its own endpoint.
type updatePageRequest struct {
	Name           string  `json:"name"`
	Slug           *string `json:"slug"`
	SEOTitle       *string `json:"seo_title"`
	SEODescription *string `json:"seo_description"`
	SEOKeywords    *string `json:"seo_keywords"`
	SEOImage       *string `json:"seo_image"`
	IsHomePage     bool    `json:"is_home_page"`
}

// Update handles PUT /api/v1/pages/{pageID}.
func (h *Pages) Update(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var req updatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	newSlug := page.Slug
	if req.Slug != nil {
		newSlug = slug.Generate(*req.Slug)
		if *req.Slug == "" {
			newSlug = ""
		}
	}
	if msg := validatePageMeta(req.Name, newSlug,
		req.SEOTitle, req.SEODescription, req.SEOKeywords, req.SEOImage); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	page.Name = req.Name
	page.Slug = newSlug
	page.SEOTitle = req.SEOTitle
	page.SEODescription = req.SEODescription
	page.SEOKeywords = req.SEOKeywords
	page.SEOImage = req.SEOImage
	page.IsHomePage = req.IsHomePage

	if err := h.pageStore.UpdateMeta(page); err != nil {
		respondStoreError(w, err, "update page")
		return
	}

	h.invalidate(r, page)
	h.recorder.Record(models.AuditActionUpdate, "page", page.ID.String(), actorFrom(r), &page.SiteID,
		map[string]any{"slug": page.Slug})
	respondJSON(w, http.StatusOK, page)
}

// SaveDraft handles PUT /api/v1/pages/{pageID}/draft. The body is the
// full block array; saving replaces the draft wholesale. Published
// content and the public site are untouched.
func (h *Pages) SaveDraft(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	var content models.Blocks
	if !decodeJSON(w, r, &content) {
		return
	}
	if msg := validateBlocks(h.registry, content); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.pageStore.SaveDraft(page.ID, content); err != nil {
		respondStoreError(w, err, "save draft")
		return
	}

	h.recorder.Record(models.AuditActionUpdate, "page", page.ID.String(), actorFrom(r), &page.SiteID,
		map[string]any{"draft_blocks": len(content)})
	respondJSON(w, http.StatusOK, map[string]any{"saved": true, "blocks": len(content)})
}

// Changes handles GET /api/v1/pages/{pageID}/changes: the editor's
// "unpublished changes" badge.
func (h *Pages) Changes(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	changed, err := h.pageStore.HasUnpublishedChanges(page.ID)
	if err != nil {
		respondStoreError(w, err, "check changes")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"unpublished": changed})
}

// Delete handles DELETE /api/v1/pages/{pageID}.
func (h *Pages) Delete(w http.ResponseWriter, r *http.Request) {
	page, ok := h.loadPage(w, r)
	if !ok {
		return
	}

	if err := h.pageStore.Delete(page.ID); err != nil {
		respondStoreError(w, err, "delete page")
		return
	}

	h.invalidate(r, page)
	h.recorder.Record(models.AuditActionDelete, "page", page.ID.String(), actorFrom(r), &page.SiteID,
		map[string]any{"slug": page.Slug})
	w.WriteHeader(http.StatusNoContent)
}

// loadSite fetches the site named by the route, writing 400/404 on
// failure. Like Sites.loadSite, another tenant's site reads as not found.
func (h *Pages) loadSite(w http.ResponseWriter, r *http.Request) (*models.Site, bool) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return nil, false
	}
	id, ok := uuidParam(w, r, "siteID")
	if !ok {
		return nil, false
	}
	site, err := h.siteStore.FindByID(id)
	if err != nil {
		respondStoreError(w, err, "find site")
		return nil, false
	}
	if site == nil || site.TenantID != tenantID {
		respondError(w, http.StatusNotFound, "site not found")
		return nil, false
	}
	return site, true
}

// loadPage fetches the page named by the route, writing 400/404 on
// failure. Ownership runs through the page's site: a page under another
// tenant's site reads as not found.
func (h *Pages) loadPage(w http.ResponseWriter, r *http.Request) (*models.Page, bool) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return nil, false
	}
	id, ok := uuidParam(w, r, "pageID")
	if !ok {
		return nil, false
	}
	page, err := h.pageStore.FindByID(id)
	if err != nil {
		respondStoreError(w, err, "find page")
		return nil, false
	}
	if page == nil {
		respondError(w, http.StatusNotFound, "page not found")
		return nil, false
	}
	site, err := h.siteStore.FindByID(page.SiteID)
	if err != nil {
		respondStoreError(w, err, "find site")
		return nil, false
	}
	if site == nil || site.TenantID != tenantID {
		respondError(w, http.StatusNotFound, "page not found")
		return nil, false
	}
	return page, true
}

// invalidate clears the whole site's cache: slug and navigation changes
// can affect any page.
func (h *Pages) invalidate(r *http.Request, page *models.Page) {
	if h.pageCache != nil {
		h.pageCache.InvalidateSite(r.Context(), page.SiteID)
	}
}
