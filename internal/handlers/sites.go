// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"siteforge/internal/audit"
	"siteforge/internal/cache"
	"siteforge/internal/models"
	"siteforge/internal/slug"
	"siteforge/internal/store"
)

// Sites groups the site management API handlers.
type Sites struct {
	siteStore      *store.SiteStore
	pageStore      *store.PageStore
	analyticsStore *store.AnalyticsStore
	pageCache      *cache.PageCache
	recorder       *audit.Recorder
}

// NewSites creates the site handler group. pageCache may be nil when
// Valkey is not configured.
func NewSites(sites *store.SiteStore, pages *store.PageStore, analytics *store.AnalyticsStore, pc *cache.PageCache, rec *audit.Recorder) *Sites {
	return &Sites{
		siteStore:      sites,
		pageStore:      pages,
		analyticsStore: analytics,
		pageCache:      pc,
		recorder:       rec,
	}
}

// createSiteRequest is the POST /sites payload.
type createSiteRequest struct {
	Name       string             `json:"name"`
	Subdomain  string             `json:"subdomain"`
	Styles     models.StyleConfig `json:"styles"`
	Navigation []models.NavLink   `json:"navigation"`
}

// Create handles POST /api/v1/sites.
func (h *Sites) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req createSiteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if msg := validateSiteName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	sub := slug.NormalizeSubdomain(req.Subdomain)
	if msg := slug.ValidateSubdomain(sub); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateStyles(req.Styles); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateNavigation(req.Navigation); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	site, err := h.siteStore.Create(&models.Site{
		TenantID:   tenantID,
		Name:       req.Name,
		Subdomain:  sub,
		Styles:     req.Styles,
		Navigation: req.Navigation,
	})
	if err != nil {
		respondStoreError(w, err, "create site")
		return
	}

	h.recorder.Record(models.AuditActionCreate, "site", site.ID.String(), actorFrom(r), &site.ID, nil)
	respondJSON(w, http.StatusCreated, site)
}

// List handles GET /api/v1/sites. With ?template=true it returns the
// template gallery; otherwise the calling tenant's sites.
func (h *Sites) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("template") == "true" {
		sites, err := h.siteStore.ListTemplates()
		if err != nil {
			respondStoreError(w, err, "list templates")
			return
		}
		respondJSON(w, http.StatusOK, sites)
		return
	}

	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	sites, err := h.siteStore.ListByTenant(tenantID)
	if err != nil {
		respondStoreError(w, err, "list sites")
		return
	}
	respondJSON(w, http.StatusOK, sites)
}

// Get handles GET /api/v1/sites/{siteID}.
func (h *Sites) Get(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, site)
}

// updateSiteRequest is the PUT /sites/{siteID} payload. Subdomain and
// tenant are immutable after creation; everything else can change.
type updateSiteRequest struct {
	Name                string             `json:"name"`
	CustomDomain        *string            `json:"custom_domain"`
	Styles              models.StyleConfig `json:"styles"`
	Navigation          []models.NavLink   `json:"navigation"`
	HeadCode            *string            `json:"head_code"`
	BodyCode            *string            `json:"body_code"`
	IsTemplate          bool               `json:"is_template"`
	TemplateCategory    *string            `json:"template_category"`
	TemplateDescription *string            `json:"template_description"`
	ThumbnailURL        *string            `json:"thumbnail_url"`
}

// Update handles PUT /api/v1/sites/{siteID}. Settings reach every page of
// the site, so the whole site's cache is invalidated on success.
func (h *Sites) Update(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}

	var req updateSiteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if msg := validateSiteName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateStyles(req.Styles); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateNavigation(req.Navigation); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	for _, code := range []*string{req.HeadCode, req.BodyCode} {
		if msg := validateInjection(code); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
	}

	if req.CustomDomain != nil {
		normalized := slug.NormalizeDomain(*req.CustomDomain)
		if msg := slug.ValidateDomain(normalized); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		site.CustomDomain = &normalized
	} else {
		site.CustomDomain = nil
	}

	site.Name = req.Name
	site.Styles = req.Styles
	site.Navigation = req.Navigation
	site.HeadCode = req.HeadCode
	site.BodyCode = req.BodyCode
	site.IsTemplate = req.IsTemplate
	site.TemplateCategory = req.TemplateCategory
	site.TemplateDescription = req.TemplateDescription
	site.ThumbnailURL = req.ThumbnailURL

	if err := h.siteStore.Update(site); err != nil {
		respondStoreError(w, err, "update site")
		return
	}

	h.invalidate(r, site)
	h.recorder.Record(models.AuditActionUpdate, "site", site.ID.String(), actorFrom(r), &site.ID, nil)
	respondJSON(w, http.StatusOK, site)
}

// Delete handles DELETE /api/v1/sites/{siteID}. Pages, audit entries and
// analytics cascade at the database level.
func (h *Sites) Delete(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}

	if err := h.siteStore.Delete(site.ID); err != nil {
		respondStoreError(w, err, "delete site")
		return
	}

	h.invalidate(r, site)
	h.recorder.Record(models.AuditActionDelete, "site", site.ID.String(), actorFrom(r), nil, nil)
	w.WriteHeader(http.StatusNoContent)
}

// Publish handles POST /api/v1/sites/{siteID}/publish. The result is
// structured rather than an error chain: on failure nothing was published.
func (h *Sites) Publish(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}

	result := h.pageStore.PublishSite(r.Context(), site.ID)
	if !result.Success {
		respondJSON(w, http.StatusInternalServerError, result)
		return
	}

	h.invalidate(r, site)
	h.recorder.Record(models.AuditActionPublish, "site", site.ID.String(), actorFrom(r), &site.ID,
		map[string]any{"pages_published": result.PagesPublished})
	respondJSON(w, http.StatusOK, result)
}

// Analytics handles GET /api/v1/sites/{siteID}/analytics?days=30.
func (h *Sites) Analytics(w http.ResponseWriter, r *http.Request) {
	site, ok := h.loadSite(w, r)
	if !ok {
		return
	}

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			respondError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = n
	}

	records, err := h.analyticsStore.ListBySite(site.ID, days)
	if err != nil {
		respondStoreError(w, err, "list analytics")
		return
	}
	if records == nil {
		records = []models.SiteAnalyticsRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// loadSite fetches the site named by the route, writing 400/404 on
// failure. A site owned by another tenant reads as not found so the
// response never confirms the ID exists.
func (h *Sites) loadSite(w http.ResponseWriter, r *http.Request) (*models.Site, bool) {
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

// invalidate clears the site's cached pages when a cache is configured.
func (h *Sites) invalidate(r *http.Request, site *models.Site) {
	if h.pageCache != nil {
		h.pageCache.InvalidateSite(r.Context(), site.ID)
	}
}
