package handlers

import (
	"net/http"
	"strings"
	"testing"

	"siteforge/internal/models"
)

func TestPublicServeLifecycle(t *testing.T) {
	app := newTestApp(t)
	site := createTestSite(t, app, "handler-test-pub")
	host := "handler-test-pub." + testRootDomain

	var page models.Page
	decode(t, app.request(t, http.MethodPost, "/api/v1/sites/"+site.ID.String()+"/pages", map[string]any{
		"name": "Home", "slug": "home", "content": heroContent("Launch Day"),
	}), &page)

	// Before publish: coming soon, not the draft.
	rec := app.publicGet(t, host, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("pre-publish: status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Launch Day") {
		t.Error("draft content must not leak to the public site")
	}
	if !strings.Contains(rec.Body.String(), "Coming Soon") {
		t.Errorf("expected coming-soon placeholder, got: %.200s", rec.Body.String())
	}

	// Draft preview shows the unpublished content to the owning tenant.
	rec = app.request(t, http.MethodGet, "/__preview/"+site.ID.String()+"/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Launch Day") {
		t.Error("preview should render the draft")
	}

	// Publish, then the content is live.
	if rec := app.request(t, http.MethodPost, "/api/v1/sites/"+site.ID.String()+"/publish", nil); rec.Code != http.StatusOK {
		t.Fatalf("publish: status = %d", rec.Code)
	}
	rec = app.publicGet(t, host, "/")
	if !strings.Contains(rec.Body.String(), "Launch Day") {
		t.Error("published content should be served")
	}

	// Unknown path on a real site is a 404.
	if rec := app.publicGet(t, host, "/no-such-page"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path: status = %d, want 404", rec.Code)
	}

	// Unknown host is a 404.
	if rec := app.publicGet(t, "ghost."+testRootDomain, "/"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown host: status = %d, want 404", rec.Code)
	}
}

func TestPublicServeBannedSite(t *testing.T) {
	app := newTestApp(t)
	site := createTestSite(t, app, "handler-test-ban")
	host := "handler-test-ban." + testRootDomain

	// Ban directly in the DB; there is no API route for it.
	if _, err := app.db.Exec("UPDATE sites SET banned = TRUE WHERE id = $1", site.ID); err != nil {
		t.Fatalf("ban site: %v", err)
	}

	rec := app.publicGet(t, host, "/")
	if rec.Code != http.StatusGone {
		t.Errorf("banned site: status = %d, want 410", rec.Code)
	}
	if !strings.Contains(strings.ToLower(rec.Body.String()), "suspended") {
		t.Error("banned site should show the suspension notice")
	}
}

func TestPublicServeSkipsUnknownStoredBlocks(t *testing.T) {
	app := newTestApp(t)
	site := createTestSite(t, app, "handler-test-unknown")
	host := "handler-test-unknown." + testRootDomain

	var page models.Page
	decode(t, app.request(t, http.MethodPost, "/api/v1/sites/"+site.ID.String()+"/pages", map[string]any{
		"name": "Home", "slug": "home", "content": heroContent("Still here"),
	}), &page)

	// Inject a retired block type straight into the draft, bypassing
	// API validation, then publish. Rendering must skip it.
	if _, err := app.db.Exec(`
		UPDATE pages SET draft_content = draft_content || '[{"id":"bx","type":"retired-block","data":{}}]'::jsonb
		WHERE id = $1
	`, page.ID); err != nil {
		t.Fatalf("inject block: %v", err)
	}
	if rec := app.request(t, http.MethodPost, "/api/v1/sites/"+site.ID.String()+"/publish", nil); rec.Code != http.StatusOK {
		t.Fatalf("publish: status = %d", rec.Code)
	}

	rec := app.publicGet(t, host, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("serve: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Still here") {
		t.Error("known blocks should still render")
	}
	if strings.Contains(rec.Body.String(), "retired-block") {
		t.Error("unknown block type must be skipped silently")
	}
}

func TestPublicTemplateSiteNotServed(t *testing.T) {
	app := newTestApp(t)
	site := createTestSite(t, app, "handler-test-tmpl")

	rec := app.request(t, http.MethodPut, "/api/v1/sites/"+site.ID.String(), map[string]any{
		"name":        "Template",
		"is_template": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mark template: status = %d, body %s", rec.Code, rec.Body.String())
	}

	if rec := app.publicGet(t, "handler-test-tmpl."+testRootDomain, "/"); rec.Code != http.StatusNotFound {
		t.Errorf("template site: status = %d, want 404", rec.Code)
	}
}

func TestPreviewScopedToOwner(t *testing.T) {
	app := newTestApp(t)
	site := createTestSite(t, app, "handler-test-prvw")

	var page models.Page
	decode(t, app.request(t, http.MethodPost, "/api/v1/sites/"+site.ID.String()+"/pages", map[string]any{
		"name": "Home", "slug": "home", "content": heroContent("Unreleased"),
	}), &page)

	target := "/__preview/" + site.ID.String() + "/"

	// Owner sees the draft.
	rec := app.request(t, http.MethodGet, target, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Unreleased") {
		t.Fatalf("owner preview: status = %d", rec.Code)
	}

	// Another tenant holding the UUID gets a 404 without the draft.
	other := newTestAppTenant(app)
	rec = other.request(t, http.MethodGet, target, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign preview: status = %d, want 404", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Unreleased") {
		t.Error("foreign preview leaked draft content")
	}

	// No tenant identity at all is rejected outright.
	rec = app.requestNoTenant(t, http.MethodGet, target)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("anonymous preview: status = %d, want 400", rec.Code)
	}
}
