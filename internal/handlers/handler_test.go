// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// the page cache and storage client stay nil so tests run without Valkey
// or S3.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"siteforge/internal/audit"
	"siteforge/internal/blocks"
	"siteforge/internal/database"
	"siteforge/internal/render"
	"siteforge/internal/resolver"
	"siteforge/internal/store"
)

const testRootDomain = "siteforge.test"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "siteforge")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "siteforge")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testApp wires a full handler stack over the test database, with cache
// and storage disabled.
type testApp struct {
	db       *sql.DB
	router   chi.Router
	sites    *store.SiteStore
	pages    *store.PageStore
	registry *blocks.Registry
	tenantID uuid.UUID
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db := testDB(t)

	registry, err := blocks.Builtin()
	if err != nil {
		t.Fatalf("builtin registry: %v", err)
	}

	siteStore := store.NewSiteStore(db)
	pageStore := store.NewPageStore(db)
	analyticsStore := store.NewAnalyticsStore(db)
	recorder := audit.NewRecorder(store.NewAuditStore(db))
	renderer := render.New(registry)
	res := resolver.New(siteStore, pageStore, testRootDomain)

	sitesH := NewSites(siteStore, pageStore, analyticsStore, nil, recorder)
	pagesH := NewPages(pageStore, siteStore, registry, nil, recorder)
	blocksH := NewBlocks(registry)
	publicH := NewPublic(res, renderer, siteStore, analyticsStore, nil)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/blocks", blocksH.List)
		r.Post("/sites", sitesH.Create)
		r.Get("/sites", sitesH.List)
		r.Route("/sites/{siteID}", func(r chi.Router) {
			r.Get("/", sitesH.Get)
			r.Put("/", sitesH.Update)
			r.Delete("/", sitesH.Delete)
			r.Post("/publish", sitesH.Publish)
			r.Get("/analytics", sitesH.Analytics)
			r.Post("/pages", pagesH.Create)
			r.Get("/pages", pagesH.ListBySite)
		})
		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Get("/", pagesH.Get)
			r.Put("/", pagesH.Update)
			r.Delete("/", pagesH.Delete)
			r.Put("/draft", pagesH.SaveDraft)
			r.Get("/changes", pagesH.Changes)
		})
	})
	r.Get("/__preview/{siteID}/*", publicH.Preview)
	r.NotFound(publicH.Serve)

	return &testApp{
		db:       db,
		router:   r,
		sites:    siteStore,
		pages:    pageStore,
		registry: registry,
		tenantID: uuid.New(),
	}
}

// request runs one request through the router, JSON-encoding body when
// not nil and stamping the test tenant header.
func (a *testApp) request(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("X-Tenant-ID", a.tenantID.String())
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// cleanSite removes a test site by subdomain, cascading its pages.
func (a *testApp) cleanSite(t *testing.T, subdomain string) {
	t.Helper()
	a.db.Exec("DELETE FROM sites WHERE subdomain = $1", subdomain)
	t.Cleanup(func() { a.db.Exec("DELETE FROM sites WHERE subdomain = $1", subdomain) })
}

// newTestAppTenant shares the wired stack but acts as a second tenant.
func newTestAppTenant(a *testApp) *testApp {
	clone := *a
	clone.tenantID = uuid.New()
	return &clone
}

// requestNoTenant runs an API request without the tenant header.
func (a *testApp) requestNoTenant(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// publicGet runs a request against a tenant hostname (no API prefix).
func (a *testApp) publicGet(t *testing.T, host, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "http://"+host+path, nil)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
