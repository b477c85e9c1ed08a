package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"siteforge/internal/blocks"
)

func TestBlockPalette(t *testing.T) {
	registry, err := blocks.Builtin()
	if err != nil {
		t.Fatalf("builtin registry: %v", err)
	}
	h := NewBlocks(registry)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blocks", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var palette []struct {
		Type     string          `json:"type"`
		Name     string          `json:"name"`
		Schema   json.RawMessage `json:"schema"`
		Defaults map[string]any  `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &palette); err != nil {
		t.Fatalf("decode palette: %v", err)
	}

	defs := registry.All()
	if len(palette) != len(defs) {
		t.Fatalf("palette has %d entries, registry has %d", len(palette), len(defs))
	}
	for i, d := range defs {
		if palette[i].Type != d.Type {
			t.Errorf("palette[%d] = %q, want %q (registration order)", i, palette[i].Type, d.Type)
		}
	}

	// Every entry carries a usable schema and defaults.
	for _, e := range palette {
		if e.Name == "" {
			t.Errorf("block %q has no display name", e.Type)
		}
		var schema map[string]any
		if err := json.Unmarshal(e.Schema, &schema); err != nil {
			t.Errorf("block %q schema is not JSON: %v", e.Type, err)
		}
		if e.Defaults == nil {
			t.Errorf("block %q has no defaults", e.Type)
		}
	}
}

func TestUploadsWithoutStorage(t *testing.T) {
	h := NewUploads(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", nil)
	h.Presign(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("no storage: status = %d, want 503", rec.Code)
	}
}
