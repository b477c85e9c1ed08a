// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contenthash

import (
	"strings"
	"testing"
)

// TestHashKeyOrderIndependent verifies that object key order never
// affects the hash, including in nested objects.
func TestHashKeyOrderIndependent(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{
			name: "flat object",
			a:    `{"title":"Hi","subtitle":"There"}`,
			b:    `{"subtitle":"There","title":"Hi"}`,
		},
		{
			name: "nested object",
			a:    `{"data":{"x":1,"y":2},"type":"hero"}`,
			b:    `{"type":"hero","data":{"y":2,"x":1}}`,
		},
		{
			name: "objects inside arrays",
			a:    `[{"id":"1","type":"hero"},{"id":"2","type":"cta"}]`,
			b:    `[{"type":"hero","id":"1"},{"type":"cta","id":"2"}]`,
		},
		{
			name: "whitespace only",
			a:    `{"a": 1, "b": [1, 2]}`,
			b:    `{"a":1,"b":[1,2]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha, err := HashRaw([]byte(tt.a))
			if err != nil {
				t.Fatalf("HashRaw(a): %v", err)
			}
			hb, err := HashRaw([]byte(tt.b))
			if err != nil {
				t.Fatalf("HashRaw(b): %v", err)
			}
			if ha != hb {
				t.Errorf("hashes differ for equivalent documents:\n a=%s\n b=%s", ha, hb)
			}
		})
	}
}

// TestHashDistinguishesContent verifies that meaningful differences
// always produce different hashes.
func TestHashDistinguishesContent(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "different value", a: `{"title":"Hi"}`, b: `{"title":"Hello"}`},
		{name: "different key", a: `{"title":"Hi"}`, b: `{"heading":"Hi"}`},
		{name: "array order matters", a: `[1,2,3]`, b: `[3,2,1]`},
		{name: "extra field", a: `{"a":1}`, b: `{"a":1,"b":null}`},
		{name: "empty array vs null", a: `[]`, b: `null`},
		{name: "string vs number", a: `{"a":"1"}`, b: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ha, _ := HashRaw([]byte(tt.a))
			hb, _ := HashRaw([]byte(tt.b))
			if ha == hb {
				t.Errorf("expected different hashes for %s and %s", tt.a, tt.b)
			}
		})
	}
}

// TestHashStructAndMapAgree verifies that a struct and the equivalent map
// hash to the same value after JSON normalization.
func TestHashStructAndMapAgree(t *testing.T) {
	type block struct {
		ID   string         `json:"id"`
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}

	s := block{ID: "1", Type: "hero", Data: map[string]any{"title": "Hi"}}
	m := map[string]any{"data": map[string]any{"title": "Hi"}, "id": "1", "type": "hero"}

	hs, err := Hash(s)
	if err != nil {
		t.Fatalf("Hash(struct): %v", err)
	}
	hm, err := Hash(m)
	if err != nil {
		t.Fatalf("Hash(map): %v", err)
	}
	if hs != hm {
		t.Errorf("struct hash %s != map hash %s", hs, hm)
	}
}

// TestHashRawEmptyInput verifies empty input is treated as JSON null.
func TestHashRawEmptyInput(t *testing.T) {
	he, err := HashRaw(nil)
	if err != nil {
		t.Fatalf("HashRaw(nil): %v", err)
	}
	hn, err := HashRaw([]byte("null"))
	if err != nil {
		t.Fatalf("HashRaw(null): %v", err)
	}
	if he != hn {
		t.Errorf("empty input hash %s != null hash %s", he, hn)
	}
}

// TestHashRawRejectsMalformedJSON verifies malformed input is an error.
func TestHashRawRejectsMalformedJSON(t *testing.T) {
	if _, err := HashRaw([]byte(`{"unterminated`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

// TestCanonicalizeOutput spot-checks the canonical form itself.
func TestCanonicalizeOutput(t *testing.T) {
	canonical, err := Canonicalize(map[string]any{"b": []any{1, 2}, "a": "x"})
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	got := string(canonical)
	want := `{"a":"x","b":[1,2]}`
	if got != want {
		t.Errorf("Canonicalize = %s, want %s", got, want)
	}
	if strings.Contains(got, " ") {
		t.Error("canonical form must not contain whitespace")
	}
}
