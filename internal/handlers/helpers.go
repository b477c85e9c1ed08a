// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the siteforge API and
// the public site renderer. Handlers are grouped by concern (sites,
// pages, public) and receive their dependencies through the handler
// struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"siteforge/internal/store"
)

// maxBodyBytes caps API request bodies. Block content for a whole page
// fits comfortably; anything larger is abuse.
const maxBodyBytes = 1 << 20

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes a JSON error body: {"error": "..."}.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondStoreError maps store failures to HTTP: uniqueness conflicts
// become 409 with the violating field, everything else is a logged 500.
func respondStoreError(w http.ResponseWriter, err error, op string) {
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		respondError(w, http.StatusConflict, conflict.Error())
		return
	}
	slog.Error(op+" failed", "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}

// decodeJSON parses a request body into v, rejecting unknown fields and
// oversized bodies. Returns false after writing the error response.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// uuidParam parses a UUID route parameter. Returns uuid.Nil and writes a
// 400 when the value is malformed.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// tenantFrom reads the caller's tenant ID from the X-Tenant-ID header.
// The gateway in front of this service authenticates the caller and
// stamps the header; here it is trusted input.
func tenantFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get("X-Tenant-ID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing or invalid X-Tenant-ID header")
		return uuid.Nil, false
	}
	return id, true
}

// actorFrom labels audit entries with the calling tenant.
func actorFrom(r *http.Request) string {
	if t := r.Header.Get("X-Tenant-ID"); t != "" {
		return "tenant:" + t
	}
	return "unknown"
}
