// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"siteforge/internal/storage"
)

// allowedUploadTypes restricts presigned uploads to site asset media.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/avif":    true,
}

// Uploads issues presigned upload URLs for site assets.
type Uploads struct {
	storageClient *storage.Client
}

// NewUploads creates the uploads handler. storageClient may be nil when
// S3 is not configured; requests then get 503.
func NewUploads(sc *storage.Client) *Uploads {
	return &Uploads{storageClient: sc}
}

// uploadRequest is the POST /uploads payload.
type uploadRequest struct {
	SiteID      uuid.UUID `json:"site_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
}

// Presign handles POST /api/v1/uploads: the editor asks for an upload
// URL, PUTs the file to object storage directly, then references the
// returned public URL from block data.
func (h *Uploads) Presign(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	var req uploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SiteID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "site_id is required")
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		respondError(w, http.StatusBadRequest, "filename is required")
		return
	}
	if !allowedUploadTypes[req.ContentType] {
		respondError(w, http.StatusBadRequest, "content type not allowed for uploads")
		return
	}

	upload, err := h.storageClient.PresignUpload(r.Context(), req.SiteID, req.Filename, req.ContentType)
	if err != nil {
		respondStoreError(w, err, "presign upload")
		return
	}
	respondJSON(w, http.StatusOK, upload)
}
