package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"siteforge/internal/models"
)

func TestAuditInsertAndList(t *testing.T) {
	db := testDB(t)
	a := NewAuditStore(db)

	site := testSite(t, db, "store-test-audit")

	entries := []models.AuditLogEntry{
		{Action: models.AuditActionCreate, EntityType: "site", EntityID: site.ID.String(), Actor: "tenant:alice", SiteID: &site.ID},
		{Action: models.AuditActionPublish, EntityType: "site", EntityID: site.ID.String(), Actor: "tenant:alice", SiteID: &site.ID,
			Details: json.RawMessage(`{"pages_published":2}`)},
	}
	for i := range entries {
		if err := a.Insert(context.Background(), &entries[i]); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}

	got, err := a.ListBySite(site.ID, 10)
	if err != nil {
		t.Fatalf("ListBySite() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListBySite() returned %d entries, want 2", len(got))
	}
	// Newest first.
	if got[0].Action != models.AuditActionPublish {
		t.Errorf("first entry action = %q, want publish (newest first)", got[0].Action)
	}
	var details map[string]any
	if err := json.Unmarshal(got[0].Details, &details); err != nil {
		t.Fatalf("details round-trip: %v", err)
	}
	if details["pages_published"] != float64(2) {
		t.Errorf("details = %v", details)
	}
}

func TestAuditPurge(t *testing.T) {
	db := testDB(t)
	a := NewAuditStore(db)

	site := testSite(t, db, "store-test-audit-purge")

	entry := models.AuditLogEntry{
		Action: models.AuditActionDelete, EntityType: "page",
		EntityID: uuid.NewString(), Actor: "tenant:bob", SiteID: &site.ID,
	}
	if err := a.Insert(context.Background(), &entry); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	// Cutoff in the past removes nothing.
	if _, err := a.Purge(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("Purge(past) error: %v", err)
	}
	got, err := a.ListBySite(site.ID, 10)
	if err != nil {
		t.Fatalf("ListBySite() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entry should survive a past cutoff, got %d entries", len(got))
	}

	// Cutoff in the future removes the fresh entry.
	if _, err := a.Purge(time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Purge(future) error: %v", err)
	}
	got, err = a.ListBySite(site.ID, 10)
	if err != nil {
		t.Fatalf("ListBySite() after purge error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("purge should have removed the entry, got %d", len(got))
	}
}
