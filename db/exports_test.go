// ABOUTME: Tests for the export audit log
// ABOUTME: Covers ULID assignment, module filtering, and newest-first ordering
package db

import (
	"testing"

	"github.com/opsdeck/opsdeck/models"
)

func TestCreateExportLog(t *testing.T) {
	db := setupTestDB(t)

	entry := &models.ExportLog{
		Module:   "companies",
		Reason:   "Quarterly compliance review",
		FileName: "companies_export_2024-03-09.csv",
	}
	if err := CreateExportLog(db, entry); err != nil {
		t.Fatalf("CreateExportLog failed: %v", err)
	}

	if entry.ID == "" {
		t.Error("Entry ID was not assigned")
	}
	if len(entry.ID) != 26 {
		t.Errorf("Expected a 26-character ULID, got %q", entry.ID)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestListExportLog(t *testing.T) {
	db := setupTestDB(t)

	modules := []string{"companies", "employees", "companies"}
	for i, module := range modules {
		entry := &models.ExportLog{
			Module:   module,
			Reason:   "Audit trail verification pass",
			FileName: "file.csv",
		}
		if err := CreateExportLog(db, entry); err != nil {
			t.Fatalf("CreateExportLog %d failed: %v", i, err)
		}
	}

	all, err := ListExportLog(db, "", 0)
	if err != nil {
		t.Fatalf("ListExportLog failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	for _, e := range all {
		if e.ID == "" {
			t.Error("Listed entry is missing its id")
		}
	}

	companies, err := ListExportLog(db, "companies", 0)
	if err != nil {
		t.Fatalf("ListExportLog with module failed: %v", err)
	}
	if len(companies) != 2 {
		t.Errorf("Expected 2 company entries, got %d", len(companies))
	}

	limited, err := ListExportLog(db, "", 1)
	if err != nil {
		t.Fatalf("ListExportLog with limit failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 entry with limit, got %d", len(limited))
	}
}
