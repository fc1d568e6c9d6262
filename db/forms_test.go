// ABOUTME: Tests for form record database operations
// ABOUTME: Covers flattened-shape defaults and round trips through the codec
package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/formdoc"
	"github.com/opsdeck/opsdeck/models"
)

func TestCreateFormDefaults(t *testing.T) {
	db := setupTestDB(t)

	form := &models.FormRecord{Name: "Onboarding"}
	if err := CreateForm(db, form); err != nil {
		t.Fatalf("CreateForm failed: %v", err)
	}

	if form.ID == uuid.Nil {
		t.Error("Form ID was not set")
	}
	if form.Status != models.StatusDraft {
		t.Errorf("Expected default status draft, got %s", form.Status)
	}
	if form.Section != "[]" || form.DepartmentIDs != "[]" || form.CategoryIDs != "[]" {
		t.Errorf("Empty list columns should default to []: %q %q %q",
			form.Section, form.DepartmentIDs, form.CategoryIDs)
	}
}

func TestFormRoundTripThroughCodec(t *testing.T) {
	db := setupTestDB(t)

	doc := formdoc.New()
	doc.Name = "Vendor Intake"
	doc.Title = "Vendor Intake"
	doc.Sections[0].Questions[0].Text = "Vendor name"
	doc.Sections[0].Questions[0].Required = true

	record, err := formdoc.ToRecord(doc)
	if err != nil {
		t.Fatalf("ToRecord failed: %v", err)
	}
	if err := CreateForm(db, record); err != nil {
		t.Fatalf("CreateForm failed: %v", err)
	}

	stored, err := GetForm(db, record.ID)
	if err != nil {
		t.Fatalf("GetForm failed: %v", err)
	}
	if stored == nil {
		t.Fatal("Form not found after create")
	}

	decoded, err := formdoc.FromRecord(stored)
	if err != nil {
		t.Fatalf("FromRecord failed: %v", err)
	}
	if decoded.Name != "Vendor Intake" {
		t.Errorf("Name lost in round trip: %q", decoded.Name)
	}
	if len(decoded.Sections) != 1 || len(decoded.Sections[0].Questions) != 1 {
		t.Fatalf("Section shape lost: %+v", decoded.Sections)
	}
	if decoded.Sections[0].Questions[0].Text != "Vendor name" {
		t.Errorf("Question label lost: %q", decoded.Sections[0].Questions[0].Text)
	}
	if !decoded.Sections[0].Questions[0].Required {
		t.Error("Required flag lost in round trip")
	}
}

func TestUpdateForm(t *testing.T) {
	db := setupTestDB(t)

	form := &models.FormRecord{Name: "Draft"}
	if err := CreateForm(db, form); err != nil {
		t.Fatalf("CreateForm failed: %v", err)
	}

	form.Name = "Published"
	form.Status = models.StatusActive
	if err := UpdateForm(db, form.ID, form); err != nil {
		t.Fatalf("UpdateForm failed: %v", err)
	}

	found, err := GetForm(db, form.ID)
	if err != nil {
		t.Fatalf("GetForm failed: %v", err)
	}
	if found.Name != "Published" || found.Status != models.StatusActive {
		t.Errorf("Update not applied: %+v", found)
	}
}

func TestDeleteFormNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := DeleteForm(db, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
