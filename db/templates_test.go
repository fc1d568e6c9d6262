// ABOUTME: Tests for email template database operations
// ABOUTME: Covers CRUD round trips and not-found handling
package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func TestCreateEmailTemplate(t *testing.T) {
	db := setupTestDB(t)

	tpl := &models.EmailTemplate{
		Name:     "Welcome",
		Category: "onboarding",
		Subject:  "Welcome aboard",
		Body:     "Hello {{name}},",
	}
	if err := CreateEmailTemplate(db, tpl); err != nil {
		t.Fatalf("CreateEmailTemplate failed: %v", err)
	}

	if tpl.ID == uuid.Nil {
		t.Error("Template ID was not set")
	}
	if tpl.Status != models.StatusActive {
		t.Errorf("Expected default status active, got %s", tpl.Status)
	}

	found, err := GetEmailTemplate(db, tpl.ID)
	if err != nil {
		t.Fatalf("GetEmailTemplate failed: %v", err)
	}
	if found == nil {
		t.Fatal("Template not found after create")
	}
	if found.Body != "Hello {{name}}," {
		t.Errorf("Body lost in round trip: %q", found.Body)
	}
}

func TestUpdateEmailTemplate(t *testing.T) {
	db := setupTestDB(t)

	tpl := &models.EmailTemplate{Name: "Reminder", Subject: "Reminder"}
	if err := CreateEmailTemplate(db, tpl); err != nil {
		t.Fatalf("CreateEmailTemplate failed: %v", err)
	}

	tpl.Subject = "Gentle reminder"
	tpl.Status = models.StatusInactive
	if err := UpdateEmailTemplate(db, tpl.ID, tpl); err != nil {
		t.Fatalf("UpdateEmailTemplate failed: %v", err)
	}

	found, err := GetEmailTemplate(db, tpl.ID)
	if err != nil {
		t.Fatalf("GetEmailTemplate failed: %v", err)
	}
	if found.Subject != "Gentle reminder" || found.Status != models.StatusInactive {
		t.Errorf("Update not applied: %+v", found)
	}
}

func TestDeleteEmailTemplate(t *testing.T) {
	db := setupTestDB(t)

	tpl := &models.EmailTemplate{Name: "Gone", Subject: "Gone"}
	if err := CreateEmailTemplate(db, tpl); err != nil {
		t.Fatalf("CreateEmailTemplate failed: %v", err)
	}

	if err := DeleteEmailTemplate(db, tpl.ID); err != nil {
		t.Fatalf("DeleteEmailTemplate failed: %v", err)
	}

	found, err := GetEmailTemplate(db, tpl.ID)
	if err != nil {
		t.Fatalf("GetEmailTemplate failed: %v", err)
	}
	if found != nil {
		t.Error("Template still present after delete")
	}

	err = DeleteEmailTemplate(db, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
