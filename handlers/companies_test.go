// ABOUTME: Tests for company MCP tool handlers
// ABOUTME: Covers create, search, update, delete, and the member picker
package handlers

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func setupTestOutbox(t *testing.T) *outbox.Store {
	t.Helper()
	box, err := outbox.OpenStore("")
	if err != nil {
		t.Fatalf("Failed to open test outbox: %v", err)
	}
	t.Cleanup(func() { box.Close() })
	return box
}

func TestAddCompany(t *testing.T) {
	database := setupTestDB(t)
	box := setupTestOutbox(t)
	h := NewCompanyHandlers(database, box)

	_, output, err := h.AddCompany(context.Background(), nil, AddCompanyInput{
		Name:      "Acme Corp",
		OwnerName: "Pat Lee",
		Email:     "pat@acme.test",
		Country:   "US",
	})
	if err != nil {
		t.Fatalf("AddCompany failed: %v", err)
	}

	if output.ID == "" {
		t.Error("Expected an id in the output")
	}
	if output.Status != models.StatusActive {
		t.Errorf("Expected default status active, got %s", output.Status)
	}

	notifications, err := box.List(outbox.KindNotification)
	if err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifications))
	}
}

func TestAddCompanyRequiresName(t *testing.T) {
	database := setupTestDB(t)
	h := NewCompanyHandlers(database, nil)

	_, _, err := h.AddCompany(context.Background(), nil, AddCompanyInput{})
	if err == nil {
		t.Error("Expected an error for a missing name")
	}
}

func TestFindCompanies(t *testing.T) {
	database := setupTestDB(t)
	h := NewCompanyHandlers(database, nil)

	names := []string{"Acme Corp", "Acme Subsidiaries", "Globex"}
	for _, name := range names {
		_, _, err := h.AddCompany(context.Background(), nil, AddCompanyInput{Name: name})
		if err != nil {
			t.Fatalf("AddCompany failed: %v", err)
		}
	}

	_, output, err := h.FindCompanies(context.Background(), nil, FindCompaniesInput{Query: "acme"})
	if err != nil {
		t.Fatalf("FindCompanies failed: %v", err)
	}
	if len(output.Companies) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(output.Companies))
	}
	for _, c := range output.Companies {
		if !strings.Contains(strings.ToLower(c.Name), "acme") {
			t.Errorf("Unexpected match: %s", c.Name)
		}
	}
}

func TestUpdateCompany(t *testing.T) {
	database := setupTestDB(t)
	h := NewCompanyHandlers(database, nil)

	_, created, err := h.AddCompany(context.Background(), nil, AddCompanyInput{Name: "Before"})
	if err != nil {
		t.Fatalf("AddCompany failed: %v", err)
	}

	_, updated, err := h.UpdateCompany(context.Background(), nil, UpdateCompanyInput{
		CompanyID: created.ID,
		Name:      "After",
		Status:    models.StatusInactive,
	})
	if err != nil {
		t.Fatalf("UpdateCompany failed: %v", err)
	}
	if updated.Name != "After" || updated.Status != models.StatusInactive {
		t.Errorf("Update not reflected: %+v", updated)
	}
}

func TestUpdateCompanyBadID(t *testing.T) {
	database := setupTestDB(t)
	h := NewCompanyHandlers(database, nil)

	_, _, err := h.UpdateCompany(context.Background(), nil, UpdateCompanyInput{CompanyID: "not-a-uuid"})
	if err == nil {
		t.Error("Expected an error for an invalid id")
	}

	_, _, err = h.UpdateCompany(context.Background(), nil, UpdateCompanyInput{CompanyID: uuid.New().String()})
	if err == nil {
		t.Error("Expected an error for a missing company")
	}
}

func TestDeleteCompany(t *testing.T) {
	database := setupTestDB(t)
	h := NewCompanyHandlers(database, nil)

	_, created, err := h.AddCompany(context.Background(), nil, AddCompanyInput{Name: "Doomed"})
	if err != nil {
		t.Fatalf("AddCompany failed: %v", err)
	}

	_, output, err := h.DeleteCompany(context.Background(), nil, DeleteCompanyInput{CompanyID: created.ID})
	if err != nil {
		t.Fatalf("DeleteCompany failed: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected a confirmation message")
	}

	_, found, err := h.FindCompanies(context.Background(), nil, FindCompaniesInput{Query: "Doomed"})
	if err != nil {
		t.Fatalf("FindCompanies failed: %v", err)
	}
	if len(found.Companies) != 0 {
		t.Errorf("Company should be gone, got %d", len(found.Companies))
	}
}

func TestListCompanyMembers(t *testing.T) {
	database := setupTestDB(t)
	h := NewCompanyHandlers(database, nil)

	_, created, err := h.AddCompany(context.Background(), nil, AddCompanyInput{Name: "Staffed"})
	if err != nil {
		t.Fatalf("AddCompany failed: %v", err)
	}
	companyID, err := uuid.Parse(created.ID)
	if err != nil {
		t.Fatalf("Bad id in output: %v", err)
	}

	member := &models.Member{CompanyID: companyID, Name: "Jo", Role: "signer"}
	if err := db.CreateMember(database, member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	_, output, err := h.ListCompanyMembers(context.Background(), nil, ListCompanyMembersInput{CompanyID: created.ID})
	if err != nil {
		t.Fatalf("ListCompanyMembers failed: %v", err)
	}
	if len(output.Members) != 1 {
		t.Fatalf("Expected 1 member, got %d", len(output.Members))
	}
	if output.Members[0].Name != "Jo" || output.Members[0].Role != "signer" {
		t.Errorf("Unexpected member: %+v", output.Members[0])
	}
}
