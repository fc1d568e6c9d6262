// ABOUTME: Tests for company and member database operations
// ABOUTME: Covers CRUD, search, the delete guard, and member cleanup
package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func TestCreateCompany(t *testing.T) {
	db := setupTestDB(t)

	company := &models.Company{Name: "Acme, Inc.", Country: "US"}
	if err := CreateCompany(db, company); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	if company.ID == uuid.Nil {
		t.Error("Company ID was not set")
	}
	if company.Status != models.StatusActive {
		t.Errorf("Expected default status active, got %s", company.Status)
	}
	if company.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestFindCompanies(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"Acme Corp", "Beta LLC", "Acme Partners"} {
		if err := CreateCompany(db, &models.Company{Name: name}); err != nil {
			t.Fatalf("CreateCompany failed: %v", err)
		}
	}

	found, err := FindCompanies(db, "acme", 10)
	if err != nil {
		t.Fatalf("FindCompanies failed: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("Expected 2 matches for acme, got %d", len(found))
	}

	found, err = FindCompanies(db, "", 2)
	if err != nil {
		t.Fatalf("FindCompanies failed: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("Limit not applied: got %d", len(found))
	}
}

func TestUpdateCompany(t *testing.T) {
	db := setupTestDB(t)

	company := &models.Company{Name: "Before"}
	if err := CreateCompany(db, company); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	company.Name = "After"
	company.Country = "DE"
	if err := UpdateCompany(db, company.ID, company); err != nil {
		t.Fatalf("UpdateCompany failed: %v", err)
	}

	found, err := GetCompany(db, company.ID)
	if err != nil {
		t.Fatalf("GetCompany failed: %v", err)
	}
	if found.Name != "After" || found.Country != "DE" {
		t.Errorf("Update not persisted: %+v", found)
	}
}

func TestUpdateCompanyNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := UpdateCompany(db, uuid.New(), &models.Company{Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCompanyGuardedByDocuments(t *testing.T) {
	db := setupTestDB(t)

	company := &models.Company{Name: "Guarded Co"}
	if err := CreateCompany(db, company); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	doc := &models.AccountDocument{
		CompanyID:    company.ID,
		DocumentType: models.DocumentTypeContract,
	}
	if err := CreateAccountDocument(db, doc); err != nil {
		t.Fatalf("CreateAccountDocument failed: %v", err)
	}

	if err := DeleteCompany(db, company.ID); err == nil {
		t.Fatal("Expected delete to fail while documents exist")
	}

	if err := DeleteAccountDocument(db, doc.ID); err != nil {
		t.Fatalf("DeleteAccountDocument failed: %v", err)
	}
	if err := DeleteCompany(db, company.ID); err != nil {
		t.Fatalf("Delete should succeed once documents are gone: %v", err)
	}
}

func TestDeleteCompanyRemovesMembers(t *testing.T) {
	db := setupTestDB(t)

	company := &models.Company{Name: "Member Co"}
	if err := CreateCompany(db, company); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	member := &models.Member{CompanyID: company.ID, Name: "Jo"}
	if err := CreateMember(db, member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	if err := DeleteCompany(db, company.ID); err != nil {
		t.Fatalf("DeleteCompany failed: %v", err)
	}

	members, err := ListCompanyMembers(db, company.ID)
	if err != nil {
		t.Fatalf("ListCompanyMembers failed: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("Members should be deleted with their company, found %d", len(members))
	}
}

func TestListCompanyMembers(t *testing.T) {
	db := setupTestDB(t)

	a := &models.Company{Name: "A Co"}
	b := &models.Company{Name: "B Co"}
	for _, c := range []*models.Company{a, b} {
		if err := CreateCompany(db, c); err != nil {
			t.Fatalf("CreateCompany failed: %v", err)
		}
	}

	if err := CreateMember(db, &models.Member{CompanyID: a.ID, Name: "In A"}); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	if err := CreateMember(db, &models.Member{CompanyID: b.ID, Name: "In B"}); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	members, err := ListCompanyMembers(db, a.ID)
	if err != nil {
		t.Fatalf("ListCompanyMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Name != "In A" {
		t.Errorf("Expected only company A's member, got %+v", members)
	}
}
