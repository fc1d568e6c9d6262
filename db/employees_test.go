// ABOUTME: Tests for employee and department database operations
// ABOUTME: Covers onboarding defaults and the department ensure-once behavior
package db

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func TestCreateEmployee(t *testing.T) {
	db := setupTestDB(t)

	deptID, err := EnsureDepartment(db, "Engineering")
	if err != nil {
		t.Fatalf("EnsureDepartment failed: %v", err)
	}

	joined := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	emp := &models.Employee{
		Name:         "Dana",
		Email:        "dana@example.com",
		DepartmentID: &deptID,
		Role:         "engineer",
		JoinedAt:     &joined,
	}
	if err := CreateEmployee(db, emp); err != nil {
		t.Fatalf("CreateEmployee failed: %v", err)
	}

	if emp.ID == uuid.Nil {
		t.Error("Employee ID was not set")
	}
	if emp.Status != models.EmployeeStatusInvited {
		t.Errorf("Expected default status invited, got %s", emp.Status)
	}

	found, err := GetEmployee(db, emp.ID)
	if err != nil {
		t.Fatalf("GetEmployee failed: %v", err)
	}
	if found == nil {
		t.Fatal("Employee not found after create")
	}
	if found.DepartmentID == nil || *found.DepartmentID != deptID {
		t.Errorf("Department reference lost: %v", found.DepartmentID)
	}
	if found.JoinedAt == nil || !found.JoinedAt.Equal(joined) {
		t.Errorf("JoinedAt lost: %v", found.JoinedAt)
	}
}

func TestEnsureDepartmentReuses(t *testing.T) {
	db := setupTestDB(t)

	first, err := EnsureDepartment(db, "Sales")
	if err != nil {
		t.Fatalf("EnsureDepartment failed: %v", err)
	}
	second, err := EnsureDepartment(db, "Sales")
	if err != nil {
		t.Fatalf("EnsureDepartment failed on second call: %v", err)
	}
	if first != second {
		t.Errorf("Expected the same department id, got %d and %d", first, second)
	}

	other, err := EnsureDepartment(db, "Support")
	if err != nil {
		t.Fatalf("EnsureDepartment failed: %v", err)
	}
	if other == first {
		t.Error("Distinct names should get distinct ids")
	}

	departments, err := ListDepartments(db)
	if err != nil {
		t.Fatalf("ListDepartments failed: %v", err)
	}
	if len(departments) != 2 {
		t.Errorf("Expected 2 departments, got %d", len(departments))
	}
}

func TestUpdateEmployee(t *testing.T) {
	db := setupTestDB(t)

	emp := &models.Employee{Name: "Rae", Email: "rae@example.com"}
	if err := CreateEmployee(db, emp); err != nil {
		t.Fatalf("CreateEmployee failed: %v", err)
	}

	emp.Status = models.EmployeeStatusActive
	emp.Role = "manager"
	if err := UpdateEmployee(db, emp.ID, emp); err != nil {
		t.Fatalf("UpdateEmployee failed: %v", err)
	}

	found, err := GetEmployee(db, emp.ID)
	if err != nil {
		t.Fatalf("GetEmployee failed: %v", err)
	}
	if found.Status != models.EmployeeStatusActive || found.Role != "manager" {
		t.Errorf("Update not applied: %+v", found)
	}
}

func TestDeleteEmployeeNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := DeleteEmployee(db, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
