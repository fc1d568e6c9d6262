// ABOUTME: Tests for product category database operations
// ABOUTME: Covers the self-parent guard and child re-homing on delete
package db

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)

	category := &models.ProductCategory{Name: "Hardware"}
	if err := CreateCategory(db, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	if category.ID == uuid.Nil {
		t.Error("Category ID was not set")
	}
	if category.Status != models.StatusActive {
		t.Errorf("Expected default status active, got %s", category.Status)
	}

	found, err := GetCategory(db, category.ID)
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if found == nil || found.Name != "Hardware" {
		t.Errorf("Category not found after create: %+v", found)
	}
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	db := setupTestDB(t)

	category := &models.ProductCategory{Name: "Loop"}
	if err := CreateCategory(db, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	category.ParentID = &category.ID
	if err := UpdateCategory(db, category.ID, category); err == nil {
		t.Error("Expected an error when a category parents itself")
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := UpdateCategory(db, uuid.New(), &models.ProductCategory{Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCategoryRehomesChildren(t *testing.T) {
	db := setupTestDB(t)

	parent := &models.ProductCategory{Name: "Parent"}
	if err := CreateCategory(db, parent); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	child := &models.ProductCategory{Name: "Child", ParentID: &parent.ID}
	if err := CreateCategory(db, child); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	if err := DeleteCategory(db, parent.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	found, err := GetCategory(db, child.ID)
	if err != nil {
		t.Fatalf("GetCategory failed: %v", err)
	}
	if found == nil {
		t.Fatal("Child category disappeared with its parent")
	}
	if found.ParentID != nil {
		t.Errorf("Child should be re-homed to root, got parent %v", found.ParentID)
	}
}
