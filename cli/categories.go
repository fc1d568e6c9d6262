// ABOUTME: Product category CLI commands
// ABOUTME: Manage the two-level category tree from the terminal
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
)

// AddCategoryCommand adds a product category, optionally under a parent
func AddCategoryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-category", flag.ExitOnError)
	name := fs.String("name", "", "Category name (required)")
	parent := fs.String("parent", "", "Parent category ID")
	description := fs.String("description", "", "Description")
	status := fs.String("status", models.StatusActive, "Status (active, inactive)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	category := &models.ProductCategory{
		Name:        *name,
		Description: *description,
		Status:      *status,
	}

	if *parent != "" {
		parentID, err := uuid.Parse(*parent)
		if err != nil {
			return fmt.Errorf("invalid parent ID: %w", err)
		}
		existing, err := db.GetCategory(database, parentID)
		if err != nil {
			return fmt.Errorf("failed to get parent category: %w", err)
		}
		if existing == nil {
			return fmt.Errorf("parent category not found: %s", *parent)
		}
		category.ParentID = &parentID
	}

	if err := db.CreateCategory(database, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	fmt.Printf("✓ Category created: %s (ID: %s)\n", category.Name, category.ID)
	return nil
}

// ListCategoriesCommand lists categories with their parents
func ListCategoriesCommand(database *sql.DB, args []string) error {
	categories, err := db.ListCategories(database)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Println("No categories found")
		return nil
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARENT\tSTATUS\tID")
	fmt.Fprintln(w, "----\t------\t------\t--")

	for _, category := range categories {
		parent := "-"
		if category.ParentID != nil {
			parent = names[*category.ParentID]
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			category.Name, parent, category.Status, category.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d category(ies)\n", len(categories))
	return nil
}

// UpdateCategoryCommand updates a category's fields or re-parents it
func UpdateCategoryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-category", flag.ExitOnError)
	id := fs.String("id", "", "Category ID (required)")
	name := fs.String("name", "", "New name")
	description := fs.String("description", "", "New description")
	status := fs.String("status", "", "New status")
	parent := fs.String("parent", "", "New parent ID, or 'root' to detach")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	categoryID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid category ID: %w", err)
	}

	category, err := db.GetCategory(database, categoryID)
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return fmt.Errorf("category not found: %s", *id)
	}

	if *name != "" {
		category.Name = *name
	}
	if *description != "" {
		category.Description = *description
	}
	if *status != "" {
		category.Status = *status
	}
	switch *parent {
	case "":
	case "root":
		category.ParentID = nil
	default:
		parentID, err := uuid.Parse(*parent)
		if err != nil {
			return fmt.Errorf("invalid parent ID: %w", err)
		}
		category.ParentID = &parentID
	}

	if err := db.UpdateCategory(database, categoryID, category); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	fmt.Printf("✓ Category updated: %s\n", category.Name)
	return nil
}

// DeleteCategoryCommand deletes a category; children move to the root level
func DeleteCategoryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-category", flag.ExitOnError)
	id := fs.String("id", "", "Category ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	categoryID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid category ID: %w", err)
	}

	if err := db.DeleteCategory(database, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	fmt.Printf("✓ Category deleted: %s\n", *id)
	return nil
}
