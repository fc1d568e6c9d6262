// ABOUTME: Product category MCP tool handlers
// ABOUTME: Implements add/find/update/delete category tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/table"
)

type CategoryHandlers struct {
	db  *sql.DB
	box *outbox.Store
}

func NewCategoryHandlers(database *sql.DB, box *outbox.Store) *CategoryHandlers {
	return &CategoryHandlers{db: database, box: box}
}

type AddCategoryInput struct {
	Name        string `json:"name" jsonschema:"Category name (required)"`
	ParentID    string `json:"parent_id,omitempty" jsonschema:"UUID of the parent category"`
	Description string `json:"description,omitempty" jsonschema:"Category description"`
	Status      string `json:"status,omitempty" jsonschema:"active, inactive, or draft (default active)"`
}

type CategoryOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (h *CategoryHandlers) AddCategory(_ context.Context, request *mcp.CallToolRequest, input AddCategoryInput) (*mcp.CallToolResult, CategoryOutput, error) {
	if input.Name == "" {
		return nil, CategoryOutput{}, fmt.Errorf("name is required")
	}

	category := &models.ProductCategory{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
	}

	if input.ParentID != "" {
		parentID, err := uuid.Parse(input.ParentID)
		if err != nil {
			return nil, CategoryOutput{}, fmt.Errorf("invalid parent_id: %w", err)
		}
		parent, err := db.GetCategory(h.db, parentID)
		if err != nil {
			return nil, CategoryOutput{}, fmt.Errorf("failed to check parent: %w", err)
		}
		if parent == nil {
			return nil, CategoryOutput{}, fmt.Errorf("parent category not found: %s", parentID)
		}
		category.ParentID = &parentID
	}

	if err := db.CreateCategory(h.db, category); err != nil {
		return nil, CategoryOutput{}, fmt.Errorf("failed to create category: %w", err)
	}

	notify(h.box, "Category created", category.Name)

	return nil, categoryToOutput(category), nil
}

type FindCategoriesInput struct {
	Search   string   `json:"search,omitempty" jsonschema:"Free-text search"`
	Status   []string `json:"status,omitempty" jsonschema:"Accepted statuses"`
	ParentID string   `json:"parent_id,omitempty" jsonschema:"Only children of this category"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page index"`
	PageSize int      `json:"page_size,omitempty" jsonschema:"Page size (default 10)"`
}

type FindCategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Total      int              `json:"total"`
}

func (h *CategoryHandlers) FindCategories(_ context.Context, request *mcp.CallToolRequest, input FindCategoriesInput) (*mcp.CallToolResult, FindCategoriesOutput, error) {
	categories, err := db.ListCategories(h.db)
	if err != nil {
		return nil, FindCategoriesOutput{}, fmt.Errorf("failed to list categories: %w", err)
	}

	criteria := table.Criteria{Fields: map[string][]string{}}
	if len(input.Status) > 0 {
		criteria.Fields[models.DimStatus] = input.Status
	}
	if input.ParentID != "" {
		criteria.Fields[models.DimParent] = []string{input.ParentID}
	}

	result := table.Derive(categories, table.Query{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}, criteria)

	out := make([]CategoryOutput, len(result.Page))
	for i, c := range result.Page {
		out[i] = categoryToOutput(&c)
	}

	return nil, FindCategoriesOutput{Categories: out, Total: result.Total}, nil
}

type UpdateCategoryInput struct {
	CategoryID  string `json:"category_id" jsonschema:"UUID of the category to update"`
	Name        string `json:"name,omitempty" jsonschema:"Updated name"`
	ParentID    string `json:"parent_id,omitempty" jsonschema:"Updated parent UUID, or 'root' to detach"`
	Description string `json:"description,omitempty" jsonschema:"Updated description"`
	Status      string `json:"status,omitempty" jsonschema:"Updated status"`
}

func (h *CategoryHandlers) UpdateCategory(_ context.Context, request *mcp.CallToolRequest, input UpdateCategoryInput) (*mcp.CallToolResult, CategoryOutput, error) {
	if input.CategoryID == "" {
		return nil, CategoryOutput{}, fmt.Errorf("category_id is required")
	}

	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, CategoryOutput{}, fmt.Errorf("invalid category_id: %w", err)
	}

	category, err := db.GetCategory(h.db, categoryID)
	if err != nil {
		return nil, CategoryOutput{}, fmt.Errorf("category not found: %w", err)
	}
	if category == nil {
		return nil, CategoryOutput{}, fmt.Errorf("category not found: %s", categoryID)
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.ParentID == "root" {
		category.ParentID = nil
	} else if input.ParentID != "" {
		parentID, err := uuid.Parse(input.ParentID)
		if err != nil {
			return nil, CategoryOutput{}, fmt.Errorf("invalid parent_id: %w", err)
		}
		category.ParentID = &parentID
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.Status != "" {
		category.Status = input.Status
	}

	if err := db.UpdateCategory(h.db, categoryID, category); err != nil {
		return nil, CategoryOutput{}, fmt.Errorf("failed to update category: %w", err)
	}

	notify(h.box, "Category updated", category.Name)

	return nil, categoryToOutput(category), nil
}

type DeleteCategoryInput struct {
	CategoryID string `json:"category_id" jsonschema:"UUID of the category to delete"`
}

func (h *CategoryHandlers) DeleteCategory(_ context.Context, request *mcp.CallToolRequest, input DeleteCategoryInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.CategoryID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("category_id is required")
	}

	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid category_id: %w", err)
	}

	if err := db.DeleteCategory(h.db, categoryID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete category: %w", err)
	}

	notify(h.box, "Category deleted", categoryID.String())

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted category: %s", categoryID),
	}, nil
}

func categoryToOutput(category *models.ProductCategory) CategoryOutput {
	out := CategoryOutput{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		Status:      category.Status,
		CreatedAt:   category.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   category.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if category.ParentID != nil {
		out.ParentID = category.ParentID.String()
	}
	return out
}
