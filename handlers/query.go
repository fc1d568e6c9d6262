// ABOUTME: Universal query tool handler
// ABOUTME: One tool that derives filtered, sorted, paginated lists for any entity type
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/table"
)

type QueryHandlers struct {
	db *sql.DB
}

func NewQueryHandlers(database *sql.DB) *QueryHandlers {
	return &QueryHandlers{db: database}
}

type QueryInput struct {
	EntityType string              `json:"entity_type" jsonschema:"company, document, category, template, employee, or form"`
	Search     string              `json:"search,omitempty" jsonschema:"Free-text search across all fields"`
	Filters    map[string][]string `json:"filters,omitempty" jsonschema:"Filter dimension -> accepted values"`
	Page       int                 `json:"page,omitempty" jsonschema:"1-based page index"`
	PageSize   int                 `json:"page_size,omitempty" jsonschema:"Page size (default 10)"`
	SortKey    string              `json:"sort_key,omitempty" jsonschema:"Sort column"`
	SortDir    string              `json:"sort_dir,omitempty" jsonschema:"asc or desc"`
}

type QueryOutput struct {
	EntityType string        `json:"entity_type"`
	Results    []interface{} `json:"results"`
	Count      int           `json:"count"`
	Total      int           `json:"total"`
}

func (h *QueryHandlers) Query(ctx context.Context, req *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	q := table.Query{
		Page:     input.Page,
		PageSize: input.PageSize,
		Sort:     table.Sort{Key: input.SortKey, Order: input.SortDir},
		Search:   input.Search,
	}
	criteria := table.Criteria{Fields: input.Filters}

	switch input.EntityType {
	case "company":
		companies, err := db.ListCompanies(h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to list companies: %w", err)
		}
		result := table.Derive(companies, q, criteria)
		return queryOutput(input.EntityType, result.Total, mapResults(result.Page, func(c models.Company) interface{} {
			return companyToOutput(&c)
		}))

	case "document":
		docs, err := db.ListAccountDocuments(h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to list documents: %w", err)
		}
		result := table.Derive(docs, q, criteria)
		return queryOutput(input.EntityType, result.Total, mapResults(result.Page, func(d models.AccountDocument) interface{} {
			return documentToOutput(&d)
		}))

	case "category":
		categories, err := db.ListCategories(h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to list categories: %w", err)
		}
		result := table.Derive(categories, q, criteria)
		return queryOutput(input.EntityType, result.Total, mapResults(result.Page, func(c models.ProductCategory) interface{} {
			return categoryToOutput(&c)
		}))

	case "template":
		templates, err := db.ListEmailTemplates(h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to list templates: %w", err)
		}
		result := table.Derive(templates, q, criteria)
		return queryOutput(input.EntityType, result.Total, mapResults(result.Page, func(t models.EmailTemplate) interface{} {
			return templateToOutput(&t)
		}))

	case "employee":
		employees, err := db.ListEmployees(h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to list employees: %w", err)
		}
		result := table.Derive(employees, q, criteria)
		eh := &EmployeeHandlers{db: h.db}
		return queryOutput(input.EntityType, result.Total, mapResults(result.Page, func(e models.Employee) interface{} {
			return eh.employeeToOutput(&e)
		}))

	case "form":
		forms, err := db.ListForms(h.db)
		if err != nil {
			return nil, QueryOutput{}, fmt.Errorf("failed to list forms: %w", err)
		}
		result := table.Derive(forms, q, criteria)
		return queryOutput(input.EntityType, result.Total, mapResults(result.Page, func(f models.FormRecord) interface{} {
			return FormListItem{
				ID:        f.ID.String(),
				FormName:  f.Name,
				FormTitle: f.Title,
				Status:    f.Status,
				CreatedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}))

	default:
		return nil, QueryOutput{}, fmt.Errorf("invalid entity_type: %s (valid: company, document, category, template, employee, form)", input.EntityType)
	}
}

func mapResults[T any](items []T, f func(T) interface{}) []interface{} {
	results := make([]interface{}, len(items))
	for i, item := range items {
		results[i] = f(item)
	}
	return results
}

func queryOutput(entityType string, total int, results []interface{}) (*mcp.CallToolResult, QueryOutput, error) {
	return &mcp.CallToolResult{}, QueryOutput{
		EntityType: entityType,
		Results:    results,
		Count:      len(results),
		Total:      total,
	}, nil
}
