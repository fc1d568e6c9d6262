// ABOUTME: Export MCP tool handler
// ABOUTME: Runs the audited CSV export pipeline and writes the file to disk
package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/export"
	"github.com/opsdeck/opsdeck/table"
)

type ExportHandlers struct {
	db     *sql.DB
	outDir string
}

func NewExportHandlers(database *sql.DB, outDir string) *ExportHandlers {
	return &ExportHandlers{db: database, outDir: outDir}
}

type ExportInput struct {
	Module  string              `json:"module" jsonschema:"account_documents, companies, product_categories, email_templates, employees, or forms"`
	Reason  string              `json:"reason" jsonschema:"Justification for the export, 10-255 characters"`
	Search  string              `json:"search,omitempty" jsonschema:"Free-text search applied before export"`
	Filters map[string][]string `json:"filters,omitempty" jsonschema:"Filter dimension -> accepted values"`
	SortKey string              `json:"sort_key,omitempty" jsonschema:"Sort column"`
	SortDir string              `json:"sort_dir,omitempty" jsonschema:"asc or desc"`
}

type ExportOutput struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
}

// ExportModule derives the currently filtered and sorted dataset for a module
// and runs it through the audited CSV pipeline. The whole filtered set is
// exported, not one page.
func (h *ExportHandlers) ExportModule(_ context.Context, request *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
	if input.Module == "" {
		return nil, ExportOutput{}, fmt.Errorf("module is required")
	}

	header, rows, err := h.collectRows(input)
	if err != nil {
		return nil, ExportOutput{}, err
	}

	if len(rows) == 0 {
		return nil, ExportOutput{}, export.ErrNothingToExport
	}

	if err := os.MkdirAll(h.outDir, 0755); err != nil {
		return nil, ExportOutput{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	exporter := export.NewExporter(h.db)

	// Write to a temp file first so a failed export never leaves a partial CSV.
	tmp, err := os.CreateTemp(h.outDir, "export-*.csv.tmp")
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	fileName, err := exporter.Export(input.Module, input.Reason, header, rows, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			return nil, ExportOutput{}, err
		}
		return nil, ExportOutput{}, fmt.Errorf("export failed: %w", err)
	}

	finalPath := filepath.Join(h.outDir, fileName)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return nil, ExportOutput{}, fmt.Errorf("failed to finalize export file: %w", err)
	}

	return nil, ExportOutput{
		FilePath: finalPath,
		FileName: fileName,
		Rows:     len(rows),
	}, nil
}

func (h *ExportHandlers) collectRows(input ExportInput) ([]string, [][]string, error) {
	q := table.Query{
		// Export covers the whole filtered set.
		Page:     1,
		PageSize: 1 << 30,
		Sort:     table.Sort{Key: input.SortKey, Order: input.SortDir},
		Search:   input.Search,
	}
	criteria := table.Criteria{Fields: input.Filters}

	switch input.Module {
	case export.ModuleCompanies:
		companies, err := db.ListCompanies(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list companies: %w", err)
		}
		result := table.Derive(companies, q, criteria)
		header, rows := export.CompanyRows(result.Filtered)
		return header, rows, nil

	case export.ModuleAccountDocuments:
		docs, err := db.ListAccountDocuments(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list documents: %w", err)
		}
		companies, err := db.ListCompanies(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list companies: %w", err)
		}
		members, err := db.ListMembers(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list members: %w", err)
		}
		result := table.Derive(docs, q, criteria)
		header, rows := export.AccountDocumentRows(result.Filtered,
			export.CompanyNameIndex(companies), export.MemberNameIndex(members))
		return header, rows, nil

	case export.ModuleCategories:
		categories, err := db.ListCategories(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list categories: %w", err)
		}
		result := table.Derive(categories, q, criteria)
		header, rows := export.CategoryRows(result.Filtered, export.CategoryNameIndex(categories))
		return header, rows, nil

	case export.ModuleEmailTemplates:
		templates, err := db.ListEmailTemplates(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list templates: %w", err)
		}
		result := table.Derive(templates, q, criteria)
		header, rows := export.EmailTemplateRows(result.Filtered)
		return header, rows, nil

	case export.ModuleEmployees:
		employees, err := db.ListEmployees(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list employees: %w", err)
		}
		departments, err := db.ListDepartments(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list departments: %w", err)
		}
		result := table.Derive(employees, q, criteria)
		header, rows := export.EmployeeRows(result.Filtered, export.DepartmentNameIndex(departments))
		return header, rows, nil

	case export.ModuleForms:
		forms, err := db.ListForms(h.db)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list forms: %w", err)
		}
		result := table.Derive(forms, q, criteria)
		header, rows := export.FormRows(result.Filtered)
		return header, rows, nil
	}

	return nil, nil, fmt.Errorf("invalid module: %s", input.Module)
}
