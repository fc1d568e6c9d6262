// ABOUTME: CSV export CLI commands
// ABOUTME: Audited exports to disk plus the export audit trail
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/export"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/table"
)

// ExportCommand writes an audited CSV export of a module to disk
func ExportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	module := fs.String("module", "", "Module to export (companies, account_documents, product_categories, email_templates, employees, forms)")
	reason := fs.String("reason", "", "Justification for the export, 10-255 characters (required)")
	query := fs.String("query", "", "Search filter applied before export")
	status := fs.String("status", "", "Comma-separated status filter")
	outDir := fs.String("out", ".", "Output directory")
	fs.Parse(args)

	if *module == "" {
		return fmt.Errorf("--module is required")
	}

	header, rows, err := collectExportRows(database, *module, *query, *status)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(*outDir, "export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	fileName, err := export.NewExporter(database).Export(*module, *reason, header, rows, tmp)
	if closeErr := tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	finalPath := filepath.Join(*outDir, fileName)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		return fmt.Errorf("failed to place export file: %w", err)
	}

	fmt.Printf("✓ Exported %d row(s) to %s\n", len(rows), finalPath)
	return nil
}

func collectExportRows(database *sql.DB, module, query, status string) ([]string, [][]string, error) {
	q := table.Query{Page: 1, PageSize: 1 << 30, Search: query}
	criteria := table.Criteria{Fields: map[string][]string{}}
	if status != "" {
		criteria.Fields[models.DimStatus] = strings.Split(status, ",")
	}

	switch module {
	case export.ModuleCompanies:
		companies, err := db.ListCompanies(database)
		if err != nil {
			return nil, nil, err
		}
		header, rows := export.CompanyRows(table.Derive(companies, q, criteria).Filtered)
		return header, rows, nil

	case export.ModuleAccountDocuments:
		docs, err := db.ListAccountDocuments(database)
		if err != nil {
			return nil, nil, err
		}
		companies, err := db.ListCompanies(database)
		if err != nil {
			return nil, nil, err
		}
		members, err := db.ListMembers(database)
		if err != nil {
			return nil, nil, err
		}
		header, rows := export.AccountDocumentRows(table.Derive(docs, q, criteria).Filtered,
			export.CompanyNameIndex(companies), export.MemberNameIndex(members))
		return header, rows, nil

	case export.ModuleCategories:
		categories, err := db.ListCategories(database)
		if err != nil {
			return nil, nil, err
		}
		header, rows := export.CategoryRows(table.Derive(categories, q, criteria).Filtered,
			export.CategoryNameIndex(categories))
		return header, rows, nil

	case export.ModuleEmailTemplates:
		templates, err := db.ListEmailTemplates(database)
		if err != nil {
			return nil, nil, err
		}
		header, rows := export.EmailTemplateRows(table.Derive(templates, q, criteria).Filtered)
		return header, rows, nil

	case export.ModuleEmployees:
		employees, err := db.ListEmployees(database)
		if err != nil {
			return nil, nil, err
		}
		departments, err := db.ListDepartments(database)
		if err != nil {
			return nil, nil, err
		}
		header, rows := export.EmployeeRows(table.Derive(employees, q, criteria).Filtered,
			export.DepartmentNameIndex(departments))
		return header, rows, nil

	case export.ModuleForms:
		forms, err := db.ListForms(database)
		if err != nil {
			return nil, nil, err
		}
		header, rows := export.FormRows(table.Derive(forms, q, criteria).Filtered)
		return header, rows, nil
	}

	return nil, nil, fmt.Errorf("invalid module: %s", module)
}

// ExportLogCommand prints the export audit trail
func ExportLogCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export-log", flag.ExitOnError)
	module := fs.String("module", "", "Filter by module")
	limit := fs.Int("limit", 50, "Maximum entries")
	fs.Parse(args)

	entries, err := db.ListExportLog(database, *module, *limit)
	if err != nil {
		return fmt.Errorf("failed to list export log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No exports recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tMODULE\tFILE\tREASON")
	fmt.Fprintln(w, "----\t------\t----\t------")

	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			entry.CreatedAt.Format("2006-01-02 15:04"), entry.Module, entry.FileName, entry.Reason)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d export(s)\n", len(entries))
	return nil
}
