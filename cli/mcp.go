// ABOUTME: MCP server subcommand
// ABOUTME: Exposes back-office operations as MCP tools on stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/handlers"
	"github.com/opsdeck/opsdeck/outbox"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(db *sql.DB, box *outbox.Store, exportDir string) error {
	log.Println("Starting back-office MCP server...")

	companyHandlers := handlers.NewCompanyHandlers(db, box)
	documentHandlers := handlers.NewDocumentHandlers(db, box)
	categoryHandlers := handlers.NewCategoryHandlers(db, box)
	templateHandlers := handlers.NewTemplateHandlers(db, box)
	employeeHandlers := handlers.NewEmployeeHandlers(db, box)
	formHandlers := handlers.NewFormHandlers(db, box)
	queryHandlers := handlers.NewQueryHandlers(db)
	exportHandlers := handlers.NewExportHandlers(db, exportDir)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "opsdeck",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_company",
		Description: "Register a new company account",
	}, companyHandlers.AddCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_companies",
		Description: "Search for companies by name or email",
	}, companyHandlers.FindCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_company",
		Description: "Update an existing company's details",
	}, companyHandlers.UpdateCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_company",
		Description: "Delete a company that has no account documents",
	}, companyHandlers.DeleteCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_company_members",
		Description: "List the members of a company for dependent selection",
	}, companyHandlers.ListCompanyMembers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_document",
		Description: "Attach a verification document to a company account",
	}, documentHandlers.AddDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List account documents with search, status and type filters, and paging",
	}, documentHandlers.ListDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "document_summary",
		Description: "Per-status counts of account documents",
	}, documentHandlers.DocumentSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_document",
		Description: "Update an account document's fields and status",
	}, documentHandlers.UpdateDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_documents",
		Description: "Delete one or more account documents by ID",
	}, documentHandlers.DeleteDocuments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_category",
		Description: "Create a product category, optionally under a parent",
	}, categoryHandlers.AddCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_categories",
		Description: "Search product categories by name",
	}, categoryHandlers.FindCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_category",
		Description: "Update a product category or move it in the tree",
	}, categoryHandlers.UpdateCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_category",
		Description: "Delete a product category; its children move to the root level",
	}, categoryHandlers.DeleteCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_email_template",
		Description: "Create a reusable email template",
	}, templateHandlers.AddTemplate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_email_templates",
		Description: "Search email templates by name or subject",
	}, templateHandlers.FindTemplates)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_email_template",
		Description: "Update an email template's content or status",
	}, templateHandlers.UpdateTemplate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_email_template",
		Description: "Delete an email template",
	}, templateHandlers.DeleteTemplate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_employee",
		Description: "Add an employee; the department is created on first use",
	}, employeeHandlers.AddEmployee)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_employees",
		Description: "Search employees by name or email",
	}, employeeHandlers.FindEmployees)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_employee",
		Description: "Update an employee's details, department, or status",
	}, employeeHandlers.UpdateEmployee)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_employee",
		Description: "Delete an employee record",
	}, employeeHandlers.DeleteEmployee)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_form",
		Description: "Create a form from nested sections and questions",
	}, formHandlers.AddForm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_form",
		Description: "Load a form as nested sections and questions",
	}, formHandlers.GetForm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_forms",
		Description: "Search forms by name or title",
	}, formHandlers.FindForms)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_form",
		Description: "Replace a form's sections and metadata",
	}, formHandlers.UpdateForm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clone_form",
		Description: "Copy an existing form into a new record with a copy marker",
	}, formHandlers.CloneForm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_form",
		Description: "Delete a form",
	}, formHandlers.DeleteForm)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_records",
		Description: "Universal list query with search, filters, sorting, and paging across all entity types",
	}, queryHandlers.Query)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_csv",
		Description: "Write an audited CSV export of a module; a justification reason is required",
	}, exportHandlers.ExportModule)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
