// ABOUTME: Entry point for the back-office MCP server, CLI, API server, and TUI
// ABOUTME: Routes to subcommands based on arguments
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/opsdeck/opsdeck/cli"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/tui"
)

const version = "0.1.0"

func main() {
	// Optional .env for local overrides; absence is fine
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/opsdeck/opsdeck.db)")
	outboxPath := flag.String("outbox-path", "", "Outbox store path (default: ~/.local/share/opsdeck/outbox)")
	exportDir := flag.String("export-dir", ".", "Directory for CSV exports")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("opsdeck version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized: %s", finalDBPath)
		os.Exit(0)
	}

	switch command {
	case "mcp":
		box := openOutbox(*outboxPath)
		defer box.Close()

		if err := cli.MCPCommand(database, box, *exportDir); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "serve":
		box := openOutbox(*outboxPath)
		defer box.Close()

		if err := cli.ServeCommand(database, box, commandArgs); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "tui":
		p := tea.NewProgram(tui.NewModel(database), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "ops":
		if len(commandArgs) == 0 {
			fmt.Println("Error: ops requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		opsCommand := commandArgs[0]
		opsArgs := commandArgs[1:]

		if err := runOpsCommand(database, opsCommand, opsArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "outbox":
		box := openOutbox(*outboxPath)
		defer box.Close()

		if len(commandArgs) == 0 {
			fmt.Println("Error: outbox requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		outboxCommand := commandArgs[0]
		outboxArgs := commandArgs[1:]

		if err := runOutboxCommand(box, outboxCommand, outboxArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runOpsCommand(database *sql.DB, command string, args []string) error {
	switch command {
	// Company commands
	case "add-company":
		return cli.AddCompanyCommand(database, args)
	case "list-companies":
		return cli.ListCompaniesCommand(database, args)
	case "update-company":
		return cli.UpdateCompanyCommand(database, args)
	case "delete-company":
		return cli.DeleteCompanyCommand(database, args)
	case "add-member":
		return cli.AddMemberCommand(database, args)
	case "list-members":
		return cli.ListMembersCommand(database, args)

	// Document commands
	case "add-document":
		return cli.AddDocumentCommand(database, args)
	case "list-documents":
		return cli.ListDocumentsCommand(database, args)
	case "document-summary":
		return cli.DocumentSummaryCommand(database, args)
	case "update-document":
		return cli.UpdateDocumentCommand(database, args)
	case "delete-documents":
		return cli.DeleteDocumentsCommand(database, args)

	// Category commands
	case "add-category":
		return cli.AddCategoryCommand(database, args)
	case "list-categories":
		return cli.ListCategoriesCommand(database, args)
	case "update-category":
		return cli.UpdateCategoryCommand(database, args)
	case "delete-category":
		return cli.DeleteCategoryCommand(database, args)

	// Template commands
	case "add-template":
		return cli.AddTemplateCommand(database, args)
	case "list-templates":
		return cli.ListTemplatesCommand(database, args)
	case "update-template":
		return cli.UpdateTemplateCommand(database, args)
	case "delete-template":
		return cli.DeleteTemplateCommand(database, args)

	// Employee commands
	case "add-employee":
		return cli.AddEmployeeCommand(database, args)
	case "list-employees":
		return cli.ListEmployeesCommand(database, args)
	case "update-employee":
		return cli.UpdateEmployeeCommand(database, args)
	case "delete-employee":
		return cli.DeleteEmployeeCommand(database, args)
	case "list-departments":
		return cli.ListDepartmentsCommand(database, args)

	// Form commands
	case "list-forms":
		return cli.ListFormsCommand(database, args)
	case "show-form":
		return cli.ShowFormCommand(database, args)
	case "clone-form":
		return cli.CloneFormCommand(database, args)
	case "delete-form":
		return cli.DeleteFormCommand(database, args)

	// Export commands
	case "export":
		return cli.ExportCommand(database, args)
	case "export-log":
		return cli.ExportLogCommand(database, args)
	}

	return fmt.Errorf("unknown ops command: %s", command)
}

func runOutboxCommand(box *outbox.Store, command string, args []string) error {
	switch command {
	case "notifications":
		return cli.NotificationsCommand(box, args)
	case "mark-seen":
		return cli.MarkSeenCommand(box, args)
	case "add-task":
		return cli.AddTaskCommand(box, args)
	case "list-tasks":
		return cli.ListTasksCommand(box, args)
	case "add-schedule":
		return cli.AddScheduleCommand(box, args)
	case "list-schedules":
		return cli.ListSchedulesCommand(box, args)
	case "complete-task":
		return cli.CompleteTaskCommand(box, args)
	}

	return fmt.Errorf("unknown outbox command: %s", command)
}

func openOutbox(path string) *outbox.Store {
	if path == "" {
		path = filepath.Join(xdg.DataHome, "opsdeck", "outbox")
	}
	box, err := outbox.OpenStore(path)
	if err != nil {
		log.Fatalf("Failed to open outbox store: %v", err)
	}
	return box
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "opsdeck", "opsdeck.db")
}

func printUsage() {
	fmt.Printf(`opsdeck v%s - Business operations toolkit

USAGE:
  opsdeck [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/opsdeck/opsdeck.db)
  --outbox-path <path>   Outbox store path (default: ~/.local/share/opsdeck/outbox)
  --export-dir <path>    Directory for CSV exports (default: .)
  --init                 Initialize database and exit

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  serve                  Start the admin JSON API server
  tui                    Interactive terminal browser
  ops                    Record management commands
  outbox                 Notification and task commands

OPS COMMANDS:
  opsdeck ops add-company       Register a company (--name required)
  opsdeck ops list-companies    List companies (--query, --limit)
  opsdeck ops update-company    Update a company (--id required)
  opsdeck ops delete-company    Delete a company (--id required)
  opsdeck ops add-member        Add a company member (--company, --name)
  opsdeck ops list-members      List a company's members (--company)

  opsdeck ops add-document      Attach a document (--company, --type)
  opsdeck ops list-documents    List documents (--query, --status, --type, --page)
  opsdeck ops document-summary  Per-status document counts
  opsdeck ops update-document   Update a document (--id required)
  opsdeck ops delete-documents  Delete documents (--ids a,b,c)

  opsdeck ops add-category      Create a category (--name, --parent)
  opsdeck ops list-categories   List the category tree
  opsdeck ops update-category   Update a category (--id; --parent root to detach)
  opsdeck ops delete-category   Delete a category; children move to root

  opsdeck ops add-template      Create an email template (--name, --subject)
  opsdeck ops list-templates    List email templates
  opsdeck ops update-template   Update a template (--id required)
  opsdeck ops delete-template   Delete a template (--id required)

  opsdeck ops add-employee      Add an employee (--name, --email, --department)
  opsdeck ops list-employees    List employees
  opsdeck ops update-employee   Update an employee (--id required)
  opsdeck ops delete-employee   Delete an employee (--id required)
  opsdeck ops list-departments  List departments

  opsdeck ops list-forms        List built forms
  opsdeck ops show-form         Print a form's sections (--id required)
  opsdeck ops clone-form        Copy a form into a new draft (--id required)
  opsdeck ops delete-form       Delete a form (--id required)

  opsdeck ops export            Audited CSV export (--module, --reason required)
  opsdeck ops export-log        Show the export audit trail

OUTBOX COMMANDS:
  opsdeck outbox notifications  List notifications (--unseen)
  opsdeck outbox mark-seen      Mark a notification seen (--id)
  opsdeck outbox add-task       Queue a follow-up task (--title, --due)
  opsdeck outbox list-tasks     List tasks
  opsdeck outbox complete-task  Mark a task done (--id)
  opsdeck outbox add-schedule   Queue a schedule entry (--title, --module, --on)
  opsdeck outbox list-schedules List schedule entries (--module)

EXAMPLES:
  # Start the MCP server
  opsdeck mcp

  # Register a company
  opsdeck ops add-company --name "Acme, Inc." --country "US"

  # Export pending documents with a justification
  opsdeck ops export --module account_documents --status pending --reason "Monthly compliance review"

`, version)
}
