// ABOUTME: Email template CLI commands
// ABOUTME: Manage reusable email templates from the terminal
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

// AddTemplateCommand adds an email template
func AddTemplateCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-template", flag.ExitOnError)
	name := fs.String("name", "", "Template name (required)")
	subject := fs.String("subject", "", "Email subject (required)")
	category := fs.String("category", "", "Template category")
	body := fs.String("body", "", "Email body")
	status := fs.String("status", models.StatusDraft, "Status (active, inactive, draft)")
	fs.Parse(args)

	if *name == "" || *subject == "" {
		return fmt.Errorf("--name and --subject are required")
	}

	tpl := &models.EmailTemplate{
		Name:     *name,
		Subject:  *subject,
		Category: *category,
		Body:     *body,
		Status:   *status,
	}

	if err := db.CreateEmailTemplate(database, tpl); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	fmt.Printf("✓ Template created: %s (ID: %s)\n", tpl.Name, tpl.ID)
	return nil
}

// ListTemplatesCommand lists email templates
func ListTemplatesCommand(database *sql.DB, args []string) error {
	templates, err := db.ListEmailTemplates(database)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		fmt.Println("No templates found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tSUBJECT\tSTATUS\tID")
	fmt.Fprintln(w, "----\t--------\t-------\t------\t--")

	for _, tpl := range templates {
		category := tpl.Category
		if category == "" {
			category = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tpl.Name, category, tpl.Subject, tpl.Status, tpl.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d template(s)\n", len(templates))
	return nil
}

// UpdateTemplateCommand updates fields on an email template
func UpdateTemplateCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-template", flag.ExitOnError)
	id := fs.String("id", "", "Template ID (required)")
	name := fs.String("name", "", "New name")
	subject := fs.String("subject", "", "New subject")
	category := fs.String("category", "", "New category")
	body := fs.String("body", "", "New body")
	status := fs.String("status", "", "New status")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	templateID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid template ID: %w", err)
	}

	tpl, err := db.GetEmailTemplate(database, templateID)
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}
	if tpl == nil {
		return fmt.Errorf("template not found: %s", *id)
	}

	if *name != "" {
		tpl.Name = *name
	}
	if *subject != "" {
		tpl.Subject = *subject
	}
	if *category != "" {
		tpl.Category = *category
	}
	if *body != "" {
		tpl.Body = *body
	}
	if *status != "" {
		tpl.Status = *status
	}

	if err := db.UpdateEmailTemplate(database, templateID, tpl); err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	fmt.Printf("✓ Template updated: %s\n", tpl.Name)
	return nil
}

// DeleteTemplateCommand deletes an email template
func DeleteTemplateCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-template", flag.ExitOnError)
	id := fs.String("id", "", "Template ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	templateID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid template ID: %w", err)
	}

	if err := db.DeleteEmailTemplate(database, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	fmt.Printf("✓ Template deleted: %s\n", *id)
	return nil
}
