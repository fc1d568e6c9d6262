// ABOUTME: Form builder CLI commands
// ABOUTME: List, inspect, clone, and delete built forms
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/formdoc"
)

// ListFormsCommand lists built forms
func ListFormsCommand(database *sql.DB, args []string) error {
	forms, err := db.ListForms(database)
	if err != nil {
		return fmt.Errorf("failed to list forms: %w", err)
	}

	if len(forms) == 0 {
		fmt.Println("No forms found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tSTATUS\tID")
	fmt.Fprintln(w, "----\t-----\t------\t--")

	for _, form := range forms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			form.Name, form.Title, form.Status, form.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d form(s)\n", len(forms))
	return nil
}

// ShowFormCommand prints a form's sections and questions
func ShowFormCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("show-form", flag.ExitOnError)
	id := fs.String("id", "", "Form ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	formID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid form ID: %w", err)
	}

	rec, err := db.GetForm(database, formID)
	if err != nil {
		return fmt.Errorf("failed to get form: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("form not found: %s", *id)
	}

	doc, err := formdoc.FromRecord(rec)
	if err != nil {
		return fmt.Errorf("form %s has a corrupt section payload: %w", *id, err)
	}

	fmt.Printf("%s — %s [%s]\n", doc.Name, doc.Title, doc.Status)
	if doc.Description != "" {
		fmt.Printf("%s\n", doc.Description)
	}

	for i, sec := range doc.Sections {
		fmt.Printf("\nSection %d: %s\n", i+1, sec.Title)
		for j, q := range sec.Questions {
			required := ""
			if q.Required {
				required = " (required)"
			}
			fmt.Printf("  %d. [%s] %s%s\n", j+1, q.Type, q.Text, required)
			for _, opt := range q.Options {
				fmt.Printf("       - %s = %s\n", opt.Label, opt.Value)
			}
		}
	}

	return nil
}

// CloneFormCommand copies a form into a new draft record
func CloneFormCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("clone-form", flag.ExitOnError)
	id := fs.String("id", "", "Source form ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	formID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid form ID: %w", err)
	}

	src, err := db.GetForm(database, formID)
	if err != nil {
		return fmt.Errorf("failed to get form: %w", err)
	}
	if src == nil {
		return fmt.Errorf("form not found: %s", *id)
	}

	doc, err := formdoc.FromRecord(src)
	if err != nil {
		return fmt.Errorf("form %s has a corrupt section payload: %w", *id, err)
	}

	rec, err := formdoc.ToRecord(formdoc.CloneSeed(doc))
	if err != nil {
		return fmt.Errorf("failed to encode clone: %w", err)
	}

	if err := db.CreateForm(database, rec); err != nil {
		return fmt.Errorf("failed to create clone: %w", err)
	}

	fmt.Printf("✓ Form cloned: %s (ID: %s)\n", rec.Name, rec.ID)
	return nil
}

// DeleteFormCommand deletes a form
func DeleteFormCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-form", flag.ExitOnError)
	id := fs.String("id", "", "Form ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	formID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid form ID: %w", err)
	}

	if err := db.DeleteForm(database, formID); err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}

	fmt.Printf("✓ Form deleted: %s\n", *id)
	return nil
}
