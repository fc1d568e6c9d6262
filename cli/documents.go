// ABOUTME: Account document CLI commands
// ABOUTME: Add, list, update, and bulk-delete verification documents
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/table"
)

// AddDocumentCommand adds an account document for a company
func AddDocumentCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-document", flag.ExitOnError)
	companyID := fs.String("company", "", "Company ID (required)")
	docType := fs.String("type", models.DocumentTypeOther, "Document type (contract, invoice, certificate, identity, other)")
	docNo := fs.String("number", "", "Document number")
	status := fs.String("status", models.DocumentStatusPending, "Status (pending, in_progress, completed, rejected)")
	filePath := fs.String("file", "", "Path to the document file")
	remarks := fs.String("remarks", "", "Remarks")
	issuedAt := fs.String("issued", "", "Issue date (YYYY-MM-DD)")
	fs.Parse(args)

	if *companyID == "" {
		return fmt.Errorf("--company is required")
	}
	cid, err := uuid.Parse(*companyID)
	if err != nil {
		return fmt.Errorf("invalid company ID: %w", err)
	}

	doc := &models.AccountDocument{
		CompanyID:    cid,
		DocumentType: *docType,
		DocumentNo:   *docNo,
		Status:       *status,
		FilePath:     *filePath,
		Remarks:      *remarks,
	}

	if *issuedAt != "" {
		issued, err := time.Parse("2006-01-02", *issuedAt)
		if err != nil {
			return fmt.Errorf("invalid issue date (want YYYY-MM-DD): %w", err)
		}
		doc.IssuedAt = &issued
	}

	if err := db.CreateAccountDocument(database, doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	fmt.Printf("✓ Document created: %s %s (ID: %s)\n", doc.DocumentType, doc.DocumentNo, doc.ID)
	return nil
}

// ListDocumentsCommand lists account documents with search, filter, and paging
func ListDocumentsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-documents", flag.ExitOnError)
	query := fs.String("query", "", "Search document numbers and remarks")
	status := fs.String("status", "", "Filter by status")
	docType := fs.String("type", "", "Filter by document type")
	page := fs.Int("page", 1, "Page number")
	pageSize := fs.Int("page-size", table.DefaultPageSize, "Rows per page")
	fs.Parse(args)

	docs, err := db.ListAccountDocuments(database)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	criteria := table.Criteria{Fields: map[string][]string{}}
	if *status != "" {
		criteria.Fields[models.DimStatus] = strings.Split(*status, ",")
	}
	if *docType != "" {
		criteria.Fields[models.DimType] = strings.Split(*docType, ",")
	}

	result := table.Derive(docs, table.Query{
		Page:     *page,
		PageSize: *pageSize,
		Search:   *query,
	}, criteria)

	if len(result.Page) == 0 {
		fmt.Println("No documents found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNUMBER\tSTATUS\tISSUED\tID")
	fmt.Fprintln(w, "----\t------\t------\t------\t--")

	for _, doc := range result.Page {
		number := doc.DocumentNo
		if number == "" {
			number = "-"
		}
		issued := "-"
		if doc.IssuedAt != nil {
			issued = doc.IssuedAt.Format("2006-01-02")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			doc.DocumentType, number, doc.Status, issued, doc.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nPage %d: showing %d of %d document(s)\n", *page, len(result.Page), result.Total)
	return nil
}

// DocumentSummaryCommand prints per-status document counts
func DocumentSummaryCommand(database *sql.DB, args []string) error {
	counts, err := db.CountDocumentsByStatus(database)
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tCOUNT")
	fmt.Fprintln(w, "------\t-----")

	total := 0
	for _, status := range []string{
		models.DocumentStatusPending,
		models.DocumentStatusInProgress,
		models.DocumentStatusCompleted,
		models.DocumentStatusRejected,
	} {
		fmt.Fprintf(w, "%s\t%d\n", status, counts[status])
		total += counts[status]
	}
	w.Flush()

	fmt.Printf("\nTotal: %d document(s)\n", total)
	return nil
}

// UpdateDocumentCommand updates fields on an account document
func UpdateDocumentCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-document", flag.ExitOnError)
	id := fs.String("id", "", "Document ID (required)")
	status := fs.String("status", "", "New status")
	docNo := fs.String("number", "", "New document number")
	remarks := fs.String("remarks", "", "New remarks")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	docID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	doc, err := db.GetAccountDocument(database, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document not found: %s", *id)
	}

	if *status != "" {
		doc.Status = *status
	}
	if *docNo != "" {
		doc.DocumentNo = *docNo
	}
	if *remarks != "" {
		doc.Remarks = *remarks
	}

	if err := db.UpdateAccountDocument(database, docID, doc); err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	fmt.Printf("✓ Document updated: %s\n", *id)
	return nil
}

// DeleteDocumentsCommand deletes one or more documents by ID
func DeleteDocumentsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-documents", flag.ExitOnError)
	ids := fs.String("ids", "", "Comma-separated document IDs (required)")
	fs.Parse(args)

	if *ids == "" {
		return fmt.Errorf("--ids is required")
	}

	var parsed []uuid.UUID
	for _, raw := range strings.Split(*ids, ",") {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid document ID %q: %w", raw, err)
		}
		parsed = append(parsed, id)
	}

	if err := db.DeleteAccountDocuments(database, parsed); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}

	fmt.Printf("✓ Deleted %d document(s)\n", len(parsed))
	return nil
}
