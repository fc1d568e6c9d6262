// ABOUTME: Account document MCP tool handlers
// ABOUTME: Implements add/list/update/delete document tools plus the status summary
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/table"
)

type DocumentHandlers struct {
	db  *sql.DB
	box *outbox.Store
}

func NewDocumentHandlers(database *sql.DB, box *outbox.Store) *DocumentHandlers {
	return &DocumentHandlers{db: database, box: box}
}

type AddDocumentInput struct {
	CompanyID    string `json:"company_id" jsonschema:"UUID of the owning company (required)"`
	MemberID     string `json:"member_id,omitempty" jsonschema:"UUID of the responsible member; must belong to the company"`
	DocumentType string `json:"document_type" jsonschema:"contract, invoice, certificate, identity, or other"`
	DocumentNo   string `json:"document_no,omitempty" jsonschema:"External document number"`
	Status       string `json:"status,omitempty" jsonschema:"pending, in_progress, completed, or rejected (default pending)"`
	Remarks      string `json:"remarks,omitempty" jsonschema:"Free-text remarks"`
	IssuedAt     string `json:"issued_at,omitempty" jsonschema:"Issue date, YYYY-MM-DD"`
}

type DocumentOutput struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	MemberID     string `json:"member_id,omitempty"`
	DocumentType string `json:"document_type"`
	DocumentNo   string `json:"document_no,omitempty"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks,omitempty"`
	IssuedAt     string `json:"issued_at,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (h *DocumentHandlers) AddDocument(_ context.Context, request *mcp.CallToolRequest, input AddDocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	if input.CompanyID == "" {
		return nil, DocumentOutput{}, fmt.Errorf("company_id is required")
	}
	if input.DocumentType == "" {
		return nil, DocumentOutput{}, fmt.Errorf("document_type is required")
	}

	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("invalid company_id: %w", err)
	}

	company, err := db.GetCompany(h.db, companyID)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("failed to check company: %w", err)
	}
	if company == nil {
		return nil, DocumentOutput{}, fmt.Errorf("company not found: %s", companyID)
	}

	doc := &models.AccountDocument{
		CompanyID:    companyID,
		DocumentType: input.DocumentType,
		DocumentNo:   input.DocumentNo,
		Status:       input.Status,
		Remarks:      input.Remarks,
	}

	if input.MemberID != "" {
		memberID, err := uuid.Parse(input.MemberID)
		if err != nil {
			return nil, DocumentOutput{}, fmt.Errorf("invalid member_id: %w", err)
		}
		member, err := db.GetMember(h.db, memberID)
		if err != nil {
			return nil, DocumentOutput{}, fmt.Errorf("failed to check member: %w", err)
		}
		if member == nil || member.CompanyID != companyID {
			return nil, DocumentOutput{}, fmt.Errorf("member %s does not belong to company %s", memberID, companyID)
		}
		doc.MemberID = &memberID
	}

	if input.IssuedAt != "" {
		issuedAt, err := time.Parse("2006-01-02", input.IssuedAt)
		if err != nil {
			return nil, DocumentOutput{}, fmt.Errorf("invalid issued_at: %w", err)
		}
		doc.IssuedAt = &issuedAt
	}

	if err := db.CreateAccountDocument(h.db, doc); err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("failed to create document: %w", err)
	}

	notify(h.box, "Document created", doc.ID.String())
	if doc.IssuedAt != nil {
		label := doc.DocumentNo
		if label == "" {
			label = doc.ID.String()
		}
		schedule(h.box, "Document issued: "+label, "account_documents", *doc.IssuedAt)
	}

	return nil, documentToOutput(doc), nil
}

type ListDocumentsInput struct {
	Search   string   `json:"search,omitempty" jsonschema:"Free-text search across all fields"`
	Status   []string `json:"status,omitempty" jsonschema:"Accepted statuses (OR within, AND with other filters)"`
	Type     []string `json:"type,omitempty" jsonschema:"Accepted document types"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page index"`
	PageSize int      `json:"page_size,omitempty" jsonschema:"Page size (default 10)"`
	SortKey  string   `json:"sort_key,omitempty" jsonschema:"Sort column"`
	SortDir  string   `json:"sort_dir,omitempty" jsonschema:"asc or desc"`
}

type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Total     int              `json:"total"`
}

func (h *DocumentHandlers) ListDocuments(_ context.Context, request *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := db.ListAccountDocuments(h.db)
	if err != nil {
		return nil, ListDocumentsOutput{}, fmt.Errorf("failed to list documents: %w", err)
	}

	criteria := table.Criteria{Fields: map[string][]string{}}
	if len(input.Status) > 0 {
		criteria.Fields[models.DimStatus] = input.Status
	}
	if len(input.Type) > 0 {
		criteria.Fields[models.DimType] = input.Type
	}

	result := table.Derive(docs, table.Query{
		Page:     input.Page,
		PageSize: input.PageSize,
		Sort:     table.Sort{Key: input.SortKey, Order: input.SortDir},
		Search:   input.Search,
	}, criteria)

	out := make([]DocumentOutput, len(result.Page))
	for i, d := range result.Page {
		out[i] = documentToOutput(&d)
	}

	return nil, ListDocumentsOutput{Documents: out, Total: result.Total}, nil
}

type DocumentSummaryOutput struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// DocumentSummary feeds the status summary cards; clicking a card applies the
// matching status filter client-side, so these counts must agree with
// ListDocuments filtered by one status.
func (h *DocumentHandlers) DocumentSummary(_ context.Context, request *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, DocumentSummaryOutput, error) {
	counts, err := db.CountDocumentsByStatus(h.db)
	if err != nil {
		return nil, DocumentSummaryOutput{}, fmt.Errorf("failed to count documents: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return nil, DocumentSummaryOutput{Counts: counts, Total: total}, nil
}

type UpdateDocumentInput struct {
	DocumentID   string `json:"document_id" jsonschema:"UUID of the document to update"`
	CompanyID    string `json:"company_id,omitempty" jsonschema:"New owning company; clears the member unless it belongs there"`
	MemberID     string `json:"member_id,omitempty" jsonschema:"New responsible member"`
	DocumentType string `json:"document_type,omitempty" jsonschema:"Updated type"`
	DocumentNo   string `json:"document_no,omitempty" jsonschema:"Updated number"`
	Status       string `json:"status,omitempty" jsonschema:"Updated status"`
	Remarks      string `json:"remarks,omitempty" jsonschema:"Updated remarks"`
}

func (h *DocumentHandlers) UpdateDocument(_ context.Context, request *mcp.CallToolRequest, input UpdateDocumentInput) (*mcp.CallToolResult, DocumentOutput, error) {
	if input.DocumentID == "" {
		return nil, DocumentOutput{}, fmt.Errorf("document_id is required")
	}

	docID, err := uuid.Parse(input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("invalid document_id: %w", err)
	}

	doc, err := db.GetAccountDocument(h.db, docID)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("document not found: %w", err)
	}
	if doc == nil {
		return nil, DocumentOutput{}, fmt.Errorf("document not found: %s", docID)
	}

	if input.CompanyID != "" {
		companyID, err := uuid.Parse(input.CompanyID)
		if err != nil {
			return nil, DocumentOutput{}, fmt.Errorf("invalid company_id: %w", err)
		}
		doc.CompanyID = companyID
	}
	if input.MemberID != "" {
		memberID, err := uuid.Parse(input.MemberID)
		if err != nil {
			return nil, DocumentOutput{}, fmt.Errorf("invalid member_id: %w", err)
		}
		doc.MemberID = &memberID
	}
	if input.DocumentType != "" {
		doc.DocumentType = input.DocumentType
	}
	if input.DocumentNo != "" {
		doc.DocumentNo = input.DocumentNo
	}
	if input.Status != "" {
		doc.Status = input.Status
	}
	if input.Remarks != "" {
		doc.Remarks = input.Remarks
	}

	// UpdateAccountDocument clears a member that no longer belongs to the
	// document's company.
	if err := db.UpdateAccountDocument(h.db, docID, doc); err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("failed to update document: %w", err)
	}

	notify(h.box, "Document updated", doc.ID.String())

	return nil, documentToOutput(doc), nil
}

type DeleteDocumentsInput struct {
	DocumentIDs []string `json:"document_ids" jsonschema:"UUIDs of the documents to delete"`
}

func (h *DocumentHandlers) DeleteDocuments(_ context.Context, request *mcp.CallToolRequest, input DeleteDocumentsInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if len(input.DocumentIDs) == 0 {
		return nil, DeleteOutput{}, fmt.Errorf("document_ids is required")
	}

	ids := make([]uuid.UUID, len(input.DocumentIDs))
	for i, raw := range input.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, DeleteOutput{}, fmt.Errorf("invalid document id %q: %w", raw, err)
		}
		ids[i] = id
	}

	if err := db.DeleteAccountDocuments(h.db, ids); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete documents: %w", err)
	}

	notify(h.box, "Documents deleted", fmt.Sprintf("%d document(s)", len(ids)))

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted %d document(s)", len(ids)),
	}, nil
}

func documentToOutput(doc *models.AccountDocument) DocumentOutput {
	out := DocumentOutput{
		ID:           doc.ID.String(),
		CompanyID:    doc.CompanyID.String(),
		DocumentType: doc.DocumentType,
		DocumentNo:   doc.DocumentNo,
		Status:       doc.Status,
		Remarks:      doc.Remarks,
		CreatedAt:    doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:    doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if doc.MemberID != nil {
		out.MemberID = doc.MemberID.String()
	}
	if doc.IssuedAt != nil {
		out.IssuedAt = doc.IssuedAt.Format("2006-01-02")
	}
	return out
}
