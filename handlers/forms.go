// ABOUTME: Form builder MCP tool handlers
// ABOUTME: Implements add/get/find/update/clone/delete form tools over the wire codec
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/formdoc"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/table"
)

type FormHandlers struct {
	db  *sql.DB
	box *outbox.Store
}

func NewFormHandlers(database *sql.DB, box *outbox.Store) *FormHandlers {
	return &FormHandlers{db: database, box: box}
}

type SaveFormInput struct {
	FormName        string            `json:"form_name" jsonschema:"Form name (required)"`
	FormTitle       string            `json:"form_title" jsonschema:"Form title (required)"`
	FormDescription string            `json:"form_description,omitempty" jsonschema:"Form description"`
	Status          string            `json:"status,omitempty" jsonschema:"active, inactive, or draft (default draft)"`
	DepartmentIDs   []int64           `json:"department_ids" jsonschema:"Department ids (at least one)"`
	CategoryIDs     []int64           `json:"category_ids" jsonschema:"Category ids (at least one)"`
	Sections        []formdoc.Section `json:"sections" jsonschema:"Nested sections with questions and options"`
}

type FormOutput struct {
	ID       string           `json:"id"`
	Document formdoc.Document `json:"document"`
	// Section carries the flattened wire payload as persisted.
	Section   string `json:"section"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func inputToDocument(input SaveFormInput) *formdoc.Document {
	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	return &formdoc.Document{
		Name:          input.FormName,
		Status:        status,
		DepartmentIDs: input.DepartmentIDs,
		CategoryIDs:   input.CategoryIDs,
		Title:         input.FormTitle,
		Description:   input.FormDescription,
		Sections:      input.Sections,
	}
}

func (h *FormHandlers) AddForm(_ context.Context, request *mcp.CallToolRequest, input SaveFormInput) (*mcp.CallToolResult, FormOutput, error) {
	doc := inputToDocument(input)

	if err := formdoc.Validate(doc); err != nil {
		return nil, FormOutput{}, err
	}

	record, err := formdoc.ToRecord(doc)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to encode form: %w", err)
	}

	if err := db.CreateForm(h.db, record); err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to create form: %w", err)
	}

	notify(h.box, "Form created", record.Name)

	return nil, recordToFormOutput(record, doc), nil
}

type GetFormInput struct {
	FormID string `json:"form_id" jsonschema:"UUID of the form"`
}

func (h *FormHandlers) GetForm(_ context.Context, request *mcp.CallToolRequest, input GetFormInput) (*mcp.CallToolResult, FormOutput, error) {
	if input.FormID == "" {
		return nil, FormOutput{}, fmt.Errorf("form_id is required")
	}

	formID, err := uuid.Parse(input.FormID)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("invalid form_id: %w", err)
	}

	record, err := db.GetForm(h.db, formID)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("form not found: %w", err)
	}
	if record == nil {
		return nil, FormOutput{}, fmt.Errorf("form not found: %s", formID)
	}

	doc, err := formdoc.FromRecord(record)
	if err != nil {
		// Malformed stored payloads decode to an empty document rather than
		// failing the whole view.
		doc = formdoc.New()
		doc.Name = record.Name
		doc.Title = record.Title
		doc.Status = record.Status
	}

	return nil, recordToFormOutput(record, doc), nil
}

type FindFormsInput struct {
	Search   string   `json:"search,omitempty" jsonschema:"Free-text search"`
	Status   []string `json:"status,omitempty" jsonschema:"Accepted statuses"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page index"`
	PageSize int      `json:"page_size,omitempty" jsonschema:"Page size (default 10)"`
}

type FormListItem struct {
	ID        string `json:"id"`
	FormName  string `json:"form_name"`
	FormTitle string `json:"form_title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type FindFormsOutput struct {
	Forms []FormListItem `json:"forms"`
	Total int            `json:"total"`
}

func (h *FormHandlers) FindForms(_ context.Context, request *mcp.CallToolRequest, input FindFormsInput) (*mcp.CallToolResult, FindFormsOutput, error) {
	forms, err := db.ListForms(h.db)
	if err != nil {
		return nil, FindFormsOutput{}, fmt.Errorf("failed to list forms: %w", err)
	}

	criteria := table.Criteria{Fields: map[string][]string{}}
	if len(input.Status) > 0 {
		criteria.Fields[models.DimStatus] = input.Status
	}

	result := table.Derive(forms, table.Query{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}, criteria)

	out := make([]FormListItem, len(result.Page))
	for i, f := range result.Page {
		out[i] = FormListItem{
			ID:        f.ID.String(),
			FormName:  f.Name,
			FormTitle: f.Title,
			Status:    f.Status,
			CreatedAt: f.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return nil, FindFormsOutput{Forms: out, Total: result.Total}, nil
}

type UpdateFormInput struct {
	FormID string `json:"form_id" jsonschema:"UUID of the form to update"`
	SaveFormInput
}

func (h *FormHandlers) UpdateForm(_ context.Context, request *mcp.CallToolRequest, input UpdateFormInput) (*mcp.CallToolResult, FormOutput, error) {
	if input.FormID == "" {
		return nil, FormOutput{}, fmt.Errorf("form_id is required")
	}

	formID, err := uuid.Parse(input.FormID)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("invalid form_id: %w", err)
	}

	existing, err := db.GetForm(h.db, formID)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("form not found: %w", err)
	}
	if existing == nil {
		return nil, FormOutput{}, fmt.Errorf("form not found: %s", formID)
	}

	doc := inputToDocument(input.SaveFormInput)

	if err := formdoc.Validate(doc); err != nil {
		return nil, FormOutput{}, err
	}

	record, err := formdoc.ToRecord(doc)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to encode form: %w", err)
	}
	record.ID = formID
	record.CreatedAt = existing.CreatedAt

	if err := db.UpdateForm(h.db, formID, record); err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to update form: %w", err)
	}

	notify(h.box, "Form updated", record.Name)

	return nil, recordToFormOutput(record, doc), nil
}

type CloneFormInput struct {
	SourceID string `json:"source_id" jsonschema:"UUID of the form to clone"`
}

// CloneForm seeds a new form from a source record: a copy marker is appended
// to the name and submission always creates, never updates.
func (h *FormHandlers) CloneForm(_ context.Context, request *mcp.CallToolRequest, input CloneFormInput) (*mcp.CallToolResult, FormOutput, error) {
	if input.SourceID == "" {
		return nil, FormOutput{}, fmt.Errorf("source_id is required")
	}

	sourceID, err := uuid.Parse(input.SourceID)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("invalid source_id: %w", err)
	}

	source, err := db.GetForm(h.db, sourceID)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("form not found: %w", err)
	}
	if source == nil {
		return nil, FormOutput{}, fmt.Errorf("form not found: %s", sourceID)
	}

	sourceDoc, err := formdoc.FromRecord(source)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to decode source form: %w", err)
	}

	clone := formdoc.CloneSeed(sourceDoc)

	record, err := formdoc.ToRecord(clone)
	if err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to encode clone: %w", err)
	}

	if err := db.CreateForm(h.db, record); err != nil {
		return nil, FormOutput{}, fmt.Errorf("failed to create clone: %w", err)
	}

	notify(h.box, "Form cloned", record.Name)

	return nil, recordToFormOutput(record, clone), nil
}

type DeleteFormInput struct {
	FormID string `json:"form_id" jsonschema:"UUID of the form to delete"`
}

func (h *FormHandlers) DeleteForm(_ context.Context, request *mcp.CallToolRequest, input DeleteFormInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.FormID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("form_id is required")
	}

	formID, err := uuid.Parse(input.FormID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid form_id: %w", err)
	}

	if err := db.DeleteForm(h.db, formID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete form: %w", err)
	}

	notify(h.box, "Form deleted", formID.String())

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted form: %s", formID),
	}, nil
}

func recordToFormOutput(record *models.FormRecord, doc *formdoc.Document) FormOutput {
	return FormOutput{
		ID:        record.ID.String(),
		Document:  *doc,
		Section:   record.Section,
		CreatedAt: record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: record.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
