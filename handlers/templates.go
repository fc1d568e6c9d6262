// ABOUTME: Email template MCP tool handlers
// ABOUTME: Implements add/find/update/delete template tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/table"
)

type TemplateHandlers struct {
	db  *sql.DB
	box *outbox.Store
}

func NewTemplateHandlers(database *sql.DB, box *outbox.Store) *TemplateHandlers {
	return &TemplateHandlers{db: database, box: box}
}

type AddTemplateInput struct {
	Name     string `json:"name" jsonschema:"Template name (required)"`
	Category string `json:"category,omitempty" jsonschema:"Template category"`
	Subject  string `json:"subject" jsonschema:"Email subject line (required)"`
	Body     string `json:"body,omitempty" jsonschema:"Email body"`
	Status   string `json:"status,omitempty" jsonschema:"active, inactive, or draft (default active)"`
}

type TemplateOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Subject   string `json:"subject"`
	Body      string `json:"body,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *TemplateHandlers) AddTemplate(_ context.Context, request *mcp.CallToolRequest, input AddTemplateInput) (*mcp.CallToolResult, TemplateOutput, error) {
	if input.Name == "" {
		return nil, TemplateOutput{}, fmt.Errorf("name is required")
	}
	if input.Subject == "" {
		return nil, TemplateOutput{}, fmt.Errorf("subject is required")
	}

	tpl := &models.EmailTemplate{
		Name:     input.Name,
		Category: input.Category,
		Subject:  input.Subject,
		Body:     input.Body,
		Status:   input.Status,
	}

	if err := db.CreateEmailTemplate(h.db, tpl); err != nil {
		return nil, TemplateOutput{}, fmt.Errorf("failed to create template: %w", err)
	}

	notify(h.box, "Email template created", tpl.Name)

	return nil, templateToOutput(tpl), nil
}

type FindTemplatesInput struct {
	Search   string   `json:"search,omitempty" jsonschema:"Free-text search"`
	Category []string `json:"category,omitempty" jsonschema:"Accepted categories"`
	Status   []string `json:"status,omitempty" jsonschema:"Accepted statuses"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page index"`
	PageSize int      `json:"page_size,omitempty" jsonschema:"Page size (default 10)"`
}

type FindTemplatesOutput struct {
	Templates []TemplateOutput `json:"templates"`
	Total     int              `json:"total"`
}

func (h *TemplateHandlers) FindTemplates(_ context.Context, request *mcp.CallToolRequest, input FindTemplatesInput) (*mcp.CallToolResult, FindTemplatesOutput, error) {
	templates, err := db.ListEmailTemplates(h.db)
	if err != nil {
		return nil, FindTemplatesOutput{}, fmt.Errorf("failed to list templates: %w", err)
	}

	criteria := table.Criteria{Fields: map[string][]string{}}
	if len(input.Status) > 0 {
		criteria.Fields[models.DimStatus] = input.Status
	}
	if len(input.Category) > 0 {
		criteria.Fields[models.DimCategory] = input.Category
	}

	result := table.Derive(templates, table.Query{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}, criteria)

	out := make([]TemplateOutput, len(result.Page))
	for i, t := range result.Page {
		out[i] = templateToOutput(&t)
	}

	return nil, FindTemplatesOutput{Templates: out, Total: result.Total}, nil
}

type UpdateTemplateInput struct {
	TemplateID string `json:"template_id" jsonschema:"UUID of the template to update"`
	Name       string `json:"name,omitempty" jsonschema:"Updated name"`
	Category   string `json:"category,omitempty" jsonschema:"Updated category"`
	Subject    string `json:"subject,omitempty" jsonschema:"Updated subject"`
	Body       string `json:"body,omitempty" jsonschema:"Updated body"`
	Status     string `json:"status,omitempty" jsonschema:"Updated status"`
}

func (h *TemplateHandlers) UpdateTemplate(_ context.Context, request *mcp.CallToolRequest, input UpdateTemplateInput) (*mcp.CallToolResult, TemplateOutput, error) {
	if input.TemplateID == "" {
		return nil, TemplateOutput{}, fmt.Errorf("template_id is required")
	}

	templateID, err := uuid.Parse(input.TemplateID)
	if err != nil {
		return nil, TemplateOutput{}, fmt.Errorf("invalid template_id: %w", err)
	}

	tpl, err := db.GetEmailTemplate(h.db, templateID)
	if err != nil {
		return nil, TemplateOutput{}, fmt.Errorf("template not found: %w", err)
	}
	if tpl == nil {
		return nil, TemplateOutput{}, fmt.Errorf("template not found: %s", templateID)
	}

	if input.Name != "" {
		tpl.Name = input.Name
	}
	if input.Category != "" {
		tpl.Category = input.Category
	}
	if input.Subject != "" {
		tpl.Subject = input.Subject
	}
	if input.Body != "" {
		tpl.Body = input.Body
	}
	if input.Status != "" {
		tpl.Status = input.Status
	}

	if err := db.UpdateEmailTemplate(h.db, templateID, tpl); err != nil {
		return nil, TemplateOutput{}, fmt.Errorf("failed to update template: %w", err)
	}

	notify(h.box, "Email template updated", tpl.Name)

	return nil, templateToOutput(tpl), nil
}

type DeleteTemplateInput struct {
	TemplateID string `json:"template_id" jsonschema:"UUID of the template to delete"`
}

func (h *TemplateHandlers) DeleteTemplate(_ context.Context, request *mcp.CallToolRequest, input DeleteTemplateInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.TemplateID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("template_id is required")
	}

	templateID, err := uuid.Parse(input.TemplateID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid template_id: %w", err)
	}

	if err := db.DeleteEmailTemplate(h.db, templateID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete template: %w", err)
	}

	notify(h.box, "Email template deleted", templateID.String())

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted template: %s", templateID),
	}, nil
}

func templateToOutput(tpl *models.EmailTemplate) TemplateOutput {
	return TemplateOutput{
		ID:        tpl.ID.String(),
		Name:      tpl.Name,
		Category:  tpl.Category,
		Subject:   tpl.Subject,
		Body:      tpl.Body,
		Status:    tpl.Status,
		CreatedAt: tpl.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: tpl.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
