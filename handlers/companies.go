// ABOUTME: Company MCP tool handlers
// ABOUTME: Implements add_company, find_companies, update_company, delete_company tools
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
)

type CompanyHandlers struct {
	db  *sql.DB
	box *outbox.Store
}

func NewCompanyHandlers(database *sql.DB, box *outbox.Store) *CompanyHandlers {
	return &CompanyHandlers{db: database, box: box}
}

type AddCompanyInput struct {
	Name      string `json:"name" jsonschema:"Company name (required)"`
	OwnerName string `json:"owner_name,omitempty" jsonschema:"Primary owner's name"`
	Email     string `json:"email,omitempty" jsonschema:"Contact email"`
	Phone     string `json:"phone,omitempty" jsonschema:"Contact phone"`
	Country   string `json:"country,omitempty" jsonschema:"Country of registration"`
	Status    string `json:"status,omitempty" jsonschema:"active, inactive, or draft (default active)"`
}

type CompanyOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerName string `json:"owner_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *CompanyHandlers) AddCompany(_ context.Context, request *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if input.Name == "" {
		return nil, CompanyOutput{}, fmt.Errorf("name is required")
	}

	company := &models.Company{
		Name:      input.Name,
		OwnerName: input.OwnerName,
		Email:     input.Email,
		Phone:     input.Phone,
		Country:   input.Country,
		Status:    input.Status,
	}

	if err := db.CreateCompany(h.db, company); err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to create company: %w", err)
	}

	h.notify("Company created", company.Name)

	return nil, companyToOutput(company), nil
}

type FindCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name, owner, email)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *CompanyHandlers) FindCompanies(_ context.Context, request *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	companies, err := db.FindCompanies(h.db, input.Query, limit)
	if err != nil {
		return nil, FindCompaniesOutput{}, fmt.Errorf("failed to find companies: %w", err)
	}

	result := make([]CompanyOutput, len(companies))
	for i, company := range companies {
		result[i] = companyToOutput(&company)
	}

	return nil, FindCompaniesOutput{Companies: result}, nil
}

type UpdateCompanyInput struct {
	CompanyID string `json:"company_id" jsonschema:"UUID of the company to update"`
	Name      string `json:"name,omitempty" jsonschema:"Updated company name"`
	OwnerName string `json:"owner_name,omitempty" jsonschema:"Updated owner name"`
	Email     string `json:"email,omitempty" jsonschema:"Updated email"`
	Phone     string `json:"phone,omitempty" jsonschema:"Updated phone"`
	Country   string `json:"country,omitempty" jsonschema:"Updated country"`
	Status    string `json:"status,omitempty" jsonschema:"Updated status"`
}

func (h *CompanyHandlers) UpdateCompany(_ context.Context, request *mcp.CallToolRequest, input UpdateCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if input.CompanyID == "" {
		return nil, CompanyOutput{}, fmt.Errorf("company_id is required")
	}

	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("invalid company_id: %w", err)
	}

	company, err := db.GetCompany(h.db, companyID)
	if err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("company not found: %w", err)
	}
	if company == nil {
		return nil, CompanyOutput{}, fmt.Errorf("company not found: %s", companyID)
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.OwnerName != "" {
		company.OwnerName = input.OwnerName
	}
	if input.Email != "" {
		company.Email = input.Email
	}
	if input.Phone != "" {
		company.Phone = input.Phone
	}
	if input.Country != "" {
		company.Country = input.Country
	}
	if input.Status != "" {
		company.Status = input.Status
	}

	if err := db.UpdateCompany(h.db, companyID, company); err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to update company: %w", err)
	}

	h.notify("Company updated", company.Name)

	return nil, companyToOutput(company), nil
}

type DeleteCompanyInput struct {
	CompanyID string `json:"company_id" jsonschema:"UUID of the company to delete"`
}

type DeleteOutput struct {
	Message string `json:"message"`
}

func (h *CompanyHandlers) DeleteCompany(_ context.Context, request *mcp.CallToolRequest, input DeleteCompanyInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.CompanyID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("company_id is required")
	}

	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid company_id: %w", err)
	}

	if err := db.DeleteCompany(h.db, companyID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete company: %w", err)
	}

	h.notify("Company deleted", companyID.String())

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted company: %s", companyID),
	}, nil
}

type ListCompanyMembersInput struct {
	CompanyID string `json:"company_id" jsonschema:"UUID of the company"`
}

type MemberOutput struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

type ListCompanyMembersOutput struct {
	Members []MemberOutput `json:"members"`
}

// ListCompanyMembers backs the dependent member picker: whenever a document's
// company changes, the member list is re-fetched from here.
func (h *CompanyHandlers) ListCompanyMembers(_ context.Context, request *mcp.CallToolRequest, input ListCompanyMembersInput) (*mcp.CallToolResult, ListCompanyMembersOutput, error) {
	if input.CompanyID == "" {
		return nil, ListCompanyMembersOutput{}, fmt.Errorf("company_id is required")
	}

	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, ListCompanyMembersOutput{}, fmt.Errorf("invalid company_id: %w", err)
	}

	members, err := db.ListCompanyMembers(h.db, companyID)
	if err != nil {
		return nil, ListCompanyMembersOutput{}, fmt.Errorf("failed to list members: %w", err)
	}

	result := make([]MemberOutput, len(members))
	for i, m := range members {
		result[i] = MemberOutput{
			ID:        m.ID.String(),
			CompanyID: m.CompanyID.String(),
			Name:      m.Name,
			Email:     m.Email,
			Role:      m.Role,
		}
	}

	return nil, ListCompanyMembersOutput{Members: result}, nil
}

func (h *CompanyHandlers) notify(subject, body string) {
	notify(h.box, subject, body)
}

func companyToOutput(company *models.Company) CompanyOutput {
	return CompanyOutput{
		ID:        company.ID.String(),
		Name:      company.Name,
		OwnerName: company.OwnerName,
		Email:     company.Email,
		Phone:     company.Phone,
		Country:   company.Country,
		Status:    company.Status,
		CreatedAt: company.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: company.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
