// ABOUTME: Employee onboarding MCP tool handlers
// ABOUTME: Implements add/find/update/delete employee tools with department lookups
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

type EmployeeHandlers struct {
	db  *sql.DB
	box *outbox.Store
}

func NewEmployeeHandlers(database *sql.DB, box *outbox.Store) *EmployeeHandlers {
	return &EmployeeHandlers{db: database, box: box}
}

type AddEmployeeInput struct {
	Name       string `json:"name" jsonschema:"Employee name (required)"`
	Email      string `json:"email" jsonschema:"Work email (required)"`
	Phone      string `json:"phone,omitempty" jsonschema:"Phone number"`
	Department string `json:"department,omitempty" jsonschema:"Department name, created on first use"`
	Role       string `json:"role,omitempty" jsonschema:"Job role"`
	JoinedAt   string `json:"joined_at,omitempty" jsonschema:"Joining date, YYYY-MM-DD"`
}

type EmployeeOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
	Status     string `json:"status"`
	JoinedAt   string `json:"joined_at,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func (h *EmployeeHandlers) AddEmployee(_ context.Context, request *mcp.CallToolRequest, input AddEmployeeInput) (*mcp.CallToolResult, EmployeeOutput, error) {
	if input.Name == "" {
		return nil, EmployeeOutput{}, fmt.Errorf("name is required")
	}
	if input.Email == "" {
		return nil, EmployeeOutput{}, fmt.Errorf("email is required")
	}

	emp := &models.Employee{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Role:  input.Role,
	}

	if input.Department != "" {
		departmentID, err := db.EnsureDepartment(h.db, input.Department)
		if err != nil {
			return nil, EmployeeOutput{}, fmt.Errorf("failed to resolve department: %w", err)
		}
		emp.DepartmentID = &departmentID
	}

	if input.JoinedAt != "" {
		joinedAt, err := time.Parse("2006-01-02", input.JoinedAt)
		if err != nil {
			return nil, EmployeeOutput{}, fmt.Errorf("invalid joined_at: %w", err)
		}
		emp.JoinedAt = &joinedAt
	}

	if err := db.CreateEmployee(h.db, emp); err != nil {
		return nil, EmployeeOutput{}, fmt.Errorf("failed to create employee: %w", err)
	}

	notify(h.box, "Employee added", emp.Name)
	if emp.JoinedAt != nil {
		schedule(h.box, "Employee joins: "+emp.Name, "employees", *emp.JoinedAt)
	}

	return nil, h.employeeToOutput(emp), nil
}

type FindEmployeesInput struct {
	Search   string   `json:"search,omitempty" jsonschema:"Free-text search"`
	Status   []string `json:"status,omitempty" jsonschema:"Accepted statuses"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page index"`
	PageSize int      `json:"page_size,omitempty" jsonschema:"Page size (default 10)"`
}

type FindEmployeesOutput struct {
	Employees []EmployeeOutput `json:"employees"`
	Total     int              `json:"total"`
}

func (h *EmployeeHandlers) FindEmployees(_ context.Context, request *mcp.CallToolRequest, input FindEmployeesInput) (*mcp.CallToolResult, FindEmployeesOutput, error) {
	employees, err := db.ListEmployees(h.db)
	if err != nil {
		return nil, FindEmployeesOutput{}, fmt.Errorf("failed to list employees: %w", err)
	}

	criteria := table.Criteria{Fields: map[string][]string{}}
	if len(input.Status) > 0 {
		criteria.Fields[models.DimStatus] = input.Status
	}

	result := table.Derive(employees, table.Query{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   input.Search,
	}, criteria)

	out := make([]EmployeeOutput, len(result.Page))
	for i, e := range result.Page {
		out[i] = h.employeeToOutput(&e)
	}

	return nil, FindEmployeesOutput{Employees: out, Total: result.Total}, nil
}

type UpdateEmployeeInput struct {
	EmployeeID string `json:"employee_id" jsonschema:"UUID of the employee to update"`
	Name       string `json:"name,omitempty" jsonschema:"Updated name"`
	Email      string `json:"email,omitempty" jsonschema:"Updated email"`
	Phone      string `json:"phone,omitempty" jsonschema:"Updated phone"`
	Department string `json:"department,omitempty" jsonschema:"Updated department name"`
	Role       string `json:"role,omitempty" jsonschema:"Updated role"`
	Status     string `json:"status,omitempty" jsonschema:"invited, onboarding, active, or exited"`
}

func (h *EmployeeHandlers) UpdateEmployee(_ context.Context, request *mcp.CallToolRequest, input UpdateEmployeeInput) (*mcp.CallToolResult, EmployeeOutput, error) {
	if input.EmployeeID == "" {
		return nil, EmployeeOutput{}, fmt.Errorf("employee_id is required")
	}

	employeeID, err := uuid.Parse(input.EmployeeID)
	if err != nil {
		return nil, EmployeeOutput{}, fmt.Errorf("invalid employee_id: %w", err)
	}

	emp, err := db.GetEmployee(h.db, employeeID)
	if err != nil {
		return nil, EmployeeOutput{}, fmt.Errorf("employee not found: %w", err)
	}
	if emp == nil {
		return nil, EmployeeOutput{}, fmt.Errorf("employee not found: %s", employeeID)
	}

	if input.Name != "" {
		emp.Name = input.Name
	}
	if input.Email != "" {
		emp.Email = input.Email
	}
	if input.Phone != "" {
		emp.Phone = input.Phone
	}
	if input.Department != "" {
		departmentID, err := db.EnsureDepartment(h.db, input.Department)
		if err != nil {
			return nil, EmployeeOutput{}, fmt.Errorf("failed to resolve department: %w", err)
		}
		emp.DepartmentID = &departmentID
	}
	if input.Role != "" {
		emp.Role = input.Role
	}
	if input.Status != "" {
		emp.Status = input.Status
	}

	if err := db.UpdateEmployee(h.db, employeeID, emp); err != nil {
		return nil, EmployeeOutput{}, fmt.Errorf("failed to update employee: %w", err)
	}

	notify(h.box, "Employee updated", emp.Name)

	return nil, h.employeeToOutput(emp), nil
}

type DeleteEmployeeInput struct {
	EmployeeID string `json:"employee_id" jsonschema:"UUID of the employee to delete"`
}

func (h *EmployeeHandlers) DeleteEmployee(_ context.Context, request *mcp.CallToolRequest, input DeleteEmployeeInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.EmployeeID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("employee_id is required")
	}

	employeeID, err := uuid.Parse(input.EmployeeID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("invalid employee_id: %w", err)
	}

	if err := db.DeleteEmployee(h.db, employeeID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete employee: %w", err)
	}

	notify(h.box, "Employee deleted", employeeID.String())

	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted employee: %s", employeeID),
	}, nil
}

func (h *EmployeeHandlers) employeeToOutput(emp *models.Employee) EmployeeOutput {
	out := EmployeeOutput{
		ID:        emp.ID.String(),
		Name:      emp.Name,
		Email:     emp.Email,
		Phone:     emp.Phone,
		Role:      emp.Role,
		Status:    emp.Status,
		CreatedAt: emp.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: emp.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if emp.JoinedAt != nil {
		out.JoinedAt = emp.JoinedAt.Format("2006-01-02")
	}
	if emp.DepartmentID != nil {
		departments, err := db.ListDepartments(h.db)
		if err == nil {
			for _, d := range departments {
				if d.ID == *emp.DepartmentID {
					out.Department = d.Name
					break
				}
			}
		}
	}
	return out
}
