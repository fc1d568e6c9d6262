// ABOUTME: Employee CLI commands
// ABOUTME: Manage internal staff records and departments
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
)

// AddEmployeeCommand adds an employee; the department is created on first use
func AddEmployeeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-employee", flag.ExitOnError)
	name := fs.String("name", "", "Employee name (required)")
	email := fs.String("email", "", "Employee email (required)")
	phone := fs.String("phone", "", "Phone number")
	department := fs.String("department", "", "Department name")
	role := fs.String("role", "", "Role title")
	status := fs.String("status", models.EmployeeStatusInvited, "Status (invited, onboarding, active, exited)")
	joined := fs.String("joined", "", "Joining date (YYYY-MM-DD)")
	fs.Parse(args)

	if *name == "" || *email == "" {
		return fmt.Errorf("--name and --email are required")
	}

	emp := &models.Employee{
		Name:   *name,
		Email:  *email,
		Phone:  *phone,
		Role:   *role,
		Status: *status,
	}

	if *department != "" {
		deptID, err := db.EnsureDepartment(database, *department)
		if err != nil {
			return fmt.Errorf("failed to resolve department: %w", err)
		}
		emp.DepartmentID = &deptID
	}

	if *joined != "" {
		joinedAt, err := time.Parse("2006-01-02", *joined)
		if err != nil {
			return fmt.Errorf("invalid joining date (want YYYY-MM-DD): %w", err)
		}
		emp.JoinedAt = &joinedAt
	}

	if err := db.CreateEmployee(database, emp); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	fmt.Printf("✓ Employee added: %s (ID: %s)\n", emp.Name, emp.ID)
	return nil
}

// ListEmployeesCommand lists employees with department names resolved
func ListEmployeesCommand(database *sql.DB, args []string) error {
	employees, err := db.ListEmployees(database)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	if len(employees) == 0 {
		fmt.Println("No employees found")
		return nil
	}

	departments, err := db.ListDepartments(database)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}
	deptNames := make(map[int64]string, len(departments))
	for _, dept := range departments {
		deptNames[dept.ID] = dept.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tDEPARTMENT\tSTATUS\tID")
	fmt.Fprintln(w, "----\t-----\t----------\t------\t--")

	for _, emp := range employees {
		department := "-"
		if emp.DepartmentID != nil {
			department = deptNames[*emp.DepartmentID]
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			emp.Name, emp.Email, department, emp.Status, emp.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d employee(s)\n", len(employees))
	return nil
}

// UpdateEmployeeCommand updates fields on an employee record
func UpdateEmployeeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-employee", flag.ExitOnError)
	id := fs.String("id", "", "Employee ID (required)")
	name := fs.String("name", "", "New name")
	email := fs.String("email", "", "New email")
	phone := fs.String("phone", "", "New phone")
	department := fs.String("department", "", "New department name")
	role := fs.String("role", "", "New role")
	status := fs.String("status", "", "New status")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	employeeID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid employee ID: %w", err)
	}

	emp, err := db.GetEmployee(database, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if emp == nil {
		return fmt.Errorf("employee not found: %s", *id)
	}

	if *name != "" {
		emp.Name = *name
	}
	if *email != "" {
		emp.Email = *email
	}
	if *phone != "" {
		emp.Phone = *phone
	}
	if *role != "" {
		emp.Role = *role
	}
	if *status != "" {
		emp.Status = *status
	}
	if *department != "" {
		deptID, err := db.EnsureDepartment(database, *department)
		if err != nil {
			return fmt.Errorf("failed to resolve department: %w", err)
		}
		emp.DepartmentID = &deptID
	}

	if err := db.UpdateEmployee(database, employeeID, emp); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	fmt.Printf("✓ Employee updated: %s\n", emp.Name)
	return nil
}

// DeleteEmployeeCommand removes an employee record
func DeleteEmployeeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-employee", flag.ExitOnError)
	id := fs.String("id", "", "Employee ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	employeeID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid employee ID: %w", err)
	}

	if err := db.DeleteEmployee(database, employeeID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	fmt.Printf("✓ Employee deleted: %s\n", *id)
	return nil
}

// ListDepartmentsCommand lists departments
func ListDepartmentsCommand(database *sql.DB, args []string) error {
	departments, err := db.ListDepartments(database)
	if err != nil {
		return fmt.Errorf("failed to list departments: %w", err)
	}

	if len(departments) == 0 {
		fmt.Println("No departments found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	fmt.Fprintln(w, "--\t----")
	for _, dept := range departments {
		fmt.Fprintf(w, "%d\t%s\n", dept.ID, dept.Name)
	}
	w.Flush()

	return nil
}
