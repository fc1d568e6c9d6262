// ABOUTME: Employee and department database operations
// ABOUTME: Handles onboarding records and the department lookup table
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func CreateEmployee(db *sql.DB, emp *models.Employee) error {
	if emp.ID == uuid.Nil {
		emp.ID = uuid.New()
	}
	if emp.Status == "" {
		emp.Status = models.EmployeeStatusInvited
	}
	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO employees (id, name, email, phone, department_id, role, status, joined_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, emp.ID.String(), emp.Name, emp.Email, emp.Phone, emp.DepartmentID, emp.Role,
		emp.Status, emp.JoinedAt, emp.CreatedAt, emp.UpdatedAt)

	return err
}

func GetEmployee(db *sql.DB, id uuid.UUID) (*models.Employee, error) {
	emp := &models.Employee{}
	var phone, role sql.NullString
	var departmentID sql.NullInt64
	var joinedAt sql.NullTime

	err := db.QueryRow(`
		SELECT id, name, email, phone, department_id, role, status, joined_at, created_at, updated_at
		FROM employees WHERE id = ?
	`, id.String()).Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&phone,
		&departmentID,
		&role,
		&emp.Status,
		&joinedAt,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	emp.Phone = phone.String
	emp.Role = role.String
	if departmentID.Valid {
		emp.DepartmentID = &departmentID.Int64
	}
	if joinedAt.Valid {
		emp.JoinedAt = &joinedAt.Time
	}

	return emp, nil
}

func ListEmployees(db *sql.DB) ([]models.Employee, error) {
	rows, err := db.Query(`
		SELECT id, name, email, phone, department_id, role, status, joined_at, created_at, updated_at
		FROM employees
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		var phone, role sql.NullString
		var departmentID sql.NullInt64
		var joinedAt sql.NullTime

		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &phone, &departmentID, &role, &e.Status,
			&joinedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}

		e.Phone = phone.String
		e.Role = role.String
		if departmentID.Valid {
			e.DepartmentID = &departmentID.Int64
		}
		if joinedAt.Valid {
			e.JoinedAt = &joinedAt.Time
		}

		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func UpdateEmployee(db *sql.DB, id uuid.UUID, updates *models.Employee) error {
	updates.UpdatedAt = time.Now().UTC()

	result, err := db.Exec(`
		UPDATE employees
		SET name = ?, email = ?, phone = ?, department_id = ?, role = ?, status = ?, joined_at = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Email, updates.Phone, updates.DepartmentID, updates.Role,
		updates.Status, updates.JoinedAt, updates.UpdatedAt, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteEmployee(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM employees WHERE id = ?`, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureDepartment returns the id of the named department, creating it on first use.
func EnsureDepartment(db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM departments WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	result, err := db.Exec(`INSERT INTO departments (name, created_at) VALUES (?, ?)`, name, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to create department: %w", err)
	}
	return result.LastInsertId()
}

func ListDepartments(db *sql.DB) ([]models.Department, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}
