// ABOUTME: Form record database operations
// ABOUTME: Stores built forms in their flattened wire shape
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func CreateForm(db *sql.DB, form *models.FormRecord) error {
	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	if form.Status == "" {
		form.Status = models.StatusDraft
	}
	if form.DepartmentIDs == "" {
		form.DepartmentIDs = "[]"
	}
	if form.CategoryIDs == "" {
		form.CategoryIDs = "[]"
	}
	if form.Section == "" {
		form.Section = "[]"
	}
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO forms (id, form_name, form_title, form_description, status, department_ids, category_ids, section, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, form.ID.String(), form.Name, form.Title, form.Description, form.Status,
		form.DepartmentIDs, form.CategoryIDs, form.Section, form.CreatedAt, form.UpdatedAt)

	return err
}

func GetForm(db *sql.DB, id uuid.UUID) (*models.FormRecord, error) {
	form := &models.FormRecord{}
	var description sql.NullString

	err := db.QueryRow(`
		SELECT id, form_name, form_title, form_description, status, department_ids, category_ids, section, created_at, updated_at
		FROM forms WHERE id = ?
	`, id.String()).Scan(
		&form.ID,
		&form.Name,
		&form.Title,
		&description,
		&form.Status,
		&form.DepartmentIDs,
		&form.CategoryIDs,
		&form.Section,
		&form.CreatedAt,
		&form.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	form.Description = description.String
	return form, nil
}

func ListForms(db *sql.DB) ([]models.FormRecord, error) {
	rows, err := db.Query(`
		SELECT id, form_name, form_title, form_description, status, department_ids, category_ids, section, created_at, updated_at
		FROM forms
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []models.FormRecord
	for rows.Next() {
		var f models.FormRecord
		var description sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &f.Title, &description, &f.Status,
			&f.DepartmentIDs, &f.CategoryIDs, &f.Section, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.Description = description.String
		forms = append(forms, f)
	}

	return forms, rows.Err()
}

func UpdateForm(db *sql.DB, id uuid.UUID, updates *models.FormRecord) error {
	updates.UpdatedAt = time.Now().UTC()

	result, err := db.Exec(`
		UPDATE forms
		SET form_name = ?, form_title = ?, form_description = ?, status = ?, department_ids = ?, category_ids = ?, section = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Title, updates.Description, updates.Status,
		updates.DepartmentIDs, updates.CategoryIDs, updates.Section, updates.UpdatedAt, id.String())
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

func DeleteForm(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM forms WHERE id = ?`, id.String())
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
