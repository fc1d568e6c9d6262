// ABOUTME: Email template database operations
// ABOUTME: Handles CRUD and name lookups for templates
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func CreateEmailTemplate(db *sql.DB, tpl *models.EmailTemplate) error {
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	if tpl.Status == "" {
		tpl.Status = models.StatusActive
	}
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO email_templates (id, name, category, subject, body, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tpl.ID.String(), tpl.Name, tpl.Category, tpl.Subject, tpl.Body, tpl.Status, tpl.CreatedAt, tpl.UpdatedAt)

	return err
}

func GetEmailTemplate(db *sql.DB, id uuid.UUID) (*models.EmailTemplate, error) {
	tpl := &models.EmailTemplate{}
	var category, body sql.NullString

	err := db.QueryRow(`
		SELECT id, name, category, subject, body, status, created_at, updated_at
		FROM email_templates WHERE id = ?
	`, id.String()).Scan(
		&tpl.ID,
		&tpl.Name,
		&category,
		&tpl.Subject,
		&body,
		&tpl.Status,
		&tpl.CreatedAt,
		&tpl.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tpl.Category = category.String
	tpl.Body = body.String
	return tpl, nil
}

func ListEmailTemplates(db *sql.DB) ([]models.EmailTemplate, error) {
	rows, err := db.Query(`
		SELECT id, name, category, subject, body, status, created_at, updated_at
		FROM email_templates
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.EmailTemplate
	for rows.Next() {
		var t models.EmailTemplate
		var category, body sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &category, &t.Subject, &body, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Category = category.String
		t.Body = body.String
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func UpdateEmailTemplate(db *sql.DB, id uuid.UUID, updates *models.EmailTemplate) error {
	updates.UpdatedAt = time.Now().UTC()

	result, err := db.Exec(`
		UPDATE email_templates
		SET name = ?, category = ?, subject = ?, body = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Category, updates.Subject, updates.Body, updates.Status,
		updates.UpdatedAt, id.String())
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

func DeleteEmailTemplate(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM email_templates WHERE id = ?`, id.String())
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
