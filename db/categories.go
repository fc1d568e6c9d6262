// ABOUTME: Product category database operations
// ABOUTME: Handles CRUD with parent re-homing on delete
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func CreateCategory(db *sql.DB, category *models.ProductCategory) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.Status == "" {
		category.Status = models.StatusActive
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	var parentID interface{}
	if category.ParentID != nil {
		parentID = category.ParentID.String()
	}

	_, err := db.Exec(`
		INSERT INTO product_categories (id, name, parent_id, description, status, icon_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, category.ID.String(), category.Name, parentID, category.Description, category.Status,
		category.IconPath, category.CreatedAt, category.UpdatedAt)

	return err
}

func GetCategory(db *sql.DB, id uuid.UUID) (*models.ProductCategory, error) {
	rows, err := db.Query(`
		SELECT id, name, parent_id, description, status, icon_path, created_at, updated_at
		FROM product_categories WHERE id = ?
	`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories, err := scanCategories(rows)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, nil
	}
	return &categories[0], nil
}

func ListCategories(db *sql.DB) ([]models.ProductCategory, error) {
	rows, err := db.Query(`
		SELECT id, name, parent_id, description, status, icon_path, created_at, updated_at
		FROM product_categories
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategories(rows)
}

func UpdateCategory(db *sql.DB, id uuid.UUID, updates *models.ProductCategory) error {
	if updates.ParentID != nil && *updates.ParentID == id {
		return fmt.Errorf("category cannot be its own parent")
	}

	updates.UpdatedAt = time.Now().UTC()

	var parentID interface{}
	if updates.ParentID != nil {
		parentID = updates.ParentID.String()
	}

	result, err := db.Exec(`
		UPDATE product_categories
		SET name = ?, parent_id = ?, description = ?, status = ?, icon_path = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, parentID, updates.Description, updates.Status, updates.IconPath,
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

// DeleteCategory removes a category and re-homes its children to the root.
func DeleteCategory(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE product_categories SET parent_id = NULL WHERE parent_id = ?`, id.String()); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to re-home child categories: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM product_categories WHERE id = ?`, id.String())
	if err != nil {
		tx.Rollback()
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if rows == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	return tx.Commit()
}

func scanCategories(rows *sql.Rows) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	for rows.Next() {
		var c models.ProductCategory
		var parentID, description, iconPath sql.NullString

		if err := rows.Scan(&c.ID, &c.Name, &parentID, &description, &c.Status, &iconPath,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		if parentID.Valid {
			if id, err := uuid.Parse(parentID.String); err == nil {
				c.ParentID = &id
			}
		}
		c.Description = description.String
		c.IconPath = iconPath.String

		categories = append(categories, c)
	}

	return categories, rows.Err()
}
