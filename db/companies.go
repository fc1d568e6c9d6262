// ABOUTME: Company database operations
// ABOUTME: Handles CRUD operations and company lookups
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

var ErrNotFound = errors.New("record not found")

func CreateCompany(db *sql.DB, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	if company.Status == "" {
		company.Status = models.StatusActive
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO companies (id, name, owner_name, email, phone, country, status, certificate_path, logo_path, verified_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.OwnerName, company.Email, company.Phone, company.Country,
		company.Status, company.CertificatePath, company.LogoPath, company.VerifiedAt, company.CreatedAt, company.UpdatedAt)

	return err
}

func GetCompany(db *sql.DB, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	var ownerName, email, phone, country, certPath, logoPath sql.NullString
	var verifiedAt sql.NullTime

	err := db.QueryRow(`
		SELECT id, name, owner_name, email, phone, country, status, certificate_path, logo_path, verified_at, created_at, updated_at
		FROM companies WHERE id = ?
	`, id.String()).Scan(
		&company.ID,
		&company.Name,
		&ownerName,
		&email,
		&phone,
		&country,
		&company.Status,
		&certPath,
		&logoPath,
		&verifiedAt,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	company.OwnerName = ownerName.String
	company.Email = email.String
	company.Phone = phone.String
	company.Country = country.String
	company.CertificatePath = certPath.String
	company.LogoPath = logoPath.String
	if verifiedAt.Valid {
		company.VerifiedAt = &verifiedAt.Time
	}

	return company, nil
}

// ListCompanies returns every company, newest first. List derivation
// (search, filters, paging) happens in memory via the table package.
func ListCompanies(db *sql.DB) ([]models.Company, error) {
	rows, err := db.Query(`
		SELECT id, name, owner_name, email, phone, country, status, certificate_path, logo_path, verified_at, created_at, updated_at
		FROM companies
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCompanies(rows)
}

func FindCompanies(db *sql.DB, query string, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = 10
	}

	searchPattern := "%" + strings.ToLower(query) + "%"
	rows, err := db.Query(`
		SELECT id, name, owner_name, email, phone, country, status, certificate_path, logo_path, verified_at, created_at, updated_at
		FROM companies
		WHERE LOWER(name) LIKE ? OR LOWER(owner_name) LIKE ? OR LOWER(email) LIKE ?
		ORDER BY created_at DESC
		LIMIT ?
	`, searchPattern, searchPattern, searchPattern, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCompanies(rows)
}

func FindCompanyByName(db *sql.DB, name string) (*models.Company, error) {
	rows, err := db.Query(`
		SELECT id, name, owner_name, email, phone, country, status, certificate_path, logo_path, verified_at, created_at, updated_at
		FROM companies WHERE LOWER(name) = LOWER(?)
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies, err := scanCompanies(rows)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, nil
	}
	return &companies[0], nil
}

func UpdateCompany(db *sql.DB, id uuid.UUID, updates *models.Company) error {
	updates.UpdatedAt = time.Now().UTC()

	result, err := db.Exec(`
		UPDATE companies
		SET name = ?, owner_name = ?, email = ?, phone = ?, country = ?, status = ?, certificate_path = ?, logo_path = ?, verified_at = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.OwnerName, updates.Email, updates.Phone, updates.Country,
		updates.Status, updates.CertificatePath, updates.LogoPath, updates.VerifiedAt, updates.UpdatedAt, id.String())
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

func DeleteCompany(db *sql.DB, id uuid.UUID) error {
	// A company with account documents cannot be removed
	var docCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM account_documents WHERE company_id = ?`, id.String()).Scan(&docCount)
	if err != nil {
		return fmt.Errorf("failed to check account documents: %w", err)
	}
	if docCount > 0 {
		return fmt.Errorf("cannot delete company with %d account documents", docCount)
	}

	// Members go with their company
	if _, err := db.Exec(`DELETE FROM members WHERE company_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}

	result, err := db.Exec(`DELETE FROM companies WHERE id = ?`, id.String())
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

func scanCompanies(rows *sql.Rows) ([]models.Company, error) {
	var companies []models.Company
	for rows.Next() {
		var c models.Company
		var ownerName, email, phone, country, certPath, logoPath sql.NullString
		var verifiedAt sql.NullTime

		if err := rows.Scan(&c.ID, &c.Name, &ownerName, &email, &phone, &country, &c.Status,
			&certPath, &logoPath, &verifiedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}

		c.OwnerName = ownerName.String
		c.Email = email.String
		c.Phone = phone.String
		c.Country = country.String
		c.CertificatePath = certPath.String
		c.LogoPath = logoPath.String
		if verifiedAt.Valid {
			c.VerifiedAt = &verifiedAt.Time
		}

		companies = append(companies, c)
	}

	return companies, rows.Err()
}
