// ABOUTME: Member database operations
// ABOUTME: Members belong to a company and back the dependent-field fetch on documents
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func CreateMember(db *sql.DB, member *models.Member) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO members (id, company_id, name, email, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, member.ID.String(), member.CompanyID.String(), member.Name, member.Email, member.Role,
		member.CreatedAt, member.UpdatedAt)

	return err
}

func GetMember(db *sql.DB, id uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	var email, role sql.NullString

	err := db.QueryRow(`
		SELECT id, company_id, name, email, role, created_at, updated_at
		FROM members WHERE id = ?
	`, id.String()).Scan(
		&member.ID,
		&member.CompanyID,
		&member.Name,
		&email,
		&role,
		&member.CreatedAt,
		&member.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	member.Email = email.String
	member.Role = role.String
	return member, nil
}

// ListCompanyMembers returns the members of one company, the source of the
// dependent member picker: whenever a document's company changes, its member
// must be reselected from this set.
func ListCompanyMembers(db *sql.DB, companyID uuid.UUID) ([]models.Member, error) {
	rows, err := db.Query(`
		SELECT id, company_id, name, email, role, created_at, updated_at
		FROM members
		WHERE company_id = ?
		ORDER BY name
	`, companyID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var email, role sql.NullString
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.Name, &email, &role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Email = email.String
		m.Role = role.String
		members = append(members, m)
	}

	return members, rows.Err()
}

// ListMembers returns every member across all companies.
func ListMembers(db *sql.DB) ([]models.Member, error) {
	rows, err := db.Query(`
		SELECT id, company_id, name, email, role, created_at, updated_at
		FROM members
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var email, role sql.NullString
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.Name, &email, &role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Email = email.String
		m.Role = role.String
		members = append(members, m)
	}

	return members, rows.Err()
}

func DeleteMember(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM members WHERE id = ?`, id.String())
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
