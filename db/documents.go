// ABOUTME: Account document database operations
// ABOUTME: Handles CRUD, status counts, and the company/member cascade rule
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

func CreateAccountDocument(db *sql.DB, doc *models.AccountDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.Status == "" {
		doc.Status = models.DocumentStatusPending
	}
	if !models.ValidDocumentStatus(doc.Status) {
		return fmt.Errorf("invalid document status: %s", doc.Status)
	}
	if !models.ValidDocumentType(doc.DocumentType) {
		return fmt.Errorf("invalid document type: %s", doc.DocumentType)
	}

	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	var memberID interface{}
	if doc.MemberID != nil {
		memberID = doc.MemberID.String()
	}

	_, err := db.Exec(`
		INSERT INTO account_documents (id, company_id, member_id, document_type, document_no, status, file_path, remarks, issued_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID.String(), doc.CompanyID.String(), memberID, doc.DocumentType, doc.DocumentNo,
		doc.Status, doc.FilePath, doc.Remarks, doc.IssuedAt, doc.CreatedAt, doc.UpdatedAt)

	return err
}

func GetAccountDocument(db *sql.DB, id uuid.UUID) (*models.AccountDocument, error) {
	rows, err := db.Query(`
		SELECT id, company_id, member_id, document_type, document_no, status, file_path, remarks, issued_at, created_at, updated_at
		FROM account_documents WHERE id = ?
	`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs, err := scanAccountDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// ListAccountDocuments returns every document, newest first.
func ListAccountDocuments(db *sql.DB) ([]models.AccountDocument, error) {
	rows, err := db.Query(`
		SELECT id, company_id, member_id, document_type, document_no, status, file_path, remarks, issued_at, created_at, updated_at
		FROM account_documents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAccountDocuments(rows)
}

// CountDocumentsByStatus returns status -> count for the summary cards.
func CountDocumentsByStatus(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT status, COUNT(*) FROM account_documents GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}

	return counts, rows.Err()
}

// UpdateAccountDocument persists updates. When the company changed, a member
// that does not belong to the new company is cleared rather than kept as a
// stale cross-company reference.
func UpdateAccountDocument(db *sql.DB, id uuid.UUID, updates *models.AccountDocument) error {
	if !models.ValidDocumentStatus(updates.Status) {
		return fmt.Errorf("invalid document status: %s", updates.Status)
	}
	if !models.ValidDocumentType(updates.DocumentType) {
		return fmt.Errorf("invalid document type: %s", updates.DocumentType)
	}

	if updates.MemberID != nil {
		member, err := GetMember(db, *updates.MemberID)
		if err != nil {
			return fmt.Errorf("failed to check member: %w", err)
		}
		if member == nil || member.CompanyID != updates.CompanyID {
			updates.MemberID = nil
		}
	}

	updates.UpdatedAt = time.Now().UTC()

	var memberID interface{}
	if updates.MemberID != nil {
		memberID = updates.MemberID.String()
	}

	result, err := db.Exec(`
		UPDATE account_documents
		SET company_id = ?, member_id = ?, document_type = ?, document_no = ?, status = ?, file_path = ?, remarks = ?, issued_at = ?, updated_at = ?
		WHERE id = ?
	`, updates.CompanyID.String(), memberID, updates.DocumentType, updates.DocumentNo,
		updates.Status, updates.FilePath, updates.Remarks, updates.IssuedAt, updates.UpdatedAt, id.String())
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

func DeleteAccountDocument(db *sql.DB, id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM account_documents WHERE id = ?`, id.String())
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

// DeleteAccountDocuments removes a selection of documents in one transaction.
func DeleteAccountDocuments(db *sql.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM account_documents WHERE id = ?`, id.String()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete document %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func scanAccountDocuments(rows *sql.Rows) ([]models.AccountDocument, error) {
	var docs []models.AccountDocument
	for rows.Next() {
		var d models.AccountDocument
		var memberID, documentNo, filePath, remarks sql.NullString
		var issuedAt sql.NullTime

		if err := rows.Scan(&d.ID, &d.CompanyID, &memberID, &d.DocumentType, &documentNo,
			&d.Status, &filePath, &remarks, &issuedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}

		if memberID.Valid {
			if id, err := uuid.Parse(memberID.String); err == nil {
				d.MemberID = &id
			}
		}
		d.DocumentNo = documentNo.String
		d.FilePath = filePath.String
		d.Remarks = remarks.String
		if issuedAt.Valid {
			d.IssuedAt = &issuedAt.Time
		}

		docs = append(docs, d)
	}

	return docs, rows.Err()
}
