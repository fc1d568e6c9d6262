// ABOUTME: Export audit log database operations
// ABOUTME: Every CSV export records its justification here before the file exists
package db

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/opsdeck/opsdeck/models"
)

// CreateExportLog writes an audit record for an export. IDs are ULIDs so the
// log sorts lexicographically by creation time.
func CreateExportLog(db *sql.DB, entry *models.ExportLog) error {
	now := time.Now().UTC()
	if entry.ID == "" {
		entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
		entry.ID = ulid.MustNew(ulid.Timestamp(now), entropy).String()
	}
	entry.CreatedAt = now

	_, err := db.Exec(`
		INSERT INTO export_log (id, module, reason, file_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.Module, entry.Reason, entry.FileName, entry.CreatedAt)

	return err
}

// ListExportLog returns audit entries, optionally filtered by module, newest first.
func ListExportLog(db *sql.DB, module string, limit int) ([]models.ExportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error
	if module != "" {
		rows, err = db.Query(`
			SELECT id, module, reason, file_name, created_at
			FROM export_log WHERE module = ?
			ORDER BY id DESC LIMIT ?
		`, module, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, module, reason, file_name, created_at
			FROM export_log
			ORDER BY id DESC LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ExportLog
	for rows.Next() {
		var e models.ExportLog
		if err := rows.Scan(&e.ID, &e.Module, &e.Reason, &e.FileName, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
