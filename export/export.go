// ABOUTME: CSV export pipeline with audited justification
// ABOUTME: Guards empty datasets, logs the reason first, then writes BOM-prefixed RFC4180 CSV
package export

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
)

// ErrNothingToExport is returned for an empty dataset: no file is produced.
var ErrNothingToExport = errors.New("nothing to export")

// Reason length bounds for the export justification.
const (
	ReasonMinLen = 10
	ReasonMaxLen = 255
)

const dateLayout = "Jan 02, 2006"

// ValidateReason checks the justification field's length bounds. Bounds
// count characters, not bytes, so multibyte reasons measure correctly.
func ValidateReason(reason string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(reason))
	if length < ReasonMinLen {
		return fmt.Errorf("reason must be at least %d characters", ReasonMinLen)
	}
	if length > ReasonMaxLen {
		return fmt.Errorf("reason must be at most %d characters", ReasonMaxLen)
	}
	return nil
}

// FileName builds the export file name for a module.
func FileName(module string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", module, now.Format("2006-01-02"))
}

// Exporter couples CSV generation to the audit log so every export is
// attributable. Audit failure aborts the export before any CSV exists.
type Exporter struct {
	db *sql.DB
}

func NewExporter(database *sql.DB) *Exporter {
	return &Exporter{db: database}
}

// Export validates the reason, writes the audit record, then streams the CSV
// to w: UTF-8 BOM first, then the header, then the rows. It returns the file
// name the caller should deliver the bytes under.
func (e *Exporter) Export(module, reason string, header []string, rows [][]string, w io.Writer) (string, error) {
	if len(rows) == 0 {
		return "", ErrNothingToExport
	}
	if err := ValidateReason(reason); err != nil {
		return "", err
	}

	fileName := FileName(module, time.Now().UTC())

	entry := &models.ExportLog{
		Module:   module,
		Reason:   strings.TrimSpace(reason),
		FileName: fileName,
	}
	if err := db.CreateExportLog(e.db, entry); err != nil {
		return "", fmt.Errorf("failed to record export reason: %w", err)
	}

	if err := WriteCSV(w, header, rows); err != nil {
		return "", err
	}

	return fileName, nil
}

// WriteCSV writes a BOM-prefixed, RFC4180-quoted CSV. The BOM keeps
// spreadsheet tools from misreading UTF-8.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Cell substitutes "N/A" for empty display values.
func Cell(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// DateCell formats a date for display, "N/A" when absent.
func DateCell(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format(dateLayout)
}

// StatusCell uppercases a status string for display.
func StatusCell(s string) string {
	if s == "" {
		return "N/A"
	}
	return strings.ToUpper(s)
}
