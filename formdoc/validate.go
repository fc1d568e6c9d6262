// ABOUTME: Form document validation and edit-mode resolution
// ABOUTME: Enforces the builder's schema rules before a document is persisted
package formdoc

import (
	"fmt"
	"strings"
)

// Mode selects how the builder seeds and submits a document.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
	ModePreview
	ModeClone
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	case ModePreview:
		return "preview"
	case ModeClone:
		return "clone"
	}
	return "unknown"
}

// ResolveMode derives the builder mode from the routing parameters: a target
// id means edit, preview flips edit to read-only, and a clone source wins
// over both because its submission always creates a new record.
func ResolveMode(id string, preview bool, cloneFrom string) Mode {
	if cloneFrom != "" {
		return ModeClone
	}
	if id == "" {
		return ModeCreate
	}
	if preview {
		return ModePreview
	}
	return ModeEdit
}

// Validate checks the full builder schema: at least one department and one
// category, a non-empty name and title, every section titled with at least
// one question, every question with text and a valid type, and options
// present on choice-type questions.
func Validate(doc *Document) error {
	var problems []string

	if strings.TrimSpace(doc.Name) == "" {
		problems = append(problems, "form name is required")
	}
	if strings.TrimSpace(doc.Title) == "" {
		problems = append(problems, "form title is required")
	}
	if len(doc.DepartmentIDs) == 0 {
		problems = append(problems, "at least one department is required")
	}
	if len(doc.CategoryIDs) == 0 {
		problems = append(problems, "at least one category is required")
	}
	if len(doc.Sections) == 0 {
		problems = append(problems, "at least one section is required")
	}

	for i, sec := range doc.Sections {
		if strings.TrimSpace(sec.Title) == "" {
			problems = append(problems, fmt.Sprintf("section %d: title is required", i+1))
		}
		if len(sec.Questions) == 0 {
			problems = append(problems, fmt.Sprintf("section %d: at least one question is required", i+1))
		}
		for j, q := range sec.Questions {
			if strings.TrimSpace(q.Text) == "" {
				problems = append(problems, fmt.Sprintf("section %d question %d: text is required", i+1, j+1))
			}
			if !ValidType(q.Type) {
				problems = append(problems, fmt.Sprintf("section %d question %d: invalid type %q", i+1, j+1, q.Type))
			} else if HasOptions(q.Type) && len(q.Options) == 0 {
				problems = append(problems, fmt.Sprintf("section %d question %d: options are required for %s", i+1, j+1, q.Type))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid form: %s", strings.Join(problems, "; "))
	}
	return nil
}
