// ABOUTME: Form document types and the nested/wire codec
// ABOUTME: Maps sections/questions/options to the flattened section JSON column and back
package formdoc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opsdeck/opsdeck/models"
)

// QuestionType is the editing-shape question kind.
type QuestionType string

const (
	TypeText                 QuestionType = "Text"
	TypeParagraph            QuestionType = "Paragraph"
	TypeRadio                QuestionType = "Radio"
	TypeCheckbox             QuestionType = "Checkbox"
	TypeSingleChoiceDropdown QuestionType = "SingleChoiceDropdown"
	TypeMultiChoiceDropdown  QuestionType = "MultiChoiceDropdown"
	TypeDate                 QuestionType = "Date"
	TypeNumber               QuestionType = "Number"
)

// typeToWire is the fixed lookup between editing-shape types and the wire
// strings stored inside the section JSON. wireToType is its inverse; unknown
// wire values decode to TypeText.
var typeToWire = map[QuestionType]string{
	TypeText:                 "text",
	TypeParagraph:            "textarea",
	TypeRadio:                "radio",
	TypeCheckbox:             "checkbox",
	TypeSingleChoiceDropdown: "select",
	TypeMultiChoiceDropdown:  "multiselect",
	TypeDate:                 "date",
	TypeNumber:               "number",
}

var wireToType = func() map[string]QuestionType {
	m := make(map[string]QuestionType, len(typeToWire))
	for k, v := range typeToWire {
		m[v] = k
	}
	return m
}()

// HasOptions reports whether a question type carries an option list.
func HasOptions(t QuestionType) bool {
	switch t {
	case TypeRadio, TypeCheckbox, TypeSingleChoiceDropdown, TypeMultiChoiceDropdown:
		return true
	}
	return false
}

// ValidType reports whether t is a known editing-shape type.
func ValidType(t QuestionType) bool {
	_, ok := typeToWire[t]
	return ok
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Question struct {
	Text     string       `json:"question_text"`
	Type     QuestionType `json:"question_type"`
	Required bool         `json:"is_required"`
	Options  []Option     `json:"options,omitempty"`
}

type Section struct {
	Title       string     `json:"section_title"`
	Description string     `json:"section_description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Document is the nested editing shape of a built form.
type Document struct {
	Name          string    `json:"form_name"`
	Status        string    `json:"status"`
	DepartmentIDs []int64   `json:"department_ids"`
	CategoryIDs   []int64   `json:"category_ids"`
	Title         string    `json:"form_title"`
	Description   string    `json:"form_description,omitempty"`
	Sections      []Section `json:"sections"`
}

// Wire shape persisted inside the section column. Option labels and values
// are comma-joined parallel strings, paired by position; both are null when a
// question has no options.
type wireQuestion struct {
	Question       string  `json:"question"`
	QuestionType   string  `json:"question_type"`
	Required       bool    `json:"required"`
	QuestionLabel  *string `json:"question_label"`
	QuestionOption *string `json:"question_option"`
}

type wireSection struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []wireQuestion `json:"questions"`
}

// New returns the create-mode seed: one empty section with one empty question.
func New() *Document {
	return &Document{
		Status: models.StatusDraft,
		Sections: []Section{
			{
				Questions: []Question{
					{Type: TypeText},
				},
			},
		},
	}
}

// CloneSeed deep-copies a source document for clone mode: the name gets a
// copy marker and submission always creates a new record.
func CloneSeed(src *Document) *Document {
	clone := &Document{
		Name:          src.Name + " (Copy)",
		Status:        src.Status,
		DepartmentIDs: append([]int64(nil), src.DepartmentIDs...),
		CategoryIDs:   append([]int64(nil), src.CategoryIDs...),
		Title:         src.Title,
		Description:   src.Description,
		Sections:      make([]Section, len(src.Sections)),
	}
	for i, sec := range src.Sections {
		clone.Sections[i] = copySection(sec)
	}
	return clone
}

// CloneQuestion deep-copies the question at index i into the same section,
// immediately after the original. Out-of-range indexes are ignored.
func CloneQuestion(sec *Section, i int) {
	if i < 0 || i >= len(sec.Questions) {
		return
	}
	dup := copyQuestion(sec.Questions[i])
	sec.Questions = append(sec.Questions, Question{})
	copy(sec.Questions[i+2:], sec.Questions[i+1:])
	sec.Questions[i+1] = dup
}

func copySection(sec Section) Section {
	out := Section{Title: sec.Title, Description: sec.Description}
	out.Questions = make([]Question, len(sec.Questions))
	for i, q := range sec.Questions {
		out.Questions[i] = copyQuestion(q)
	}
	return out
}

func copyQuestion(q Question) Question {
	out := q
	out.Options = append([]Option(nil), q.Options...)
	return out
}

// EncodeSections serializes the nested sections into the wire JSON string.
func EncodeSections(sections []Section) (string, error) {
	wire := make([]wireSection, len(sections))
	for i, sec := range sections {
		ws := wireSection{
			Title:       sec.Title,
			Description: sec.Description,
			Questions:   make([]wireQuestion, len(sec.Questions)),
		}
		for j, q := range sec.Questions {
			wireType, ok := typeToWire[q.Type]
			if !ok {
				return "", fmt.Errorf("unknown question type: %s", q.Type)
			}
			wq := wireQuestion{
				Question:     q.Text,
				QuestionType: wireType,
				Required:     q.Required,
			}
			if len(q.Options) > 0 {
				labels := make([]string, len(q.Options))
				values := make([]string, len(q.Options))
				for k, opt := range q.Options {
					labels[k] = opt.Label
					values[k] = opt.Value
				}
				label := strings.Join(labels, ",")
				value := strings.Join(values, ",")
				wq.QuestionLabel = &label
				wq.QuestionOption = &value
			}
			ws.Questions[j] = wq
		}
		wire[i] = ws
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSections parses the wire JSON string back into nested sections.
// Malformed JSON yields an empty slice and an error so callers can fall back
// to a safe default instead of crashing.
func DecodeSections(raw string) ([]Section, error) {
	if strings.TrimSpace(raw) == "" {
		return []Section{}, nil
	}

	var wire []wireSection
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return []Section{}, fmt.Errorf("malformed section payload: %w", err)
	}

	sections := make([]Section, len(wire))
	for i, ws := range wire {
		sec := Section{
			Title:       ws.Title,
			Description: ws.Description,
			Questions:   make([]Question, len(ws.Questions)),
		}
		for j, wq := range ws.Questions {
			qType, ok := wireToType[wq.QuestionType]
			if !ok {
				qType = TypeText
			}
			sec.Questions[j] = Question{
				Text:     wq.Question,
				Type:     qType,
				Required: wq.Required,
				Options:  zipOptions(wq.QuestionLabel, wq.QuestionOption),
			}
		}
		sections[i] = sec
	}

	return sections, nil
}

// zipOptions rebuilds label/value pairs from the comma-joined parallel
// strings. Pairing is positional; a length mismatch keeps only the pairs both
// sides agree on.
func zipOptions(label, value *string) []Option {
	if label == nil || value == nil || *label == "" {
		return nil
	}

	labels := strings.Split(*label, ",")
	values := strings.Split(*value, ",")
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}

	options := make([]Option, n)
	for i := 0; i < n; i++ {
		options[i] = Option{Label: labels[i], Value: values[i]}
	}
	return options
}

// ToRecord flattens a document into the persisted wire shape.
func ToRecord(doc *Document) (*models.FormRecord, error) {
	section, err := EncodeSections(doc.Sections)
	if err != nil {
		return nil, err
	}

	departmentIDs, err := json.Marshal(idsOrEmpty(doc.DepartmentIDs))
	if err != nil {
		return nil, err
	}
	categoryIDs, err := json.Marshal(idsOrEmpty(doc.CategoryIDs))
	if err != nil {
		return nil, err
	}

	return &models.FormRecord{
		Name:          doc.Name,
		Title:         doc.Title,
		Description:   doc.Description,
		Status:        doc.Status,
		DepartmentIDs: string(departmentIDs),
		CategoryIDs:   string(categoryIDs),
		Section:       section,
	}, nil
}

// FromRecord reconstructs the nested editing shape from a persisted record.
func FromRecord(rec *models.FormRecord) (*Document, error) {
	sections, err := DecodeSections(rec.Section)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Name:        rec.Name,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		Sections:    sections,
	}

	if err := json.Unmarshal([]byte(orEmptyArray(rec.DepartmentIDs)), &doc.DepartmentIDs); err != nil {
		return nil, fmt.Errorf("malformed department_ids: %w", err)
	}
	if err := json.Unmarshal([]byte(orEmptyArray(rec.CategoryIDs)), &doc.CategoryIDs); err != nil {
		return nil, fmt.Errorf("malformed category_ids: %w", err)
	}

	return doc, nil
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func orEmptyArray(s string) string {
	if strings.TrimSpace(s) == "" {
		return "[]"
	}
	return s
}
