// ABOUTME: Data models for back-office entities
// ABOUTME: Defines Company, Member, AccountDocument, ProductCategory, EmailTemplate, Employee, FormRecord structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	OwnerName       string     `json:"owner_name,omitempty"`
	Email           string     `json:"email,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Country         string     `json:"country,omitempty"`
	Status          string     `json:"status"`
	CertificatePath string     `json:"certificate_path,omitempty"`
	LogoPath        string     `json:"logo_path,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Member struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Department struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountDocument struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    uuid.UUID  `json:"company_id"`
	MemberID     *uuid.UUID `json:"member_id,omitempty"`
	DocumentType string     `json:"document_type"`
	DocumentNo   string     `json:"document_no,omitempty"`
	Status       string     `json:"status"`
	FilePath     string     `json:"file_path,omitempty"`
	Remarks      string     `json:"remarks,omitempty"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ProductCategory struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	IconPath    string     `json:"icon_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type EmailTemplate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Employee struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	Role         string     `json:"role,omitempty"`
	Status       string     `json:"status"`
	JoinedAt     *time.Time `json:"joined_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FormRecord is the persisted wire shape of a built form. Sections live in a
// JSON-encoded string column; DepartmentIDs and CategoryIDs are JSON-encoded
// integer arrays stored as strings. The formdoc package owns the mapping to
// and from the nested editing shape.
type FormRecord struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"form_name"`
	Title         string    `json:"form_title"`
	Description   string    `json:"form_description,omitempty"`
	Status        string    `json:"status"`
	DepartmentIDs string    `json:"department_ids"`
	CategoryIDs   string    `json:"category_ids"`
	Section       string    `json:"section"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExportLog records the justification for a CSV export before the file is produced.
type ExportLog struct {
	ID        string    `json:"id"`
	Module    string    `json:"module"`
	Reason    string    `json:"reason"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Account document statuses.
const (
	DocumentStatusPending    = "pending"
	DocumentStatusInProgress = "in_progress"
	DocumentStatusCompleted  = "completed"
	DocumentStatusRejected   = "rejected"
)

// Record statuses shared by companies, categories, templates, and forms.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
)

// Employee statuses.
const (
	EmployeeStatusInvited    = "invited"
	EmployeeStatusOnboarding = "onboarding"
	EmployeeStatusActive     = "active"
	EmployeeStatusExited     = "exited"
)

// Document types accepted on account documents.
const (
	DocumentTypeContract    = "contract"
	DocumentTypeInvoice     = "invoice"
	DocumentTypeCertificate = "certificate"
	DocumentTypeIdentity    = "identity"
	DocumentTypeOther       = "other"
)

// ValidDocumentStatus reports whether s is a known account document status.
func ValidDocumentStatus(s string) bool {
	switch s {
	case DocumentStatusPending, DocumentStatusInProgress, DocumentStatusCompleted, DocumentStatusRejected:
		return true
	}
	return false
}

// ValidDocumentType reports whether s is a known account document type.
func ValidDocumentType(s string) bool {
	switch s {
	case DocumentTypeContract, DocumentTypeInvoice, DocumentTypeCertificate, DocumentTypeIdentity, DocumentTypeOther:
		return true
	}
	return false
}
