// ABOUTME: List-view projections of the entity types
// ABOUTME: SearchText, FieldValue, SortValue, and CreatedTime feed the table package
package models

import (
	"strconv"
	"strings"
	"time"
)

// Filter dimension names shared by the API, CLI, and TUI.
const (
	DimStatus     = "status"
	DimType       = "type"
	DimCompany    = "company_id"
	DimParent     = "parent_id"
	DimCategory   = "category"
	DimDepartment = "department_id"
	DimCountry    = "country"
)

func joinFields(fields ...string) string {
	return strings.Join(fields, " ")
}

func timeField(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func (c Company) SearchText() string {
	return joinFields(c.Name, c.OwnerName, c.Email, c.Phone, c.Country, c.Status)
}

func (c Company) FieldValue(dim string) string {
	switch dim {
	case DimStatus:
		return c.Status
	case DimCountry:
		return c.Country
	}
	return ""
}

func (c Company) SortValue(key string) (any, bool) {
	switch key {
	case "name":
		return c.Name, true
	case "owner_name":
		return c.OwnerName, true
	case "country":
		return c.Country, true
	case "status":
		return c.Status, true
	case "created_at":
		return c.CreatedAt, true
	case "updated_at":
		return c.UpdatedAt, true
	}
	return nil, false
}

func (c Company) CreatedTime() time.Time { return c.CreatedAt }

func (d AccountDocument) SearchText() string {
	member := ""
	if d.MemberID != nil {
		member = d.MemberID.String()
	}
	return joinFields(d.DocumentType, d.DocumentNo, d.Status, d.Remarks,
		d.CompanyID.String(), member, timeField(d.IssuedAt))
}

func (d AccountDocument) FieldValue(dim string) string {
	switch dim {
	case DimStatus:
		return d.Status
	case DimType:
		return d.DocumentType
	case DimCompany:
		return d.CompanyID.String()
	}
	return ""
}

func (d AccountDocument) SortValue(key string) (any, bool) {
	switch key {
	case "document_type":
		return d.DocumentType, true
	case "document_no":
		return d.DocumentNo, true
	case "status":
		return d.Status, true
	case "issued_at":
		if d.IssuedAt == nil {
			return time.Time{}, true
		}
		return *d.IssuedAt, true
	case "created_at":
		return d.CreatedAt, true
	case "updated_at":
		return d.UpdatedAt, true
	}
	return nil, false
}

func (d AccountDocument) CreatedTime() time.Time { return d.CreatedAt }

func (c ProductCategory) SearchText() string {
	parent := ""
	if c.ParentID != nil {
		parent = c.ParentID.String()
	}
	return joinFields(c.Name, c.Description, c.Status, parent)
}

func (c ProductCategory) FieldValue(dim string) string {
	switch dim {
	case DimStatus:
		return c.Status
	case DimParent:
		if c.ParentID == nil {
			return ""
		}
		return c.ParentID.String()
	}
	return ""
}

func (c ProductCategory) SortValue(key string) (any, bool) {
	switch key {
	case "name":
		return c.Name, true
	case "status":
		return c.Status, true
	case "created_at":
		return c.CreatedAt, true
	case "updated_at":
		return c.UpdatedAt, true
	}
	return nil, false
}

func (c ProductCategory) CreatedTime() time.Time { return c.CreatedAt }

func (t EmailTemplate) SearchText() string {
	return joinFields(t.Name, t.Category, t.Subject, t.Body, t.Status)
}

func (t EmailTemplate) FieldValue(dim string) string {
	switch dim {
	case DimStatus:
		return t.Status
	case DimCategory:
		return t.Category
	}
	return ""
}

func (t EmailTemplate) SortValue(key string) (any, bool) {
	switch key {
	case "name":
		return t.Name, true
	case "category":
		return t.Category, true
	case "subject":
		return t.Subject, true
	case "status":
		return t.Status, true
	case "created_at":
		return t.CreatedAt, true
	case "updated_at":
		return t.UpdatedAt, true
	}
	return nil, false
}

func (t EmailTemplate) CreatedTime() time.Time { return t.CreatedAt }

func (e Employee) SearchText() string {
	return joinFields(e.Name, e.Email, e.Phone, e.Role, e.Status)
}

func (e Employee) FieldValue(dim string) string {
	switch dim {
	case DimStatus:
		return e.Status
	case DimDepartment:
		if e.DepartmentID == nil {
			return ""
		}
		return strconv.FormatInt(*e.DepartmentID, 10)
	}
	return ""
}

func (e Employee) SortValue(key string) (any, bool) {
	switch key {
	case "name":
		return e.Name, true
	case "email":
		return e.Email, true
	case "role":
		return e.Role, true
	case "status":
		return e.Status, true
	case "joined_at":
		if e.JoinedAt == nil {
			return time.Time{}, true
		}
		return *e.JoinedAt, true
	case "created_at":
		return e.CreatedAt, true
	case "updated_at":
		return e.UpdatedAt, true
	}
	return nil, false
}

func (e Employee) CreatedTime() time.Time { return e.CreatedAt }

func (f FormRecord) SearchText() string {
	return joinFields(f.Name, f.Title, f.Description, f.Status)
}

func (f FormRecord) FieldValue(dim string) string {
	if dim == DimStatus {
		return f.Status
	}
	return ""
}

func (f FormRecord) SortValue(key string) (any, bool) {
	switch key {
	case "form_name":
		return f.Name, true
	case "form_title":
		return f.Title, true
	case "status":
		return f.Status, true
	case "created_at":
		return f.CreatedAt, true
	case "updated_at":
		return f.UpdatedAt, true
	}
	return nil, false
}

func (f FormRecord) CreatedTime() time.Time { return f.CreatedAt }
