// ABOUTME: Fixed display columns per exportable module
// ABOUTME: Maps entity slices to ordered CSV header and rows
package export

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/models"
)

// Module names used in export file names and the audit log.
const (
	ModuleAccountDocuments = "account_documents"
	ModuleCompanies        = "companies"
	ModuleCategories       = "product_categories"
	ModuleEmailTemplates   = "email_templates"
	ModuleEmployees        = "employees"
	ModuleForms            = "forms"
)

func created(t time.Time) string {
	return DateCell(&t)
}

// Name indexes resolve foreign keys to display names so exported rows carry
// what a reader sees on screen, not raw ids.

func CompanyNameIndex(companies []models.Company) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}
	return names
}

func MemberNameIndex(members []models.Member) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	return names
}

func DepartmentNameIndex(departments []models.Department) map[int64]string {
	names := make(map[int64]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names
}

func CategoryNameIndex(categories []models.ProductCategory) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func CompanyRows(companies []models.Company) ([]string, [][]string) {
	header := []string{"Name", "Owner", "Email", "Phone", "Country", "Status", "Verified", "Created"}
	rows := make([][]string, len(companies))
	for i, c := range companies {
		rows[i] = []string{
			Cell(c.Name),
			Cell(c.OwnerName),
			Cell(c.Email),
			Cell(c.Phone),
			Cell(c.Country),
			StatusCell(c.Status),
			DateCell(c.VerifiedAt),
			created(c.CreatedAt),
		}
	}
	return header, rows
}

func AccountDocumentRows(docs []models.AccountDocument, companies, members map[uuid.UUID]string) ([]string, [][]string) {
	header := []string{"Document No", "Type", "Status", "Company", "Member", "Issued", "Remarks", "Created"}
	rows := make([][]string, len(docs))
	for i, d := range docs {
		member := ""
		if d.MemberID != nil {
			member = members[*d.MemberID]
		}
		rows[i] = []string{
			Cell(d.DocumentNo),
			Cell(d.DocumentType),
			StatusCell(d.Status),
			Cell(companies[d.CompanyID]),
			Cell(member),
			DateCell(d.IssuedAt),
			Cell(d.Remarks),
			created(d.CreatedAt),
		}
	}
	return header, rows
}

func CategoryRows(categories []models.ProductCategory, parents map[uuid.UUID]string) ([]string, [][]string) {
	header := []string{"Name", "Parent", "Description", "Status", "Created"}
	rows := make([][]string, len(categories))
	for i, c := range categories {
		parent := ""
		if c.ParentID != nil {
			parent = parents[*c.ParentID]
		}
		rows[i] = []string{
			Cell(c.Name),
			Cell(parent),
			Cell(c.Description),
			StatusCell(c.Status),
			created(c.CreatedAt),
		}
	}
	return header, rows
}

func EmailTemplateRows(templates []models.EmailTemplate) ([]string, [][]string) {
	header := []string{"Name", "Category", "Subject", "Status", "Created"}
	rows := make([][]string, len(templates))
	for i, t := range templates {
		rows[i] = []string{
			Cell(t.Name),
			Cell(t.Category),
			Cell(t.Subject),
			StatusCell(t.Status),
			created(t.CreatedAt),
		}
	}
	return header, rows
}

func EmployeeRows(employees []models.Employee, departments map[int64]string) ([]string, [][]string) {
	header := []string{"Name", "Email", "Phone", "Department", "Role", "Status", "Joined", "Created"}
	rows := make([][]string, len(employees))
	for i, e := range employees {
		department := ""
		if e.DepartmentID != nil {
			department = departments[*e.DepartmentID]
		}
		rows[i] = []string{
			Cell(e.Name),
			Cell(e.Email),
			Cell(e.Phone),
			Cell(department),
			Cell(e.Role),
			StatusCell(e.Status),
			DateCell(e.JoinedAt),
			created(e.CreatedAt),
		}
	}
	return header, rows
}

func FormRows(forms []models.FormRecord) ([]string, [][]string) {
	header := []string{"Name", "Title", "Status", "Departments", "Categories", "Created"}
	rows := make([][]string, len(forms))
	for i, f := range forms {
		rows[i] = []string{
			Cell(f.Name),
			Cell(f.Title),
			StatusCell(f.Status),
			Cell(f.DepartmentIDs),
			Cell(f.CategoryIDs),
			created(f.CreatedAt),
		}
	}
	return header, rows
}
