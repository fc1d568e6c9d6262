package tui

import (
	"fmt"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/table"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("OPSDECK"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.searching || m.searchInput.Value() != "" {
		s.WriteString(m.searchInput.View())
		s.WriteString("\n\n")
	}

	body, status := m.renderTable()
	s.WriteString(body)
	s.WriteString("\n")
	s.WriteString(statusLineStyle.Render(status))
	s.WriteString("\n")

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"Documents", "Companies", "Categories", "Templates", "Employees", "Forms"}
	var rendered []string

	for i, tab := range tabs {
		if EntityType(i) == m.entityType {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderTable() (string, string) {
	switch m.entityType {
	case EntityDocuments:
		return m.renderDocumentsTable()
	case EntityCompanies:
		return m.renderCompaniesTable()
	case EntityCategories:
		return m.renderCategoriesTable()
	case EntityTemplates:
		return m.renderTemplatesTable()
	case EntityEmployees:
		return m.renderEmployeesTable()
	case EntityForms:
		return m.renderFormsTable()
	}
	return "", ""
}

func (m Model) renderDocumentsTable() (string, string) {
	docs, err := db.ListAccountDocuments(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}

	result := table.Derive(docs, m.listQuery(), m.listCriteria())

	columns := []btable.Column{
		{Title: "Type", Width: 14},
		{Title: "Number", Width: 20},
		{Title: "Status", Width: 14},
		{Title: "Issued", Width: 12},
	}

	var rows []btable.Row
	for _, doc := range result.Page {
		issued := "-"
		if doc.IssuedAt != nil {
			issued = doc.IssuedAt.Format("2006-01-02")
		}
		rows = append(rows, btable.Row{doc.DocumentType, doc.DocumentNo, doc.Status, issued})
	}

	return m.finishTable(columns, rows), m.pageStatus(len(result.Page), result.Total)
}

func (m Model) renderCompaniesTable() (string, string) {
	companies, err := db.ListCompanies(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}

	result := table.Derive(companies, m.listQuery(), m.listCriteria())

	columns := []btable.Column{
		{Title: "Name", Width: 26},
		{Title: "Owner", Width: 18},
		{Title: "Country", Width: 12},
		{Title: "Status", Width: 10},
	}

	var rows []btable.Row
	for _, company := range result.Page {
		rows = append(rows, btable.Row{company.Name, company.OwnerName, company.Country, company.Status})
	}

	return m.finishTable(columns, rows), m.pageStatus(len(result.Page), result.Total)
}

func (m Model) renderCategoriesTable() (string, string) {
	categories, err := db.ListCategories(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}

	result := table.Derive(categories, m.listQuery(), m.listCriteria())

	names := make(map[string]string, len(categories))
	for _, category := range categories {
		names[category.ID.String()] = category.Name
	}

	columns := []btable.Column{
		{Title: "Name", Width: 26},
		{Title: "Parent", Width: 22},
		{Title: "Status", Width: 10},
	}

	var rows []btable.Row
	for _, category := range result.Page {
		parent := "-"
		if category.ParentID != nil {
			parent = names[category.ParentID.String()]
		}
		rows = append(rows, btable.Row{category.Name, parent, category.Status})
	}

	return m.finishTable(columns, rows), m.pageStatus(len(result.Page), result.Total)
}

func (m Model) renderTemplatesTable() (string, string) {
	templates, err := db.ListEmailTemplates(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}

	result := table.Derive(templates, m.listQuery(), m.listCriteria())

	columns := []btable.Column{
		{Title: "Name", Width: 24},
		{Title: "Category", Width: 16},
		{Title: "Subject", Width: 28},
		{Title: "Status", Width: 10},
	}

	var rows []btable.Row
	for _, tpl := range result.Page {
		rows = append(rows, btable.Row{tpl.Name, tpl.Category, tpl.Subject, tpl.Status})
	}

	return m.finishTable(columns, rows), m.pageStatus(len(result.Page), result.Total)
}

func (m Model) renderEmployeesTable() (string, string) {
	employees, err := db.ListEmployees(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}

	result := table.Derive(employees, m.listQuery(), m.listCriteria())

	departments, err := db.ListDepartments(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}
	deptNames := make(map[int64]string, len(departments))
	for _, dept := range departments {
		deptNames[dept.ID] = dept.Name
	}

	columns := []btable.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 26},
		{Title: "Department", Width: 16},
		{Title: "Status", Width: 12},
	}

	var rows []btable.Row
	for _, emp := range result.Page {
		department := "-"
		if emp.DepartmentID != nil {
			department = deptNames[*emp.DepartmentID]
		}
		rows = append(rows, btable.Row{emp.Name, emp.Email, department, emp.Status})
	}

	return m.finishTable(columns, rows), m.pageStatus(len(result.Page), result.Total)
}

func (m Model) renderFormsTable() (string, string) {
	forms, err := db.ListForms(m.db)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), ""
	}

	result := table.Derive(forms, m.listQuery(), m.listCriteria())

	columns := []btable.Column{
		{Title: "Name", Width: 26},
		{Title: "Title", Width: 28},
		{Title: "Status", Width: 10},
	}

	var rows []btable.Row
	for _, form := range result.Page {
		rows = append(rows, btable.Row{form.Name, form.Title, form.Status})
	}

	return m.finishTable(columns, rows), m.pageStatus(len(result.Page), result.Total)
}

func (m Model) finishTable(columns []btable.Column, rows []btable.Row) string {
	t := btable.New(
		btable.WithColumns(columns),
		btable.WithRows(rows),
		btable.WithFocused(true),
		btable.WithHeight(m.height-12),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) pageStatus(showing, total int) string {
	status := fmt.Sprintf("Page %d — showing %d of %d", m.page, showing, total)
	if filter := statusCycles[m.entityType][m.statusIdx]; filter != "" {
		status += fmt.Sprintf("  [status: %s]", filter)
	}
	return status
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"←/→: Page",
		"Tab: Switch tabs",
		"f: Cycle status filter",
		"/: Search",
		"Esc: Clear",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}
