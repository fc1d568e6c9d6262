// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive full-screen browser over back-office records
package tui

import (
	"database/sql"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/table"
)

// EntityType represents the type of entity being viewed
type EntityType int

const (
	EntityDocuments EntityType = iota
	EntityCompanies
	EntityCategories
	EntityTemplates
	EntityEmployees
	EntityForms

	entityCount
)

// statusCycles lists the filter values the "f" key steps through per tab.
// The leading empty string means no filter.
var statusCycles = map[EntityType][]string{
	EntityDocuments:  {"", models.DocumentStatusPending, models.DocumentStatusInProgress, models.DocumentStatusCompleted, models.DocumentStatusRejected},
	EntityCompanies:  {"", models.StatusActive, models.StatusInactive},
	EntityCategories: {"", models.StatusActive, models.StatusInactive},
	EntityTemplates:  {"", models.StatusActive, models.StatusInactive, models.StatusDraft},
	EntityEmployees:  {"", models.EmployeeStatusInvited, models.EmployeeStatusOnboarding, models.EmployeeStatusActive, models.EmployeeStatusExited},
	EntityForms:      {"", models.StatusActive, models.StatusInactive, models.StatusDraft},
}

// Model is the main bubbletea model
type Model struct {
	db         *sql.DB
	entityType EntityType

	// List view state
	selectedRow int
	page        int
	statusIdx   int
	searchInput textinput.Model
	searching   bool

	// UI state
	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(db *sql.DB) Model {
	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 100

	return Model{
		db:          db,
		entityType:  EntityDocuments,
		page:        1,
		searchInput: search,
		width:       80,
		height:      24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	return m.renderListView()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.entityType = (m.entityType + 1) % entityCount
		m.selectedRow = 0
		m.page = 1
		m.statusIdx = 0
	case "shift+tab":
		m.entityType = (m.entityType + entityCount - 1) % entityCount
		m.selectedRow = 0
		m.page = 1
		m.statusIdx = 0
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		m.selectedRow++
	case "left", "h":
		if m.page > 1 {
			m.page--
			m.selectedRow = 0
		}
	case "right", "l":
		m.page++
		m.selectedRow = 0
	case "f":
		m.statusIdx = (m.statusIdx + 1) % len(statusCycles[m.entityType])
		m.page = 1
		m.selectedRow = 0
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "esc":
		m.searchInput.SetValue("")
		m.page = 1
		m.selectedRow = 0
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.page = 1
		m.selectedRow = 0
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.page = 1
		m.selectedRow = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// listQuery builds the table query for the current page and search box.
func (m Model) listQuery() table.Query {
	return table.Query{
		Page:     m.page,
		PageSize: table.DefaultPageSize,
		Search:   m.searchInput.Value(),
	}
}

// listCriteria builds the status filter for the current tab.
func (m Model) listCriteria() table.Criteria {
	criteria := table.Criteria{Fields: map[string][]string{}}
	if status := statusCycles[m.entityType][m.statusIdx]; status != "" {
		criteria.Fields[models.DimStatus] = []string{status}
	}
	return criteria
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
