// ABOUTME: Tests for list view rendering
// ABOUTME: Verifies each entity tab renders and filters cycle correctly
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opsdeck/opsdeck/db"
	"github.com/opsdeck/opsdeck/models"
)

func setupTestModel(t *testing.T) Model {
	t.Helper()
	database, err := db.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return NewModel(database)
}

func TestListViewRendering(t *testing.T) {
	m := setupTestModel(t)

	output := m.View()
	if output == "" {
		t.Fatal("List view should not be empty")
	}
	if !strings.Contains(output, "OPSDECK") {
		t.Error("List view should contain the title")
	}
}

func TestListViewAllEntities(t *testing.T) {
	m := setupTestModel(t)

	for et := EntityType(0); et < entityCount; et++ {
		m.entityType = et
		output := m.View()
		if output == "" {
			t.Errorf("Entity %d rendered an empty view", et)
		}
	}
}

func TestListViewWithRows(t *testing.T) {
	m := setupTestModel(t)

	company := &models.Company{Name: "Acme Rendering Co"}
	if err := db.CreateCompany(m.db, company); err != nil {
		t.Fatalf("CreateCompany failed: %v", err)
	}

	m.entityType = EntityCompanies
	output := m.View()
	if !strings.Contains(output, "Acme Rendering Co") {
		t.Error("Company row should appear in the view")
	}
}

func TestTabSwitchesEntity(t *testing.T) {
	m := setupTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next := updated.(Model)
	if next.entityType != EntityCompanies {
		t.Errorf("Expected the companies tab after tab, got %d", next.entityType)
	}
	if next.page != 1 || next.statusIdx != 0 {
		t.Error("Tab switch should reset page and filter")
	}
}

func TestStatusFilterCycles(t *testing.T) {
	m := setupTestModel(t)
	m.entityType = EntityCompanies

	updated, _ := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	next := updated.(Model)
	if next.statusIdx != 1 {
		t.Errorf("Expected the filter index to advance, got %d", next.statusIdx)
	}

	// Cycling through every choice wraps back to no filter
	cycle := len(statusCycles[EntityCompanies])
	for i := 1; i < cycle; i++ {
		step, _ := next.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
		next = step.(Model)
	}
	if next.statusIdx != 0 {
		t.Errorf("Expected the filter to wrap to 0, got %d", next.statusIdx)
	}
}

func TestSearchMode(t *testing.T) {
	m := setupTestModel(t)

	updated, _ := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	next := updated.(Model)
	if !next.searching {
		t.Error("Slash should enter search mode")
	}

	escaped, _ := next.handleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})
	final := escaped.(Model)
	if final.searching {
		t.Error("Escape should leave search mode")
	}
}

func TestQuitKey(t *testing.T) {
	m := setupTestModel(t)

	_, cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected the quit command")
	}
}
