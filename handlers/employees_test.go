// ABOUTME: Tests for employee MCP tool handlers
// ABOUTME: Covers creation defaults and the joining-date schedule entry
package handlers

import (
	"context"
	"testing"

	"github.com/opsdeck/opsdeck/models"
	"github.com/opsdeck/opsdeck/outbox"
)

func TestAddEmployee(t *testing.T) {
	database := setupTestDB(t)
	h := NewEmployeeHandlers(database, nil)

	_, output, err := h.AddEmployee(context.Background(), nil, AddEmployeeInput{
		Name:       "Mina Ito",
		Email:      "mina@example.com",
		Department: "Finance",
	})
	if err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	if output.Status != models.EmployeeStatusInvited {
		t.Errorf("Expected default status invited, got %s", output.Status)
	}
	if output.Department != "Finance" {
		t.Errorf("Department lost: %q", output.Department)
	}
}

func TestAddEmployeeWithJoiningDateEnqueuesSchedule(t *testing.T) {
	database := setupTestDB(t)
	box := setupTestOutbox(t)
	h := NewEmployeeHandlers(database, box)

	_, _, err := h.AddEmployee(context.Background(), nil, AddEmployeeInput{
		Name:     "Mina Ito",
		Email:    "mina@example.com",
		JoinedAt: "2024-09-02",
	})
	if err != nil {
		t.Fatalf("AddEmployee failed: %v", err)
	}

	entries, err := box.List(outbox.KindSchedule)
	if err != nil {
		t.Fatalf("List schedules failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 schedule entry, got %d", len(entries))
	}
	if got := entries[0].GetString(outbox.ScheduleFieldTitle); got != "Employee joins: Mina Ito" {
		t.Errorf("Unexpected schedule title: %q", got)
	}
	if got := entries[0].GetString(outbox.ScheduleFieldModule); got != "employees" {
		t.Errorf("Unexpected schedule module: %q", got)
	}
	when := entries[0].GetTime(outbox.ScheduleFieldEventAt)
	if when == nil || when.Format("2006-01-02") != "2024-09-02" {
		t.Errorf("Schedule event date lost: %v", when)
	}
}
