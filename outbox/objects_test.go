// ABOUTME: Tests for outbox object constructors and field helpers
// ABOUTME: Covers notification defaults, task transitions, and typed accessors
package outbox

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	n := NewNotification("Export ready", "companies export completed")

	assert.NotEqual(t, uuid.Nil, n.ID)
	assert.Equal(t, KindNotification, n.Kind)
	assert.Equal(t, "Export ready", n.GetString(NotificationFieldSubject))
	assert.Equal(t, "companies export completed", n.GetString(NotificationFieldBody))
	assert.False(t, n.GetBool(NotificationFieldSeen))
	assert.False(t, n.CreatedAt.IsZero())
}

func TestMarkSeen(t *testing.T) {
	n := NewNotification("subject", "body")
	before := n.UpdatedAt

	time.Sleep(time.Millisecond)
	n.MarkSeen()

	assert.True(t, n.GetBool(NotificationFieldSeen))
	assert.True(t, n.UpdatedAt.After(before))
}

func TestNewSchedule(t *testing.T) {
	eventAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	s := NewSchedule("Board review", "companies", eventAt)

	assert.Equal(t, KindSchedule, s.Kind)
	assert.Equal(t, "Board review", s.GetString(ScheduleFieldTitle))
	assert.Equal(t, "companies", s.GetString(ScheduleFieldModule))

	parsed := s.GetTime(ScheduleFieldEventAt)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(eventAt))
}

func TestNewTask(t *testing.T) {
	task := NewTask("Review export log", nil)

	assert.Equal(t, KindTask, task.Kind)
	assert.Equal(t, TaskStatusTodo, task.GetString(TaskFieldStatus))
	assert.Nil(t, task.GetTime(TaskFieldDueAt))

	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	withDue := NewTask("Follow up", &due)
	parsed := withDue.GetTime(TaskFieldDueAt)
	require.NotNil(t, parsed)
	assert.True(t, parsed.Equal(due))
}

func TestTransitionStatus(t *testing.T) {
	task := NewTask("Close the books", nil)

	require.NoError(t, task.TransitionStatus(TaskStatusInProgress))
	assert.Equal(t, TaskStatusInProgress, task.GetString(TaskFieldStatus))
	assert.Nil(t, task.GetTime(TaskFieldCompletedAt))

	require.NoError(t, task.TransitionStatus(TaskStatusDone))
	assert.Equal(t, TaskStatusDone, task.GetString(TaskFieldStatus))
	assert.NotNil(t, task.GetTime(TaskFieldCompletedAt))

	// Reopening clears the completion timestamp
	require.NoError(t, task.TransitionStatus(TaskStatusTodo))
	assert.Nil(t, task.GetTime(TaskFieldCompletedAt))
}

func TestTransitionStatusInvalid(t *testing.T) {
	task := NewTask("Stay put", nil)

	err := task.TransitionStatus("paused")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task status")
	assert.Equal(t, TaskStatusTodo, task.GetString(TaskFieldStatus))
}

func TestTypedAccessorsMissingFields(t *testing.T) {
	obj := &BaseObject{Fields: map[string]interface{}{
		"count": 3,
		"when":  "not-a-timestamp",
	}}

	assert.Equal(t, "", obj.GetString("absent"))
	assert.Equal(t, "", obj.GetString("count"))
	assert.False(t, obj.GetBool("absent"))
	assert.Nil(t, obj.GetTime("when"))
}
