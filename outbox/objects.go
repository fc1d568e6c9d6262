// ABOUTME: Side-effect record types for the outbox
// ABOUTME: Defines BaseObject plus notification, schedule, and task constructors
package outbox

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BaseObject is the shared envelope for queued side-effect records.
type BaseObject struct {
	ID        uuid.UUID              `json:"id"`
	Kind      string                 `json:"kind"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
	Fields    map[string]interface{} `json:"fields"`
}

// Object kinds.
const (
	KindNotification = "notification"
	KindSchedule     = "schedule"
	KindTask         = "task"
)

// Notification field keys.
const (
	NotificationFieldSubject = "subject"
	NotificationFieldBody    = "body"
	NotificationFieldSeen    = "seen"
)

// Schedule field keys.
const (
	ScheduleFieldTitle   = "title"
	ScheduleFieldEventAt = "eventAt"
	ScheduleFieldModule  = "module"
)

// Task field keys.
const (
	TaskFieldTitle       = "title"
	TaskFieldStatus      = "status"
	TaskFieldDueAt       = "dueAt"
	TaskFieldCompletedAt = "completedAt"
)

// Task statuses.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
	TaskStatusCancelled  = "cancelled"
)

func newBase(kind string, fields map[string]interface{}) BaseObject {
	now := time.Now().UTC()
	return BaseObject{
		ID:        uuid.New(),
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
		Fields:    fields,
	}
}

// NewNotification creates an unseen notification record.
func NewNotification(subject, body string) *BaseObject {
	obj := newBase(KindNotification, map[string]interface{}{
		NotificationFieldSubject: subject,
		NotificationFieldBody:    body,
		NotificationFieldSeen:    false,
	})
	return &obj
}

// NewSchedule creates a schedule record for an event time.
func NewSchedule(title, module string, eventAt time.Time) *BaseObject {
	obj := newBase(KindSchedule, map[string]interface{}{
		ScheduleFieldTitle:   title,
		ScheduleFieldModule:  module,
		ScheduleFieldEventAt: eventAt.Format(time.RFC3339),
	})
	return &obj
}

// NewTask creates a task record in the todo state.
func NewTask(title string, dueAt *time.Time) *BaseObject {
	fields := map[string]interface{}{
		TaskFieldTitle:  title,
		TaskFieldStatus: TaskStatusTodo,
	}
	if dueAt != nil {
		fields[TaskFieldDueAt] = dueAt.Format(time.RFC3339)
	}
	obj := newBase(KindTask, fields)
	return &obj
}

// GetString returns a string field, empty when absent.
func (o *BaseObject) GetString(key string) string {
	if v, ok := o.Fields[key].(string); ok {
		return v
	}
	return ""
}

// GetBool returns a bool field, false when absent.
func (o *BaseObject) GetBool(key string) bool {
	if v, ok := o.Fields[key].(bool); ok {
		return v
	}
	return false
}

// GetTime parses an RFC3339 field, nil when absent or unparsable.
func (o *BaseObject) GetTime(key string) *time.Time {
	if v, ok := o.Fields[key].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
	}
	return nil
}

// MarkSeen flags a notification as seen.
func (o *BaseObject) MarkSeen() {
	o.Fields[NotificationFieldSeen] = true
	o.UpdatedAt = time.Now().UTC()
}

// TransitionStatus validates and applies a task status change, tracking the
// completion timestamp.
func (o *BaseObject) TransitionStatus(newStatus string) error {
	switch newStatus {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
	default:
		return fmt.Errorf("invalid task status: %s", newStatus)
	}

	oldStatus := o.GetString(TaskFieldStatus)
	o.Fields[TaskFieldStatus] = newStatus
	o.UpdatedAt = time.Now().UTC()

	if newStatus == TaskStatusDone && oldStatus != TaskStatusDone {
		o.Fields[TaskFieldCompletedAt] = time.Now().UTC().Format(time.RFC3339)
	} else if newStatus != TaskStatusDone {
		delete(o.Fields, TaskFieldCompletedAt)
	}

	return nil
}
