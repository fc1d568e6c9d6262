// ABOUTME: Outbox CLI commands
// ABOUTME: Inspect queued notifications, schedules, and tasks
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/opsdeck/opsdeck/outbox"
)

// NotificationsCommand lists queued notifications
func NotificationsCommand(box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)
	unseen := fs.Bool("unseen", false, "Show only unseen notifications")
	fs.Parse(args)

	notifications, err := box.List(outbox.KindNotification)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSUBJECT\tBODY\tSEEN")
	fmt.Fprintln(w, "----\t-------\t----\t----")

	shown := 0
	for _, n := range notifications {
		seen := n.GetBool(outbox.NotificationFieldSeen)
		if *unseen && seen {
			continue
		}
		seenMark := " "
		if seen {
			seenMark = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			n.CreatedAt.Format("2006-01-02 15:04"),
			n.GetString(outbox.NotificationFieldSubject),
			n.GetString(outbox.NotificationFieldBody),
			seenMark)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No notifications")
		return nil
	}

	fmt.Printf("\nTotal: %d notification(s)\n", shown)
	return nil
}

// MarkSeenCommand marks a notification as seen
func MarkSeenCommand(box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("mark-seen", flag.ExitOnError)
	id := fs.String("id", "", "Notification ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	notificationID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid notification ID: %w", err)
	}

	n, err := box.Get(outbox.KindNotification, notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}

	n.MarkSeen()
	if err := box.Put(n); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	fmt.Printf("✓ Notification marked seen: %s\n", *id)
	return nil
}

// AddTaskCommand queues a follow-up task
func AddTaskCommand(box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}

	var dueAt *time.Time
	if *due != "" {
		parsed, err := time.Parse("2006-01-02", *due)
		if err != nil {
			return fmt.Errorf("invalid due date (want YYYY-MM-DD): %w", err)
		}
		dueAt = &parsed
	}

	task := outbox.NewTask(*title, dueAt)
	if err := box.Put(task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	fmt.Printf("✓ Task added: %s (ID: %s)\n", *title, task.ID)
	return nil
}

// ListTasksCommand lists queued tasks
func ListTasksCommand(box *outbox.Store, args []string) error {
	tasks, err := box.List(outbox.KindTask)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tSTATUS\tDUE\tID")
	fmt.Fprintln(w, "-----\t------\t---\t--")

	for _, task := range tasks {
		due := "-"
		if t := task.GetTime(outbox.TaskFieldDueAt); t != nil {
			due = t.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			task.GetString(outbox.TaskFieldTitle),
			task.GetString(outbox.TaskFieldStatus),
			due,
			task.ID.String()[:8])
	}
	w.Flush()

	fmt.Printf("\nTotal: %d task(s)\n", len(tasks))
	return nil
}

// CompleteTaskCommand transitions a task to done
func CompleteTaskCommand(box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("complete-task", flag.ExitOnError)
	id := fs.String("id", "", "Task ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	taskID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid task ID: %w", err)
	}

	task, err := box.Get(outbox.KindTask, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := task.TransitionStatus(outbox.TaskStatusDone); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if err := box.Put(task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	fmt.Printf("✓ Task completed: %s\n", *id)
	return nil
}

// AddScheduleCommand queues a schedule entry
func AddScheduleCommand(box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("add-schedule", flag.ExitOnError)
	title := fs.String("title", "", "Schedule title (required)")
	module := fs.String("module", "", "Related module, e.g. account_documents")
	on := fs.String("on", "", "Event date (YYYY-MM-DD, required)")
	fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *on == "" {
		return fmt.Errorf("--on is required")
	}
	eventAt, err := time.Parse("2006-01-02", *on)
	if err != nil {
		return fmt.Errorf("invalid event date (want YYYY-MM-DD): %w", err)
	}

	entry := outbox.NewSchedule(*title, *module, eventAt)
	if err := box.Put(entry); err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}

	fmt.Printf("✓ Schedule added: %s (ID: %s)\n", *title, entry.ID)
	return nil
}

// ListSchedulesCommand lists queued schedule entries
func ListSchedulesCommand(box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("list-schedules", flag.ExitOnError)
	module := fs.String("module", "", "Show only entries for this module")
	fs.Parse(args)

	entries, err := box.List(outbox.KindSchedule)
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTITLE\tMODULE\tID")
	fmt.Fprintln(w, "----\t-----\t------\t--")

	shown := 0
	for _, entry := range entries {
		if *module != "" && entry.GetString(outbox.ScheduleFieldModule) != *module {
			continue
		}
		when := "-"
		if t := entry.GetTime(outbox.ScheduleFieldEventAt); t != nil {
			when = t.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			when,
			entry.GetString(outbox.ScheduleFieldTitle),
			entry.GetString(outbox.ScheduleFieldModule),
			entry.ID.String()[:8])
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No schedules")
		return nil
	}

	fmt.Printf("\nTotal: %d schedule(s)\n", shown)
	return nil
}
