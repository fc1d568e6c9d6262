// ABOUTME: Shared outbox helper for mutation handlers
// ABOUTME: Notification failures are logged, never fatal, since the mutation already landed
package handlers

import (
	"log"
	"time"

	"github.com/opsdeck/opsdeck/outbox"
)

func notify(box *outbox.Store, subject, body string) {
	if box == nil {
		return
	}
	if err := box.Put(outbox.NewNotification(subject, body)); err != nil {
		log.Printf("failed to enqueue notification: %v", err)
	}
}

func schedule(box *outbox.Store, title, module string, eventAt time.Time) {
	if box == nil {
		return
	}
	if err := box.Put(outbox.NewSchedule(title, module, eventAt)); err != nil {
		log.Printf("failed to enqueue schedule: %v", err)
	}
}
