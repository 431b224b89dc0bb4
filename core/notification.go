package core

import "time"

// NotificationType categorizes a system notification.
type NotificationType string

const (
	// NotificationInfo is informational.
	NotificationInfo NotificationType = "info"
	// NotificationWarning flags a condition worth attention.
	NotificationWarning NotificationType = "warning"
	// NotificationError reports a failure.
	NotificationError NotificationType = "error"
	// NotificationSuccess reports a completed outcome.
	NotificationSuccess NotificationType = "success"
	// NotificationTaskUpdate reports task progress.
	NotificationTaskUpdate NotificationType = "task_update"
	// NotificationSystemAlert is an operational alert.
	NotificationSystemAlert NotificationType = "system_alert"
	// NotificationReminder is a scheduled nudge.
	NotificationReminder NotificationType = "reminder"
)

// Notification is a system-originated message to a single agent. The hub
// converts it into an alert mailbox message from the system sender (empty
// sender id).
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Type      NotificationType `json:"type"`
	Priority  MessagePriority  `json:"priority"`
	Data      map[string]any   `json:"data,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
