package model

// NotificationOutcome reports whether a confirmation message went out.
// Notification failures are absorbed into this value and never surface as
// errors to checkout callers.
type NotificationOutcome struct {
	Sent bool
}
