// Package domain holds the notification sink's port and wire vocabulary (spec.md §6.3)
package domain

import "context"

// Kind names a notification variety the supervisors emit
type Kind string

const (
	// KindLunchReminder fires once per local day at a user's configured lunch time
	KindLunchReminder Kind = "LunchReminder"
	// KindEndOfDayReminder fires once per local day at a user's configured EOD time
	KindEndOfDayReminder Kind = "EndOfDayReminder"
	// KindWorkHoursComplete fires once per local day when a user's daily target is met
	KindWorkHoursComplete Kind = "WorkHoursComplete"
	// KindForgotShutdown fires at most once per session when it runs unusually long
	KindForgotShutdown Kind = "ForgotShutdown"
	// KindAutoShutdown fires whenever the auto-shutdown supervisor ends a session
	KindAutoShutdown Kind = "AutoShutdown"
)

// Sink is the notification sink port (spec.md §6.3). Implementations must swallow
// delivery errors themselves: notifications are best-effort and the caller never
// fails because the sink failed
type Sink interface {
	SendNotification(ctx context.Context, userID string, kind Kind, message string)
}
