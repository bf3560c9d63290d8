// Package logsink provides the one concrete notify.Sink this repo ships: a
// structured-logging sink, grounded on the teacher's single-impl client seam
// (adapters/ingest/github: one interface, one concrete client). A real bot/HTTP
// adapter is out of scope (spec.md §1); this sink is what the supervisors call
// today, and is the natural seam a future adapter replaces
package logsink

import (
	"context"

	"worklog/internal/platform/logger"
	"worklog/internal/services/notify/domain"
)

// Sink logs every notification at info level instead of delivering it
type Sink struct {
	log logger.Logger
}

// New returns a logging-backed notify.Sink
func New() *Sink { return &Sink{log: *logger.Named("notify")} }

// SendNotification implements domain.Sink. It never returns an error to the
// caller: delivery failures are swallowed per spec.md §6.3
func (s *Sink) SendNotification(ctx context.Context, userID string, kind domain.Kind, message string) {
	s.log.Info().
		Str("user_id", userID).
		Str("kind", string(kind)).
		Str("message", message).
		Msg("notification sent")
}
