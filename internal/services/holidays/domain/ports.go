package domain

import (
	"context"
	"time"
)

// ServicePort is the holidays service's external contract
type ServicePort interface {
	Create(ctx context.Context, in CreateHolidayInput) (Holiday, error)
	ListForUser(ctx context.Context, userID string) ([]Holiday, error)
}

// OnHolidayLookup is the narrow port the reminder supervisor consumes to decide
// whether a user's local date falls inside one of their Holiday rows
type OnHolidayLookup interface {
	IsOnHoliday(ctx context.Context, userID string, localDate time.Time) (bool, error)
}
