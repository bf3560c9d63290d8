package domain

import "context"

// ServicePort is the users service's external contract
type ServicePort interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (User, error)
	FindByExternalIdentity(ctx context.Context, provider, externalID string) (*User, error)
	Get(ctx context.Context, userID string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)

	SetUTCOffset(ctx context.Context, in SetUTCOffsetInput) error
	SetCaps(ctx context.Context, in SetCapsInput) error
	SetLunchReminder(ctx context.Context, in SetLunchReminderInput) error
	SetEndOfDayReminder(ctx context.Context, in SetEndOfDayReminderInput) error
	SetTargets(ctx context.Context, in SetTargetsInput) error
}

// OffsetLookup is the narrow port the tracking service consumes; the users
// service's Service interface embeds it next to ServicePort, and Svc
// implements it through UTCOffsetMinutes
type OffsetLookup interface {
	UTCOffsetMinutes(ctx context.Context, userID string) (int, error)
}
