// Package domain holds the users service's DTOs and ports
package domain

import "time"

// User is the wire/service view of a registered user
type User struct {
	ID                       string    `json:"id"`
	DisplayName              string    `json:"display_name"`
	UTCOffsetMinutes         int       `json:"utc_offset_minutes"`
	MaxWorkHours             *float64  `json:"max_work_hours,omitempty"`
	MaxCommuteHours          *float64  `json:"max_commute_hours,omitempty"`
	MaxLunchHours            *float64  `json:"max_lunch_hours,omitempty"`
	LunchReminderHour        *int      `json:"lunch_reminder_hour,omitempty"`
	LunchReminderMinute      *int      `json:"lunch_reminder_minute,omitempty"`
	EndOfDayReminderHour     *int      `json:"end_of_day_reminder_hour,omitempty"`
	EndOfDayReminderMinute   *int      `json:"end_of_day_reminder_minute,omitempty"`
	DailyTargetWorkHours     *float64  `json:"daily_target_work_hours,omitempty"`
	ForgotShutdownThreshold  *float64  `json:"forgot_shutdown_threshold_percent,omitempty"`
	RegisteredAt             time.Time `json:"registered_at"`
	IsAdmin                  bool      `json:"is_admin"`
}

// ExternalIdentity is a (provider, external id) pair that resolves to a User
type ExternalIdentity struct {
	Provider   string `json:"provider" validate:"required"`
	ExternalID string `json:"external_id" validate:"required"`
}

// RegisterUserInput is the §6.2 registerUser command
type RegisterUserInput struct {
	Identity         ExternalIdentity `json:"identity" validate:"required"`
	Mnemonic         string           `json:"mnemonic" validate:"required"`
	UTCOffsetMinutes int              `json:"utc_offset_minutes" validate:"min=-720,max=840"`
	DisplayName      string           `json:"display_name" validate:"required,max=120"`
}

// SetUTCOffsetInput mutates a user's UTC offset
type SetUTCOffsetInput struct {
	UserID           string `json:"user_id" validate:"required"`
	UTCOffsetMinutes int    `json:"utc_offset_minutes" validate:"min=-720,max=840"`
}

// SetCapsInput mutates a user's per-state auto-shutdown caps (hours; nil clears a cap)
type SetCapsInput struct {
	UserID          string   `json:"user_id" validate:"required"`
	MaxWorkHours    *float64 `json:"max_work_hours,omitempty" validate:"omitempty,gt=0"`
	MaxCommuteHours *float64 `json:"max_commute_hours,omitempty" validate:"omitempty,gt=0"`
	MaxLunchHours   *float64 `json:"max_lunch_hours,omitempty" validate:"omitempty,gt=0"`
}

// SetLunchReminderInput mutates a user's lunch-reminder local time
type SetLunchReminderInput struct {
	UserID string `json:"user_id" validate:"required"`
	Hour   int    `json:"hour" validate:"min=0,max=23"`
	Minute int    `json:"minute" validate:"min=0,max=59"`
}

// SetEndOfDayReminderInput mutates a user's end-of-day-reminder local time
type SetEndOfDayReminderInput struct {
	UserID string `json:"user_id" validate:"required"`
	Hour   int    `json:"hour" validate:"min=0,max=23"`
	Minute int    `json:"minute" validate:"min=0,max=59"`
}

// SetTargetsInput mutates a user's daily target hours and forgot-shutdown threshold
type SetTargetsInput struct {
	UserID                  string   `json:"user_id" validate:"required"`
	DailyTargetWorkHours    *float64 `json:"daily_target_work_hours,omitempty" validate:"omitempty,gt=0"`
	ForgotShutdownThreshold *float64 `json:"forgot_shutdown_threshold_percent,omitempty" validate:"omitempty,gt=0"`
}
