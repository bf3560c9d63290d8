// Package domain holds the holidays service's DTOs and ports (spec.md §3 Holiday)
package domain

import "time"

// Holiday is the wire/service view of a user's inclusive date-range entry
type Holiday struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
}

// TypeHoliday, TypeVacation, TypeSick enumerate spec.md §3's Holiday.Type
const (
	TypeHoliday = "Holiday"
	TypeVacation = "Vacation"
	TypeSick     = "Sick"
)

// CreateHolidayInput is the command that adds a Holiday row for a user
type CreateHolidayInput struct {
	UserID      string    `json:"user_id" validate:"required"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=Holiday Vacation Sick"`
	Description string    `json:"description,omitempty"`
}
