// Package domain holds the compliance service's DTOs and ports (spec.md §4.8)
package domain

import "time"

// Rule is the wire/service view of a UserComplianceRule
type Rule struct {
	UserID      string `json:"user_id"`
	Type        string `json:"type"`
	ClockIn     string `json:"clock_in"`
	ClockOut    string `json:"clock_out"`
	Threshold   float64 `json:"threshold_hours"`
	Enabled     bool   `json:"enabled"`
}

// Violation is the wire/service view of a compliance.Violation
type Violation struct {
	Date        time.Time `json:"date"`
	RuleType    string    `json:"rule_type"`
	ActualHours float64   `json:"actual_hours"`
	Threshold   float64   `json:"threshold_hours"`
	Description string    `json:"description"`
}

// EvaluateInput is the §4.8 evaluate(userId, dateFrom, dateTo) command
type EvaluateInput struct {
	UserID   string    `json:"user_id" validate:"required"`
	DateFrom time.Time `json:"date_from" validate:"required"`
	DateTo   time.Time `json:"date_to" validate:"required"`
}
