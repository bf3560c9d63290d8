// Package domain holds the reminder supervisor's port
package domain

import "context"

// WorkerPort is the exported surface of the reminder supervisor (spec.md §4.6)
type WorkerPort interface {
	Run(ctx context.Context) error
	Tick(ctx context.Context) error
}
