// Package domain holds the forgot-shutdown supervisor's port
package domain

import "context"

// WorkerPort is the exported surface of the forgot-shutdown supervisor (spec.md §4.5)
type WorkerPort interface {
	Run(ctx context.Context) error
	Tick(ctx context.Context) error
}
