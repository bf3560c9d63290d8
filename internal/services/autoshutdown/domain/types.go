// Package domain holds the auto-shutdown supervisor's tunables and port
package domain

import "context"

// WorkerPort is the exported surface of the auto-shutdown supervisor (spec.md §4.4)
type WorkerPort interface {
	// Run hosts the ticker loop until ctx is cancelled
	Run(ctx context.Context) error
	// Tick runs exactly one sweep; Run calls it on every tick. Exported so tests
	// and the scenario-seeded suite (S7) can drive a single pass deterministically
	Tick(ctx context.Context) error
}
