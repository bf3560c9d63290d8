package domain

import "context"

// ServicePort is the credentials service's external contract
type ServicePort interface {
	IssueMnemonic(ctx context.Context, in IssueMnemonicInput) (PendingMnemonic, error)
	ConsumeMnemonic(ctx context.Context, phrase string) (Consumption, error)
	ValidateMnemonic(ctx context.Context, phrase string) (Consumption, error)
}

// WorkerPort is the credential reaper's exported surface (spec.md §4.7)
type WorkerPort interface {
	Run(ctx context.Context) error
}
