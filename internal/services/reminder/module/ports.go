package module

import reminderdom "worklog/internal/services/reminder/domain"

// Ports holds the ports exposed by the reminder module
type Ports struct {
	Worker reminderdom.WorkerPort
}
