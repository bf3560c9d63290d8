package module

import autoshutdowndom "worklog/internal/services/autoshutdown/domain"

// Ports holds the ports exposed by the auto-shutdown module
type Ports struct {
	Worker autoshutdowndom.WorkerPort
}
