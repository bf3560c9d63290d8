package module

import forgotshutdowndom "worklog/internal/services/forgotshutdown/domain"

// Ports holds the ports exposed by the forgot-shutdown module
type Ports struct {
	Worker forgotshutdowndom.WorkerPort
}
