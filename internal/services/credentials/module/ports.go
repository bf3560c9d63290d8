package module

import credentialsdom "worklog/internal/services/credentials/domain"

// Ports holds the ports exposed by the credentials module
type Ports struct {
	Service credentialsdom.ServicePort
	Worker  credentialsdom.WorkerPort
}
