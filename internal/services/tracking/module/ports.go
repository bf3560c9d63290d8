package module

import trackingsvc "worklog/internal/services/tracking/service"

// Ports holds the ports exposed by the tracking module
type Ports struct {
	Service trackingsvc.Service
}
