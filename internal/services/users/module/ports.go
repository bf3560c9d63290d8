package module

import userssvc "worklog/internal/services/users/service"

// Ports holds the ports exposed by the users module
type Ports struct {
	Service userssvc.Service
}
