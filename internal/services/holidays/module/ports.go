package module

import holidayssvc "worklog/internal/services/holidays/service"

// Ports holds the ports exposed by the holidays module
type Ports struct {
	Service holidayssvc.Service
}
