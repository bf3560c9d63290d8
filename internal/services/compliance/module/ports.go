package module

import compliancesvc "worklog/internal/services/compliance/service"

// Ports holds the ports exposed by the compliance module
type Ports struct {
	Service compliancesvc.Service
}
