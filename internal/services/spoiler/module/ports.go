package module

import "spoilerguard/internal/services/spoiler/domain"

// Exposed is the port set other modules and binaries pull from spoiler
type Exposed struct {
	Service     domain.ServicePort
	Maintenance domain.MaintenancePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
