package module

import (
	"context"

	"herdpulse/internal/services/api/alerts/domain"
	alsvc "herdpulse/internal/services/api/alerts/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptAlertsPort struct{ svc alsvc.Service }

// Alerts evaluates the four temporal rules for one owner's herd
func (a adaptAlertsPort) Alerts(ctx context.Context, ownerID string) (domain.AlertsOutput, error) {
	return a.svc.Alerts(ctx, ownerID)
}
