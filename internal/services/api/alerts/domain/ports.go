package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Alerts(ctx context.Context, ownerID string) (AlertsOutput, error)
}
