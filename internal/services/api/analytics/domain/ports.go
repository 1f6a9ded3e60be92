package domain

import (
	"context"

	"herdpulse/internal/core/breeding"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Metrics(ctx context.Context, ownerID string, in MetricsInput) (MetricsOutput, error)
	Trends(ctx context.Context, ownerID string, in TrendsInput) (breeding.TrendAnalysis, error)
}
