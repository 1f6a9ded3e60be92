package module

import (
	"context"

	"herdpulse/internal/core/breeding"
	"herdpulse/internal/services/api/analytics/domain"
	ansvc "herdpulse/internal/services/api/analytics/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptAnalyticsPort struct{ svc ansvc.Service }

// Metrics computes point in time KPIs for one owner window
func (a adaptAnalyticsPort) Metrics(ctx context.Context, ownerID string, in domain.MetricsInput) (domain.MetricsOutput, error) {
	return a.svc.Metrics(ctx, ownerID, in)
}

// Trends computes month over month trend analysis for one owner
func (a adaptAnalyticsPort) Trends(ctx context.Context, ownerID string, in domain.TrendsInput) (breeding.TrendAnalysis, error) {
	return a.svc.Trends(ctx, ownerID, in)
}
