// Package http provides http transport for breeding analytics
package http

import (
	stdhttp "net/http"

	"herdpulse/internal/modkit/httpkit"
	"herdpulse/internal/services/api/analytics/domain"
	svc "herdpulse/internal/services/api/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// point in time KPIs for a date window
	httpkit.PostJSON[domain.MetricsInput](r, "/metrics", h.metrics)

	// month over month trend analysis
	httpkit.PostJSON[domain.TrendsInput](r, "/trends", h.trends)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /breeding/metrics Breeding breedingMetrics
// @Summary Breeding KPIs for a date window
// @Tags Breeding
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Owner id"
// @Param payload body domain.MetricsInput true "Window"
// @Success 200 {object} domain.MetricsOutput "ok"
// @Router /breeding/metrics [post]
func (h *handlers) metrics(r *stdhttp.Request, in domain.MetricsInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Metrics(r.Context(), owner, in)
}

// swagger:route POST /breeding/trends Breeding breedingTrends
// @Summary Month over month breeding trends
// @Tags Breeding
// @Accept json
// @Produce json
// @Param X-Owner-ID header string true "Owner id"
// @Param payload body domain.TrendsInput true "Month window"
// @Success 200 {object} breeding.TrendAnalysis "ok"
// @Router /breeding/trends [post]
func (h *handlers) trends(r *stdhttp.Request, in domain.TrendsInput) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Trends(r.Context(), owner, in)
}
