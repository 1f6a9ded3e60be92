// Package http provides http transport for alerts
package http

import (
	stdhttp "net/http"

	"herdpulse/internal/modkit/httpkit"
	svc "herdpulse/internal/services/api/alerts/service"
)

// Register mounts alert endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// ranked alert list for the owner's herd
	httpkit.Post(r, "/", h.alerts)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /alerts Alerts alertsEvaluate
// @Summary Ranked breeding alerts for the owner's herd
// @Tags Alerts
// @Produce json
// @Param X-Owner-ID header string true "Owner id"
// @Success 200 {object} domain.AlertsOutput "ok"
// @Router /alerts [post]
func (h *handlers) alerts(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.Owner(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Alerts(r.Context(), owner)
}
