// Package domain holds DTOs for alert http and service contracts
package domain

import (
	"herdpulse/internal/core/alerts"
)

// AlertsOutput wraps the ranked alert list
type AlertsOutput struct {
	Results []alerts.DerivedAlert `json:"results"`
}
