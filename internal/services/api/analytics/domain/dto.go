// Package domain holds DTOs for analytics http and service contracts
package domain

import (
	"herdpulse/internal/core/breeding"
)

// Dates are ISO8601 without timezone, months are YYYY-MM

// MetricsInput selects the KPI window, defaulting to the trailing 12 months
type MetricsInput struct {
	From string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2024-09-01"`
	To   string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-31"`
}

// Period echoes the resolved analysis window
type Period struct {
	From string `json:"from" example:"2024-09-01"`
	To   string `json:"to" example:"2025-08-31"`
}

// CalculationDetails describes how much data backs the KPI result
type CalculationDetails struct {
	TotalCattle int    `json:"total_cattle" example:"42"`
	DataPoints  int    `json:"data_points" example:"118"`
	Reliability string `json:"reliability" example:"high"`
}

// MetricsOutput is the KPI response payload
type MetricsOutput struct {
	Metrics  breeding.BreedingMetrics     `json:"metrics"`
	Counts   breeding.BreedingEventCounts `json:"counts"`
	Period   Period                       `json:"period"`
	Insights []string                     `json:"insights"`
	Details  CalculationDetails           `json:"calculation_details"`
}

// TrendsInput selects the month window, defaulting to the trailing 12
// months ending the current month. Months is ignored when both bounds are
// given
type TrendsInput struct {
	FromMonth string `json:"from_month,omitempty" validate:"omitempty,month" example:"2024-09"`
	ToMonth   string `json:"to_month,omitempty" validate:"omitempty,month" example:"2025-08"`
	Months    int    `json:"months,omitempty" validate:"omitempty,min=1,max=36" example:"12"`
}
