package models

import "time"

// QueueSummary is the per-date materialized aggregate over visits.
// It is a cache: every field is derivable from the visit rows for
// SummaryDate and the row is only ever written by the aggregator.
type QueueSummary struct {
	SummaryDate       string    `json:"summary_date"` // YYYY-MM-DD
	TotalAppointments int       `json:"total_appointments"`
	TotalWaiting      int       `json:"total_waiting"`
	TotalCompleted    int       `json:"total_completed"`
	TotalCancelled    int       `json:"total_cancelled"`
	CurrentToken      *int      `json:"current_token,omitempty"`
	EstimatedWaitMins int       `json:"estimated_wait_time"`
	TotalRevenue      int64     `json:"total_revenue"`
	UpdatedAt         time.Time `json:"updated_at"`
}
