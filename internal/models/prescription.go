package models

import (
	"time"

	"github.com/google/uuid"
)

// Prescription is an optional record linked to a completed visit.
// Deleting the visit cascades to its prescriptions.
type Prescription struct {
	ID          uuid.UUID `json:"id"`
	VisitID     uuid.UUID `json:"visit_id"`
	Medications string    `json:"medications"`
	Notes       string    `json:"notes,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	FileName    string    `json:"file_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
