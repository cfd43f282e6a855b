package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gbmsdev99/xclinic/internal/models"
)

// CreateVisitInput carries everything the store needs to insert a
// visit. Token and uid are assigned inside the insert transaction.
type CreateVisitInput struct {
	VisitDate string // YYYY-MM-DD, clinic timezone
	UIDPrefix string // clinic code, e.g. "XC"

	Name             string
	Age              *int
	Phone            string
	Email            string
	Gender           string
	Address          string
	Reason           string
	Symptoms         string
	MedicalHistory   string
	Allergies        string
	Medications      string
	EmergencyContact string

	PaymentMethod string
	PaymentAmount int64

	AvgConsultationMins int
	CreatedAt           time.Time
}

// UpdateVisitInput is a partial-field update; nil pointers leave the
// column untouched. updated_at is always stamped.
type UpdateVisitInput struct {
	Name             *string
	Age              *int
	Phone            *string
	Email            *string
	Gender           *string
	Address          *string
	Reason           *string
	Symptoms         *string
	MedicalHistory   *string
	Allergies        *string
	Medications      *string
	EmergencyContact *string

	Notes                *string
	Diagnosis            *string
	TreatmentPlan        *string
	FollowUpDate         *string
	FollowUpInstructions *string

	PrescriptionID    *uuid.UUID
	PrescriptionURL   *string
	PrescriptionNotes *string

	DoctorRating *int
	Feedback     *string
}

// SearchVisitsInput filters visits. Query matches name, uid or phone
// case-insensitively as a substring.
type SearchVisitsInput struct {
	Query    string
	Status   string
	DateFrom string // YYYY-MM-DD, inclusive
	DateTo   string // YYYY-MM-DD, inclusive
	Page     int
	PerPage  int
}

// TransitionInput applies a queue action to a visit at a given time.
type TransitionInput struct {
	VisitID uuid.UUID
	Action  string
	Now     time.Time
}

type VisitStore interface {
	CreateVisit(ctx context.Context, input CreateVisitInput) (models.Visit, error)
	GetVisit(ctx context.Context, id uuid.UUID) (models.Visit, error)
	GetVisitByUID(ctx context.Context, uid, visitDate string) (models.Visit, error)
	SearchVisits(ctx context.Context, input SearchVisitsInput) ([]models.Visit, error)
	UpdateVisit(ctx context.Context, id uuid.UUID, input UpdateVisitInput) (models.Visit, error)
	TransitionVisit(ctx context.Context, input TransitionInput) (models.Visit, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status, paymentID string) (models.Visit, error)
	DeleteVisit(ctx context.Context, id uuid.UUID) error
	ListVisitsByDate(ctx context.Context, visitDate string) ([]models.Visit, error)
}

type SummaryStore interface {
	GetSummary(ctx context.Context, summaryDate string) (models.QueueSummary, error)
	UpsertSummary(ctx context.Context, summary models.QueueSummary) error
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (models.ClinicSettings, error)
	UpdateSettings(ctx context.Context, settings models.ClinicSettings) (models.ClinicSettings, error)
}

type PrescriptionStore interface {
	CreatePrescription(ctx context.Context, p models.Prescription) (models.Prescription, error)
	GetPrescription(ctx context.Context, id uuid.UUID) (models.Prescription, error)
	ListPrescriptionsByVisit(ctx context.Context, visitID uuid.UUID) ([]models.Prescription, error)
	DeletePrescription(ctx context.Context, id uuid.UUID) error
}
