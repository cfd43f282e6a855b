package models

import (
	"time"

	"github.com/google/uuid"
)

// Visit statuses form the queue lifecycle. Completed, cancelled and
// no_show are terminal.
const (
	StatusUpcoming       = "upcoming"
	StatusArrived        = "arrived"
	StatusInConsultation = "in_consultation"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
	StatusNoShow         = "no_show"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

const (
	PaymentMethodOnline = "online"
	PaymentMethodClinic = "clinic"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Visit is one patient booking/encounter. UID and TokenNumber are
// unique within VisitDate (the clinic-timezone calendar date of the
// booking) and immutable after creation.
type Visit struct {
	ID          uuid.UUID `json:"id"`
	UID         string    `json:"uid"`
	TokenNumber int       `json:"token_number"`
	VisitDate   string    `json:"visit_date"` // YYYY-MM-DD in the clinic timezone

	Name             string `json:"name"`
	Age              *int   `json:"age,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Address          string `json:"address,omitempty"`
	Reason           string `json:"reason,omitempty"`
	Symptoms         string `json:"symptoms,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	Medications      string `json:"medications,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	PaymentID     string `json:"payment_id,omitempty"`
	PaymentAmount int64  `json:"payment_amount"`

	VisitStatus   string `json:"visit_status"`
	QueuePosition int    `json:"queue_position"`
	EstimatedTime string `json:"estimated_time,omitempty"`

	ArrivedAt             *time.Time `json:"arrived_at,omitempty"`
	ConsultationStartTime *time.Time `json:"consultation_start_time,omitempty"`
	ConsultationEndTime   *time.Time `json:"consultation_end_time,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	CancelledAt           *time.Time `json:"cancelled_at,omitempty"`

	Notes                *string `json:"notes,omitempty"`
	Diagnosis            *string `json:"diagnosis,omitempty"`
	TreatmentPlan        *string `json:"treatment_plan,omitempty"`
	FollowUpDate         *string `json:"follow_up_date,omitempty"`
	FollowUpInstructions *string `json:"follow_up_instructions,omitempty"`

	PrescriptionID    *uuid.UUID `json:"prescription_id,omitempty"`
	PrescriptionURL   *string    `json:"prescription_url,omitempty"`
	PrescriptionNotes *string    `json:"prescription_notes,omitempty"`

	DoctorRating *int    `json:"doctor_rating,omitempty"`
	Feedback     *string `json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal reports whether no further status transition is allowed.
func Terminal(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Waiting reports whether the visit still occupies a queue slot.
func Waiting(status string) bool {
	return status == StatusUpcoming || status == StatusArrived
}

func ValidGender(g string) bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodOnline || m == PaymentMethodClinic
}
