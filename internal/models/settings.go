package models

import "time"

// ClinicSettings is the singleton configuration row. One row is seeded
// at deployment and every booking reads it for the consultation fee,
// the average consultation time and the clinic timezone.
type ClinicSettings struct {
	ID int `json:"id"`

	ClinicName    string `json:"clinic_name"`
	ClinicAddress string `json:"clinic_address"`
	ClinicPhone   string `json:"clinic_phone"`
	ClinicEmail   string `json:"clinic_email"`
	ClinicLogoURL string `json:"clinic_logo_url,omitempty"`
	ClinicCode    string `json:"clinic_code"`

	DoctorName           string `json:"doctor_name"`
	DoctorQualifications string `json:"doctor_qualifications,omitempty"`
	DoctorSpecialization string `json:"doctor_specialization,omitempty"`
	DoctorPhotoURL       string `json:"doctor_photo_url,omitempty"`

	MorningShift string `json:"morning_shift,omitempty"`
	EveningShift string `json:"evening_shift,omitempty"`

	ConsultationFee         int64 `json:"consultation_fee"`
	AvgConsultationMinutes  int   `json:"average_consultation_time"`
	MaxAppointmentsPerDay   int   `json:"max_appointments_per_day,omitempty"`
	OnlinePaymentEnabled    bool  `json:"online_payment_enabled"`
	ClinicPaymentEnabled    bool  `json:"clinic_payment_enabled"`

	// Timezone is the IANA zone used for every day-boundary decision
	// (token assignment and aggregation alike).
	Timezone string `json:"timezone"`

	OperatingDays []string `json:"operating_days,omitempty"`
	Holidays      []string `json:"holidays,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Location resolves the configured timezone, falling back to UTC when
// the zone name is empty or unknown.
func (s ClinicSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
