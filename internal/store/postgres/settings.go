package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

const settingsColumns = `id, clinic_name, clinic_address, clinic_phone, clinic_email, clinic_logo_url, clinic_code,
	doctor_name, doctor_qualifications, doctor_specialization, doctor_photo_url,
	morning_shift, evening_shift, consultation_fee, avg_consultation_minutes,
	max_appointments_per_day, online_payment_enabled, clinic_payment_enabled,
	timezone, operating_days, holidays, updated_at`

func scanSettings(row rowScanner) (models.ClinicSettings, error) {
	var c models.ClinicSettings
	err := row.Scan(
		&c.ID, &c.ClinicName, &c.ClinicAddress, &c.ClinicPhone, &c.ClinicEmail, &c.ClinicLogoURL, &c.ClinicCode,
		&c.DoctorName, &c.DoctorQualifications, &c.DoctorSpecialization, &c.DoctorPhotoURL,
		&c.MorningShift, &c.EveningShift, &c.ConsultationFee, &c.AvgConsultationMinutes,
		&c.MaxAppointmentsPerDay, &c.OnlinePaymentEnabled, &c.ClinicPaymentEnabled,
		&c.Timezone, &c.OperatingDays, &c.Holidays, &c.UpdatedAt,
	)
	if err != nil {
		return models.ClinicSettings{}, err
	}
	return c, nil
}

func (s *Store) GetSettings(ctx context.Context) (models.ClinicSettings, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+settingsColumns+` FROM clinic_settings WHERE id = 1`)
	settings, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ClinicSettings{}, store.ErrSettingsNotFound
		}
		return models.ClinicSettings{}, err
	}
	return settings, nil
}

// UpdateSettings upserts the singleton row so seeding and the admin
// settings form go through the same path.
func (s *Store) UpdateSettings(ctx context.Context, c models.ClinicSettings) (models.ClinicSettings, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO clinic_settings (
			id, clinic_name, clinic_address, clinic_phone, clinic_email, clinic_logo_url, clinic_code,
			doctor_name, doctor_qualifications, doctor_specialization, doctor_photo_url,
			morning_shift, evening_shift, consultation_fee, avg_consultation_minutes,
			max_appointments_per_day, online_payment_enabled, clinic_payment_enabled,
			timezone, operating_days, holidays, updated_at
		) VALUES (1,$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,now())
		ON CONFLICT (id) DO UPDATE SET
			clinic_name = EXCLUDED.clinic_name,
			clinic_address = EXCLUDED.clinic_address,
			clinic_phone = EXCLUDED.clinic_phone,
			clinic_email = EXCLUDED.clinic_email,
			clinic_logo_url = EXCLUDED.clinic_logo_url,
			clinic_code = EXCLUDED.clinic_code,
			doctor_name = EXCLUDED.doctor_name,
			doctor_qualifications = EXCLUDED.doctor_qualifications,
			doctor_specialization = EXCLUDED.doctor_specialization,
			doctor_photo_url = EXCLUDED.doctor_photo_url,
			morning_shift = EXCLUDED.morning_shift,
			evening_shift = EXCLUDED.evening_shift,
			consultation_fee = EXCLUDED.consultation_fee,
			avg_consultation_minutes = EXCLUDED.avg_consultation_minutes,
			max_appointments_per_day = EXCLUDED.max_appointments_per_day,
			online_payment_enabled = EXCLUDED.online_payment_enabled,
			clinic_payment_enabled = EXCLUDED.clinic_payment_enabled,
			timezone = EXCLUDED.timezone,
			operating_days = EXCLUDED.operating_days,
			holidays = EXCLUDED.holidays,
			updated_at = now()
		RETURNING `+settingsColumns,
		c.ClinicName, c.ClinicAddress, c.ClinicPhone, c.ClinicEmail, c.ClinicLogoURL, c.ClinicCode,
		c.DoctorName, c.DoctorQualifications, c.DoctorSpecialization, c.DoctorPhotoURL,
		c.MorningShift, c.EveningShift, c.ConsultationFee, c.AvgConsultationMinutes,
		c.MaxAppointmentsPerDay, c.OnlinePaymentEnabled, c.ClinicPaymentEnabled,
		c.Timezone, c.OperatingDays, c.Holidays,
	)
	return scanSettings(row)
}
