package postgres

import "context"

// schema is applied by `xclinic system migrate`. Statements are
// idempotent so re-running a migration is safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clinic_settings (
		id                        INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		clinic_name               TEXT NOT NULL DEFAULT '',
		clinic_address            TEXT NOT NULL DEFAULT '',
		clinic_phone              TEXT NOT NULL DEFAULT '',
		clinic_email              TEXT NOT NULL DEFAULT '',
		clinic_logo_url           TEXT NOT NULL DEFAULT '',
		clinic_code               TEXT NOT NULL DEFAULT 'XC',
		doctor_name               TEXT NOT NULL DEFAULT '',
		doctor_qualifications     TEXT NOT NULL DEFAULT '',
		doctor_specialization     TEXT NOT NULL DEFAULT '',
		doctor_photo_url          TEXT NOT NULL DEFAULT '',
		morning_shift             TEXT NOT NULL DEFAULT '',
		evening_shift             TEXT NOT NULL DEFAULT '',
		consultation_fee          BIGINT NOT NULL DEFAULT 0,
		avg_consultation_minutes  INT NOT NULL DEFAULT 15,
		max_appointments_per_day  INT NOT NULL DEFAULT 0,
		online_payment_enabled    BOOLEAN NOT NULL DEFAULT TRUE,
		clinic_payment_enabled    BOOLEAN NOT NULL DEFAULT TRUE,
		timezone                  TEXT NOT NULL DEFAULT 'UTC',
		operating_days            TEXT[] NOT NULL DEFAULT '{}',
		holidays                  TEXT[] NOT NULL DEFAULT '{}',
		updated_at                TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS token_sequences (
		seq_date    DATE PRIMARY KEY,
		next_number BIGINT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS visits (
		id                      UUID PRIMARY KEY,
		uid                     TEXT NOT NULL,
		token_number            INT NOT NULL,
		visit_date              DATE NOT NULL,
		name                    TEXT NOT NULL,
		age                     INT,
		phone                   TEXT NOT NULL DEFAULT '',
		email                   TEXT NOT NULL DEFAULT '',
		gender                  TEXT NOT NULL DEFAULT '',
		address                 TEXT NOT NULL DEFAULT '',
		reason                  TEXT NOT NULL DEFAULT '',
		symptoms                TEXT NOT NULL DEFAULT '',
		medical_history         TEXT NOT NULL DEFAULT '',
		allergies               TEXT NOT NULL DEFAULT '',
		medications             TEXT NOT NULL DEFAULT '',
		emergency_contact       TEXT NOT NULL DEFAULT '',
		payment_method          TEXT NOT NULL,
		payment_status          TEXT NOT NULL DEFAULT 'pending',
		payment_id              TEXT NOT NULL DEFAULT '',
		payment_amount          BIGINT NOT NULL DEFAULT 0,
		visit_status            TEXT NOT NULL DEFAULT 'upcoming',
		queue_position          INT NOT NULL,
		estimated_time          TEXT NOT NULL DEFAULT '',
		arrived_at              TIMESTAMPTZ,
		consultation_start_time TIMESTAMPTZ,
		consultation_end_time   TIMESTAMPTZ,
		completed_at            TIMESTAMPTZ,
		cancelled_at            TIMESTAMPTZ,
		notes                   TEXT,
		diagnosis               TEXT,
		treatment_plan          TEXT,
		follow_up_date          TEXT,
		follow_up_instructions  TEXT,
		prescription_id         UUID,
		prescription_url        TEXT,
		prescription_notes      TEXT,
		doctor_rating           INT,
		feedback                TEXT,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (visit_date, token_number),
		UNIQUE (visit_date, uid)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_visit_date ON visits (visit_date)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_status ON visits (visit_status)`,

	`CREATE TABLE IF NOT EXISTS prescriptions (
		id          UUID PRIMARY KEY,
		visit_id    UUID NOT NULL REFERENCES visits(id) ON DELETE CASCADE,
		medications TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		file_url    TEXT NOT NULL DEFAULT '',
		file_name   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_visit ON prescriptions (visit_id)`,

	`CREATE TABLE IF NOT EXISTS queue_summary (
		summary_date        DATE PRIMARY KEY,
		total_appointments  INT NOT NULL DEFAULT 0,
		total_waiting       INT NOT NULL DEFAULT 0,
		total_completed     INT NOT NULL DEFAULT 0,
		total_cancelled     INT NOT NULL DEFAULT 0,
		current_token       INT,
		estimated_wait_mins INT NOT NULL DEFAULT 0,
		total_revenue       BIGINT NOT NULL DEFAULT 0,
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate applies the embedded schema.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
