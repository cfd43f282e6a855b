package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

const prescriptionColumns = `id, visit_id, medications, notes, file_url, file_name, created_at, updated_at`

func scanPrescription(row rowScanner) (models.Prescription, error) {
	var p models.Prescription
	err := row.Scan(&p.ID, &p.VisitID, &p.Medications, &p.Notes, &p.FileURL, &p.FileName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Prescription{}, err
	}
	return p, nil
}

func (s *Store) CreatePrescription(ctx context.Context, p models.Prescription) (models.Prescription, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO prescriptions (id, visit_id, medications, notes, file_url, file_name, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
		RETURNING `+prescriptionColumns,
		p.ID, p.VisitID, p.Medications, p.Notes, p.FileURL, p.FileName, now,
	)
	return scanPrescription(row)
}

func (s *Store) GetPrescription(ctx context.Context, id uuid.UUID) (models.Prescription, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id)
	p, err := scanPrescription(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Prescription{}, store.ErrPrescriptionNotFound
		}
		return models.Prescription{}, err
	}
	return p, nil
}

func (s *Store) ListPrescriptionsByVisit(ctx context.Context, visitID uuid.UUID) ([]models.Prescription, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+prescriptionColumns+` FROM prescriptions WHERE visit_id = $1 ORDER BY created_at DESC
	`, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prescriptions []models.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

func (s *Store) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrPrescriptionNotFound
	}
	return nil
}
