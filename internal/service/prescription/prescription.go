package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

var (
	ErrNotFound      = errors.New("prescription not found")
	ErrVisitNotFound = errors.New("visit not found")
	ErrEmpty         = errors.New("prescription needs medications or a file")
)

type CreateRequest struct {
	VisitID     uuid.UUID
	Medications string
	Notes       string
	FileURL     string
	FileName    string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (models.Prescription, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Prescription, error)
	ListByVisit(ctx context.Context, visitID uuid.UUID) ([]models.Prescription, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type prescriptionService struct {
	prescriptions store.PrescriptionStore
	visits        store.VisitStore
}

func New(prescriptions store.PrescriptionStore, visits store.VisitStore) Service {
	return &prescriptionService{prescriptions: prescriptions, visits: visits}
}

// Create persists the prescription and links it back onto the visit so
// the patient-facing download surface only needs the visit row.
func (s *prescriptionService) Create(ctx context.Context, req CreateRequest) (models.Prescription, error) {
	if req.Medications == "" && req.FileURL == "" {
		return models.Prescription{}, ErrEmpty
	}

	if _, err := s.visits.GetVisit(ctx, req.VisitID); err != nil {
		if errors.Is(err, store.ErrVisitNotFound) {
			return models.Prescription{}, ErrVisitNotFound
		}
		return models.Prescription{}, fmt.Errorf("get visit: %w", err)
	}

	created, err := s.prescriptions.CreatePrescription(ctx, models.Prescription{
		VisitID:     req.VisitID,
		Medications: req.Medications,
		Notes:       req.Notes,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
	})
	if err != nil {
		return models.Prescription{}, fmt.Errorf("create prescription: %w", err)
	}

	link := store.UpdateVisitInput{PrescriptionID: &created.ID}
	if created.FileURL != "" {
		link.PrescriptionURL = &created.FileURL
	}
	if created.Notes != "" {
		link.PrescriptionNotes = &created.Notes
	}
	if _, err := s.visits.UpdateVisit(ctx, req.VisitID, link); err != nil {
		return models.Prescription{}, fmt.Errorf("link prescription to visit: %w", err)
	}

	return created, nil
}

func (s *prescriptionService) GetByID(ctx context.Context, id uuid.UUID) (models.Prescription, error) {
	p, err := s.prescriptions.GetPrescription(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPrescriptionNotFound) {
			return models.Prescription{}, ErrNotFound
		}
		return models.Prescription{}, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

func (s *prescriptionService) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]models.Prescription, error) {
	list, err := s.prescriptions.ListPrescriptionsByVisit(ctx, visitID)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return list, nil
}

func (s *prescriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.prescriptions.DeletePrescription(ctx, id); err != nil {
		if errors.Is(err, store.ErrPrescriptionNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete prescription: %w", err)
	}
	return nil
}
