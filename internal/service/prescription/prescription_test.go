package prescription

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

type fakePrescriptionStore struct {
	rows map[uuid.UUID]models.Prescription
}

func (f *fakePrescriptionStore) CreatePrescription(ctx context.Context, p models.Prescription) (models.Prescription, error) {
	p.ID = uuid.New()
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakePrescriptionStore) GetPrescription(ctx context.Context, id uuid.UUID) (models.Prescription, error) {
	p, ok := f.rows[id]
	if !ok {
		return models.Prescription{}, store.ErrPrescriptionNotFound
	}
	return p, nil
}

func (f *fakePrescriptionStore) ListPrescriptionsByVisit(ctx context.Context, visitID uuid.UUID) ([]models.Prescription, error) {
	var out []models.Prescription
	for _, p := range f.rows {
		if p.VisitID == visitID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrescriptionStore) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.rows[id]; !ok {
		return store.ErrPrescriptionNotFound
	}
	delete(f.rows, id)
	return nil
}

// visitLinkStore records the back-link written onto the visit row.
type visitLinkStore struct {
	store.VisitStore
	visits map[uuid.UUID]models.Visit
	linked *store.UpdateVisitInput
}

func (f *visitLinkStore) GetVisit(ctx context.Context, id uuid.UUID) (models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return models.Visit{}, store.ErrVisitNotFound
	}
	return v, nil
}

func (f *visitLinkStore) UpdateVisit(ctx context.Context, id uuid.UUID, input store.UpdateVisitInput) (models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return models.Visit{}, store.ErrVisitNotFound
	}
	f.linked = &input
	return v, nil
}

func newFixtures() (*fakePrescriptionStore, *visitLinkStore, uuid.UUID) {
	visitID := uuid.New()
	visits := &visitLinkStore{visits: map[uuid.UUID]models.Visit{
		visitID: {ID: visitID, Name: "Asha"},
	}}
	return &fakePrescriptionStore{rows: make(map[uuid.UUID]models.Prescription)}, visits, visitID
}

func TestCreateLinksBackToVisit(t *testing.T) {
	prescriptions, visits, visitID := newFixtures()
	svc := New(prescriptions, visits)

	created, err := svc.Create(context.Background(), CreateRequest{
		VisitID:     visitID,
		Medications: "paracetamol 500mg twice daily",
		Notes:       "after food",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if visits.linked == nil || visits.linked.PrescriptionID == nil {
		t.Fatal("expected visit row to be linked to the prescription")
	}
	if *visits.linked.PrescriptionID != created.ID {
		t.Errorf("linked id = %s, want %s", *visits.linked.PrescriptionID, created.ID)
	}
	if visits.linked.PrescriptionNotes == nil || *visits.linked.PrescriptionNotes != "after food" {
		t.Errorf("linked notes = %v, want %q", visits.linked.PrescriptionNotes, "after food")
	}
}

func TestCreateValidation(t *testing.T) {
	prescriptions, visits, visitID := newFixtures()
	svc := New(prescriptions, visits)

	if _, err := svc.Create(context.Background(), CreateRequest{VisitID: visitID}); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty prescription error = %v, want %v", err, ErrEmpty)
	}

	_, err := svc.Create(context.Background(), CreateRequest{
		VisitID:     uuid.New(),
		Medications: "ibuprofen",
	})
	if !errors.Is(err, ErrVisitNotFound) {
		t.Errorf("unknown visit error = %v, want %v", err, ErrVisitNotFound)
	}
}

func TestListAndDelete(t *testing.T) {
	prescriptions, visits, visitID := newFixtures()
	svc := New(prescriptions, visits)

	created, err := svc.Create(context.Background(), CreateRequest{
		VisitID: visitID,
		FileURL: "https://files.example.com/rx/abc.pdf",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := svc.ListByVisit(context.Background(), visitID)
	if err != nil {
		t.Fatalf("ListByVisit failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete error = %v, want %v", err, ErrNotFound)
	}
}
