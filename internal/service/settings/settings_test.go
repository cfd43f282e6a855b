package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

type fakeSettingsStore struct {
	settings models.ClinicSettings
	missing  bool
}

func (f *fakeSettingsStore) GetSettings(ctx context.Context) (models.ClinicSettings, error) {
	if f.missing {
		return models.ClinicSettings{}, store.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsStore) UpdateSettings(ctx context.Context, s models.ClinicSettings) (models.ClinicSettings, error) {
	f.settings = s
	f.missing = false
	return s, nil
}

func TestGetMissing(t *testing.T) {
	svc := New(&fakeSettingsStore{missing: true})

	if _, err := svc.Get(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestUpdateRejectsUnknownTimezone(t *testing.T) {
	svc := New(&fakeSettingsStore{missing: true})

	_, err := svc.Update(context.Background(), models.ClinicSettings{Timezone: "Mars/Olympus"})
	if !errors.Is(err, ErrInvalidTimezone) {
		t.Errorf("Update() error = %v, want %v", err, ErrInvalidTimezone)
	}
}

func TestUpdateDefaultsConsultationTime(t *testing.T) {
	fake := &fakeSettingsStore{missing: true}
	svc := New(fake)

	updated, err := svc.Update(context.Background(), models.ClinicSettings{
		ClinicName: "XClinic",
		Timezone:   "Asia/Kolkata",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.AvgConsultationMinutes != 15 {
		t.Errorf("AvgConsultationMinutes = %d, want 15", updated.AvgConsultationMinutes)
	}

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ClinicName != "XClinic" {
		t.Errorf("ClinicName = %q, want %q", got.ClinicName, "XClinic")
	}
	if got.Location().String() != "Asia/Kolkata" {
		t.Errorf("Location = %q, want %q", got.Location().String(), "Asia/Kolkata")
	}
}
