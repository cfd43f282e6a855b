package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

var (
	ErrNotFound        = errors.New("clinic settings not found")
	ErrInvalidTimezone = errors.New("unknown timezone")
)

type Service interface {
	Get(ctx context.Context) (models.ClinicSettings, error)
	Update(ctx context.Context, settings models.ClinicSettings) (models.ClinicSettings, error)
}

type settingsService struct {
	store store.SettingsStore
}

func New(s store.SettingsStore) Service {
	return &settingsService{store: s}
}

func (s *settingsService) Get(ctx context.Context) (models.ClinicSettings, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSettingsNotFound) {
			return models.ClinicSettings{}, ErrNotFound
		}
		return models.ClinicSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings models.ClinicSettings) (models.ClinicSettings, error) {
	if settings.Timezone != "" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return models.ClinicSettings{}, ErrInvalidTimezone
		}
	}
	if settings.AvgConsultationMinutes <= 0 {
		settings.AvgConsultationMinutes = 15
	}

	updated, err := s.store.UpdateSettings(ctx, settings)
	if err != nil {
		return models.ClinicSettings{}, fmt.Errorf("update settings: %w", err)
	}
	return updated, nil
}
