// Package queue maintains the per-date queue summary, a cache fully
// derived from visit rows. Recompute is idempotent: running it twice
// over the same visits converges to the same row.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/events"
	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

type Service interface {
	// Summary returns the cached aggregate for a date (today when
	// empty), recomputing on demand when no row exists yet.
	Summary(ctx context.Context, date string) (models.QueueSummary, error)
	// Recompute rebuilds the summary row for a date from visit rows
	// and upserts it.
	Recompute(ctx context.Context, date string) (models.QueueSummary, error)
	// RecomputeBestEffort is Recompute with the failure swallowed and
	// logged; it must never fail a triggering mutation.
	RecomputeBestEffort(ctx context.Context, date string)
}

type queueService struct {
	visits    store.VisitStore
	summaries store.SummaryStore
	settings  store.SettingsStore
	pub       events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func New(visits store.VisitStore, summaries store.SummaryStore, settings store.SettingsStore, pub events.Publisher, cfg *config.Config) Service {
	return &queueService{
		visits:    visits,
		summaries: summaries,
		settings:  settings,
		pub:       pub,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BuildSummary aggregates visit rows into a summary. Pure function of
// its inputs; the date scoping happens at the query.
func BuildSummary(date string, visits []models.Visit, avgConsultationMins int) models.QueueSummary {
	summary := models.QueueSummary{SummaryDate: date}

	for _, v := range visits {
		summary.TotalAppointments++
		switch {
		case models.Waiting(v.VisitStatus):
			summary.TotalWaiting++
		case v.VisitStatus == models.StatusCompleted:
			summary.TotalCompleted++
		case v.VisitStatus == models.StatusCancelled || v.VisitStatus == models.StatusNoShow:
			summary.TotalCancelled++
		}
		if v.VisitStatus == models.StatusInConsultation {
			token := v.TokenNumber
			summary.CurrentToken = &token
		}
		if v.PaymentStatus == models.PaymentPaid {
			summary.TotalRevenue += v.PaymentAmount
		}
	}

	summary.EstimatedWaitMins = summary.TotalWaiting * avgConsultationMins
	return summary
}

func (s *queueService) today(ctx context.Context) string {
	loc := time.UTC
	if settings, err := s.settings.GetSettings(ctx); err == nil {
		loc = settings.Location()
	}
	return s.now().In(loc).Format("2006-01-02")
}

func (s *queueService) Summary(ctx context.Context, date string) (models.QueueSummary, error) {
	if date == "" {
		date = s.today(ctx)
	}
	summary, err := s.summaries.GetSummary(ctx, date)
	if err != nil {
		return models.QueueSummary{}, fmt.Errorf("get summary: %w", err)
	}
	if summary.UpdatedAt.IsZero() {
		// No cached row yet; derive one.
		return s.Recompute(ctx, date)
	}
	return summary, nil
}

func (s *queueService) Recompute(ctx context.Context, date string) (models.QueueSummary, error) {
	if date == "" {
		date = s.today(ctx)
	}

	avg := s.cfg.Booking.DefaultAvgConsultationMins
	if settings, err := s.settings.GetSettings(ctx); err == nil && settings.AvgConsultationMinutes > 0 {
		avg = settings.AvgConsultationMinutes
	} else if err != nil && !errors.Is(err, store.ErrSettingsNotFound) {
		return models.QueueSummary{}, fmt.Errorf("load clinic settings: %w", err)
	}

	visits, err := s.visits.ListVisitsByDate(ctx, date)
	if err != nil {
		return models.QueueSummary{}, fmt.Errorf("list visits for %s: %w", date, err)
	}

	summary := BuildSummary(date, visits, avg)
	if err := s.summaries.UpsertSummary(ctx, summary); err != nil {
		return models.QueueSummary{}, fmt.Errorf("upsert summary: %w", err)
	}

	s.pub.SummaryUpdated(events.SummaryEvent{SummaryDate: date, At: s.now()})
	return summary, nil
}

func (s *queueService) RecomputeBestEffort(ctx context.Context, date string) {
	if _, err := s.Recompute(ctx, date); err != nil {
		slog.Warn("queue summary recompute failed", "date", date, "err", err)
	}
}
