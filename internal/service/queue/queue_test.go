package queue

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/events"
	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

func visitWith(token int, status, payStatus string, amount int64) models.Visit {
	return models.Visit{
		TokenNumber:   token,
		VisitStatus:   status,
		PaymentStatus: payStatus,
		PaymentAmount: amount,
		VisitDate:     "2026-03-14",
	}
}

func TestBuildSummary(t *testing.T) {
	visits := []models.Visit{
		visitWith(1, models.StatusCompleted, models.PaymentPaid, 500),
		visitWith(2, models.StatusInConsultation, models.PaymentPaid, 500),
		visitWith(3, models.StatusArrived, models.PaymentPending, 500),
		visitWith(4, models.StatusUpcoming, models.PaymentPending, 500),
		visitWith(5, models.StatusCancelled, models.PaymentRefunded, 500),
		visitWith(6, models.StatusNoShow, models.PaymentPending, 500),
	}

	summary := BuildSummary("2026-03-14", visits, 15)

	if summary.TotalAppointments != 6 {
		t.Errorf("TotalAppointments = %d, want 6", summary.TotalAppointments)
	}
	if summary.TotalWaiting != 2 {
		t.Errorf("TotalWaiting = %d, want 2", summary.TotalWaiting)
	}
	if summary.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %d, want 1", summary.TotalCompleted)
	}
	if summary.TotalCancelled != 2 {
		t.Errorf("TotalCancelled = %d, want 2 (cancelled + no_show)", summary.TotalCancelled)
	}
	if summary.CurrentToken == nil || *summary.CurrentToken != 2 {
		t.Errorf("CurrentToken = %v, want 2", summary.CurrentToken)
	}
	if summary.EstimatedWaitMins != 30 {
		t.Errorf("EstimatedWaitMins = %d, want 30", summary.EstimatedWaitMins)
	}
	if summary.TotalRevenue != 1000 {
		t.Errorf("TotalRevenue = %d, want 1000 (paid visits only)", summary.TotalRevenue)
	}
}

func TestBuildSummaryEmptyDay(t *testing.T) {
	summary := BuildSummary("2026-03-14", nil, 15)

	if summary.TotalAppointments != 0 || summary.TotalWaiting != 0 {
		t.Errorf("empty day should produce zero counts, got %+v", summary)
	}
	if summary.CurrentToken != nil {
		t.Errorf("CurrentToken = %v, want nil", summary.CurrentToken)
	}
	if summary.SummaryDate != "2026-03-14" {
		t.Errorf("SummaryDate = %q, want %q", summary.SummaryDate, "2026-03-14")
	}
}

func TestBuildSummaryIdempotent(t *testing.T) {
	visits := []models.Visit{
		visitWith(1, models.StatusCompleted, models.PaymentPaid, 500),
		visitWith(2, models.StatusUpcoming, models.PaymentPending, 500),
	}

	first := BuildSummary("2026-03-14", visits, 15)
	second := BuildSummary("2026-03-14", visits, 15)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildSummary is not idempotent: %+v vs %+v", first, second)
	}
}

// ---------------------------------------------------------------------------
// service behavior over fake stores
// ---------------------------------------------------------------------------

type fakeVisitLister struct {
	store.VisitStore
	byDate map[string][]models.Visit
}

func (f *fakeVisitLister) ListVisitsByDate(ctx context.Context, visitDate string) ([]models.Visit, error) {
	return f.byDate[visitDate], nil
}

type fakeSummaryStore struct {
	rows map[string]models.QueueSummary
}

func (f *fakeSummaryStore) GetSummary(ctx context.Context, summaryDate string) (models.QueueSummary, error) {
	if row, ok := f.rows[summaryDate]; ok {
		return row, nil
	}
	return models.QueueSummary{SummaryDate: summaryDate}, nil
}

func (f *fakeSummaryStore) UpsertSummary(ctx context.Context, summary models.QueueSummary) error {
	summary.UpdatedAt = time.Now()
	f.rows[summary.SummaryDate] = summary
	return nil
}

type emptySettingsStore struct{}

func (emptySettingsStore) GetSettings(ctx context.Context) (models.ClinicSettings, error) {
	return models.ClinicSettings{}, store.ErrSettingsNotFound
}

func (emptySettingsStore) UpdateSettings(ctx context.Context, s models.ClinicSettings) (models.ClinicSettings, error) {
	return s, nil
}

func TestSummaryRecomputesWhenNoCachedRow(t *testing.T) {
	visits := &fakeVisitLister{byDate: map[string][]models.Visit{
		"2026-03-14": {
			visitWith(1, models.StatusUpcoming, models.PaymentPending, 500),
			visitWith(2, models.StatusUpcoming, models.PaymentPending, 500),
		},
	}}
	summaries := &fakeSummaryStore{rows: make(map[string]models.QueueSummary)}
	cfg := &config.Config{Booking: config.BookingConfig{DefaultAvgConsultationMins: 15}}

	svc := New(visits, summaries, emptySettingsStore{}, events.NopPublisher{}, cfg)

	got, err := svc.Summary(context.Background(), "2026-03-14")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if got.TotalAppointments != 2 {
		t.Errorf("TotalAppointments = %d, want 2", got.TotalAppointments)
	}
	if got.EstimatedWaitMins != 30 {
		t.Errorf("EstimatedWaitMins = %d, want 30", got.EstimatedWaitMins)
	}

	// The recompute must have persisted the row.
	if _, ok := summaries.rows["2026-03-14"]; !ok {
		t.Error("expected summary row to be upserted")
	}
}

func TestRecomputeConvergesAfterTransition(t *testing.T) {
	visits := &fakeVisitLister{byDate: map[string][]models.Visit{
		"2026-03-14": {
			visitWith(1, models.StatusUpcoming, models.PaymentPending, 500),
		},
	}}
	summaries := &fakeSummaryStore{rows: make(map[string]models.QueueSummary)}
	cfg := &config.Config{Booking: config.BookingConfig{DefaultAvgConsultationMins: 15}}

	svc := New(visits, summaries, emptySettingsStore{}, events.NopPublisher{}, cfg)

	if _, err := svc.Recompute(context.Background(), "2026-03-14"); err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}

	// Visit completes; the next recompute reflects it.
	visits.byDate["2026-03-14"] = []models.Visit{
		visitWith(1, models.StatusCompleted, models.PaymentPaid, 500),
	}

	got, err := svc.Recompute(context.Background(), "2026-03-14")
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	if got.TotalWaiting != 0 {
		t.Errorf("TotalWaiting = %d, want 0", got.TotalWaiting)
	}
	if got.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %d, want 1", got.TotalCompleted)
	}
	if got.TotalRevenue != 500 {
		t.Errorf("TotalRevenue = %d, want 500", got.TotalRevenue)
	}
}
