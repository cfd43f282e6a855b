package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gbmsdev99/xclinic/internal/models"
)

func (s *Store) GetSummary(ctx context.Context, summaryDate string) (models.QueueSummary, error) {
	var (
		summary      models.QueueSummary
		date         time.Time
		currentToken sql.NullInt32
	)
	row := s.pool.QueryRow(ctx, `
		SELECT summary_date, total_appointments, total_waiting, total_completed,
			total_cancelled, current_token, estimated_wait_mins, total_revenue, updated_at
		FROM queue_summary
		WHERE summary_date = $1
	`, summaryDate)
	err := row.Scan(
		&date, &summary.TotalAppointments, &summary.TotalWaiting, &summary.TotalCompleted,
		&summary.TotalCancelled, &currentToken, &summary.EstimatedWaitMins, &summary.TotalRevenue, &summary.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// An absent row is an empty day, not an error.
			return models.QueueSummary{SummaryDate: summaryDate}, nil
		}
		return models.QueueSummary{}, err
	}
	summary.SummaryDate = date.Format("2006-01-02")
	summary.CurrentToken = nullIntPtr(currentToken)
	return summary, nil
}

func (s *Store) UpsertSummary(ctx context.Context, summary models.QueueSummary) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO queue_summary (
			summary_date, total_appointments, total_waiting, total_completed,
			total_cancelled, current_token, estimated_wait_mins, total_revenue, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
		ON CONFLICT (summary_date) DO UPDATE SET
			total_appointments = EXCLUDED.total_appointments,
			total_waiting = EXCLUDED.total_waiting,
			total_completed = EXCLUDED.total_completed,
			total_cancelled = EXCLUDED.total_cancelled,
			current_token = EXCLUDED.current_token,
			estimated_wait_mins = EXCLUDED.estimated_wait_mins,
			total_revenue = EXCLUDED.total_revenue,
			updated_at = now()
	`, summary.SummaryDate, summary.TotalAppointments, summary.TotalWaiting, summary.TotalCompleted,
		summary.TotalCancelled, summary.CurrentToken, summary.EstimatedWaitMins, summary.TotalRevenue)
	return err
}
