package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

const tokenPad = 3

const visitColumns = `id, uid, token_number, visit_date, name, age, phone, email, gender, address,
	reason, symptoms, medical_history, allergies, medications, emergency_contact,
	payment_method, payment_status, payment_id, payment_amount,
	visit_status, queue_position, estimated_time,
	arrived_at, consultation_start_time, consultation_end_time, completed_at, cancelled_at,
	notes, diagnosis, treatment_plan, follow_up_date, follow_up_instructions,
	prescription_id, prescription_url, prescription_notes, doctor_rating, feedback,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(row rowScanner) (models.Visit, error) {
	var (
		v            models.Visit
		visitDate    time.Time
		age          sql.NullInt32
		arrivedAt    sql.NullTime
		consultStart sql.NullTime
		consultEnd   sql.NullTime
		completedAt  sql.NullTime
		cancelledAt  sql.NullTime
		notes        sql.NullString
		diagnosis    sql.NullString
		treatment    sql.NullString
		followDate   sql.NullString
		followInstr  sql.NullString
		prescID      *uuid.UUID
		prescURL     sql.NullString
		prescNotes   sql.NullString
		rating       sql.NullInt32
		feedback     sql.NullString
	)

	err := row.Scan(
		&v.ID, &v.UID, &v.TokenNumber, &visitDate, &v.Name, &age, &v.Phone, &v.Email, &v.Gender, &v.Address,
		&v.Reason, &v.Symptoms, &v.MedicalHistory, &v.Allergies, &v.Medications, &v.EmergencyContact,
		&v.PaymentMethod, &v.PaymentStatus, &v.PaymentID, &v.PaymentAmount,
		&v.VisitStatus, &v.QueuePosition, &v.EstimatedTime,
		&arrivedAt, &consultStart, &consultEnd, &completedAt, &cancelledAt,
		&notes, &diagnosis, &treatment, &followDate, &followInstr,
		&prescID, &prescURL, &prescNotes, &rating, &feedback,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return models.Visit{}, err
	}

	v.VisitDate = visitDate.Format("2006-01-02")
	v.Age = nullIntPtr(age)
	v.ArrivedAt = nullTimePtr(arrivedAt)
	v.ConsultationStartTime = nullTimePtr(consultStart)
	v.ConsultationEndTime = nullTimePtr(consultEnd)
	v.CompletedAt = nullTimePtr(completedAt)
	v.CancelledAt = nullTimePtr(cancelledAt)
	v.Notes = nullStringPtr(notes)
	v.Diagnosis = nullStringPtr(diagnosis)
	v.TreatmentPlan = nullStringPtr(treatment)
	v.FollowUpDate = nullStringPtr(followDate)
	v.FollowUpInstructions = nullStringPtr(followInstr)
	v.PrescriptionID = prescID
	v.PrescriptionURL = nullStringPtr(prescURL)
	v.PrescriptionNotes = nullStringPtr(prescNotes)
	v.DoctorRating = nullIntPtr(rating)
	v.Feedback = nullStringPtr(feedback)
	return v, nil
}

// nextToken claims the next token for a date atomically. The sequence
// row is the serialization point, so two concurrent bookings can never
// observe the same number.
func nextToken(ctx context.Context, tx pgx.Tx, visitDate string) (int, error) {
	var next int64
	row := tx.QueryRow(ctx, `
		INSERT INTO token_sequences (seq_date, next_number)
		VALUES ($1, 1)
		ON CONFLICT (seq_date)
		DO UPDATE SET next_number = token_sequences.next_number + 1
		RETURNING next_number
	`, visitDate)
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	return int(next), nil
}

func (s *Store) CreateVisit(ctx context.Context, input store.CreateVisitInput) (models.Visit, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Visit{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	token, err := nextToken(ctx, tx, input.VisitDate)
	if err != nil {
		return models.Visit{}, err
	}

	uid := fmt.Sprintf("%s-%0*d", input.UIDPrefix, tokenPad, token)
	estimated := fmt.Sprintf("%d minutes", token*input.AvgConsultationMins)

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO visits (
			id, uid, token_number, visit_date, name, age, phone, email, gender, address,
			reason, symptoms, medical_history, allergies, medications, emergency_contact,
			payment_method, payment_status, payment_amount,
			visit_status, queue_position, estimated_time, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
			$11,$12,$13,$14,$15,$16,
			$17,$18,$19,
			$20,$21,$22,$23,$23
		)
		RETURNING `+visitColumns,
		uuid.New(), uid, token, input.VisitDate, input.Name, input.Age, input.Phone, input.Email, input.Gender, input.Address,
		input.Reason, input.Symptoms, input.MedicalHistory, input.Allergies, input.Medications, input.EmergencyContact,
		input.PaymentMethod, models.PaymentPending, input.PaymentAmount,
		models.StatusUpcoming, token, estimated, createdAt,
	)

	visit, err := scanVisit(row)
	if err != nil {
		if isUniqueViolation(err) {
			err = store.ErrDuplicateToken
		}
		return models.Visit{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Visit{}, err
	}
	return visit, nil
}

func (s *Store) GetVisit(ctx context.Context, id uuid.UUID) (models.Visit, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+visitColumns+` FROM visits WHERE id = $1`, id)
	visit, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Visit{}, store.ErrVisitNotFound
		}
		return models.Visit{}, err
	}
	return visit, nil
}

func (s *Store) GetVisitByUID(ctx context.Context, uid, visitDate string) (models.Visit, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+visitColumns+` FROM visits WHERE uid = $1 AND visit_date = $2
	`, uid, visitDate)
	visit, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Visit{}, store.ErrVisitNotFound
		}
		return models.Visit{}, err
	}
	return visit, nil
}

func (s *Store) SearchVisits(ctx context.Context, input store.SearchVisitsInput) ([]models.Visit, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PerPage < 1 || input.PerPage > 100 {
		input.PerPage = 20
	}

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if input.Query != "" {
		p := arg("%" + input.Query + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR uid ILIKE %s OR phone ILIKE %s)", p, p, p))
	}
	if input.Status != "" {
		conds = append(conds, "visit_status = "+arg(input.Status))
	}
	if input.DateFrom != "" {
		conds = append(conds, "visit_date >= "+arg(input.DateFrom))
	}
	if input.DateTo != "" {
		conds = append(conds, "visit_date <= "+arg(input.DateTo))
	}

	query := `SELECT ` + visitColumns + ` FROM visits`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY visit_date DESC, token_number ASC"
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", input.PerPage, (input.Page-1)*input.PerPage)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []models.Visit
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}

func (s *Store) ListVisitsByDate(ctx context.Context, visitDate string) ([]models.Visit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+visitColumns+` FROM visits WHERE visit_date = $1 ORDER BY token_number ASC
	`, visitDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []models.Visit
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}

func (s *Store) UpdateVisit(ctx context.Context, id uuid.UUID, input store.UpdateVisitInput) (models.Visit, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if input.Name != nil {
		set("name", *input.Name)
	}
	if input.Age != nil {
		set("age", *input.Age)
	}
	if input.Phone != nil {
		set("phone", *input.Phone)
	}
	if input.Email != nil {
		set("email", *input.Email)
	}
	if input.Gender != nil {
		set("gender", *input.Gender)
	}
	if input.Address != nil {
		set("address", *input.Address)
	}
	if input.Reason != nil {
		set("reason", *input.Reason)
	}
	if input.Symptoms != nil {
		set("symptoms", *input.Symptoms)
	}
	if input.MedicalHistory != nil {
		set("medical_history", *input.MedicalHistory)
	}
	if input.Allergies != nil {
		set("allergies", *input.Allergies)
	}
	if input.Medications != nil {
		set("medications", *input.Medications)
	}
	if input.EmergencyContact != nil {
		set("emergency_contact", *input.EmergencyContact)
	}
	if input.Notes != nil {
		set("notes", *input.Notes)
	}
	if input.Diagnosis != nil {
		set("diagnosis", *input.Diagnosis)
	}
	if input.TreatmentPlan != nil {
		set("treatment_plan", *input.TreatmentPlan)
	}
	if input.FollowUpDate != nil {
		set("follow_up_date", *input.FollowUpDate)
	}
	if input.FollowUpInstructions != nil {
		set("follow_up_instructions", *input.FollowUpInstructions)
	}
	if input.PrescriptionID != nil {
		set("prescription_id", *input.PrescriptionID)
	}
	if input.PrescriptionURL != nil {
		set("prescription_url", *input.PrescriptionURL)
	}
	if input.PrescriptionNotes != nil {
		set("prescription_notes", *input.PrescriptionNotes)
	}
	if input.DoctorRating != nil {
		set("doctor_rating", *input.DoctorRating)
	}
	if input.Feedback != nil {
		set("feedback", *input.Feedback)
	}

	set("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE visits SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), visitColumns,
	)

	row := s.pool.QueryRow(ctx, query, args...)
	visit, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Visit{}, store.ErrVisitNotFound
		}
		return models.Visit{}, err
	}
	return visit, nil
}

// timestamp columns stamped per action, in addition to updated_at.
var transitionStamps = map[string][]string{
	"arrive":   {"arrived_at"},
	"start":    {"consultation_start_time"},
	"complete": {"consultation_end_time", "completed_at"},
	"cancel":   {"cancelled_at"},
	"no_show":  nil,
}

func (s *Store) TransitionVisit(ctx context.Context, input store.TransitionInput) (models.Visit, error) {
	target, ok := store.TargetStatus[input.Action]
	if !ok {
		return models.Visit{}, store.ErrInvalidTransition
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Visit{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var current string
	row := tx.QueryRow(ctx, `SELECT visit_status FROM visits WHERE id = $1 FOR UPDATE`, input.VisitID)
	if err = row.Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrVisitNotFound
		}
		return models.Visit{}, err
	}

	if !store.ValidTransition(input.Action, current) {
		err = store.ErrInvalidTransition
		return models.Visit{}, err
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	sets := []string{"visit_status = $2", "updated_at = $3"}
	for _, col := range transitionStamps[input.Action] {
		sets = append(sets, col+" = $3")
	}
	query := fmt.Sprintf(
		"UPDATE visits SET %s WHERE id = $1 RETURNING %s",
		strings.Join(sets, ", "), visitColumns,
	)

	visit, err := scanVisit(tx.QueryRow(ctx, query, input.VisitID, target, now))
	if err != nil {
		return models.Visit{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Visit{}, err
	}
	return visit, nil
}

func (s *Store) SetPaymentStatus(ctx context.Context, id uuid.UUID, status, paymentID string) (models.Visit, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE visits
		SET payment_status = $2,
			payment_id = COALESCE(NULLIF($3, ''), payment_id),
			updated_at = now()
		WHERE id = $1
		RETURNING `+visitColumns,
		id, status, paymentID,
	)
	visit, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Visit{}, store.ErrVisitNotFound
		}
		return models.Visit{}, err
	}
	return visit, nil
}

func (s *Store) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrVisitNotFound
	}
	return nil
}
