package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/events"
	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
	"github.com/gbmsdev99/xclinic/pkg/qr"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type BookRequest struct {
	Name             string
	Age              *int
	Phone            string
	Email            string
	Gender           string
	Address          string
	Reason           string
	Symptoms         string
	MedicalHistory   string
	Allergies        string
	Medications      string
	EmergencyContact string
	PaymentMethod    string
}

// BookResult is what the confirmation screen needs: the visit plus the
// QR payload text the client renders as an image.
type BookResult struct {
	Visit     models.Visit `json:"visit"`
	QRPayload string       `json:"qr_payload"`
}

type SearchRequest struct {
	Query    string
	Status   string
	DateFrom string
	DateTo   string
	Page     int
	PerPage  int
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Book(ctx context.Context, req BookRequest) (BookResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Visit, error)
	Track(ctx context.Context, uid string) (models.Visit, error)
	Search(ctx context.Context, req SearchRequest) ([]models.Visit, error)
	Update(ctx context.Context, id uuid.UUID, input store.UpdateVisitInput) (models.Visit, error)
	Transition(ctx context.Context, id uuid.UUID, action string) (models.Visit, error)
	CheckInByScan(ctx context.Context, scannedText string) (models.Visit, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) (models.Visit, error)
	Refund(ctx context.Context, id uuid.UUID) (models.Visit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type visitService struct {
	visits   store.VisitStore
	settings store.SettingsStore
	pub      events.Publisher
	cfg      *config.Config
	now      func() time.Time
}

func New(visits store.VisitStore, settings store.SettingsStore, pub events.Publisher, cfg *config.Config) Service {
	return &visitService{
		visits:   visits,
		settings: settings,
		pub:      pub,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// clinicContext loads settings, falling back to config defaults when
// the singleton row is missing so bookings keep working.
func (s *visitService) clinicContext(ctx context.Context) (models.ClinicSettings, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSettingsNotFound) {
			return models.ClinicSettings{}, err
		}
		settings = models.ClinicSettings{
			ClinicCode:             s.cfg.Booking.ClinicCode,
			ConsultationFee:        s.cfg.Booking.DefaultConsultationFee,
			AvgConsultationMinutes: s.cfg.Booking.DefaultAvgConsultationMins,
		}
	}
	if settings.ClinicCode == "" {
		settings.ClinicCode = s.cfg.Booking.ClinicCode
	}
	if settings.AvgConsultationMinutes <= 0 {
		settings.AvgConsultationMinutes = s.cfg.Booking.DefaultAvgConsultationMins
	}
	return settings, nil
}

func (s *visitService) Book(ctx context.Context, req BookRequest) (BookResult, error) {
	if req.Name == "" {
		return BookResult{}, ErrNameRequired
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return BookResult{}, ErrInvalidPaymentMethod
	}
	if !models.ValidGender(req.Gender) {
		return BookResult{}, ErrInvalidGender
	}

	settings, err := s.clinicContext(ctx)
	if err != nil {
		return BookResult{}, fmt.Errorf("load clinic settings: %w", err)
	}

	now := s.now()
	visitDate := now.In(settings.Location()).Format("2006-01-02")

	input := store.CreateVisitInput{
		VisitDate:           visitDate,
		UIDPrefix:           settings.ClinicCode,
		Name:                req.Name,
		Age:                 req.Age,
		Phone:               normalizePhone(req.Phone, s.cfg.Booking.PhoneRegion),
		Email:               req.Email,
		Gender:              req.Gender,
		Address:             req.Address,
		Reason:              req.Reason,
		Symptoms:            req.Symptoms,
		MedicalHistory:      req.MedicalHistory,
		Allergies:           req.Allergies,
		Medications:         req.Medications,
		EmergencyContact:    req.EmergencyContact,
		PaymentMethod:       req.PaymentMethod,
		PaymentAmount:       settings.ConsultationFee,
		AvgConsultationMins: settings.AvgConsultationMinutes,
		CreatedAt:           now,
	}

	// The sequence upsert serializes token assignment; the retry loop
	// only matters when uniqueness is violated some other way (e.g. a
	// restored backup left the sequence behind the visits table).
	var visit models.Visit
	attempts := s.cfg.Booking.TokenRetryAttempts
	for i := 0; i < attempts; i++ {
		visit, err = s.visits.CreateVisit(ctx, input)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrDuplicateToken) {
			return BookResult{}, fmt.Errorf("create visit: %w", err)
		}
	}
	if err != nil {
		return BookResult{}, ErrBookingFailed
	}

	payload, err := qr.Encode(visit.UID, visit.ID.String(), settings.ClinicCode, now)
	if err != nil {
		return BookResult{}, fmt.Errorf("encode qr payload: %w", err)
	}

	s.pub.VisitCreated(events.VisitEvent{
		VisitID:   visit.ID.String(),
		UID:       visit.UID,
		VisitDate: visit.VisitDate,
		Status:    visit.VisitStatus,
		At:        now,
	})

	return BookResult{Visit: visit, QRPayload: payload}, nil
}

func (s *visitService) GetByID(ctx context.Context, id uuid.UUID) (models.Visit, error) {
	visit, err := s.visits.GetVisit(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrVisitNotFound) {
			return models.Visit{}, ErrNotFound
		}
		return models.Visit{}, fmt.Errorf("get visit: %w", err)
	}
	return visit, nil
}

// Track resolves a uid against today's queue (uids reset daily).
func (s *visitService) Track(ctx context.Context, uid string) (models.Visit, error) {
	settings, err := s.clinicContext(ctx)
	if err != nil {
		return models.Visit{}, fmt.Errorf("load clinic settings: %w", err)
	}
	visitDate := s.now().In(settings.Location()).Format("2006-01-02")

	visit, err := s.visits.GetVisitByUID(ctx, uid, visitDate)
	if err != nil {
		if errors.Is(err, store.ErrVisitNotFound) {
			return models.Visit{}, ErrNotFound
		}
		return models.Visit{}, fmt.Errorf("get visit by uid: %w", err)
	}
	return visit, nil
}

func (s *visitService) Search(ctx context.Context, req SearchRequest) ([]models.Visit, error) {
	visits, err := s.visits.SearchVisits(ctx, store.SearchVisitsInput{
		Query:    req.Query,
		Status:   req.Status,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Page:     req.Page,
		PerPage:  req.PerPage,
	})
	if err != nil {
		return nil, fmt.Errorf("search visits: %w", err)
	}
	return visits, nil
}

func (s *visitService) Update(ctx context.Context, id uuid.UUID, input store.UpdateVisitInput) (models.Visit, error) {
	if input.Gender != nil && !models.ValidGender(*input.Gender) {
		return models.Visit{}, ErrInvalidGender
	}
	if input.Phone != nil {
		normalized := normalizePhone(*input.Phone, s.cfg.Booking.PhoneRegion)
		input.Phone = &normalized
	}

	visit, err := s.visits.UpdateVisit(ctx, id, input)
	if err != nil {
		if errors.Is(err, store.ErrVisitNotFound) {
			return models.Visit{}, ErrNotFound
		}
		return models.Visit{}, fmt.Errorf("update visit: %w", err)
	}

	s.publishUpdated(visit)
	return visit, nil
}

func (s *visitService) Transition(ctx context.Context, id uuid.UUID, action string) (models.Visit, error) {
	visit, err := s.visits.TransitionVisit(ctx, store.TransitionInput{
		VisitID: id,
		Action:  action,
		Now:     s.now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrVisitNotFound):
			return models.Visit{}, ErrNotFound
		case errors.Is(err, store.ErrInvalidTransition):
			return models.Visit{}, ErrInvalidTransition
		}
		return models.Visit{}, fmt.Errorf("transition visit: %w", err)
	}

	s.publishUpdated(visit)
	return visit, nil
}

// CheckInByScan decodes a scanned QR payload (or bare uid text) and
// marks the booking arrived.
func (s *visitService) CheckInByScan(ctx context.Context, scannedText string) (models.Visit, error) {
	settings, err := s.clinicContext(ctx)
	if err != nil {
		return models.Visit{}, fmt.Errorf("load clinic settings: %w", err)
	}

	payload, err := qr.Decode(scannedText, settings.ClinicCode)
	if err != nil {
		return models.Visit{}, ErrNotFound
	}

	var visit models.Visit
	if payload.VisitID != "" {
		id, parseErr := uuid.Parse(payload.VisitID)
		if parseErr == nil {
			visit, err = s.visits.GetVisit(ctx, id)
		} else {
			err = store.ErrVisitNotFound
		}
	} else {
		visitDate := s.now().In(settings.Location()).Format("2006-01-02")
		visit, err = s.visits.GetVisitByUID(ctx, payload.UID, visitDate)
	}
	if err != nil {
		if errors.Is(err, store.ErrVisitNotFound) {
			return models.Visit{}, ErrNotFound
		}
		return models.Visit{}, fmt.Errorf("resolve scanned visit: %w", err)
	}

	return s.Transition(ctx, visit.ID, "arrive")
}

func (s *visitService) MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) (models.Visit, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Visit{}, err
	}
	if current.PaymentStatus == models.PaymentPaid {
		return models.Visit{}, ErrAlreadyPaid
	}

	if paymentID == "" {
		paymentID = "pay_" + uuid.NewString()
	}

	visit, err := s.visits.SetPaymentStatus(ctx, id, models.PaymentPaid, paymentID)
	if err != nil {
		return models.Visit{}, fmt.Errorf("mark paid: %w", err)
	}

	s.publishUpdated(visit)
	return visit, nil
}

func (s *visitService) Refund(ctx context.Context, id uuid.UUID) (models.Visit, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Visit{}, err
	}
	if current.PaymentStatus != models.PaymentPaid {
		return models.Visit{}, ErrNotPaid
	}

	visit, err := s.visits.SetPaymentStatus(ctx, id, models.PaymentRefunded, "")
	if err != nil {
		return models.Visit{}, fmt.Errorf("refund: %w", err)
	}

	s.publishUpdated(visit)
	return visit, nil
}

func (s *visitService) Delete(ctx context.Context, id uuid.UUID) error {
	visit, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.visits.DeleteVisit(ctx, id); err != nil {
		if errors.Is(err, store.ErrVisitNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete visit: %w", err)
	}

	s.pub.VisitDeleted(events.VisitEvent{
		VisitID:   visit.ID.String(),
		UID:       visit.UID,
		VisitDate: visit.VisitDate,
		Status:    visit.VisitStatus,
		At:        s.now(),
	})
	return nil
}

func (s *visitService) publishUpdated(visit models.Visit) {
	s.pub.VisitUpdated(events.VisitEvent{
		VisitID:   visit.ID.String(),
		UID:       visit.UID,
		VisitDate: visit.VisitDate,
		Status:    visit.VisitStatus,
		At:        s.now(),
	})
}

// normalizePhone converts to E.164 when the number parses; otherwise
// the raw input is stored as typed.
func normalizePhone(phone, region string) string {
	if phone == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
