package visit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/events"
	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
)

// ---------------------------------------------------------------------------
// fakes
// ---------------------------------------------------------------------------

type fakeVisitStore struct {
	visits    map[uuid.UUID]models.Visit
	sequences map[string]int

	createErrs []error // popped per CreateVisit call when non-empty
}

func newFakeVisitStore() *fakeVisitStore {
	return &fakeVisitStore{
		visits:    make(map[uuid.UUID]models.Visit),
		sequences: make(map[string]int),
	}
}

func (f *fakeVisitStore) CreateVisit(ctx context.Context, input store.CreateVisitInput) (models.Visit, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return models.Visit{}, err
		}
	}

	f.sequences[input.VisitDate]++
	token := f.sequences[input.VisitDate]

	v := models.Visit{
		ID:            uuid.New(),
		UID:           fmt.Sprintf("%s-%03d", input.UIDPrefix, token),
		TokenNumber:   token,
		VisitDate:     input.VisitDate,
		Name:          input.Name,
		Age:           input.Age,
		Phone:         input.Phone,
		Email:         input.Email,
		Gender:        input.Gender,
		PaymentMethod: input.PaymentMethod,
		PaymentAmount: input.PaymentAmount,
		PaymentStatus: models.PaymentPending,
		VisitStatus:   models.StatusUpcoming,
		QueuePosition: token,
		EstimatedTime: fmt.Sprintf("%d minutes", token*input.AvgConsultationMins),
		CreatedAt:     input.CreatedAt,
	}
	f.visits[v.ID] = v
	return v, nil
}

func (f *fakeVisitStore) GetVisit(ctx context.Context, id uuid.UUID) (models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return models.Visit{}, store.ErrVisitNotFound
	}
	return v, nil
}

func (f *fakeVisitStore) GetVisitByUID(ctx context.Context, uid, visitDate string) (models.Visit, error) {
	for _, v := range f.visits {
		if v.UID == uid && v.VisitDate == visitDate {
			return v, nil
		}
	}
	return models.Visit{}, store.ErrVisitNotFound
}

func (f *fakeVisitStore) SearchVisits(ctx context.Context, input store.SearchVisitsInput) ([]models.Visit, error) {
	var out []models.Visit
	for _, v := range f.visits {
		if input.Status != "" && v.VisitStatus != input.Status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVisitStore) UpdateVisit(ctx context.Context, id uuid.UUID, input store.UpdateVisitInput) (models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return models.Visit{}, store.ErrVisitNotFound
	}
	if input.Name != nil {
		v.Name = *input.Name
	}
	if input.Phone != nil {
		v.Phone = *input.Phone
	}
	f.visits[id] = v
	return v, nil
}

func (f *fakeVisitStore) TransitionVisit(ctx context.Context, input store.TransitionInput) (models.Visit, error) {
	v, ok := f.visits[input.VisitID]
	if !ok {
		return models.Visit{}, store.ErrVisitNotFound
	}
	if !store.ValidTransition(input.Action, v.VisitStatus) {
		return models.Visit{}, store.ErrInvalidTransition
	}
	v.VisitStatus = store.TargetStatus[input.Action]
	now := input.Now
	switch input.Action {
	case "arrive":
		v.ArrivedAt = &now
	case "start":
		v.ConsultationStartTime = &now
	case "complete":
		v.ConsultationEndTime = &now
		v.CompletedAt = &now
	case "cancel":
		v.CancelledAt = &now
	}
	f.visits[input.VisitID] = v
	return v, nil
}

func (f *fakeVisitStore) SetPaymentStatus(ctx context.Context, id uuid.UUID, status, paymentID string) (models.Visit, error) {
	v, ok := f.visits[id]
	if !ok {
		return models.Visit{}, store.ErrVisitNotFound
	}
	v.PaymentStatus = status
	if paymentID != "" {
		v.PaymentID = paymentID
	}
	f.visits[id] = v
	return v, nil
}

func (f *fakeVisitStore) DeleteVisit(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.visits[id]; !ok {
		return store.ErrVisitNotFound
	}
	delete(f.visits, id)
	return nil
}

func (f *fakeVisitStore) ListVisitsByDate(ctx context.Context, visitDate string) ([]models.Visit, error) {
	var out []models.Visit
	for _, v := range f.visits {
		if v.VisitDate == visitDate {
			out = append(out, v)
		}
	}
	return out, nil
}

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

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func testConfig() *config.Config {
	return &config.Config{
		Booking: config.BookingConfig{
			ClinicCode:                 "XC",
			PhoneRegion:                "IN",
			DefaultConsultationFee:     500,
			DefaultAvgConsultationMins: 15,
			TokenRetryAttempts:         3,
		},
	}
}

func newTestService(visits *fakeVisitStore, settings *fakeSettingsStore) Service {
	svc := New(visits, settings, events.NopPublisher{}, testConfig())
	svc.(*visitService).now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func book(t *testing.T, svc Service, name string) BookResult {
	t.Helper()
	result, err := svc.Book(context.Background(), BookRequest{
		Name:          name,
		PaymentMethod: models.PaymentMethodClinic,
	})
	if err != nil {
		t.Fatalf("Book(%q) failed: %v", name, err)
	}
	return result
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func TestBookAssignsSequentialTokens(t *testing.T) {
	visits := newFakeVisitStore()
	settings := &fakeSettingsStore{settings: models.ClinicSettings{
		ClinicCode:             "XC",
		ConsultationFee:        500,
		AvgConsultationMinutes: 15,
	}}
	svc := newTestService(visits, settings)

	book(t, svc, "Asha")
	book(t, svc, "Binod")
	third := book(t, svc, "Chitra")

	if third.Visit.TokenNumber != 3 {
		t.Errorf("TokenNumber = %d, want 3", third.Visit.TokenNumber)
	}
	if third.Visit.UID != "XC-003" {
		t.Errorf("UID = %q, want %q", third.Visit.UID, "XC-003")
	}
	if third.Visit.QueuePosition != 3 {
		t.Errorf("QueuePosition = %d, want 3", third.Visit.QueuePosition)
	}
	if third.Visit.EstimatedTime != "45 minutes" {
		t.Errorf("EstimatedTime = %q, want %q", third.Visit.EstimatedTime, "45 minutes")
	}
	if third.Visit.VisitStatus != models.StatusUpcoming {
		t.Errorf("VisitStatus = %q, want %q", third.Visit.VisitStatus, models.StatusUpcoming)
	}
	if third.Visit.PaymentAmount != 500 {
		t.Errorf("PaymentAmount = %d, want 500", third.Visit.PaymentAmount)
	}
}

func TestBookReturnsScannableQRPayload(t *testing.T) {
	visits := newFakeVisitStore()
	settings := &fakeSettingsStore{settings: models.ClinicSettings{ClinicCode: "XC"}}
	svc := newTestService(visits, settings)

	result := book(t, svc, "Asha")

	var payload struct {
		UID        string `json:"uid"`
		VisitID    string `json:"visitId"`
		ClinicCode string `json:"clinicCode"`
	}
	if err := json.Unmarshal([]byte(result.QRPayload), &payload); err != nil {
		t.Fatalf("QR payload is not valid JSON: %v", err)
	}
	if payload.UID != result.Visit.UID {
		t.Errorf("payload uid = %q, want %q", payload.UID, result.Visit.UID)
	}
	if payload.VisitID != result.Visit.ID.String() {
		t.Errorf("payload visitId = %q, want %q", payload.VisitID, result.Visit.ID.String())
	}
	if payload.ClinicCode != "XC" {
		t.Errorf("payload clinicCode = %q, want %q", payload.ClinicCode, "XC")
	}
}

func TestBookFallsBackToConfigWhenSettingsMissing(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	result := book(t, svc, "Asha")

	if result.Visit.UID != "XC-001" {
		t.Errorf("UID = %q, want %q", result.Visit.UID, "XC-001")
	}
	if result.Visit.PaymentAmount != 500 {
		t.Errorf("PaymentAmount = %d, want 500", result.Visit.PaymentAmount)
	}
	if result.Visit.EstimatedTime != "15 minutes" {
		t.Errorf("EstimatedTime = %q, want %q", result.Visit.EstimatedTime, "15 minutes")
	}
}

func TestBookValidation(t *testing.T) {
	svc := newTestService(newFakeVisitStore(), &fakeSettingsStore{missing: true})

	cases := []struct {
		name    string
		req     BookRequest
		wantErr error
	}{
		{"missing name", BookRequest{PaymentMethod: "clinic"}, ErrNameRequired},
		{"bad payment method", BookRequest{Name: "Asha", PaymentMethod: "cheque"}, ErrInvalidPaymentMethod},
		{"bad gender", BookRequest{Name: "Asha", PaymentMethod: "clinic", Gender: "x"}, ErrInvalidGender},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Book(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Book() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBookRetriesOnDuplicateToken(t *testing.T) {
	visits := newFakeVisitStore()
	visits.createErrs = []error{store.ErrDuplicateToken, nil}
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	result := book(t, svc, "Asha")
	if result.Visit.TokenNumber != 1 {
		t.Errorf("TokenNumber = %d, want 1", result.Visit.TokenNumber)
	}
}

func TestBookGivesUpAfterRetryBudget(t *testing.T) {
	visits := newFakeVisitStore()
	visits.createErrs = []error{
		store.ErrDuplicateToken,
		store.ErrDuplicateToken,
		store.ErrDuplicateToken,
	}
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	_, err := svc.Book(context.Background(), BookRequest{Name: "Asha", PaymentMethod: "clinic"})
	if !errors.Is(err, ErrBookingFailed) {
		t.Errorf("Book() error = %v, want %v", err, ErrBookingFailed)
	}
}

func TestTrackResolvesTodaysUID(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")

	got, err := svc.Track(context.Background(), booked.Visit.UID)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if got.ID != booked.Visit.ID {
		t.Errorf("Track returned visit %s, want %s", got.ID, booked.Visit.ID)
	}

	if _, err := svc.Track(context.Background(), "XC-999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Track(unknown) error = %v, want %v", err, ErrNotFound)
	}
}

func TestTransitionRejectsIllegalJump(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")

	// upcoming -> in_consultation skips the arrival step
	if _, err := svc.Transition(context.Background(), booked.Visit.ID, "start"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Transition(start) error = %v, want %v", err, ErrInvalidTransition)
	}

	v, err := svc.Transition(context.Background(), booked.Visit.ID, "arrive")
	if err != nil {
		t.Fatalf("Transition(arrive) failed: %v", err)
	}
	if v.VisitStatus != models.StatusArrived {
		t.Errorf("VisitStatus = %q, want %q", v.VisitStatus, models.StatusArrived)
	}
}

func TestTransitionStampsOnlyItsOwnTimestamps(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")
	ctx := context.Background()

	v, err := svc.Transition(ctx, booked.Visit.ID, "arrive")
	if err != nil {
		t.Fatalf("Transition(arrive) failed: %v", err)
	}
	if v.ArrivedAt == nil {
		t.Error("arrive did not set arrived_at")
	}
	if v.ConsultationStartTime != nil || v.ConsultationEndTime != nil || v.CompletedAt != nil || v.CancelledAt != nil {
		t.Error("arrive stamped timestamps beyond arrived_at")
	}

	v, err = svc.Transition(ctx, booked.Visit.ID, "start")
	if err != nil {
		t.Fatalf("Transition(start) failed: %v", err)
	}
	if v.ConsultationStartTime == nil {
		t.Error("start did not set consultation_start_time")
	}
	if v.ConsultationEndTime != nil || v.CompletedAt != nil {
		t.Error("start stamped completion timestamps")
	}

	v, err = svc.Transition(ctx, booked.Visit.ID, "complete")
	if err != nil {
		t.Fatalf("Transition(complete) failed: %v", err)
	}
	if v.ConsultationEndTime == nil || v.CompletedAt == nil {
		t.Error("complete did not set both consultation_end_time and completed_at")
	}
	if v.CancelledAt != nil {
		t.Error("complete stamped cancelled_at")
	}
}

func TestCheckInByScanWithJSONPayload(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")

	v, err := svc.CheckInByScan(context.Background(), booked.QRPayload)
	if err != nil {
		t.Fatalf("CheckInByScan failed: %v", err)
	}
	if v.VisitStatus != models.StatusArrived {
		t.Errorf("VisitStatus = %q, want %q", v.VisitStatus, models.StatusArrived)
	}
}

func TestCheckInByScanWithBareUID(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")

	v, err := svc.CheckInByScan(context.Background(), booked.Visit.UID)
	if err != nil {
		t.Fatalf("CheckInByScan failed: %v", err)
	}
	if v.ID != booked.Visit.ID {
		t.Errorf("checked in visit %s, want %s", v.ID, booked.Visit.ID)
	}
}

func TestMarkPaidAndRefund(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")

	if _, err := svc.Refund(context.Background(), booked.Visit.ID); !errors.Is(err, ErrNotPaid) {
		t.Errorf("Refund before payment error = %v, want %v", err, ErrNotPaid)
	}

	paid, err := svc.MarkPaid(context.Background(), booked.Visit.ID, "")
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if paid.PaymentStatus != models.PaymentPaid {
		t.Errorf("PaymentStatus = %q, want %q", paid.PaymentStatus, models.PaymentPaid)
	}
	if paid.PaymentID == "" {
		t.Error("expected a generated payment id")
	}
	if paid.VisitStatus != models.StatusUpcoming {
		t.Errorf("payment must not change visit status, got %q", paid.VisitStatus)
	}

	if _, err := svc.MarkPaid(context.Background(), booked.Visit.ID, ""); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("second MarkPaid error = %v, want %v", err, ErrAlreadyPaid)
	}

	refunded, err := svc.Refund(context.Background(), booked.Visit.ID)
	if err != nil {
		t.Fatalf("Refund failed: %v", err)
	}
	if refunded.PaymentStatus != models.PaymentRefunded {
		t.Errorf("PaymentStatus = %q, want %q", refunded.PaymentStatus, models.PaymentRefunded)
	}
}

func TestDelete(t *testing.T) {
	visits := newFakeVisitStore()
	svc := newTestService(visits, &fakeSettingsStore{missing: true})

	booked := book(t, svc, "Asha")

	if err := svc.Delete(context.Background(), booked.Visit.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), booked.Visit.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := svc.Delete(context.Background(), booked.Visit.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in     string
		region string
		want   string
	}{
		{"9876543210", "IN", "+919876543210"},
		{"+919876543210", "IN", "+919876543210"},
		{"not-a-number", "IN", "not-a-number"},
		{"", "IN", ""},
	}

	for _, tt := range cases {
		if got := normalizePhone(tt.in, tt.region); got != tt.want {
			t.Errorf("normalizePhone(%q, %q) = %q, want %q", tt.in, tt.region, got, tt.want)
		}
	}
}
