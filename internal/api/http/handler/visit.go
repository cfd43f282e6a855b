package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gbmsdev99/xclinic/internal/service/visit"
	"github.com/gbmsdev99/xclinic/internal/store"
)

type VisitHandler struct {
	svc visit.Service
}

func NewVisitHandler(svc visit.Service) *VisitHandler {
	return &VisitHandler{svc: svc}
}

func mapVisitError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, visit.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, visit.ErrNameRequired),
		errors.Is(err, visit.ErrInvalidPaymentMethod),
		errors.Is(err, visit.ErrInvalidGender):
		return badRequest(c, err.Error())
	case errors.Is(err, visit.ErrInvalidTransition):
		return unprocessable(c, err.Error())
	case errors.Is(err, visit.ErrAlreadyPaid),
		errors.Is(err, visit.ErrNotPaid):
		return conflict(c, err.Error())
	case errors.Is(err, visit.ErrBookingFailed):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /visits
func (h *VisitHandler) Book(c fiber.Ctx) error {
	var body struct {
		Name             string `json:"name"`
		Age              *int   `json:"age"`
		Phone            string `json:"phone"`
		Email            string `json:"email"`
		Gender           string `json:"gender"`
		Address          string `json:"address"`
		Reason           string `json:"reason"`
		Symptoms         string `json:"symptoms"`
		MedicalHistory   string `json:"medical_history"`
		Allergies        string `json:"allergies"`
		Medications      string `json:"medications"`
		EmergencyContact string `json:"emergency_contact"`
		PaymentMethod    string `json:"payment_method"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.svc.Book(c.Context(), visit.BookRequest{
		Name:             body.Name,
		Age:              body.Age,
		Phone:            body.Phone,
		Email:            body.Email,
		Gender:           body.Gender,
		Address:          body.Address,
		Reason:           body.Reason,
		Symptoms:         body.Symptoms,
		MedicalHistory:   body.MedicalHistory,
		Allergies:        body.Allergies,
		Medications:      body.Medications,
		EmergencyContact: body.EmergencyContact,
		PaymentMethod:    body.PaymentMethod,
	})
	if err != nil {
		return mapVisitError(c, err)
	}

	return created(c, result)
}

// GET /visits/track/:uid
func (h *VisitHandler) Track(c fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return badRequest(c, "uid is required")
	}

	v, err := h.svc.Track(c.Context(), uid)
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, fiber.Map{
		"uid":            v.UID,
		"token_number":   v.TokenNumber,
		"visit_status":   v.VisitStatus,
		"queue_position": v.QueuePosition,
		"estimated_time": v.EstimatedTime,
	})
}

// GET /visits
func (h *VisitHandler) List(c fiber.Ctx) error {
	var q struct {
		Query    string `query:"q"`
		Status   string `query:"status"`
		DateFrom string `query:"date_from"`
		DateTo   string `query:"date_to"`
		Page     int    `query:"page"`
		PerPage  int    `query:"per_page"`
	}
	_ = c.Bind().Query(&q)

	visits, err := h.svc.Search(c.Context(), visit.SearchRequest{
		Query:    q.Query,
		Status:   q.Status,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Page:     q.Page,
		PerPage:  q.PerPage,
	})
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, visits)
}

// GET /visits/:id
func (h *VisitHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	v, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, v)
}

// PATCH /visits/:id
func (h *VisitHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	var body struct {
		Name             *string `json:"name"`
		Age              *int    `json:"age"`
		Phone            *string `json:"phone"`
		Email            *string `json:"email"`
		Gender           *string `json:"gender"`
		Address          *string `json:"address"`
		Reason           *string `json:"reason"`
		Symptoms         *string `json:"symptoms"`
		MedicalHistory   *string `json:"medical_history"`
		Allergies        *string `json:"allergies"`
		Medications      *string `json:"medications"`
		EmergencyContact *string `json:"emergency_contact"`

		Notes                *string `json:"notes"`
		Diagnosis            *string `json:"diagnosis"`
		TreatmentPlan        *string `json:"treatment_plan"`
		FollowUpDate         *string `json:"follow_up_date"`
		FollowUpInstructions *string `json:"follow_up_instructions"`

		DoctorRating *int    `json:"doctor_rating"`
		Feedback     *string `json:"feedback"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	v, err := h.svc.Update(c.Context(), id, store.UpdateVisitInput{
		Name:             body.Name,
		Age:              body.Age,
		Phone:            body.Phone,
		Email:            body.Email,
		Gender:           body.Gender,
		Address:          body.Address,
		Reason:           body.Reason,
		Symptoms:         body.Symptoms,
		MedicalHistory:   body.MedicalHistory,
		Allergies:        body.Allergies,
		Medications:      body.Medications,
		EmergencyContact: body.EmergencyContact,

		Notes:                body.Notes,
		Diagnosis:            body.Diagnosis,
		TreatmentPlan:        body.TreatmentPlan,
		FollowUpDate:         body.FollowUpDate,
		FollowUpInstructions: body.FollowUpInstructions,

		DoctorRating: body.DoctorRating,
		Feedback:     body.Feedback,
	})
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, v)
}

func (h *VisitHandler) transition(c fiber.Ctx, action string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	v, err := h.svc.Transition(c.Context(), id, action)
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, v)
}

// PATCH /visits/:id/arrive
func (h *VisitHandler) Arrive(c fiber.Ctx) error { return h.transition(c, "arrive") }

// PATCH /visits/:id/start
func (h *VisitHandler) Start(c fiber.Ctx) error { return h.transition(c, "start") }

// PATCH /visits/:id/complete
func (h *VisitHandler) Complete(c fiber.Ctx) error { return h.transition(c, "complete") }

// PATCH /visits/:id/cancel
func (h *VisitHandler) Cancel(c fiber.Ctx) error { return h.transition(c, "cancel") }

// PATCH /visits/:id/no-show
func (h *VisitHandler) NoShow(c fiber.Ctx) error { return h.transition(c, "no_show") }

// POST /visits/check-in
func (h *VisitHandler) CheckInByScan(c fiber.Ctx) error {
	var body struct {
		Payload string `json:"payload"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Payload == "" {
		return badRequest(c, "payload is required")
	}

	v, err := h.svc.CheckInByScan(c.Context(), body.Payload)
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, v)
}

// PATCH /visits/:id/pay
func (h *VisitHandler) MarkPaid(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	var body struct {
		PaymentID string `json:"payment_id"`
	}
	_ = c.Bind().JSON(&body)

	v, err := h.svc.MarkPaid(c.Context(), id, body.PaymentID)
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, v)
}

// PATCH /visits/:id/refund
func (h *VisitHandler) Refund(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	v, err := h.svc.Refund(c.Context(), id)
	if err != nil {
		return mapVisitError(c, err)
	}

	return ok(c, v)
}

// DELETE /visits/:id
func (h *VisitHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapVisitError(c, err)
	}

	return noContent(c)
}
