package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/gbmsdev99/xclinic/internal/service/prescription"
)

type PrescriptionHandler struct {
	svc prescription.Service
}

func NewPrescriptionHandler(svc prescription.Service) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc}
}

func mapPrescriptionError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, prescription.ErrNotFound),
		errors.Is(err, prescription.ErrVisitNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, prescription.ErrEmpty):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /prescriptions
func (h *PrescriptionHandler) Create(c fiber.Ctx) error {
	var body struct {
		VisitID     string `json:"visit_id"`
		Medications string `json:"medications"`
		Notes       string `json:"notes"`
		FileURL     string `json:"file_url"`
		FileName    string `json:"file_name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	visitID, err := uuid.Parse(body.VisitID)
	if err != nil {
		return badRequest(c, "invalid visit_id")
	}

	p, err := h.svc.Create(c.Context(), prescription.CreateRequest{
		VisitID:     visitID,
		Medications: body.Medications,
		Notes:       body.Notes,
		FileURL:     body.FileURL,
		FileName:    body.FileName,
	})
	if err != nil {
		return mapPrescriptionError(c, err)
	}

	return created(c, p)
}

// GET /prescriptions/:id
func (h *PrescriptionHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid prescription id")
	}

	p, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapPrescriptionError(c, err)
	}

	return ok(c, p)
}

// GET /visits/:id/prescriptions
func (h *PrescriptionHandler) ListByVisit(c fiber.Ctx) error {
	visitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid visit id")
	}

	list, err := h.svc.ListByVisit(c.Context(), visitID)
	if err != nil {
		return mapPrescriptionError(c, err)
	}

	return ok(c, list)
}

// DELETE /prescriptions/:id
func (h *PrescriptionHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid prescription id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapPrescriptionError(c, err)
	}

	return noContent(c)
}
