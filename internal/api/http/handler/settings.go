package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/service/settings"
)

type SettingsHandler struct {
	svc settings.Service
}

func NewSettingsHandler(svc settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GET /settings
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	s, err := h.svc.Get(c.Context())
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c)
	}
	return ok(c, s)
}

// PUT /settings
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	var body models.ClinicSettings
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	s, err := h.svc.Update(c.Context(), body)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidTimezone) {
			return badRequest(c, err.Error())
		}
		return internalError(c)
	}
	return ok(c, s)
}
