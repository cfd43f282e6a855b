package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/service/queue"
)

type QueueHandler struct {
	svc queue.Service
}

func NewQueueHandler(svc queue.Service) *QueueHandler {
	return &QueueHandler{svc: svc}
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// GET /queue/summary
func (h *QueueHandler) Summary(c fiber.Ctx) error {
	date := c.Query("date")
	if date != "" && !validDate(date) {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	summary, err := h.svc.Summary(c.Context(), date)
	if err != nil {
		return internalError(c)
	}

	return ok(c, summary)
}

// POST /queue/recompute
func (h *QueueHandler) Recompute(c fiber.Ctx) error {
	date := c.Query("date")
	if date != "" && !validDate(date) {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	summary, err := h.svc.Recompute(c.Context(), date)
	if err != nil {
		return internalError(c)
	}

	return ok(c, summary)
}
