package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/api/http/handler"
)

func (r *Router) registerQueueRoutes(api fiber.Router, qh *handler.QueueHandler, authRequired fiber.Handler) {
	q := api.Group("/queue")

	// Public: the waiting room screen polls this.
	q.Get("/summary", qh.Summary)

	q.Post("/recompute", authRequired, qh.Recompute)
}
