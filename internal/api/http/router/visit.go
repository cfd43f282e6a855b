package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/api/http/handler"
)

func (r *Router) registerVisitRoutes(
	api fiber.Router,
	vh *handler.VisitHandler,
	ph *handler.PrescriptionHandler,
	authRequired fiber.Handler,
	bookingLimiter fiber.Handler,
) {
	visits := api.Group("/visits")

	// Public: booking and queue tracking need no account.
	visits.Post("/", bookingLimiter, vh.Book)
	visits.Get("/track/:uid", vh.Track)

	// Admin front desk.
	visits.Get("/", authRequired, vh.List)
	visits.Post("/check-in", authRequired, vh.CheckInByScan)

	v := visits.Group("/:id", authRequired)
	v.Get("/", vh.GetByID)
	v.Patch("/", vh.Update)
	v.Delete("/", vh.Delete)

	v.Patch("/arrive", vh.Arrive)
	v.Patch("/start", vh.Start)
	v.Patch("/complete", vh.Complete)
	v.Patch("/cancel", vh.Cancel)
	v.Patch("/no-show", vh.NoShow)

	v.Patch("/pay", vh.MarkPaid)
	v.Patch("/refund", vh.Refund)

	v.Get("/prescriptions", ph.ListByVisit)
}
