package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/api/http/handler"
)

func (r *Router) registerPrescriptionRoutes(api fiber.Router, ph *handler.PrescriptionHandler, authRequired fiber.Handler) {
	rx := api.Group("/prescriptions", authRequired)

	rx.Post("/", ph.Create)

	p := rx.Group("/:id")
	p.Get("/", ph.GetByID)
	p.Delete("/", ph.Delete)
}
