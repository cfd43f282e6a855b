package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/api/http/handler"
)

func (r *Router) registerSettingsRoutes(api fiber.Router, sh *handler.SettingsHandler, authRequired fiber.Handler) {
	s := api.Group("/settings")

	// Public: the booking page shows clinic identity, fees and hours.
	s.Get("/", sh.Get)

	s.Put("/", authRequired, sh.Update)
}
