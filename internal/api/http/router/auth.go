package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(api fiber.Router, ah *handler.AuthHandler, authRequired fiber.Handler) {
	auth := api.Group("/auth")

	auth.Post("/login", ah.Login)
	auth.Get("/me", authRequired, ah.Me)
}
