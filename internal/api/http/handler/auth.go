package handler

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v3"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/pkg/token"
)

type AuthHandler struct {
	cfg *config.Config
	mgr *token.Manager
}

func NewAuthHandler(cfg *config.Config, mgr *token.Manager) *AuthHandler {
	return &AuthHandler{cfg: cfg, mgr: mgr}
}

// POST /auth/login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Username == "" || body.Password == "" {
		return badRequest(c, "username and password are required")
	}

	userOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(h.cfg.Auth.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(body.Password), []byte(h.cfg.Auth.AdminPassword)) == 1
	if h.cfg.Auth.AdminUsername == "" || !userOK || !passOK {
		return unauthorized(c)
	}

	signed, expiresAt, err := h.mgr.Issue(body.Username, "admin")
	if err != nil {
		return internalError(c)
	}

	return ok(c, fiber.Map{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_at":   expiresAt,
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c fiber.Ctx) error {
	v := c.Locals(token.CtxKeyClaims)
	claims, okCast := v.(*token.Claims)
	if !okCast {
		return unauthorized(c)
	}
	return ok(c, fiber.Map{
		"username": claims.Username,
		"role":     claims.Role,
	})
}
