package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/api/http/handler"
	"github.com/gbmsdev99/xclinic/internal/api/http/middleware"
	"github.com/gbmsdev99/xclinic/internal/service/prescription"
	"github.com/gbmsdev99/xclinic/internal/service/queue"
	"github.com/gbmsdev99/xclinic/internal/service/settings"
	"github.com/gbmsdev99/xclinic/internal/service/visit"
	"github.com/gbmsdev99/xclinic/pkg/token"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg             *config.Config
	Redis           *redis.Client
	VisitSvc        visit.Service
	QueueSvc        queue.Service
	SettingsSvc     settings.Service
	PrescriptionSvc prescription.Service
	TokenMgr        *token.Manager
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	authRequired := middleware.AuthRequired(r.p.TokenMgr)
	bookingLimiter := middleware.NewBookingLimiter(r.p.Redis)

	authH := handler.NewAuthHandler(r.p.Cfg, r.p.TokenMgr)
	visitH := handler.NewVisitHandler(r.p.VisitSvc)
	queueH := handler.NewQueueHandler(r.p.QueueSvc)
	settingsH := handler.NewSettingsHandler(r.p.SettingsSvc)
	prescriptionH := handler.NewPrescriptionHandler(r.p.PrescriptionSvc)

	api := app.Group("/api/v1")

	r.registerAuthRoutes(api, authH, authRequired)
	r.registerVisitRoutes(api, visitH, prescriptionH, authRequired, bookingLimiter)
	r.registerQueueRoutes(api, queueH, authRequired)
	r.registerSettingsRoutes(api, settingsH, authRequired)
	r.registerPrescriptionRoutes(api, prescriptionH, authRequired)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
