package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/events"
	"github.com/gbmsdev99/xclinic/internal/service/prescription"
	"github.com/gbmsdev99/xclinic/internal/service/queue"
	"github.com/gbmsdev99/xclinic/internal/service/settings"
	"github.com/gbmsdev99/xclinic/internal/service/visit"
	"github.com/gbmsdev99/xclinic/internal/store"
	"github.com/gbmsdev99/xclinic/internal/store/postgres"
	"github.com/gbmsdev99/xclinic/pkg/token"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideStore,
		ProvidePublisher,
		ProvideVisitService,
		ProvideQueueService,
		ProvideSettingsService,
		ProvidePrescriptionService,
		ProvideTokenManager,
	),
)

// ProvideStore exposes the single postgres store under each of the
// narrow interfaces the services consume.
func ProvideStore(pool *pgxpool.Pool) (store.VisitStore, store.SummaryStore, store.SettingsStore, store.PrescriptionStore) {
	s := postgres.NewStore(pool)
	return s, s, s, s
}

func ProvidePublisher(nc *nats.Conn) events.Publisher {
	return events.NewNatsPublisher(nc)
}

func ProvideVisitService(visits store.VisitStore, clinicSettings store.SettingsStore, pub events.Publisher, cfg *config.Config) visit.Service {
	return visit.New(visits, clinicSettings, pub, cfg)
}

func ProvideQueueService(visits store.VisitStore, summaries store.SummaryStore, clinicSettings store.SettingsStore, pub events.Publisher, cfg *config.Config) queue.Service {
	return queue.New(visits, summaries, clinicSettings, pub, cfg)
}

func ProvideSettingsService(clinicSettings store.SettingsStore) settings.Service {
	return settings.New(clinicSettings)
}

func ProvidePrescriptionService(prescriptions store.PrescriptionStore, visits store.VisitStore) prescription.Service {
	return prescription.New(prescriptions, visits)
}

func ProvideTokenManager(cfg *config.Config) (*token.Manager, error) {
	return token.NewManager(cfg.Auth)
}
