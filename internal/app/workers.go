package app

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/gbmsdev99/xclinic/internal/events"
	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/service/queue"
	"github.com/gbmsdev99/xclinic/internal/service/visit"
	"github.com/gbmsdev99/xclinic/pkg/email"
	"github.com/gbmsdev99/xclinic/pkg/sms"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	NC       *nats.Conn
	QueueSvc queue.Service
	VisitSvc visit.Service
	Email    *email.Client
	SMS      *sms.Client
}

func RegisterWorkers(p WorkerParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			startSummaryWorker(p.NC, p.QueueSvc)
			startNotifyWorker(p.NC, p.VisitSvc, p.Email, p.SMS)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain handled by ProvideNatsClient
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// summary_worker
// ---------------------------------------------------------------------------

// startSummaryWorker recomputes the day's queue summary whenever any
// visit for that day changes. Recompute is idempotent, so overlapping
// triggers are harmless.
func startSummaryWorker(nc *nats.Conn, queueSvc queue.Service) {
	handler := func(msg *nats.Msg) {
		var ev events.VisitEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			slog.Warn("summary_worker: bad event payload", "subject", msg.Subject, "err", err)
			return
		}
		if ev.VisitDate == "" {
			return
		}
		queueSvc.RecomputeBestEffort(context.Background(), ev.VisitDate)
	}

	for _, subject := range []string{
		events.SubjectVisitCreated + ".*",
		events.SubjectVisitUpdated + ".*",
		events.SubjectVisitDeleted + ".*",
	} {
		if _, err := nc.Subscribe(subject, handler); err != nil {
			slog.Error("summary_worker: subscribe failed", "subject", subject, "err", err)
		}
	}

	slog.Info("summary_worker: started")
}

// ---------------------------------------------------------------------------
// notify_worker
// ---------------------------------------------------------------------------

// startNotifyWorker sends the booking confirmation over whatever
// channels the patient left contact details for. Both sends are best
// effort.
func startNotifyWorker(nc *nats.Conn, visitSvc visit.Service, emailCli *email.Client, smsCli *sms.Client) {
	_, err := nc.Subscribe(events.SubjectVisitCreated+".*", func(msg *nats.Msg) {
		var ev events.VisitEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			slog.Warn("notify_worker: bad event payload", "err", err)
			return
		}

		id, err := uuid.Parse(ev.VisitID)
		if err != nil {
			return
		}

		ctx := context.Background()
		v, err := visitSvc.GetByID(ctx, id)
		if err != nil {
			slog.Warn("notify_worker: visit not found", "id", ev.VisitID, "err", err)
			return
		}

		sendConfirmation(ctx, v, emailCli, smsCli)
	})
	if err != nil {
		slog.Error("notify_worker: subscribe visit.created failed", "err", err)
	}

	slog.Info("notify_worker: started")
}

func sendConfirmation(ctx context.Context, v models.Visit, emailCli *email.Client, smsCli *sms.Client) {
	if smsCli.IsEnabled() && v.Phone != "" {
		if err := smsCli.SendBookingConfirmation(ctx, v.Phone, v.UID, v.TokenNumber); err != nil {
			slog.Warn("notify_worker: sms send failed", "uid", v.UID, "err", err)
		}
	}

	if emailCli.Enabled() && v.Email != "" {
		msg := email.BuildBookingConfirmation(email.BookingEmailData{
			Name:          v.Name,
			UID:           v.UID,
			TokenNumber:   v.TokenNumber,
			EstimatedTime: v.EstimatedTime,
		})
		msg.To = []string{v.Email}
		if err := emailCli.Send(ctx, msg); err != nil {
			slog.Warn("notify_worker: email send failed", "uid", v.UID, "err", err)
		}
	}
}
