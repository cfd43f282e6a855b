// Package events fans out change notifications after successful
// mutations. Subscribers (workers, realtime viewers) re-fetch affected
// views; delivery is best-effort and eventually consistent.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectVisitCreated   = "xclinic.visit.created"
	SubjectVisitUpdated   = "xclinic.visit.updated"
	SubjectVisitDeleted   = "xclinic.visit.deleted"
	SubjectSummaryUpdated = "xclinic.summary.updated"
)

// VisitEvent is the payload for visit change subjects. The subject
// carries the visit id as its last token.
type VisitEvent struct {
	VisitID   string    `json:"visit_id"`
	UID       string    `json:"uid"`
	VisitDate string    `json:"visit_date"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

type SummaryEvent struct {
	SummaryDate string    `json:"summary_date"`
	At          time.Time `json:"at"`
}

type Publisher interface {
	VisitCreated(ev VisitEvent)
	VisitUpdated(ev VisitEvent)
	VisitDeleted(ev VisitEvent)
	SummaryUpdated(ev SummaryEvent)
}

// NatsPublisher publishes change events to NATS subjects. Publish
// failures are logged and swallowed: notifications are advisory and
// must never fail the triggering mutation.
type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) publish(subject string, suffix string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("events: marshal failed", "subject", subject, "err", err)
		return
	}
	if suffix != "" {
		subject = subject + "." + suffix
	}
	if err := p.nc.Publish(subject, data); err != nil {
		slog.Warn("events: publish failed", "subject", subject, "err", err)
	}
}

func (p *NatsPublisher) VisitCreated(ev VisitEvent) {
	p.publish(SubjectVisitCreated, ev.VisitID, ev)
}

func (p *NatsPublisher) VisitUpdated(ev VisitEvent) {
	p.publish(SubjectVisitUpdated, ev.VisitID, ev)
}

func (p *NatsPublisher) VisitDeleted(ev VisitEvent) {
	p.publish(SubjectVisitDeleted, ev.VisitID, ev)
}

func (p *NatsPublisher) SummaryUpdated(ev SummaryEvent) {
	p.publish(SubjectSummaryUpdated, ev.SummaryDate, ev)
}

// NopPublisher drops every event. Used in tests and when NATS is not
// configured.
type NopPublisher struct{}

func (NopPublisher) VisitCreated(VisitEvent)     {}
func (NopPublisher) VisitUpdated(VisitEvent)     {}
func (NopPublisher) VisitDeleted(VisitEvent)     {}
func (NopPublisher) SummaryUpdated(SummaryEvent) {}
