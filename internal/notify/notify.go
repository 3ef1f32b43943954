// Package notify publishes run lifecycle events to NATS so downstream
// consumers (dashboards, chat bridges) can follow releases without polling
// the journal.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/relforge/internal/config"
)

// RunEvent is the wire form of a run lifecycle notification.
type RunEvent struct {
	RunID     string    `json:"run_id"`
	Type      string    `json:"type"` // journal event type name
	Channel   string    `json:"channel,omitempty"`
	Branch    string    `json:"branch,omitempty"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher sends run events. The zero-value Noop implementation is used
// when NATS is not configured.
type Publisher interface {
	PublishRunEvent(ctx context.Context, event RunEvent) error
	Close()
}

// Noop discards all events.
type Noop struct{}

func (Noop) PublishRunEvent(context.Context, RunEvent) error { return nil }
func (Noop) Close()                                          {}

// NATSPublisher publishes run events over JetStream.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSPublisher connects to the configured NATS server. An empty URL
// yields a Noop publisher rather than an error.
func NewNATSPublisher(cfg config.DaemonConfig) (Publisher, error) {
	if cfg.NATSURL == "" {
		return Noop{}, nil
	}
	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}
	slog.Info("NATS run-event publisher initialized",
		slog.String("url", cfg.NATSURL), slog.String("subject", cfg.NATSSubject))
	return &NATSPublisher{conn: conn, js: js, subject: cfg.NATSSubject}, nil
}

// PublishRunEvent sends one event; the timestamp is stamped here.
func (p *NATSPublisher) PublishRunEvent(ctx context.Context, event RunEvent) error {
	event.Timestamp = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return fmt.Errorf("publish run event: %w", err)
	}
	return nil
}

// Close drains the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
