package simws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/manuelgantiva/vrx/pkg/marker"
)

// Config holds simulator bus connection settings.
type Config struct {
	URL    string
	Secret string
}

// Publisher streams marker requests over WebSocket to the simulator's
// rendering bus. It implements transport.Publisher.
type Publisher struct {
	conn *connection
	cfg  Config

	published metric.Int64Counter
	dropped   metric.Int64Counter
}

// New creates a new simulator bus publisher.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(cfg Config, logger *slog.Logger) (*Publisher, error) {
	p := &Publisher{
		conn: newConnection(logger),
		cfg:  cfg,
	}

	m := meter()

	var err error
	p.published, err = m.Int64Counter(
		"simws.messages.published",
		metric.WithDescription("Total messages handed to the bus"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating published counter: %w", err)
	}

	p.dropped, err = m.Int64Counter(
		"simws.messages.dropped",
		metric.WithDescription("Total messages dropped due to full send queue"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	return p, nil
}

// Dial connects to the simulator bus.
func (p *Publisher) Dial() error {
	return p.conn.dial(p.cfg.URL, p.cfg.Secret)
}

// Close disconnects from the simulator bus.
func (p *Publisher) Close() error {
	return p.conn.close()
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	env := marker.Envelope{Type: msgType, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// Publish marshals the message into an Envelope and pushes it to the
// write loop (fire-and-forget). A full send queue drops the message and
// returns an error.
func (p *Publisher) Publish(topic string, msg any) error {
	data, err := marshalEnvelope(marker.TypeMarker, msg)
	if err != nil {
		return err
	}

	topicAttr := metric.WithAttributes(attribute.String("topic", topic))
	if !p.conn.send(data) {
		p.dropped.Add(context.Background(), 1, topicAttr)
		return fmt.Errorf("send queue full, dropped message for %s", topic)
	}
	p.published.Add(context.Background(), 1, topicAttr)
	return nil
}

// PublishAndWait publishes the message and blocks until the simulator
// acknowledges it or the ack timeout expires.
func (p *Publisher) PublishAndWait(topic string, msg any) error {
	data, err := marshalEnvelope(marker.TypeMarker, msg)
	if err != nil {
		return err
	}
	return p.conn.sendAndWait(data, marker.TypeMarker, ackTimeout)
}
