package memory

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/manuelgantiva/vrx/pkg/marker"
)

// Publisher records published envelopes in memory. It stands in for the
// simulator bus in tests and offline runs.
type Publisher struct {
	mu        sync.RWMutex
	records   []Published
	closed    bool
}

// Published is one captured publish call.
type Published struct {
	Topic    string
	Envelope marker.Envelope
}

// New creates a new in-memory publisher.
func New() *Publisher {
	return &Publisher{}
}

// Publish marshals the message into an Envelope and appends it to the
// in-memory record.
func (p *Publisher) Publish(topic string, msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("memory publisher closed")
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}
	p.records = append(p.records, Published{
		Topic:    topic,
		Envelope: marker.Envelope{Type: marker.TypeMarker, Payload: raw},
	})
	return nil
}

// Close stops the publisher; further publishes fail.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Published returns a copy of everything published so far.
func (p *Publisher) Published() []Published {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Published, len(p.records))
	copy(out, p.records)
	return out
}

// Markers decodes every captured payload on the given topic as a
// marker.Marker, in publish order.
func (p *Publisher) Markers(topic string) ([]marker.Marker, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []marker.Marker
	for _, pub := range p.records {
		if pub.Topic != topic {
			continue
		}
		var m marker.Marker
		if err := json.Unmarshal(pub.Envelope.Payload, &m); err != nil {
			return nil, fmt.Errorf("unmarshal marker payload: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Reset clears the captured record.
func (p *Publisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = nil
}
