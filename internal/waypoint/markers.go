// Package waypoint renders labeled cylindrical markers at waypoint
// positions by publishing marker requests to the simulator's rendering
// bus. Cylinder markers are drawn with optional text above them.
package waypoint

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/manuelgantiva/vrx/internal/transport"
	"github.com/manuelgantiva/vrx/pkg/marker"
)

// Marker defaults, overridable through the markers configuration tree.
const (
	DefaultMaterial = "Gazebo/Green"
	DefaultHeight   = 0.0
)

// DefaultScaling is the default cylinder scale.
var DefaultScaling = marker.Vector3{X: 0.2, Y: 0.2, Z: 1.5}

// Companion text markers reuse the waypoint id shifted by this offset,
// and float above the cylinder.
const (
	textIDOffset    = 1000
	textHeightAbove = 4.0
)

// Markers draws waypoint markers in a single namespace. The marker
// properties can be set from a configuration sub-tree:
// material (string), scaling (3 floats), height (float) above water,
// and initialId (int) used as the first auto-assigned marker id.
type Markers struct {
	ns       string
	material string
	scaling  marker.Vector3
	height   float64

	// If an id is not specified, markers start using this one.
	id int

	pub    transport.Publisher
	topic  string
	logger *slog.Logger
}

// New creates a marker publisher for the given namespace with default
// material, scaling and height, drawing on the default marker topic.
func New(namespace string, pub transport.Publisher, logger *slog.Logger) *Markers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Markers{
		ns:       namespace,
		material: DefaultMaterial,
		scaling:  DefaultScaling,
		height:   DefaultHeight,
		pub:      pub,
		topic:    marker.Topic,
		logger:   logger,
	}
}

// SetTopic overrides the marker topic.
func (m *Markers) SetTopic(topic string) {
	m.topic = topic
}

// Load reads marker parameters from a configuration sub-tree. Fields
// absent from the tree keep their defaults; a nil tree keeps everything.
func (m *Markers) Load(cfg *viper.Viper) {
	if cfg == nil {
		return
	}

	if cfg.IsSet("material") {
		m.material = cfg.GetString("material")
	}
	if cfg.IsSet("scaling") {
		if s, ok := scalingFrom(cfg.Get("scaling")); ok {
			m.scaling = s
		} else {
			m.logger.Warn("Ignoring malformed scaling, keeping default",
				"namespace", m.ns, "scaling", cfg.Get("scaling"))
		}
	}
	if cfg.IsSet("height") {
		m.height = cfg.GetFloat64("height")
	}
	if cfg.IsSet("initialId") {
		m.id = cfg.GetInt("initialId")
	}
}

// scalingFrom coerces a config value into a scale vector. Anything that
// is not exactly three numbers is rejected.
func scalingFrom(raw any) (marker.Vector3, bool) {
	var vals []float64
	switch v := raw.(type) {
	case []float64:
		vals = v
	case []any:
		for _, e := range v {
			switch n := e.(type) {
			case float64:
				vals = append(vals, n)
			case int:
				vals = append(vals, float64(n))
			default:
				return marker.Vector3{}, false
			}
		}
	default:
		return marker.Vector3{}, false
	}

	if len(vals) != 3 {
		return marker.Vector3{}, false
	}
	return marker.Vector3{X: vals[0], Y: vals[1], Z: vals[2]}, true
}

// DrawMarker publishes a cylinder marker with the given id at (x, y)
// with the given yaw. If text is non-empty, a companion text marker is
// published above the cylinder. A nil return means every request was
// handed to the bus.
func (m *Markers) DrawMarker(id int, x, y, yaw float64, text string) error {
	msg := marker.Marker{
		Namespace: m.ns,
		ID:        id,
		Action:    marker.AddModify,
		Type:      marker.Cylinder,
		Material:  m.material,
		Scale:     m.scaling,
		Pose: marker.Pose{
			Position: marker.Vector3{X: x, Y: y, Z: m.height},
			Yaw:      yaw,
		},
	}
	if err := m.pub.Publish(m.topic, msg); err != nil {
		return fmt.Errorf("publish marker %d in %q: %w", id, m.ns, err)
	}

	if text == "" {
		return nil
	}

	label := msg
	label.ID = id + textIDOffset
	label.Type = marker.Text
	label.Text = text
	label.Scale = marker.Vector3{X: 1.0, Y: 1.0, Z: 1.0}
	label.Pose = marker.Pose{
		Position: marker.Vector3{X: x, Y: y, Z: m.height + textHeightAbove},
	}
	if err := m.pub.Publish(m.topic, label); err != nil {
		return fmt.Errorf("publish label for marker %d in %q: %w", id, m.ns, err)
	}
	return nil
}

// DrawNextMarker draws a marker with the next auto-assigned id, then
// advances the counter. Ids are contiguous across calls; explicit-id
// draws never touch the counter.
func (m *Markers) DrawNextMarker(x, y, yaw float64, text string) error {
	err := m.DrawMarker(m.id, x, y, yaw, text)
	m.id++
	return err
}

// Namespace returns the marker namespace.
func (m *Markers) Namespace() string {
	return m.ns
}

// NextID returns the id the next auto-id draw will use.
func (m *Markers) NextID() int {
	return m.id
}
