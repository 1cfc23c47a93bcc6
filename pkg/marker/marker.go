package marker

import (
	"encoding/json"
	"time"
)

// Topic is the simulator topic marker requests are published on.
const Topic = "/marker"

// Action tells the rendering subsystem what to do with a marker.
type Action int

const (
	AddModify Action = iota
	Delete
	DeleteAll
)

// Geometry is the marker's visual primitive.
type Geometry int

const (
	Cylinder Geometry = iota
	Text
)

// Vector3 is a 3D vector.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pose is a position with a yaw-only orientation in radians.
type Pose struct {
	Position Vector3 `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// Marker is a single marker-creation request sent to the simulator's
// rendering subsystem. The simulator owns the full marker schema; this
// carries the subset the waypoint publisher fills in.
type Marker struct {
	Namespace string   `json:"ns"`
	ID        int      `json:"id"`
	Action    Action   `json:"action"`
	Type      Geometry `json:"type"`
	Material  string   `json:"material,omitempty"`
	Scale     Vector3  `json:"scale"`
	Pose      Pose     `json:"pose"`
	Text      string   `json:"text,omitempty"`

	// Lifetime of zero means the marker persists until deleted.
	Lifetime time.Duration `json:"lifetime,omitempty"`
}

// Message type constants for the bus protocol.
const (
	TypeMarker = "marker"
)

// Envelope wraps all messages sent over the simulator bus.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the simulator's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}
