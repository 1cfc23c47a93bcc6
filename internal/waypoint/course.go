package waypoint

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/manuelgantiva/vrx/internal/geo"
	"github.com/manuelgantiva/vrx/pkg/marker"
)

// Waypoint is one target pose on a course. Coordinates are geodetic as
// configured; Localize fills in the projected position.
type Waypoint struct {
	Latitude  float64 `mapstructure:"lat"`
	Longitude float64 `mapstructure:"lon"`
	Yaw       float64 `mapstructure:"yaw"`
	Label     string  `mapstructure:"label"`

	// Projected position, set by Course.Localize.
	Position marker.Vector3 `mapstructure:"-"`
}

// Course is an ordered list of waypoints a vehicle is meant to follow.
type Course struct {
	Waypoints []Waypoint
	localized bool
}

// LoadCourse reads the waypoints list from a configuration tree.
// An absent or empty list yields an empty course, not an error.
func LoadCourse(cfg *viper.Viper) (Course, error) {
	if cfg == nil || !cfg.IsSet("waypoints") {
		return Course{}, nil
	}

	var wps []Waypoint
	if err := cfg.UnmarshalKey("waypoints", &wps); err != nil {
		return Course{}, fmt.Errorf("decode waypoints: %w", err)
	}
	return Course{Waypoints: wps}, nil
}

// Localize projects every waypoint's geodetic coordinates into the
// planar frame markers are drawn in.
func (c *Course) Localize(proj *geo.Projector) {
	for i := range c.Waypoints {
		x, y := proj.Project(c.Waypoints[i].Longitude, c.Waypoints[i].Latitude)
		c.Waypoints[i].Position = marker.Vector3{X: x, Y: y}
	}
	c.localized = true
}

// Positions returns the projected waypoint positions in course order.
func (c *Course) Positions() []marker.Vector3 {
	out := make([]marker.Vector3, len(c.Waypoints))
	for i, wp := range c.Waypoints {
		out[i] = wp.Position
	}
	return out
}

// Length returns the projected polyline length of the course.
func (c *Course) Length() (float64, error) {
	if !c.localized {
		return 0, fmt.Errorf("course not localized")
	}
	return geo.CourseLength(c.Positions())
}

// DrawCourse draws one auto-id marker per waypoint, labeled when the
// waypoint has a label. It keeps going past publish failures and
// returns the number of waypoints drawn together with the first error.
func (m *Markers) DrawCourse(c Course) (int, error) {
	var firstErr error
	drawn := 0
	for _, wp := range c.Waypoints {
		err := m.DrawNextMarker(wp.Position.X, wp.Position.Y, wp.Yaw, wp.Label)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		drawn++
	}
	return drawn, firstErr
}
