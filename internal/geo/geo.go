package geo

import (
	"errors"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/manuelgantiva/vrx/pkg/marker"
)

// Waypoint coordinates arrive as geodetic lat/lon (EPSG:4326) and are
// projected to planar EPSG:3857 before markers are placed, so distances
// and marker positions share one Cartesian frame.

// ErrEmptyCourse is returned when a course has no waypoints.
var ErrEmptyCourse = errors.New("course has no waypoints")

// Projector converts geodetic coordinates to projected planar ones.
type Projector struct {
	transform func(x, y, z float64) (float64, float64, float64)
}

// NewProjector creates a projector from EPSG:4326 to EPSG:3857.
func NewProjector() *Projector {
	epsg := wgs84.EPSG()
	return &Projector{transform: epsg.Transform(4326, 3857)}
}

// Project converts longitude/latitude to projected X/Y.
func (p *Projector) Project(longitude, latitude float64) (x, y float64) {
	x, y, _ = p.transform(longitude, latitude, 0)
	return x, y
}

// CourseLine builds a LineString through the given projected positions.
func CourseLine(points []marker.Vector3) (geom.LineString, error) {
	if len(points) == 0 {
		return geom.LineString{}, ErrEmptyCourse
	}

	coords := make([]float64, 0, len(points)*2)
	for _, pt := range points {
		coords = append(coords, pt.X, pt.Y)
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// CourseLength returns the polyline length of the projected course, in
// the projected frame's units. A single-waypoint course has length 0.
func CourseLength(points []marker.Vector3) (float64, error) {
	line, err := CourseLine(points)
	if err != nil {
		return 0, err
	}
	return line.Length(), nil
}
