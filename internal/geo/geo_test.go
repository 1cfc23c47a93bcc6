package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuelgantiva/vrx/pkg/marker"
)

func TestProjector_Project(t *testing.T) {
	p := NewProjector()

	// Null island maps to the projected origin.
	x, y := p.Project(0, 0)
	assert.InDelta(t, 0, x, 0.001)
	assert.InDelta(t, 0, y, 0.001)

	// One degree of longitude at the equator in EPSG:3857.
	x, y = p.Project(1, 0)
	assert.InDelta(t, 111319.49, x, 1.0)
	assert.InDelta(t, 0, y, 0.001)
}

func TestProjector_LatitudeStretch(t *testing.T) {
	p := NewProjector()

	// Web Mercator stretches Y away from the equator; the same degree
	// step covers more projected meters at higher latitude.
	_, yLow := p.Project(0, 10)
	_, yHigh := p.Project(0, 60)
	assert.Greater(t, yHigh, yLow)
	assert.Greater(t, yHigh/6, yLow)
}

func TestCourseLine_Empty(t *testing.T) {
	_, err := CourseLine(nil)
	require.ErrorIs(t, err, ErrEmptyCourse)

	_, err = CourseLength(nil)
	require.ErrorIs(t, err, ErrEmptyCourse)
}

func TestCourseLength_SinglePoint(t *testing.T) {
	length, err := CourseLength([]marker.Vector3{{X: 5, Y: 5}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, length)
}

func TestCourseLength_Polyline(t *testing.T) {
	points := []marker.Vector3{
		{X: 0, Y: 0},
		{X: 3, Y: 4},
		{X: 3, Y: 10},
	}
	length, err := CourseLength(points)
	require.NoError(t, err)
	assert.InDelta(t, 11.0, length, 1e-9)
}
