// Package curve samples the parametric centerlines of track pieces into
// cross-section frames ("rows"). It holds no state: a Bezier or Loop is a
// value built from control points and evaluated on demand.
package curve

import (
	"math"

	"github.com/npillmayer/schuko/tracing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// tracer writes to trace with key 'curve'
func tracer() tracing.Trace {
	return tracing.Select("curve")
}

// zNudge replaces an exact zero z so the flattened tangent and position
// never end up parallel on the x axis.
const zNudge = 0.00001

// ControlPoint is a designer-placed point on the track centerline with the
// half-width and roll (degrees) the surface should have there.
type ControlPoint struct {
	Position rl.Vector3
	Width    float32
	Roll     float32
}

// NewControlPoint creates a control point, nudging z away from exactly 0.
func NewControlPoint(x, y, z, width, roll float32) ControlPoint {
	if z == 0 {
		z = zNudge
	}
	return ControlPoint{
		Position: rl.Vector3{X: x, Y: y, Z: z},
		Width:    width,
		Roll:     roll,
	}
}

// At returns a control point at pos that keeps p's width and roll.
func (p ControlPoint) At(pos rl.Vector3) ControlPoint {
	return NewControlPoint(pos.X, pos.Y, pos.Z, p.Width, p.Roll)
}

// RotateAround returns a copy of p moved distance units along the XZ
// heading given in degrees (0 = +X, 90 = +Z).
func (p ControlPoint) RotateAround(angle, distance float32) ControlPoint {
	rad := float64(angle * rl.Deg2rad)
	return NewControlPoint(
		p.Position.X+float32(math.Cos(rad))*distance,
		p.Position.Y,
		p.Position.Z+float32(math.Sin(rad))*distance,
		p.Width,
		p.Roll,
	)
}

// Row is one sampled cross-section frame along a centerline.
type Row struct {
	Position rl.Vector3
	Binormal rl.Vector3
	Normal   rl.Vector3
	Width    float32
	Roll     float32
	T        float32 // curve parameter the row was sampled at
}

// Sampler produces the rows of a centerline at an approximate spacing of
// step world units.
type Sampler interface {
	Rows(step float32) []Row
}

func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
