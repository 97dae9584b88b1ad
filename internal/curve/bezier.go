package curve

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// tangentDelta is the parameter offset used for the finite-difference tangent.
const tangentDelta = 0.002

// Bezier is a cubic Bezier centerline. P0 and P3 are the path endpoints,
// P1 and P2 the handles; width and roll blend between the handles.
type Bezier struct {
	P0, P1, P2, P3 ControlPoint
}

// NewBezier creates a cubic Bezier from start, two handles and end.
func NewBezier(p0, p1, p2, p3 ControlPoint) Bezier {
	return Bezier{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Point evaluates the curve position at t.
func (b Bezier) Point(t float32) rl.Vector3 {
	dt := 1 - t
	dt2 := dt * dt
	t2 := t * t

	v := rl.Vector3Scale(b.P0.Position, dt2*dt)
	v = rl.Vector3Add(v, rl.Vector3Scale(b.P1.Position, 3*dt2*t))
	v = rl.Vector3Add(v, rl.Vector3Scale(b.P2.Position, 3*dt*t2))
	v = rl.Vector3Add(v, rl.Vector3Scale(b.P3.Position, t2*t))
	return v
}

// FlatPoint is Point with the vertical component forced to zero. It only
// stabilizes the frame; rows are never placed at flattened positions.
func (b Bezier) FlatPoint(t float32) rl.Vector3 {
	v := b.Point(t)
	v.Y = 0
	return v
}

// Derivative evaluates dB/dt at t.
func (b Bezier) Derivative(t float32) rl.Vector3 {
	dt := 1 - t
	dt2 := dt * dt
	t2 := t * t

	d := rl.Vector3Scale(rl.Vector3Subtract(b.P1.Position, b.P0.Position), 3*dt2)
	d = rl.Vector3Add(d, rl.Vector3Scale(rl.Vector3Subtract(b.P2.Position, b.P1.Position), 6*dt*t))
	d = rl.Vector3Add(d, rl.Vector3Scale(rl.Vector3Subtract(b.P3.Position, b.P2.Position), 3*t2))
	return d
}

// Rows walks t from 0 to 1 in increments of step/|B'(t)|, which keeps the
// spacing between rows close to step world units. The final row is always
// sampled at exactly t = 1.
func (b Bezier) Rows(step float32) []Row {
	if step <= 0 {
		return nil
	}

	var rows []Row
	t := float32(0)
	for {
		// also catches NaN from a degenerate derivative
		if !(t < 1) {
			t = 1
		}
		rows = append(rows, b.row(t))
		if t >= 1 {
			break
		}
		t += step / rl.Vector3Length(b.Derivative(t))
	}

	tracer().P("curve", "bezier").Debugf("sampled %d rows at step %.1f", len(rows), step)
	return rows
}

func (b Bezier) row(t float32) Row {
	p := b.FlatPoint(t)
	p2 := b.FlatPoint(t + tangentDelta)

	tangent := rl.Vector3Normalize(rl.Vector3Subtract(p2, p))
	binormal := rl.Vector3Normalize(rl.Vector3CrossProduct(tangent, rl.Vector3Add(p2, p)))
	if binormal == (rl.Vector3{}) {
		// centerline points straight through the origin
		binormal = rl.Vector3{Y: 1}
	}
	if binormal.Y < 0 {
		binormal.Y = -binormal.Y
	}
	normal := rl.Vector3Normalize(rl.Vector3CrossProduct(binormal, tangent))

	return Row{
		Position: b.Point(t),
		Binormal: binormal,
		Normal:   normal,
		Width:    lerp(b.P1.Width, b.P2.Width, t),
		Roll:     lerp(b.P1.Roll, b.P2.Roll, t),
		T:        t,
	}
}
