package curve

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Loop is a full vertical loop starting at the first point. The exit is
// pushed sideways by the combined width of both endpoints so the outgoing
// track runs next to the incoming one.
type Loop struct {
	From, To ControlPoint
	Angle    float32 // heading of the loop plane, degrees
	Width    float32
	Radius   float32
}

// NewLoop creates a loop between a and b of the given radius. rotation is
// the piece orientation angle in degrees.
func NewLoop(a, b ControlPoint, radius, rotation float32) Loop {
	return Loop{
		From:   a,
		To:     b,
		Angle:  90 - rotation,
		Width:  a.Width + b.Width,
		Radius: radius,
	}
}

// Circumference is the centerline length of one revolution.
func (l Loop) Circumference() float32 {
	return l.Radius * math.Pi * 2
}

// Rows samples the loop at a constant arc step. The last row is clamped to
// exactly one full revolution.
func (l Loop) Rows(step float32) []Row {
	if step <= 0 || l.Radius <= 0 {
		return nil
	}

	length := l.Circumference()
	angle := l.Angle * rl.Deg2rad
	offsetAngle := (l.Angle - 90) * rl.Deg2rad

	ox := sin32(offsetAngle) * l.Width
	oz := cos32(offsetAngle) * l.Width

	sa, ca := sin32(angle), cos32(angle)
	normal := rl.Vector3{X: -ca, Y: 0, Z: -sa}
	origin := l.From.Position

	var rows []Row
	for t := float32(0); t < length*2; t += step {
		d := t
		if d > length {
			d = length
		}
		u := d/l.Radius - math.Pi*0.5
		blend := d / l.Radius * 0.5 / math.Pi
		su, cu := sin32(u), cos32(u)

		rows = append(rows, Row{
			Position: rl.Vector3{
				X: origin.X + sa*cu*l.Radius + lerp(0, ox, blend),
				Y: origin.Y + su*l.Radius + l.Radius,
				Z: origin.Z + ca*cu*l.Radius + lerp(0, oz, blend),
			},
			Binormal: rl.Vector3{X: -sa * cu, Y: -su, Z: -ca * cu},
			Normal:   normal,
			Width:    lerp(l.To.Width, l.From.Width, blend),
			Roll:     lerp(l.To.Roll, l.From.Roll, blend),
			T:        d / length,
		})

		if t >= length {
			break
		}
	}

	tracer().P("curve", "loop").Debugf("sampled %d rows, radius %.1f", len(rows), l.Radius)
	return rows
}
