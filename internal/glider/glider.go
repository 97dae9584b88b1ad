// Package glider flies a hovering craft over any surface that answers
// segment probes. It is headless: input arrives as Controls and the
// surface through the Prober interface.
package glider

import (
	"math"

	"glidetrack/internal/mesh"
	"glidetrack/internal/physics"

	"github.com/npillmayer/schuko/tracing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// tracer writes to trace with key 'glider'
func tracer() tracing.Trace {
	return tracing.Select("glider")
}

// SpawnOffset is added to a course start point to place the glider.
var SpawnOffset = rl.Vector3{X: 10, Y: 25, Z: 0}

// Prober answers segment queries against the ride surface.
type Prober interface {
	IntersectRay(s physics.Segment) physics.Intersection
}

// Controls is the player input for one update.
type Controls struct {
	Accelerate bool
	Left       bool
	Right      bool
}

// Tuning holds the flight constants. Speeds are in world units per update;
// rates are per second and scaled by dt.
type Tuning struct {
	HoverHeight float32 `json:"hoverHeight"`
	MaxSpeed    float32 `json:"maxSpeed"`
	MaxGravity  float32 `json:"maxGravity"`
	Fall        float32 `json:"fall"`
	Accel       float32 `json:"accel"`
	Brake       float32 `json:"brake"`
	Turn        float32 `json:"turn"`
}

func DefaultTuning() Tuning {
	return Tuning{
		HoverHeight: 15,
		MaxSpeed:    60,
		MaxGravity:  6,
		Fall:        2,
		Accel:       1.5,
		Brake:       4.5,
		Turn:        90,
	}
}

// Probe lengths along the glider's local axes.
const (
	aheadDistance = 40
	backDistance  = 20
	probeAbove    = 20
	probeBelow    = 50
	centerReach   = 30

	tiltRate     = 3.9 // towards the surface normal, per second
	levelRate    = 6.0 // back to world up while airborne, per second
	heightRate   = 12.0
	maxLift      = 5.0
	turnSlowdown = 0.998
)

// Probes are the segments cast by the last update.
type Probes struct {
	Ahead, Center, Back physics.Segment
}

type Glider struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Airborne bool
	Speed    float32
	Gravity  float32

	Tuning Tuning
	Mesh   *mesh.Mesh

	// Last probe segments and the surface hit under the centre, for
	// debug overlays.
	LastProbes Probes
	LastHit    physics.Intersection

	smoothY float32
}

func New(tuning Tuning) *Glider {
	g := &Glider{
		Position: rl.Vector3{X: 25, Y: 0, Z: 25},
		Rotation: rl.QuaternionIdentity(),
		Airborne: true,
		Tuning:   tuning,
		Mesh:     mesh.FromCube(3.5, 2, 2.5),
	}
	g.Mesh.SetColor(rl.Yellow)
	g.Mesh.Transform = g.Transform()
	return g
}

// Reset places the glider at pos and stops it.
func (g *Glider) Reset(pos rl.Vector3) {
	g.Gravity = 0
	g.Speed = 0
	g.Position = pos
	g.Mesh.Transform = g.Transform()
}

// Up returns the glider's local up axis in world space.
func (g *Glider) Up() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, g.Rotation))
}

// Forward returns the glider's local +X axis in world space.
func (g *Glider) Forward() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, g.Rotation))
}

// Update advances the glider by dt seconds.
func (g *Glider) Update(dt float32, probe Prober, in Controls) {
	t := g.Tuning

	if in.Accelerate && !g.Airborne {
		if g.Speed < t.MaxSpeed {
			g.Speed += t.Accel * dt
		}
	} else {
		g.Speed = max(g.Speed-t.Brake*dt, 0)
	}

	if g.Airborne {
		if g.Gravity < t.MaxGravity {
			g.Gravity += t.Fall * dt
		}
	} else {
		g.Gravity = 0
	}

	var yaw float32
	turn := min(t.Turn/max(g.Speed*0.125, 1), t.Turn) * dt
	if in.Left {
		yaw = turn
		g.Speed *= turnSlowdown
	}
	if in.Right {
		yaw = -turn
		g.Speed *= turnSlowdown
	}

	up := g.Up()
	ahead := rl.Vector3RotateByQuaternion(rl.Vector3{X: aheadDistance}, g.Rotation)
	back := rl.Vector3RotateByQuaternion(rl.Vector3{X: backDistance}, g.Rotation)

	origin := rl.Vector3Add(g.Position, ahead)
	g.LastProbes.Ahead = physics.Segment{
		Start: rl.Vector3Add(origin, rl.Vector3Scale(up, probeAbove)),
		End:   rl.Vector3Subtract(origin, rl.Vector3Scale(up, probeBelow)),
	}
	g.LastProbes.Center = physics.Segment{
		Start: rl.Vector3Add(g.Position, rl.Vector3Scale(up, centerReach)),
		End:   rl.Vector3Subtract(g.Position, rl.Vector3Scale(up, centerReach)),
	}
	origin = rl.Vector3Subtract(g.Position, back)
	g.LastProbes.Back = physics.Segment{
		Start: rl.Vector3Add(origin, rl.Vector3Scale(up, probeAbove)),
		End:   rl.Vector3Subtract(origin, rl.Vector3Scale(up, probeBelow)),
	}

	aheadHit := probe.IntersectRay(g.LastProbes.Ahead)
	backHit := probe.IntersectRay(g.LastProbes.Back)
	g.LastHit = probe.IntersectRay(g.LastProbes.Center)

	if g.LastHit.IsHit() {
		n := g.LastHit.Normal
		if aheadHit.IsHit() && backHit.IsHit() {
			n = rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(aheadHit.Normal, backHit.Normal), n), 1.0/3)
		}
		distance := rl.Vector3Distance(g.LastHit.Point, g.Position)

		g.tilt(up, n, tiltRate*dt)

		target := t.HoverHeight - distance
		g.smoothY = lerp(g.smoothY, target, heightRate*dt)
		g.smoothY = min(max(g.smoothY, -distance), maxLift)
		g.Position = rl.Vector3Add(g.Position, rl.Vector3Scale(up, g.smoothY))
		if g.Airborne {
			tracer().P("height", distance).Debugf("landed")
		}
		g.Airborne = false
	} else {
		worldUp := rl.Vector3{Y: 1}
		g.tilt(up, worldUp, levelRate*dt)
		g.Position = rl.Vector3Subtract(g.Position, rl.Vector3Scale(worldUp, g.Gravity))
		g.Airborne = true
	}

	if yaw != 0 {
		g.Rotation = rl.QuaternionMultiply(g.Rotation, rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, yaw*rl.Deg2rad))
	}
	g.Rotation = rl.QuaternionNormalize(g.Rotation)

	g.Position = rl.Vector3Add(g.Position, rl.Vector3Scale(g.Forward(), g.Speed))
	g.Mesh.Transform = g.Transform()
}

// tilt turns the glider so its up axis moves from up towards n by amount.
func (g *Glider) tilt(up, n rl.Vector3, amount float32) {
	desired := rl.Vector3Normalize(rl.Vector3Lerp(up, n, amount))
	if desired == (rl.Vector3{}) {
		return
	}
	q := rl.QuaternionFromVector3ToVector3(up, desired)
	g.Rotation = rl.QuaternionMultiply(q, g.Rotation)
}

// Transform places the glider mesh: the body hangs 10 units below the
// hover point.
func (g *Glider) Transform() rl.Matrix {
	offset := rl.MatrixTranslate(0, -10, 0)
	rot := rl.QuaternionToMatrix(g.Rotation)
	trans := rl.MatrixTranslate(g.Position.X, g.Position.Y, g.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(offset, rot), trans)
}

// CameraView returns a chase camera behind and above the glider. It pulls
// back as speed increases.
func (g *Glider) CameraView() rl.Camera3D {
	m := g.Transform()
	center := rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
	rot := func(v rl.Vector3) rl.Vector3 {
		return rl.Vector3RotateByQuaternion(v, g.Rotation)
	}
	target := rl.Vector3Add(center, rot(rl.Vector3{Y: 15}))
	offset := rot(rl.Vector3{X: -37 - g.Speed*0.35, Y: 15, Z: -50 / (g.Speed + 1)})
	return rl.Camera3D{
		Position:   rl.Vector3Add(center, offset),
		Target:     target,
		Up:         g.Up(),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

// Heading returns the yaw of the forward axis in degrees, 0 along +X and
// 90 along +Z.
func (g *Glider) Heading() float32 {
	f := g.Forward()
	return float32(math.Atan2(float64(f.Z), float64(f.X))) * rl.Rad2deg
}

func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}
