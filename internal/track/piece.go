package track

import (
	"fmt"
	"math"

	"glidetrack/internal/curve"
	"glidetrack/internal/mesh"
	"glidetrack/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Quarter-circle Bezier handle ratio and the U-turn handle ratio.
const (
	curve90Handle  = 0.55228
	curve180Handle = 2.0 / 3.0
	straightReach  = 1.33
)

// Debug overlay and surface colours.
var (
	handleFromColor = rl.Color{R: 255, G: 128, B: 0, A: 255}
	handleToColor   = rl.Color{R: 0, G: 128, B: 255, A: 255}
	activeColor     = rl.Color{R: 255, G: 255, B: 0, A: 255}
	frameColor      = rl.Color{R: 0, G: 255, B: 0, A: 255}
	surfaceColor    = rl.Color{R: 255, G: 255, B: 0, A: 255}
)

// DebugLine is a line segment for the editor overlay.
type DebugLine struct {
	From, To rl.Vector3
	Color    rl.Color
}

// pieceState is the editable part of a piece, saved for undo.
type pieceState struct {
	from, to curve.ControlPoint
	angle    float32
	activeTo bool
	shape    Shape
}

// Piece is one track segment. Its rows, mesh and triangles are rebuilt from
// scratch by every edit.
type Piece struct {
	id  int
	cfg Config

	pieceState

	rows      []curve.Row
	mesh      *mesh.Mesh
	triangles []physics.Triangle
}

// newPiece creates a straight piece starting at from.
func newPiece(id int, from curve.ControlPoint, cfg Config) *Piece {
	p := &Piece{id: id, cfg: cfg}
	p.from = from
	p.to = from
	p.retype(StraightType)
	p.generate()
	return p
}

func (p *Piece) ID() int { return p.id }

func (p *Piece) Type() PieceType { return p.shape.Type() }

func (p *Piece) From() curve.ControlPoint { return p.from }

func (p *Piece) To() curve.ControlPoint { return p.to }

// Angle is the piece heading in degrees, in [0, 360).
func (p *Piece) Angle() float32 { return p.angle }

// ActiveIsEnd reports whether edits act on the end point.
func (p *Piece) ActiveIsEnd() bool { return p.activeTo }

func (p *Piece) Rows() []curve.Row { return p.rows }

func (p *Piece) Mesh() *mesh.Mesh { return p.mesh }

// Triangles returns the world-space triangles of the current mesh. The
// slice is never modified after generation.
func (p *Piece) Triangles() []physics.Triangle { return p.triangles }

// active returns a pointer to the endpoint edits apply to.
func (p *Piece) active() *curve.ControlPoint {
	if p.activeTo {
		return &p.to
	}
	return &p.from
}

func (p *Piece) other() *curve.ControlPoint {
	if p.activeTo {
		return &p.from
	}
	return &p.to
}

// apply changes the piece state. It does not regenerate.
func (p *Piece) apply(cmd Command) error {
	switch c := cmd.(type) {
	case Retype:
		if ShapeOf(c.Type) == nil {
			return fmt.Errorf("retype to %v: %w", c.Type, ErrUnknownCommand)
		}
		p.retype(c.Type)
	case Rotate:
		p.rotate(c.Degrees)
	case Translate:
		p.translate(c.Offset, c.Symmetric)
	case ToggleEndpoint:
		p.activeTo = !p.activeTo
	case AdjustRoll:
		a := p.active()
		a.Roll = normalizeAngle(a.Roll + c.Degrees)
	case AdjustWidth:
		a := p.active()
		a.Width += c.Delta
		if a.Width < p.cfg.MinWidth {
			a.Width = p.cfg.MinWidth
		}
	default:
		return fmt.Errorf("command %T: %w", cmd, ErrUnknownCommand)
	}
	return nil
}

// retype switches the shape, keeps the active endpoint and places the
// other one by the type's preset offset. Rolls are reset.
func (p *Piece) retype(t PieceType) {
	preset := p.cfg.preset(t)
	p.shape = ShapeOf(t)
	p.angle = normalizeAngle(preset.Angle)
	p.from.Roll = 0
	p.to.Roll = 0

	origin := p.active().Position
	if p.activeTo {
		p.from.Position = rl.Vector3Subtract(origin, preset.Offset)
	} else {
		p.to.Position = rl.Vector3Add(origin, preset.Offset)
	}
}

// rotate turns both endpoints about the active one around +Y by -degrees.
func (p *Piece) rotate(degrees float32) {
	p.angle = normalizeAngle(p.angle + degrees)

	origin := p.active().Position
	m := rl.MatrixRotateY(-degrees * rl.Deg2rad)
	for _, pt := range []*curve.ControlPoint{&p.from, &p.to} {
		d := rl.Vector3Subtract(pt.Position, origin)
		pt.Position = rl.Vector3Add(origin, rl.Vector3Transform(d, m))
	}
}

func (p *Piece) translate(offset rl.Vector3, symmetric bool) {
	a := p.active()
	a.Position = rl.Vector3Add(a.Position, offset)
	if symmetric {
		o := p.other()
		o.Position = rl.Vector3Add(o.Position, offset)
	}
}

// handles derives the Bezier control points and the heading overrides for
// the first and last row. For a Loop the endpoints are returned unchanged.
func (p *Piece) handles() (b, c curve.ControlPoint, fromAngle, toAngle float32) {
	from, to, a := p.from, p.to, p.angle
	switch p.shape.(type) {
	case Curve180:
		v := rl.Vector3Subtract(to.Position, from.Position)
		u := rl.Vector3Scale(rl.Vector3{X: -v.Z, Y: 0, Z: v.X}, curve180Handle)
		b = from.At(rl.Vector3Subtract(from.Position, u))
		c = to.At(rl.Vector3Subtract(to.Position, u))
		return b, c, normalizeAngle(a + 180), a

	case Curve90:
		v := rl.Vector3Subtract(to.Position, from.Position)
		var u, w rl.Vector3
		if a == 0 || a == 180 {
			u = rl.Vector3{X: v.X}
			w = rl.Vector3{Z: -v.Z}
		} else {
			u = rl.Vector3{Z: v.Z}
			w = rl.Vector3{X: -v.X}
		}
		b = from.At(rl.Vector3Add(from.Position, rl.Vector3Scale(u, curve90Handle)))
		c = to.At(rl.Vector3Add(to.Position, rl.Vector3Scale(w, curve90Handle)))
		return b, c, a + 180, normalizeAngle(a + 270)

	case Straight:
		dx := abs32(from.Position.X - to.Position.X)
		dz := abs32(from.Position.Z - to.Position.Z)
		d := max(dx, dz) * straightReach
		return from.RotateAround(a, d*0.5), to.RotateAround(a+180, d*0.5), a, a
	}
	return from, to, a, a
}

// sampler picks the curve evaluator for the current shape.
func (p *Piece) sampler() (s curve.Sampler, fromAngle, toAngle float32, closed bool) {
	switch p.shape.(type) {
	case Loop:
		dx := abs32(p.from.Position.X - p.to.Position.X)
		dz := abs32(p.from.Position.Z - p.to.Position.Z)
		radius := dz
		if p.angle == 0 || p.angle == 180 {
			radius = dx
		}
		return curve.NewLoop(p.from, p.to, radius, p.angle), -p.angle, -p.angle, true
	default:
		b, c, fa, ta := p.handles()
		return curve.NewBezier(p.from, b, c, p.to), fa, ta, false
	}
}

// generate rebuilds rows, mesh and triangles from the current state.
func (p *Piece) generate() {
	s, fa, ta, closed := p.sampler()
	p.rows = s.Rows(p.cfg.Step)

	vertices, indices := mesh.Triangulate(p.rows, p.cfg.Columns, fa, ta, closed)
	m := mesh.FromRaw(vertices, indices)
	m.SetColor(surfaceColor)
	p.mesh = m
	p.triangles = m.Triangles()

	tracer().P("piece", p.id).P("type", p.shape.Type()).Debugf(
		"generated %d rows, %d triangles", len(p.rows), len(p.triangles))
}

// DebugLines returns the handle markers, the active endpoint marker and a
// binormal tick for every row.
func (p *Piece) DebugLines() []DebugLine {
	up := func(v rl.Vector3, h float32) rl.Vector3 {
		return rl.Vector3Add(v, rl.Vector3{Y: h})
	}
	b, c, _, _ := p.handles()
	lines := make([]DebugLine, 0, len(p.rows)+3)
	lines = append(lines,
		DebugLine{From: b.Position, To: up(b.Position, 100), Color: handleFromColor},
		DebugLine{From: c.Position, To: up(c.Position, 100), Color: handleToColor},
	)
	a := p.active().Position
	lines = append(lines, DebugLine{From: a, To: up(a, 300), Color: activeColor})
	for _, r := range p.rows {
		lines = append(lines, DebugLine{
			From:  r.Position,
			To:    rl.Vector3Add(r.Position, rl.Vector3Scale(r.Binormal, 50)),
			Color: frameColor,
		})
	}
	return lines
}

func normalizeAngle(deg float32) float32 {
	a := float32(math.Mod(float64(deg), 360))
	if a < 0 {
		a += 360
	}
	return a
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
