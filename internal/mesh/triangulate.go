package mesh

import (
	"math"

	"glidetrack/internal/curve"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangulate sweeps a cross-section of columns+1 vertices across each row
// and stitches neighbouring rows with two triangles per column.
//
// The first and last rows take their lateral direction from fromAngle and
// toAngle (degrees) instead of the curve frame, so pieces meeting at a
// designed angle share an edge. When closed is set, the last row is also
// stitched back onto the first.
func Triangulate(rows []curve.Row, columns int, fromAngle, toAngle float32, closed bool) ([]rl.Vector3, []uint32) {
	if columns < 1 || len(rows) == 0 {
		return nil, nil
	}

	stride := columns + 1
	vertices := make([]rl.Vector3, 0, len(rows)*stride)
	last := len(rows) - 1
	for i, r := range rows {
		angle := math.Pi*0.5 + float64(r.Roll*rl.Deg2rad)

		normal := r.Normal
		switch i {
		case 0:
			normal = headingNormal(fromAngle)
		case last:
			normal = headingNormal(toAngle)
		}

		o := rl.Vector3Scale(rl.Vector3Add(
			rl.Vector3Scale(r.Binormal, float32(math.Cos(angle))),
			rl.Vector3Scale(normal, float32(math.Sin(angle))),
		), r.Width)
		step := rl.Vector3Scale(o, 2/float32(columns))
		for c := 0; c <= columns; c++ {
			vertices = append(vertices, rl.Vector3Add(r.Position, o))
			o = rl.Vector3Subtract(o, step)
		}
	}

	if len(rows) < 2 {
		return vertices, nil
	}

	pairs := len(rows) - 1
	if closed {
		pairs++
	}
	total := uint32(len(vertices))
	c := uint32(columns)
	indices := make([]uint32, 0, pairs*columns*6)
	for p := 0; p < pairs; p++ {
		i := uint32(p * stride)
		for b := uint32(0); b < c; b++ {
			indices = append(indices,
				i+b, (i+b+c+1)%total, (i+b+1)%total,
				(i+b+c+1)%total, (i+b+c+2)%total, (i+b+1)%total,
			)
		}
	}

	tracer().P("rows", len(rows)).Debugf("triangulated %d vertices, %d triangles", len(vertices), len(indices)/3)
	return vertices, indices
}

// headingNormal is the lateral direction for a piece heading of deg degrees.
func headingNormal(deg float32) rl.Vector3 {
	r := math.Pi*0.5 + float64(deg*rl.Deg2rad)
	return rl.Vector3{X: -float32(math.Cos(r)), Y: 0, Z: -float32(math.Sin(r))}
}
