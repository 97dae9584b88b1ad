// Package mesh holds indexed triangle meshes for track pieces and props,
// and the triangulator that turns sampled curve rows into a ride surface.
package mesh

import (
	"glidetrack/internal/physics"

	"github.com/npillmayer/schuko/tracing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// tracer writes to trace with key 'mesh'
func tracer() tracing.Trace {
	return tracing.Select("mesh")
}

// Mesh is an indexed triangle list. Indices come in triples.
//
// The render handle is opaque to this package; the renderer stores
// whatever it uploaded (a buffer, a model) and checks IsRendered to find
// meshes that need uploading.
type Mesh struct {
	Vertices  []rl.Vector3
	Indices   []uint32
	Transform rl.Matrix

	color  rl.Color
	handle any
}

// FromRaw wraps vertex and index data. Trailing indices that do not form a
// full triangle are ignored by TriangleCount and Triangles.
func FromRaw(vertices []rl.Vector3, indices []uint32) *Mesh {
	return &Mesh{
		Vertices:  vertices,
		Indices:   indices,
		Transform: rl.MatrixIdentity(),
		color:     rl.White,
	}
}

func (m *Mesh) Color() rl.Color {
	return m.color
}

// SetColor changes the colour and drops the render handle so the renderer
// uploads the mesh again.
func (m *Mesh) SetColor(c rl.Color) {
	m.handle = nil
	m.color = c
}

func (m *Mesh) SetHandle(h any) {
	m.handle = h
}

func (m *Mesh) Handle() any {
	return m.handle
}

func (m *Mesh) IsRendered() bool {
	return m.handle != nil
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns triangle i in world space.
func (m *Mesh) Triangle(i int) (physics.Triangle, bool) {
	if i < 0 || i >= m.TriangleCount() {
		return physics.Triangle{}, false
	}
	idx := m.Indices[i*3 : i*3+3]
	for _, k := range idx {
		if int(k) >= len(m.Vertices) {
			return physics.Triangle{}, false
		}
	}
	return physics.Triangle{
		V0: rl.Vector3Transform(m.Vertices[idx[0]], m.Transform),
		V1: rl.Vector3Transform(m.Vertices[idx[1]], m.Transform),
		V2: rl.Vector3Transform(m.Vertices[idx[2]], m.Transform),
	}, true
}

// Triangles returns every triangle in world space. Triangles with
// out-of-range indices are replaced by a degenerate triangle so that
// positions in the returned slice match triangle numbers.
func (m *Mesh) Triangles() []physics.Triangle {
	tris := make([]physics.Triangle, m.TriangleCount())
	for i := range tris {
		tris[i], _ = m.Triangle(i)
	}
	return tris
}

// Bounds returns the world-space bounding box of all vertices.
func (m *Mesh) Bounds() physics.AABB {
	points := make([]rl.Vector3, len(m.Vertices))
	for i, p := range m.Vertices {
		points[i] = rl.Vector3Transform(p, m.Transform)
	}
	return physics.NewAABBFromPoints(points...)
}
