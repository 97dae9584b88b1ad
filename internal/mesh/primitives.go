package mesh

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// FromCube builds a box centred on the origin spanning ±w, ±h, ±d.
func FromCube(w, h, d float32) *Mesh {
	corners := []rl.Vector3{
		{X: -w, Y: -h, Z: -d}, {X: w, Y: -h, Z: -d}, {X: w, Y: h, Z: -d}, {X: -w, Y: h, Z: -d},
		{X: -w, Y: -h, Z: d}, {X: w, Y: -h, Z: d}, {X: w, Y: h, Z: d}, {X: -w, Y: h, Z: d},
	}
	// counter-clockwise seen from outside
	faces := [][4]uint32{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	indices := make([]uint32, 0, len(faces)*6)
	for _, f := range faces {
		indices = append(indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return FromRaw(corners, indices)
}

// FromGridPlane builds a flat w×h plane at y=0 with its corner at the
// origin, subdivided into tx×ty quads.
func FromGridPlane(w, h float32, tx, ty int) *Mesh {
	if tx < 1 {
		tx = 1
	}
	if ty < 1 {
		ty = 1
	}
	vertices := make([]rl.Vector3, 0, (tx+1)*(ty+1))
	for j := 0; j <= ty; j++ {
		for i := 0; i <= tx; i++ {
			vertices = append(vertices, rl.Vector3{
				X: w * float32(i) / float32(tx),
				Y: 0,
				Z: h * float32(j) / float32(ty),
			})
		}
	}

	stride := uint32(tx + 1)
	indices := make([]uint32, 0, tx*ty*6)
	for j := uint32(0); j < uint32(ty); j++ {
		for i := uint32(0); i < uint32(tx); i++ {
			a := j*stride + i
			b := a + 1
			c := a + stride
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return FromRaw(vertices, indices)
}
