package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is a single surface triangle in world space.
type Triangle struct {
	V0, V1, V2 rl.Vector3
}

func (t Triangle) Bounds() AABB {
	return NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Normal returns the unit face normal following the V0→V1→V2 winding, or
// the zero vector for a degenerate triangle.
func (t Triangle) Normal() rl.Vector3 {
	n := rl.Vector3CrossProduct(rl.Vector3Subtract(t.V1, t.V0), rl.Vector3Subtract(t.V2, t.V0))
	if isZero(n) {
		return n
	}
	return rl.Vector3Normalize(n)
}

// IsDegenerate reports whether the triangle has zero area.
func (t Triangle) IsDegenerate() bool {
	return isZero(rl.Vector3CrossProduct(rl.Vector3Subtract(t.V1, t.V0), rl.Vector3Subtract(t.V2, t.V0)))
}
