package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// emptyAABB is inverted so that the first Extend snaps it to a point.
func emptyAABB() AABB {
	return AABB{
		Min: rl.Vector3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32},
		Max: rl.Vector3{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32},
	}
}

// NewAABBFromPoints returns the smallest box containing all points.
func NewAABBFromPoints(points ...rl.Vector3) AABB {
	box := emptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// Extend grows the box to contain p.
func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: vector3Min(a.Min, p), Max: vector3Max(a.Max, p)}
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: vector3Min(a.Min, b.Min), Max: vector3Max(a.Max, b.Max)}
}

// IsEmpty reports whether the box was never extended.
func (a AABB) IsEmpty() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside the box, borders included.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}
