package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// parallelEpsilon bounds |N·dir| below which a segment counts as lying in
// the triangle's plane.
const parallelEpsilon = 0.000001

// Segment is a bounded ray from Start to End. Intersections are only
// reported for points between the two.
type Segment struct {
	Start rl.Vector3
	End   rl.Vector3
}

// Direction returns End - Start (not normalized).
func (s Segment) Direction() rl.Vector3 {
	return rl.Vector3Subtract(s.End, s.Start)
}

// Reversed swaps the segment's endpoints.
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Bounds returns the segment's axis-aligned bounding box.
func (s Segment) Bounds() AABB {
	return NewAABBFromPoints(s.Start, s.End)
}

// IntersectionKind classifies the outcome of a segment/triangle test.
type IntersectionKind int

const (
	// Miss: the segment does not reach the plane or passes outside the triangle.
	Miss IntersectionKind = iota
	// Degenerate: the triangle has zero area.
	Degenerate
	// Parallel: the segment lies parallel to the triangle's plane.
	Parallel
	// Hit: the segment crosses the triangle.
	Hit
)

func (k IntersectionKind) String() string {
	switch k {
	case Degenerate:
		return "degenerate"
	case Parallel:
		return "parallel"
	case Hit:
		return "hit"
	default:
		return "miss"
	}
}

// Intersection is the result of a segment query. Point, Normal and
// Fraction are only meaningful when Kind is Hit.
type Intersection struct {
	Kind     IntersectionKind
	Point    rl.Vector3
	Normal   rl.Vector3 // unit normal facing back along the segment
	Fraction float32    // position of Point along the segment, 0..1
}

// IsHit reports whether the intersection carries a point and normal.
func (i Intersection) IsHit() bool {
	return i.Kind == Hit
}

// IntersectSegmentTriangle tests a bounded segment against one triangle.
func IntersectSegmentTriangle(s Segment, tri Triangle) Intersection {
	u := rl.Vector3Subtract(tri.V1, tri.V0)
	v := rl.Vector3Subtract(tri.V2, tri.V0)
	n := rl.Vector3CrossProduct(u, v)
	if isZero(n) {
		return Intersection{Kind: Degenerate}
	}

	dir := s.Direction()
	w0 := rl.Vector3Subtract(s.Start, tri.V0)
	a := -rl.Vector3DotProduct(n, w0)
	b := rl.Vector3DotProduct(n, dir)
	if abs(b) < parallelEpsilon {
		return Intersection{Kind: Parallel}
	}

	r := a / b
	if r < 0 || r > 1 {
		return Intersection{Kind: Miss}
	}
	point := rl.Vector3Add(s.Start, rl.Vector3Scale(dir, r))

	// Parametric coordinates of point relative to u and v.
	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	w := rl.Vector3Subtract(point, tri.V0)
	wu := rl.Vector3DotProduct(w, u)
	wv := rl.Vector3DotProduct(w, v)
	d := uv*uv - uu*vv

	sc := (uv*wv - vv*wu) / d
	if sc < 0 || sc > 1 {
		return Intersection{Kind: Miss}
	}
	tc := (uv*wu - uu*wv) / d
	if tc < 0 || sc+tc > 1 {
		return Intersection{Kind: Miss}
	}

	normal := rl.Vector3Normalize(n)
	if b > 0 {
		normal = rl.Vector3Negate(normal)
	}
	return Intersection{Kind: Hit, Point: point, Normal: normal, Fraction: r}
}
