package physics

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func v(x, y, z float32) rl.Vector3 {
	return rl.Vector3{X: x, Y: y, Z: z}
}

// floor is a 200x200 quad at y=0 split into two triangles.
func floor() []Triangle {
	return []Triangle{
		{V0: v(0, 0, 0), V1: v(0, 0, 200), V2: v(200, 0, 0)},
		{V0: v(200, 0, 0), V1: v(0, 0, 200), V2: v(200, 0, 200)},
	}
}

func TestAABBFromPoints(t *testing.T) {
	box := NewAABBFromPoints(v(1, -2, 3), v(-4, 5, 0), v(2, 2, 2))
	if box.Min != v(-4, -2, 0) {
		t.Errorf("Expected min (-4,-2,0), got %v", box.Min)
	}
	if box.Max != v(2, 5, 3) {
		t.Errorf("Expected max (2,5,3), got %v", box.Max)
	}
	if !box.Contains(v(0, 0, 1)) {
		t.Error("Expected box to contain (0,0,1)")
	}
	if box.Contains(v(3, 0, 0)) {
		t.Error("Expected box not to contain (3,0,0)")
	}
	if !NewAABBFromPoints().IsEmpty() {
		t.Error("Expected box with no points to be empty")
	}
}

func TestSegmentTriangleHit(t *testing.T) {
	tri := floor()[0]
	s := Segment{Start: v(10, 100, 10), End: v(10, -100, 10)}

	hit := IntersectSegmentTriangle(s, tri)
	require.Equal(t, Hit, hit.Kind)
	assert.InDelta(t, 10, hit.Point.X, 1e-4)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)
	assert.InDelta(t, 10, hit.Point.Z, 1e-4)
	assert.InDelta(t, 0.5, hit.Fraction, 1e-4)
	assert.InDelta(t, 1, hit.Normal.Y, 1e-4)
}

func TestSegmentTriangleNormalOpposesSegment(t *testing.T) {
	tri := floor()[0]
	up := Segment{Start: v(10, -100, 10), End: v(10, 100, 10)}
	hit := IntersectSegmentTriangle(up, tri)
	require.True(t, hit.IsHit())
	assert.InDelta(t, -1, hit.Normal.Y, 1e-4)
	assert.Less(t, rl.Vector3DotProduct(hit.Normal, up.Direction()), float32(0))
}

func TestSegmentTriangleSwapSymmetry(t *testing.T) {
	tris := append(floor(),
		Triangle{V0: v(0, 0, 0), V1: v(1, 1, 1), V2: v(2, 2, 2)},        // collinear
		Triangle{V0: v(0, 0, 0), V1: v(0, 10, 0), V2: v(0, 0, 10)},       // x=0 wall
		Triangle{V0: v(0, 50, 0), V1: v(100, 80, 30), V2: v(20, 10, 150)}, // tilted
	)
	segments := []Segment{
		{Start: v(10, 100, 10), End: v(10, -100, 10)},
		{Start: v(0, 5, -5), End: v(0, 5, 50)},
		{Start: v(30, 200, 40), End: v(35, -50, 45)},
		{Start: v(500, 1, 500), End: v(600, -1, 600)},
		{Start: v(10, 100, 10), End: v(10, 50, 10)},
	}
	for i, tri := range tris {
		for j, s := range segments {
			a := IntersectSegmentTriangle(s, tri)
			b := IntersectSegmentTriangle(s.Reversed(), tri)
			assert.Equal(t, a.Kind, b.Kind, "triangle %d segment %d", i, j)
			if a.IsHit() && b.IsHit() {
				assert.InDelta(t, a.Point.X, b.Point.X, 1e-3)
				assert.InDelta(t, a.Point.Y, b.Point.Y, 1e-3)
				assert.InDelta(t, a.Point.Z, b.Point.Z, 1e-3)
			}
		}
	}
}

func TestSegmentTriangleDegenerate(t *testing.T) {
	s := Segment{Start: v(0, 10, 0), End: v(0, -10, 0)}
	collinear := Triangle{V0: v(0, 0, 0), V1: v(1, 0, 0), V2: v(2, 0, 0)}
	coincident := Triangle{V0: v(3, 3, 3), V1: v(3, 3, 3), V2: v(3, 3, 3)}
	assert.Equal(t, Degenerate, IntersectSegmentTriangle(s, collinear).Kind)
	assert.Equal(t, Degenerate, IntersectSegmentTriangle(s, coincident).Kind)
	assert.True(t, collinear.IsDegenerate())
	assert.Equal(t, rl.Vector3{}, collinear.Normal())
}

func TestSegmentTriangleParallel(t *testing.T) {
	tri := floor()[0]
	s := Segment{Start: v(-10, 0, 10), End: v(300, 0, 10)}
	assert.Equal(t, Parallel, IntersectSegmentTriangle(s, tri).Kind)

	above := Segment{Start: v(-10, 5, 10), End: v(300, 5, 10)}
	assert.Equal(t, Parallel, IntersectSegmentTriangle(above, tri).Kind)
}

func TestSegmentTriangleMiss(t *testing.T) {
	tri := floor()[0]
	short := Segment{Start: v(10, 100, 10), End: v(10, 1, 10)}
	assert.Equal(t, Miss, IntersectSegmentTriangle(short, tri).Kind)

	outside := Segment{Start: v(190, 100, 190), End: v(190, -100, 190)}
	assert.Equal(t, Miss, IntersectSegmentTriangle(outside, tri).Kind)

	negative := Segment{Start: v(-5, 100, 10), End: v(-5, -100, 10)}
	assert.Equal(t, Miss, IntersectSegmentTriangle(negative, tri).Kind)
}

func TestGridRange(t *testing.T) {
	g := NewGrid(250)
	r := g.Range(NewAABBFromPoints(v(-10, 0, 260), v(490, 0, 500)))
	assert.Equal(t, CellKey{-1, 0, 1}, r.Min)
	assert.Equal(t, CellKey{2, 0, 2}, r.Max)
}

func TestGridInsertSpansCells(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	g := NewGrid(250)
	g.Insert(0, []Triangle{{V0: v(10, 0, 10), V1: v(10, 0, 20), V2: v(20, 0, 10)}})
	// x 0..1, y 0..0, z 0..1
	assert.Equal(t, 4, g.CellCount())
	assert.Equal(t, 4, g.RefCount())
	assert.Equal(t, []TriangleRef{{Piece: 0, Triangle: 0}}, g.Refs(CellKey{1, 0, 1}))
}

func TestGridHitAndMiss(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	tris := floor()
	src := TriangleList{Piece: 7, Triangles: tris}
	g := NewGrid(250)
	g.Insert(7, tris)

	through := Segment{Start: v(150, 100, 150), End: v(150, -100, 150)}
	hit := g.IntersectSegment(through, src)
	require.Equal(t, Hit, hit.Kind)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)
	assert.InDelta(t, 1, hit.Normal.Y, 1e-4)

	outside := Segment{Start: v(10000, 100, 10), End: v(10000, -100, 10)}
	assert.Equal(t, Miss, g.IntersectSegment(outside, src).Kind)
}

func TestGridMatchesBruteForce(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	var tris []Triangle
	for i := 0; i < 20; i++ {
		x := float32(i) * 100
		tris = append(tris,
			Triangle{V0: v(x, float32(i), 0), V1: v(x, float32(i), 100), V2: v(x+100, float32(i), 0)},
			Triangle{V0: v(x+100, float32(i), 0), V1: v(x, float32(i), 100), V2: v(x+100, float32(i), 100)},
		)
	}
	src := TriangleList{Triangles: tris}
	g := NewGrid(250)
	g.Insert(0, tris)

	// x and z avoid shared triangle edges, where the two scans may
	// legitimately report different triangles
	for x := float32(7); x < 2100; x += 37 {
		s := Segment{Start: v(x, 200, 37), End: v(x, -200, 37)}
		want := BruteForce(s, tris)
		got := g.IntersectSegment(s, src)
		require.Equal(t, want.Kind, got.Kind, "x=%f", x)
		if want.IsHit() {
			assert.InDelta(t, want.Point.Y, got.Point.Y, 1e-3)
		}
	}
}

func TestGridRemoveAndClone(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	g := NewGrid(250)
	g.Insert(1, floor())
	g.Insert(2, []Triangle{{V0: v(1000, 0, 1000), V1: v(1000, 0, 1100), V2: v(1100, 0, 1000)}})
	before := g.RefCount()

	c := g.Clone()
	c.Remove(1)
	assert.Equal(t, before, g.RefCount(), "clone must not share storage")
	assert.Less(t, c.RefCount(), before)

	for key := range c.cells {
		for _, ref := range c.Refs(key) {
			assert.Equal(t, 2, ref.Piece)
		}
	}

	c.Remove(2)
	assert.Zero(t, c.CellCount())
	assert.Zero(t, c.RefCount())
}

func TestGridSkipsUnresolvedRefs(t *testing.T) {
	g := NewGrid(250)
	g.Insert(3, floor())
	s := Segment{Start: v(10, 100, 10), End: v(10, -100, 10)}
	assert.Equal(t, Miss, g.IntersectSegment(s, TriangleList{Piece: 4, Triangles: floor()}).Kind)
}

func TestGridSkipsDegenerate(t *testing.T) {
	tris := []Triangle{
		{V0: v(10, 0, 10), V1: v(10, 0, 10), V2: v(10, 0, 10)},
		floor()[0],
	}
	g := NewGrid(250)
	g.Insert(0, tris)
	s := Segment{Start: v(10, 100, 10), End: v(10, -100, 10)}
	assert.Equal(t, Hit, g.IntersectSegment(s, TriangleList{Triangles: tris}).Kind)
}
