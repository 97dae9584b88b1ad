package physics

import (
	"math"
)

// DefaultCellSize is the edge length of a grid cell in world units.
const DefaultCellSize = 250.0

// CellKey addresses one cell of the spatial hash.
type CellKey struct {
	X, Y, Z int
}

// TriangleRef points at one triangle of one piece.
type TriangleRef struct {
	Piece    int
	Triangle int
}

// TriangleSource resolves refs stored in the grid to world-space triangles.
type TriangleSource interface {
	Triangle(piece, index int) (Triangle, bool)
}

// CellRange is an inclusive range of cells.
type CellRange struct {
	Min, Max CellKey
}

// Grid is a uniform spatial hash over triangle bounding boxes. A triangle
// is registered in every cell its bounds touch, so lookups are
// conservative.
type Grid struct {
	cellSize float32
	cells    map[CellKey][]TriangleRef
}

func NewGrid(cellSize float32) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[CellKey][]TriangleRef),
	}
}

func (g *Grid) CellSize() float32 {
	return g.cellSize
}

// Range converts a box to the inclusive cell range floor(min)..ceil(max).
func (g *Grid) Range(box AABB) CellRange {
	return CellRange{
		Min: CellKey{
			X: int(math.Floor(float64(box.Min.X / g.cellSize))),
			Y: int(math.Floor(float64(box.Min.Y / g.cellSize))),
			Z: int(math.Floor(float64(box.Min.Z / g.cellSize))),
		},
		Max: CellKey{
			X: int(math.Ceil(float64(box.Max.X / g.cellSize))),
			Y: int(math.Ceil(float64(box.Max.Y / g.cellSize))),
			Z: int(math.Ceil(float64(box.Max.Z / g.cellSize))),
		},
	}
}

// Insert registers every triangle of a piece. Triangle i is stored as
// TriangleRef{piece, i}.
func (g *Grid) Insert(piece int, tris []Triangle) {
	for i, tri := range tris {
		ref := TriangleRef{Piece: piece, Triangle: i}
		r := g.Range(tri.Bounds())
		for x := r.Min.X; x <= r.Max.X; x++ {
			for y := r.Min.Y; y <= r.Max.Y; y++ {
				for z := r.Min.Z; z <= r.Max.Z; z++ {
					key := CellKey{x, y, z}
					g.cells[key] = append(g.cells[key], ref)
				}
			}
		}
	}
	tracer().P("piece", piece).Debugf("inserted %d triangles, %d cells in use", len(tris), len(g.cells))
}

// Remove drops every ref belonging to piece. Cells left empty are deleted.
func (g *Grid) Remove(piece int) {
	for key, refs := range g.cells {
		kept := refs[:0:0]
		for _, ref := range refs {
			if ref.Piece != piece {
				kept = append(kept, ref)
			}
		}
		if len(kept) == 0 {
			delete(g.cells, key)
		} else if len(kept) != len(refs) {
			g.cells[key] = kept
		}
	}
}

// Clone returns an independent copy. Ref slices are copied so appends on
// the clone never alias the original.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		cellSize: g.cellSize,
		cells:    make(map[CellKey][]TriangleRef, len(g.cells)),
	}
	for key, refs := range g.cells {
		c.cells[key] = append([]TriangleRef(nil), refs...)
	}
	return c
}

// CellCount returns the number of non-empty cells.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// RefCount returns the total number of stored refs across all cells.
func (g *Grid) RefCount() int {
	n := 0
	for _, refs := range g.cells {
		n += len(refs)
	}
	return n
}

// Refs returns the refs stored in one cell.
func (g *Grid) Refs(key CellKey) []TriangleRef {
	return g.cells[key]
}

// IntersectSegment scans the cells covered by the segment's bounds, x outer,
// y middle, z inner, and returns the first hit found in that order. This is
// not necessarily the hit nearest to s.Start. Degenerate and parallel
// candidates are skipped.
func (g *Grid) IntersectSegment(s Segment, src TriangleSource) Intersection {
	r := g.Range(s.Bounds())
	for x := r.Min.X; x <= r.Max.X; x++ {
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			for z := r.Min.Z; z <= r.Max.Z; z++ {
				for _, ref := range g.cells[CellKey{x, y, z}] {
					tri, ok := src.Triangle(ref.Piece, ref.Triangle)
					if !ok {
						continue
					}
					if hit := IntersectSegmentTriangle(s, tri); hit.IsHit() {
						return hit
					}
				}
			}
		}
	}
	return Intersection{Kind: Miss}
}

// TriangleList serves a single piece's triangles, for grids built over one
// mesh.
type TriangleList struct {
	Piece     int
	Triangles []Triangle
}

func (l TriangleList) Triangle(piece, index int) (Triangle, bool) {
	if piece != l.Piece || index < 0 || index >= len(l.Triangles) {
		return Triangle{}, false
	}
	return l.Triangles[index], true
}

// BruteForce tests every triangle in order and returns the first hit.
func BruteForce(s Segment, tris []Triangle) Intersection {
	for _, tri := range tris {
		if hit := IntersectSegmentTriangle(s, tri); hit.IsHit() {
			return hit
		}
	}
	return Intersection{Kind: Miss}
}
