package track

import (
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

// minOverlapArea ignores slivers produced where neighbouring outlines only
// touch.
const minOverlapArea = 1.0

// Overlap reports two non-adjacent pieces whose ground footprints
// intersect.
type Overlap struct {
	A, B int
	Area float64
}

// footprint is the XZ outline of a piece: one side of the surface walked
// forward, the other side walked back.
func (p *Piece) footprint() polyclip.Polygon {
	m := p.mesh
	stride := p.cfg.Columns + 1
	if m == nil || stride < 2 || len(m.Vertices) < 2*stride {
		return nil
	}
	rows := len(m.Vertices) / stride
	contour := make(polyclip.Contour, 0, rows*2)
	for r := 0; r < rows; r++ {
		v := m.Vertices[r*stride]
		contour = append(contour, polyclip.Point{X: float64(v.X), Y: float64(v.Z)})
	}
	for r := rows - 1; r >= 0; r-- {
		v := m.Vertices[r*stride+stride-1]
		contour = append(contour, polyclip.Point{X: float64(v.X), Y: float64(v.Z)})
	}
	return polyclip.Polygon{contour}
}

// Footprint returns the ground outline of the piece at index, with world
// x and z as the polygon's X and Y.
func (c *Course) Footprint(index int) (polyclip.Polygon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(index); err != nil {
		return nil, fmt.Errorf("footprint: %w", err)
	}
	return c.pieces[index].footprint(), nil
}

// Overlaps finds pairs of pieces whose footprints cross. Neighbouring
// pieces share an edge and are not compared.
func (c *Course) Overlaps() []Overlap {
	c.mu.Lock()
	prints := make([]polyclip.Polygon, len(c.pieces))
	for i, p := range c.pieces {
		prints[i] = p.footprint()
	}
	c.mu.Unlock()

	var overlaps []Overlap
	for i := 0; i < len(prints); i++ {
		for j := i + 2; j < len(prints); j++ {
			a, b := prints[i], prints[j]
			if len(a) == 0 || len(b) == 0 {
				continue
			}
			if !a.BoundingBox().Overlaps(b.BoundingBox()) {
				continue
			}
			area := polygonArea(a.Construct(polyclip.INTERSECTION, b))
			if area >= minOverlapArea {
				overlaps = append(overlaps, Overlap{A: i, B: j, Area: area})
			}
		}
	}
	if len(overlaps) > 0 {
		tracer().P("pairs", len(overlaps)).Infof("course has overlapping pieces")
	}
	return overlaps
}

// polygonArea sums the absolute shoelace areas of all contours.
func polygonArea(p polyclip.Polygon) float64 {
	total := 0.0
	for _, c := range p {
		a := 0.0
		for i := range c {
			j := (i + 1) % len(c)
			a += c[i].X*c[j].Y - c[j].X*c[i].Y
		}
		total += math.Abs(a) / 2
	}
	return total
}
