package track

import (
	"fmt"
	"sync"
	"sync/atomic"

	"glidetrack/internal/curve"
	"glidetrack/internal/mesh"
	"glidetrack/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// snapshot is the read side of a course: the grid and the triangle lists
// it refers to. A published snapshot is never modified.
type snapshot struct {
	grid      *physics.Grid
	triangles map[int][]physics.Triangle
}

// Triangle resolves a grid ref, implementing physics.TriangleSource.
func (s *snapshot) Triangle(piece, index int) (physics.Triangle, bool) {
	tris, ok := s.triangles[piece]
	if !ok || index < 0 || index >= len(tris) {
		return physics.Triangle{}, false
	}
	return tris[index], true
}

// with returns a copy of s where piece id carries tris. A nil tris removes
// the piece.
func (s *snapshot) with(id int, tris []physics.Triangle) *snapshot {
	next := &snapshot{
		grid:      s.grid.Clone(),
		triangles: make(map[int][]physics.Triangle, len(s.triangles)+1),
	}
	for k, v := range s.triangles {
		if k != id {
			next.triangles[k] = v
		}
	}
	next.grid.Remove(id)
	if tris != nil {
		next.triangles[id] = tris
		next.grid.Insert(id, tris)
	}
	return next
}

// Stats summarizes the course geometry.
type Stats struct {
	Pieces    int
	Triangles int
	Cells     int
	Refs      int
}

// Course owns the ordered pieces and the spatial index over their
// triangles. Edits are serialized; IntersectRay reads the latest published
// snapshot and may run concurrently with edits.
type Course struct {
	// OnRegenerate fires with the piece index after a piece was rebuilt,
	// outside the course lock.
	OnRegenerate EventWithArg[int]

	cfg Config

	mu        sync.Mutex
	pieces    []*Piece
	nextID    int
	undoStack []undoState

	snap atomic.Pointer[snapshot]
}

// New creates a course with one straight piece at the origin.
func New(cfg Config) *Course {
	c := &Course{cfg: cfg}
	c.snap.Store(&snapshot{
		grid:      physics.NewGrid(cfg.CellSize),
		triangles: map[int][]physics.Triangle{},
	})
	start := curve.NewControlPoint(0, 0, 0, cfg.StartWidth, 0)
	c.insertAt(0, newPiece(c.allocID(), start, cfg))
	tracer().Infof("course created, cell size %.0f", cfg.CellSize)
	return c
}

func (c *Course) allocID() int {
	id := c.nextID
	c.nextID++
	return id
}

// StartPoint is where a run begins: the first piece's start.
func (c *Course) StartPoint() rl.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pieces[0].from.Position
}

// Len returns the number of pieces.
func (c *Course) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pieces)
}

// Piece returns the piece at index. The piece must not be used across
// edits of the same index.
func (c *Course) Piece(index int) (*Piece, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	return c.pieces[index], nil
}

// Meshes returns the current mesh of every piece in course order. A
// regenerated piece gets a new mesh, so a renderer holding an old one
// should upload whatever Meshes returns when IsRendered is false.
func (c *Course) Meshes() []*mesh.Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()
	meshes := make([]*mesh.Mesh, len(c.pieces))
	for i, p := range c.pieces {
		meshes[i] = p.mesh
	}
	return meshes
}

// IntersectRay returns the first hit found by the grid scan; it is not
// necessarily the hit nearest to s.Start.
func (c *Course) IntersectRay(s physics.Segment) physics.Intersection {
	snap := c.snap.Load()
	return snap.grid.IntersectSegment(s, snap)
}

// Edit applies cmd to the piece at index and regenerates it. A nil command
// is a no-op.
func (c *Course) Edit(index int, cmd Command) error {
	c.mu.Lock()
	if err := c.checkIndex(index); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("edit: %w", err)
	}
	if cmd == nil {
		c.mu.Unlock()
		return nil
	}
	p := c.pieces[index]
	before := p.pieceState
	if err := p.apply(cmd); err != nil {
		p.pieceState = before
		c.mu.Unlock()
		return fmt.Errorf("edit piece %d: %w", index, err)
	}
	c.pushUndo(undoState{Type: undoEdit, Index: index, PieceID: p.id, State: before})
	c.regenerate(index)
	c.mu.Unlock()

	tracer().P("piece", index).Debugf("applied %T", cmd)
	c.OnRegenerate.Invoke(index)
	return nil
}

// Append adds a straight piece starting at the end of the last piece and
// returns its index.
func (c *Course) Append() int {
	c.mu.Lock()
	last := c.pieces[len(c.pieces)-1]
	index := len(c.pieces)
	p := newPiece(c.allocID(), last.to, c.cfg)
	c.insertAt(index, p)
	c.pushUndo(undoState{Type: undoAppend, Index: index, PieceID: p.id})
	c.mu.Unlock()

	tracer().P("piece", index).Infof("appended")
	c.OnRegenerate.Invoke(index)
	return index
}

// Remove deletes the piece at index. The first piece cannot be removed.
func (c *Course) Remove(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(index); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	if index == 0 {
		return fmt.Errorf("remove: %w", ErrRemoveFirst)
	}
	p := c.pieces[index]
	c.pushUndo(undoState{Type: undoRemove, Index: index, PieceID: p.id, State: p.pieceState})
	c.removeAt(index)
	tracer().P("piece", index).Infof("removed")
	return nil
}

// DebugLines returns the overlay lines of the piece at index.
func (c *Course) DebugLines(index int) ([]DebugLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(index); err != nil {
		return nil, fmt.Errorf("debug lines: %w", err)
	}
	return c.pieces[index].DebugLines(), nil
}

func (c *Course) Stats() Stats {
	snap := c.snap.Load()
	st := Stats{
		Cells: snap.grid.CellCount(),
		Refs:  snap.grid.RefCount(),
	}
	for _, tris := range snap.triangles {
		st.Pieces++
		st.Triangles += len(tris)
	}
	return st
}

func (c *Course) checkIndex(index int) error {
	if index < 0 || index >= len(c.pieces) {
		return fmt.Errorf("piece %d of %d: %w", index, len(c.pieces), ErrPieceIndex)
	}
	return nil
}

// regenerate rebuilds the piece at index and publishes a new snapshot.
// The caller holds c.mu.
func (c *Course) regenerate(index int) {
	p := c.pieces[index]
	p.generate()
	c.publish(p.id, p.triangles)
}

func (c *Course) publish(id int, tris []physics.Triangle) {
	if tris == nil {
		tris = []physics.Triangle{}
	}
	c.snap.Store(c.snap.Load().with(id, tris))
}

// insertAt places an already generated piece. The caller holds c.mu.
func (c *Course) insertAt(index int, p *Piece) {
	c.pieces = append(c.pieces, nil)
	copy(c.pieces[index+1:], c.pieces[index:])
	c.pieces[index] = p
	c.publish(p.id, p.triangles)
}

// removeAt drops a piece and its grid refs. The caller holds c.mu.
func (c *Course) removeAt(index int) {
	p := c.pieces[index]
	c.pieces = append(c.pieces[:index], c.pieces[index+1:]...)
	c.snap.Store(c.snap.Load().with(p.id, nil))
}
