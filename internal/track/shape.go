// Package track models a ride course as an ordered list of editable pieces.
// Each piece derives its surface from two endpoints and a shape, and the
// course keeps a spatial index over all piece triangles for height probes.
package track

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'track'
func tracer() tracing.Trace {
	return tracing.Select("track")
}

// PieceType names the shape of a piece.
type PieceType int

const (
	StraightType PieceType = iota
	Curve90Type
	Curve180Type
	LoopType
)

func (t PieceType) String() string {
	switch t {
	case StraightType:
		return "straight"
	case Curve90Type:
		return "curve90"
	case Curve180Type:
		return "curve180"
	case LoopType:
		return "loop"
	default:
		return fmt.Sprintf("PieceType(%d)", int(t))
	}
}

// ParsePieceType accepts the names returned by PieceType.String.
func ParsePieceType(s string) (PieceType, error) {
	switch strings.ToLower(s) {
	case "straight":
		return StraightType, nil
	case "curve90":
		return Curve90Type, nil
	case "curve180":
		return Curve180Type, nil
	case "loop":
		return LoopType, nil
	}
	return 0, fmt.Errorf("piece type %q: %w", s, ErrUnknownCommand)
}

// Shape is the closed set of piece shapes. Behaviour that differs per
// shape is selected with a type switch over the concrete structs below.
type Shape interface {
	Type() PieceType
	isShape()
}

// Straight runs between the endpoints with handles along the heading.
type Straight struct{}

// Curve90 is a quarter turn.
type Curve90 struct{}

// Curve180 is a U-turn.
type Curve180 struct{}

// Loop is a full vertical loop. It has no Bezier handles.
type Loop struct{}

func (Straight) Type() PieceType { return StraightType }
func (Curve90) Type() PieceType  { return Curve90Type }
func (Curve180) Type() PieceType { return Curve180Type }
func (Loop) Type() PieceType     { return LoopType }

func (Straight) isShape() {}
func (Curve90) isShape()  {}
func (Curve180) isShape() {}
func (Loop) isShape()     {}

// ShapeOf returns the shape for a piece type, or nil for an unknown type.
func ShapeOf(t PieceType) Shape {
	switch t {
	case StraightType:
		return Straight{}
	case Curve90Type:
		return Curve90{}
	case Curve180Type:
		return Curve180{}
	case LoopType:
		return Loop{}
	}
	return nil
}
