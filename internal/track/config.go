package track

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Preset places the far endpoint when a piece is retyped. Offset is added
// to the active endpoint (subtracted when the active endpoint is the end).
type Preset struct {
	Offset rl.Vector3
	Angle  float32
}

// Config holds the tunables for piece generation and the course index.
type Config struct {
	CellSize   float32
	Step       float32
	Columns    int
	StartWidth float32
	MinWidth   float32
	Presets    map[PieceType]Preset
}

func DefaultConfig() Config {
	return Config{
		CellSize:   250,
		Step:       50,
		Columns:    3,
		StartWidth: 200,
		MinWidth:   50,
		Presets: map[PieceType]Preset{
			StraightType: {Offset: rl.Vector3{X: 500}, Angle: 0},
			Curve90Type:  {Offset: rl.Vector3{X: 300, Z: 300}, Angle: 180},
			Curve180Type: {Offset: rl.Vector3{Z: 500}, Angle: 180},
			LoopType:     {Offset: rl.Vector3{X: 500}, Angle: 0},
		},
	}
}

// preset falls back to the default preset for types missing from c.
func (c Config) preset(t PieceType) Preset {
	if p, ok := c.Presets[t]; ok {
		return p
	}
	return DefaultConfig().Presets[t]
}
