package physics

import (
	"math"

	"github.com/npillmayer/schuko/tracing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// tracer writes to trace with key 'physics'
func tracer() tracing.Trace {
	return tracing.Select("physics")
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Min(float64(a.X), float64(b.X))),
		Y: float32(math.Min(float64(a.Y), float64(b.Y))),
		Z: float32(math.Min(float64(a.Z), float64(b.Z))),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Max(float64(a.X), float64(b.X))),
		Y: float32(math.Max(float64(a.Y), float64(b.Y))),
		Z: float32(math.Max(float64(a.Z), float64(b.Z))),
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// isZero is an exact test; near-zero normals are still valid planes.
func isZero(v rl.Vector3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
