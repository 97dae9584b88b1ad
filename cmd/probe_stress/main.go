// Stress test comparing grid vs brute-force surface probes
package main

import (
	"fmt"
	"math/rand"
	"time"

	"glidetrack/internal/physics"
	"glidetrack/internal/track"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// Test various course lengths
	pieceCounts := []int{1, 10, 50, 100, 250, 500}

	for _, count := range pieceCounts {
		testProbes(count)
	}
}

// buildCourse lays pieces end to end, turning every third piece so the
// course stays compact.
func buildCourse(count int) (*track.Course, []physics.Triangle) {
	c := track.New(track.DefaultConfig())
	for i := 1; i < count; i++ {
		index := c.Append()
		if i%3 == 0 {
			if err := c.Edit(index, track.Retype{Type: track.Curve90Type}); err != nil {
				panic(fmt.Sprintf("Failed to retype piece %d: %v", index, err))
			}
		}
	}

	var tris []physics.Triangle
	for i := 0; i < c.Len(); i++ {
		p, err := c.Piece(i)
		if err != nil {
			panic(err)
		}
		tris = append(tris, p.Triangles()...)
	}
	return c, tris
}

func testProbes(count int) {
	course, tris := buildCourse(count)

	// Vertical probes scattered over the course bounds
	bounds := physics.NewAABBFromPoints()
	for _, tri := range tris {
		bounds = bounds.Union(tri.Bounds())
	}
	rng := rand.New(rand.NewSource(42)) // Consistent results
	probes := make([]physics.Segment, 2000)
	for i := range probes {
		x := bounds.Min.X + rng.Float32()*(bounds.Max.X-bounds.Min.X)
		z := bounds.Min.Z + rng.Float32()*(bounds.Max.Z-bounds.Min.Z)
		probes[i] = physics.Segment{
			Start: rl.Vector3{X: x, Y: bounds.Max.Y + 30, Z: z},
			End:   rl.Vector3{X: x, Y: bounds.Min.Y - 30, Z: z},
		}
	}

	// Time grid
	gridStart := time.Now()
	const gridIterations = 10
	var gridHits int
	for iter := 0; iter < gridIterations; iter++ {
		gridHits = 0
		for _, s := range probes {
			if course.IntersectRay(s).IsHit() {
				gridHits++
			}
		}
	}
	gridTime := time.Since(gridStart) / gridIterations

	// Time brute force
	bruteStart := time.Now()
	const bruteIterations = 3
	var bruteHits int
	for iter := 0; iter < bruteIterations; iter++ {
		bruteHits = 0
		for _, s := range probes {
			if physics.BruteForce(s, tris).IsHit() {
				bruteHits++
			}
		}
	}
	bruteTime := time.Since(bruteStart) / bruteIterations

	speedup := float64(bruteTime) / float64(gridTime)
	st := course.Stats()

	fmt.Printf("%4d pieces (%6d tris, %5d cells): grid %10v (%4d hits) | brute %10v (%4d hits) | %.1fx speedup\n",
		count, st.Triangles, st.Cells,
		gridTime.Round(time.Microsecond), gridHits,
		bruteTime.Round(time.Microsecond), bruteHits, speedup)
}
