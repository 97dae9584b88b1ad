// Headless course builder: applies an edit script, reports the course
// geometry, flies the glider over it and optionally renders a preview.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"glidetrack/internal/config"
	"glidetrack/internal/glider"
	"glidetrack/internal/mesh"
	"glidetrack/internal/physics"
	"glidetrack/internal/track"

	"github.com/gogpu/gg"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	settingsPath := flag.String("config", "glidetrack.json", "settings file (defaults are used when missing)")
	script := flag.String("script", "", `edit script, e.g. "curve90 append loop toggle move:0,0,100"`)
	steps := flag.Int("steps", 600, "glider updates to simulate at 60Hz")
	pngPath := flag.String("png", "", "write an oblique preview to this PNG file")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	course := track.New(settings.Track())
	if err := runScript(course, *script); err != nil {
		log.Fatalf("Failed to apply script: %v", err)
	}

	st := course.Stats()
	log.Printf("Course: %d pieces, %d triangles in %d cells (%d refs)", st.Pieces, st.Triangles, st.Cells, st.Refs)
	for _, o := range course.Overlaps() {
		log.Printf("Course: piece %d overlaps piece %d (area %.0f)", o.A, o.B, o.Area)
	}

	g := glider.New(settings.Tuning())
	g.Reset(rl.Vector3Add(course.StartPoint(), glider.SpawnOffset))
	trail := fly(g, course, *steps)
	log.Printf("Glider: at (%.1f, %.1f, %.1f), speed %.2f, airborne %v",
		g.Position.X, g.Position.Y, g.Position.Z, g.Speed, g.Airborne)

	if *pngPath != "" {
		if err := preview(course, trail, *pngPath); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		log.Printf("Preview: wrote %s", *pngPath)
	}
}

// runScript applies whitespace separated tokens to the last piece. Besides
// the piece commands it understands "append", "remove" and "undo".
func runScript(c *track.Course, script string) error {
	for _, token := range strings.Fields(script) {
		index := c.Len() - 1
		switch strings.ToLower(token) {
		case "append":
			c.Append()
		case "remove":
			if err := c.Remove(index); err != nil {
				return err
			}
		case "undo":
			if !c.Undo() {
				log.Printf("Course: nothing to undo")
			}
		default:
			cmd, err := track.ParseCommand(token)
			if err != nil {
				return err
			}
			if err := c.Edit(index, cmd); err != nil {
				return err
			}
		}
	}
	return nil
}

// fly accelerates the glider straight ahead and records its positions.
func fly(g *glider.Glider, p glider.Prober, steps int) []rl.Vector3 {
	const dt = 1.0 / 60
	trail := make([]rl.Vector3, 0, steps+1)
	trail = append(trail, g.Position)
	for i := 0; i < steps; i++ {
		g.Update(dt, p, glider.Controls{Accelerate: true})
		trail = append(trail, g.Position)
	}
	return trail
}

const (
	previewSize   = 1024
	previewMargin = 32
	// height is drawn as a vertical screen offset of this fraction
	obliqueLift = 0.5
)

type projection struct {
	min   rl.Vector3
	top   float32
	scale float64
}

func newProjection(bounds physics.AABB) projection {
	w := float64(bounds.Max.X - bounds.Min.X)
	h := float64(bounds.Max.Z-bounds.Min.Z) + obliqueLift*float64(bounds.Max.Y-bounds.Min.Y)
	span := max(w, h, 1)
	return projection{min: bounds.Min, top: bounds.Max.Y, scale: (previewSize - 2*previewMargin) / span}
}

func (p projection) at(v rl.Vector3) (float64, float64) {
	x := float64(v.X-p.min.X) * p.scale
	y := (float64(v.Z-p.min.Z) + obliqueLift*float64(p.top-v.Y)) * p.scale
	return previewMargin + x, previewMargin + y
}

func preview(c *track.Course, trail []rl.Vector3, path string) error {
	meshes := c.Meshes()
	bounds := physics.NewAABBFromPoints(trail...)
	for _, m := range meshes {
		bounds = bounds.Union(m.Bounds())
	}
	proj := newProjection(bounds)

	dc := gg.NewContext(previewSize, previewSize)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	dc.SetLineWidth(1)
	for _, m := range meshes {
		if err := drawMesh(dc, proj, m); err != nil {
			return err
		}
	}

	for i := 0; i < c.Len(); i++ {
		lines, err := c.DebugLines(i)
		if err != nil {
			return err
		}
		for _, l := range lines {
			setColor(dc, l.Color)
			line(dc, proj, l.From, l.To)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}

	dc.SetRGB(1, 0, 0)
	dc.SetLineWidth(2)
	for i := 1; i < len(trail); i++ {
		line(dc, proj, trail[i-1], trail[i])
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

func drawMesh(dc *gg.Context, proj projection, m *mesh.Mesh) error {
	setColor(dc, m.Color())
	for _, tri := range m.Triangles() {
		line(dc, proj, tri.V0, tri.V1)
		line(dc, proj, tri.V1, tri.V2)
		line(dc, proj, tri.V2, tri.V0)
	}
	return dc.Stroke()
}

func line(dc *gg.Context, proj projection, a, b rl.Vector3) {
	x1, y1 := proj.at(a)
	x2, y2 := proj.at(b)
	dc.DrawLine(x1, y1, x2, y2)
}

// setColor darkens pale colours so they show on the white background.
func setColor(dc *gg.Context, c rl.Color) {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	if r+g+b > 1.5 {
		r, g, b = r*0.6, g*0.6, b*0.6
	}
	dc.SetRGB(r, g, b)
}
