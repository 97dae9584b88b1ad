// Package config loads the course and glider settings from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"glidetrack/internal/glider"
	"glidetrack/internal/track"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrInvalid = errors.New("invalid settings")

// PresetDef is the JSON form of a retype preset.
type PresetDef struct {
	Offset [3]float32 `json:"offset"`
	Angle  float32    `json:"angle"`
}

type Settings struct {
	CellSize   float32              `json:"cellSize"`
	Step       float32              `json:"step"`
	Columns    int                  `json:"columns"`
	StartWidth float32              `json:"startWidth"`
	MinWidth   float32              `json:"minWidth"`
	Presets    map[string]PresetDef `json:"presets,omitempty"`
	Glider     glider.Tuning        `json:"glider"`
}

func Default() Settings {
	tc := track.DefaultConfig()
	s := Settings{
		CellSize:   tc.CellSize,
		Step:       tc.Step,
		Columns:    tc.Columns,
		StartWidth: tc.StartWidth,
		MinWidth:   tc.MinWidth,
		Presets:    make(map[string]PresetDef, len(tc.Presets)),
		Glider:     glider.DefaultTuning(),
	}
	for t, p := range tc.Presets {
		s.Presets[t.String()] = PresetDef{
			Offset: [3]float32{p.Offset.X, p.Offset.Y, p.Offset.Z},
			Angle:  p.Angle,
		}
	}
	return s
}

// Load reads settings from path. Fields absent from the file keep their
// defaults; a missing file yields Default().
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes s to path as indented JSON.
func (s Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s Settings) Validate() error {
	switch {
	case s.CellSize <= 0:
		return fmt.Errorf("%w: cellSize must be positive, got %v", ErrInvalid, s.CellSize)
	case s.Step <= 0:
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalid, s.Step)
	case s.Columns < 1:
		return fmt.Errorf("%w: columns must be at least 1, got %d", ErrInvalid, s.Columns)
	case s.MinWidth <= 0:
		return fmt.Errorf("%w: minWidth must be positive, got %v", ErrInvalid, s.MinWidth)
	case s.StartWidth < s.MinWidth:
		return fmt.Errorf("%w: startWidth %v is below minWidth %v", ErrInvalid, s.StartWidth, s.MinWidth)
	case s.Glider.MaxSpeed < 0 || s.Glider.MaxGravity < 0:
		return fmt.Errorf("%w: glider limits must not be negative", ErrInvalid)
	}

	names := make([]string, 0, len(s.Presets))
	for name := range s.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := track.ParsePieceType(name); err != nil {
			return fmt.Errorf("%w: preset %q: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

// Track converts s to a course configuration. Presets missing from s
// keep their defaults.
func (s Settings) Track() track.Config {
	tc := track.DefaultConfig()
	tc.CellSize = s.CellSize
	tc.Step = s.Step
	tc.Columns = s.Columns
	tc.StartWidth = s.StartWidth
	tc.MinWidth = s.MinWidth
	for name, def := range s.Presets {
		t, err := track.ParsePieceType(name)
		if err != nil {
			continue
		}
		tc.Presets[t] = track.Preset{
			Offset: rl.Vector3{X: def.Offset[0], Y: def.Offset[1], Z: def.Offset[2]},
			Angle:  def.Angle,
		}
	}
	return tc
}

// Tuning returns the glider flight constants.
func (s Settings) Tuning() glider.Tuning {
	return s.Glider
}
