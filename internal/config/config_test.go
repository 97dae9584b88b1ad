package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"glidetrack/internal/glider"
	"glidetrack/internal/track"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestDefaultMatchesTrack(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, track.DefaultConfig(), s.Track())
	assert.Equal(t, glider.DefaultTuning(), s.Tuning())
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{
		"step": 25,
		"presets": {"curve90": {"offset": [400, 0, 400], "angle": 180}},
		"glider": {"hoverHeight": 20}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(25), s.Step)
	assert.Equal(t, float32(250), s.CellSize)
	assert.Equal(t, float32(20), s.Tuning().HoverHeight)
	assert.Equal(t, float32(60), s.Tuning().MaxSpeed)

	tc := s.Track()
	assert.Equal(t, rl.Vector3{X: 400, Z: 400}, tc.Presets[track.Curve90Type].Offset)
	assert.Equal(t, track.DefaultConfig().Presets[track.LoopType], tc.Presets[track.LoopType])
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{step:"), 0644))
	_, err := Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"columns": 0}`), 0644))
	_, err = Load(invalid)
	assert.True(t, errors.Is(err, ErrInvalid), "%v", err)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Settings){
		"cell size":   func(s *Settings) { s.CellSize = 0 },
		"step":        func(s *Settings) { s.Step = -1 },
		"min width":   func(s *Settings) { s.MinWidth = 0 },
		"start width": func(s *Settings) { s.StartWidth = 10 },
		"speed":       func(s *Settings) { s.Glider.MaxSpeed = -1 },
		"preset name": func(s *Settings) { s.Presets["corkscrew"] = PresetDef{} },
	} {
		s := Default()
		mutate(&s)
		assert.True(t, errors.Is(s.Validate(), ErrInvalid), name)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := Default()
	s.Columns = 5
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
