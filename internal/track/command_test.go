package track

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestParseCommand(t *testing.T) {
	for _, tc := range []struct {
		token string
		want  Command
	}{
		{"toggle", ToggleEndpoint{}},
		{"straight", Retype{Type: StraightType}},
		{"Curve90", Retype{Type: Curve90Type}},
		{"curve180", Retype{Type: Curve180Type}},
		{"loop", Retype{Type: LoopType}},
		{"rotate:-90", Rotate{Degrees: -90}},
		{"roll:45", AdjustRoll{Degrees: 45}},
		{"width:-50", AdjustWidth{Delta: -50}},
		{"move:100,0,-25.5", Translate{Offset: rl.Vector3{X: 100, Z: -25.5}}},
		{"move2:0, 10, 0", Translate{Offset: rl.Vector3{Y: 10}, Symmetric: true}},
	} {
		got, err := ParseCommand(tc.token)
		require.NoError(t, err, tc.token)
		assert.Equal(t, tc.want, got, tc.token)
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, token := range []string{"", "spin", "jump:3", "teleport"} {
		_, err := ParseCommand(token)
		assert.True(t, errors.Is(err, ErrUnknownCommand), "%q: %v", token, err)
	}
	for _, token := range []string{"rotate:x", "move:1,2", "move:1,b,3"} {
		_, err := ParseCommand(token)
		assert.Error(t, err, token)
	}
}

func TestParseScript(t *testing.T) {
	cmds, err := ParseScript("curve90  rotate:90\n move2:0,0,100 toggle")
	require.NoError(t, err)
	assert.Equal(t, []Command{
		Retype{Type: Curve90Type},
		Rotate{Degrees: 90},
		Translate{Offset: rl.Vector3{Z: 100}, Symmetric: true},
		ToggleEndpoint{},
	}, cmds)

	_, err = ParseScript("straight bogus")
	assert.Error(t, err)
}

func TestPieceTypeString(t *testing.T) {
	for _, typ := range []PieceType{StraightType, Curve90Type, Curve180Type, LoopType} {
		parsed, err := ParsePieceType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
		assert.Equal(t, typ, ShapeOf(typ).Type())
	}
	assert.Equal(t, "PieceType(9)", PieceType(9).String())
	assert.Nil(t, ShapeOf(PieceType(9)))
}

func TestBindingsDecode(t *testing.T) {
	b := DefaultBindings()

	cmd, ok := b.Decode(rl.KeyFour, false)
	require.True(t, ok)
	assert.Equal(t, Retype{Type: LoopType}, cmd)

	cmd, ok = b.Decode(rl.KeyL, false)
	require.True(t, ok)
	assert.Equal(t, Translate{Offset: rl.Vector3{Z: MoveDistance}}, cmd)

	cmd, ok = b.Decode(rl.KeyL, true)
	require.True(t, ok)
	assert.Equal(t, Translate{Offset: rl.Vector3{Z: MoveDistance}, Symmetric: true}, cmd)

	// shift only affects translation
	cmd, ok = b.Decode(rl.KeyO, true)
	require.True(t, ok)
	assert.Equal(t, Rotate{Degrees: 90}, cmd)

	_, ok = b.Decode(rl.KeyF12, false)
	assert.False(t, ok)

	// the stored binding is not modified by a shifted decode
	assert.Equal(t, Translate{Offset: rl.Vector3{Z: MoveDistance}}, b.Keys[rl.KeyL])
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[int]
	e.AddListener(nil)
	assert.Equal(t, 0, e.ListenerCount())

	sum := 0
	e.AddListener(func(i int) { sum += i })
	e.AddListener(func(i int) { sum += 10 * i })
	e.Invoke(2)
	assert.Equal(t, 22, sum)

	e.RemoveAllListeners()
	e.Invoke(5)
	assert.Equal(t, 22, sum)
}
