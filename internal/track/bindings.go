package track

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MoveDistance is how far one translate key press moves an endpoint.
const MoveDistance = 100

// Bindings maps raylib key codes to commands. Keys in the translate set
// become symmetric when shift is held.
type Bindings struct {
	Keys map[int32]Command
}

// DefaultBindings is the editor keymap:
// G toggles the endpoint, 1-4 retype, U/O rotate, I/K/J/L move,
// Z/H roll by a quarter turn and N/M change the width.
func DefaultBindings() Bindings {
	return Bindings{Keys: map[int32]Command{
		rl.KeyG:     ToggleEndpoint{},
		rl.KeyOne:   Retype{Type: StraightType},
		rl.KeyTwo:   Retype{Type: Curve90Type},
		rl.KeyThree: Retype{Type: Curve180Type},
		rl.KeyFour:  Retype{Type: LoopType},
		rl.KeyU:     Rotate{Degrees: -90},
		rl.KeyO:     Rotate{Degrees: 90},
		rl.KeyI:     Translate{Offset: rl.Vector3{X: MoveDistance}},
		rl.KeyK:     Translate{Offset: rl.Vector3{X: -MoveDistance}},
		rl.KeyJ:     Translate{Offset: rl.Vector3{Z: -MoveDistance}},
		rl.KeyL:     Translate{Offset: rl.Vector3{Z: MoveDistance}},
		rl.KeyZ:     AdjustRoll{Degrees: 90},
		rl.KeyH:     AdjustRoll{Degrees: -90},
		rl.KeyN:     AdjustWidth{Delta: 50},
		rl.KeyM:     AdjustWidth{Delta: -50},
	}}
}

// Decode returns the command bound to key.
func (b Bindings) Decode(key int32, shift bool) (Command, bool) {
	cmd, ok := b.Keys[key]
	if !ok {
		return nil, false
	}
	if t, isMove := cmd.(Translate); isMove && shift {
		t.Symmetric = true
		return t, true
	}
	return cmd, true
}

// Poll decodes every bound key pressed this frame. It must run on the
// window thread.
func (b Bindings) Poll() []Command {
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	var cmds []Command
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if cmd, ok := b.Decode(key, shift); ok {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}
