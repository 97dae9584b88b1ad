package track

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrPieceIndex     = errors.New("piece index out of range")
	ErrRemoveFirst    = errors.New("the first piece cannot be removed")
	ErrUnknownCommand = errors.New("unknown command")
)

// Command is one edit applied to a piece. The set is closed; editing code
// receives commands already decoded from keys or script tokens.
type Command interface {
	isCommand()
}

// Retype changes the piece shape and re-places the far endpoint.
type Retype struct {
	Type PieceType
}

// Rotate turns the piece about its active endpoint. Positive degrees turn
// clockwise seen from above.
type Rotate struct {
	Degrees float32
}

// Translate moves the active endpoint, or both endpoints when Symmetric.
type Translate struct {
	Offset    rl.Vector3
	Symmetric bool
}

// ToggleEndpoint switches the active endpoint between start and end.
type ToggleEndpoint struct{}

// AdjustRoll banks the active endpoint.
type AdjustRoll struct {
	Degrees float32
}

// AdjustWidth widens or narrows the active endpoint.
type AdjustWidth struct {
	Delta float32
}

func (Retype) isCommand()         {}
func (Rotate) isCommand()         {}
func (Translate) isCommand()      {}
func (ToggleEndpoint) isCommand() {}
func (AdjustRoll) isCommand()     {}
func (AdjustWidth) isCommand()    {}

// ParseCommand decodes a script token:
//
//	toggle
//	straight | curve90 | curve180 | loop
//	rotate:<deg>
//	move:<x>,<y>,<z>     (active endpoint)
//	move2:<x>,<y>,<z>    (both endpoints)
//	roll:<deg>
//	width:<delta>
func ParseCommand(token string) (Command, error) {
	token = strings.TrimSpace(token)
	name, arg, hasArg := strings.Cut(token, ":")
	name = strings.ToLower(name)

	if !hasArg {
		if name == "toggle" {
			return ToggleEndpoint{}, nil
		}
		t, err := ParsePieceType(name)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", token, ErrUnknownCommand)
		}
		return Retype{Type: t}, nil
	}

	switch name {
	case "rotate", "roll", "width":
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", token, err)
		}
		switch name {
		case "rotate":
			return Rotate{Degrees: float32(f)}, nil
		case "roll":
			return AdjustRoll{Degrees: float32(f)}, nil
		default:
			return AdjustWidth{Delta: float32(f)}, nil
		}
	case "move", "move2":
		v, err := parseVector(arg)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", token, err)
		}
		return Translate{Offset: v, Symmetric: name == "move2"}, nil
	}
	return nil, fmt.Errorf("command %q: %w", token, ErrUnknownCommand)
}

// ParseScript decodes whitespace-separated tokens.
func ParseScript(script string) ([]Command, error) {
	var cmds []Command
	for _, tok := range strings.Fields(script) {
		cmd, err := ParseCommand(tok)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func parseVector(s string) (rl.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return rl.Vector3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var xyz [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return rl.Vector3{}, err
		}
		xyz[i] = float32(f)
	}
	return rl.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
