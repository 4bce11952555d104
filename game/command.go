package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned by ParseCommand for unrecognised names.
var ErrUnknownCommand = errors.New("game: unknown command")

// Command is a decoded player input.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	MoveDown
	HardDrop
	RotateLeft
	RotateRight
	Hold
	TogglePause
	Restart

	commandCount
)

var commandNames = [commandCount]string{
	MoveLeft:    "move-left",
	MoveRight:   "move-right",
	MoveDown:    "move-down",
	HardDrop:    "hard-drop",
	RotateLeft:  "rotate-left",
	RotateRight: "rotate-right",
	Hold:        "hold",
	TogglePause: "toggle-pause",
	Restart:     "restart",
}

// Commands lists every command in declaration order.
func Commands() []Command {
	out := make([]Command, commandCount)
	for i := range out {
		out[i] = Command(i)
	}
	return out
}

func (c Command) String() string {
	if c >= commandCount {
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
	return commandNames[c]
}

// ParseCommand accepts the names produced by String, case-insensitively,
// with either '-' or '_' as separator.
func ParseCommand(s string) (Command, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Command) MarshalText() ([]byte, error) {
	if c >= commandCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so key maps in YAML
// files can name commands directly.
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
