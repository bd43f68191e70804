package ui

// Key is a host-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyArrowRight
	KeyControl
	KeyShift
	KeyC
	KeyS
	KeyR
	KeyG
	KeyF
	KeyX
	KeyPlus
	KeyMinus
)

// Command is a controller operation bound to a key.
type Command int

const (
	CommandNone Command = iota
	CommandTogglePlay
	CommandStep
	CommandClear
	CommandSave
	CommandLoad
	CommandToggleGrid
	CommandToggleFPS
	CommandRandomize
	CommandFaster
	CommandSlower
)

func (c Command) String() string {
	switch c {
	case CommandTogglePlay:
		return "toggle-play"
	case CommandStep:
		return "step"
	case CommandClear:
		return "clear"
	case CommandSave:
		return "save"
	case CommandLoad:
		return "load"
	case CommandToggleGrid:
		return "toggle-grid"
	case CommandToggleFPS:
		return "toggle-fps"
	case CommandRandomize:
		return "randomize"
	case CommandFaster:
		return "faster"
	case CommandSlower:
		return "slower"
	default:
		return "none"
	}
}

// Binding returns the command for a key press given the held modifiers, and
// whether the host should suppress its default handling of the key. Letter
// shortcuts are ignored while control is held so they do not shadow host
// shortcuts such as copy or reload.
func Binding(k Key, mods Modifiers) (cmd Command, suppress bool) {
	switch k {
	case KeySpace:
		return CommandTogglePlay, true
	case KeyArrowRight:
		return CommandStep, false
	}
	if mods.Control {
		return CommandNone, false
	}
	switch k {
	case KeyC:
		return CommandClear, false
	case KeyS:
		return CommandSave, false
	case KeyR:
		return CommandLoad, false
	case KeyG:
		return CommandToggleGrid, false
	case KeyF:
		return CommandToggleFPS, false
	case KeyX:
		return CommandRandomize, false
	case KeyPlus:
		return CommandFaster, false
	case KeyMinus:
		return CommandSlower, false
	}
	return CommandNone, false
}

// KeyForRune maps printable runes to keys.
func KeyForRune(r rune) Key {
	switch r {
	case ' ':
		return KeySpace
	case 'c', 'C':
		return KeyC
	case 's', 'S':
		return KeyS
	case 'r', 'R':
		return KeyR
	case 'g', 'G':
		return KeyG
	case 'f', 'F':
		return KeyF
	case 'x', 'X':
		return KeyX
	case '+', '=':
		return KeyPlus
	case '-', '_':
		return KeyMinus
	default:
		return KeyUnknown
	}
}
