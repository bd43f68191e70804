package ui

import "image"

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

// PanelWidth is the default width of the controls panel in pixels.
const PanelWidth = 180

type panelButton struct {
	label string
	cmd   Command
	rect  image.Rectangle
}

// panelLayout positions the rate stepper and the command buttons. It holds
// no drawing state so hit testing works in headless builds.
type panelLayout struct {
	width     int
	rateTop   int
	minus     image.Rectangle
	plus      image.Rectangle
	buttons   []panelButton
	statusTop int
}

var panelCommands = []panelButton{
	{label: "Play", cmd: CommandTogglePlay},
	{label: "Step", cmd: CommandStep},
	{label: "Clear", cmd: CommandClear},
	{label: "Random", cmd: CommandRandomize},
	{label: "Grid", cmd: CommandToggleGrid},
	{label: "FPS", cmd: CommandToggleFPS},
	{label: "Save", cmd: CommandSave},
	{label: "Load", cmd: CommandLoad},
}

func newPanelLayout(width int) panelLayout {
	l := panelLayout{width: width, rateTop: controlsTop}
	buttonY := l.rateTop + (lineHeight-buttonSize)/2
	l.plus = image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
	l.minus = image.Rect(l.plus.Min.X-buttonGap-buttonSize, buttonY, l.plus.Min.X-buttonGap, buttonY+buttonSize)

	colW := (width - 2*panelPadding - buttonGap) / 2
	top := l.rateTop + lineHeight
	l.buttons = make([]panelButton, len(panelCommands))
	for i, b := range panelCommands {
		x := panelPadding + (i%2)*(colW+buttonGap)
		y := top + (i/2)*(buttonSize+buttonGap)
		b.rect = image.Rect(x, y, x+colW, y+buttonSize)
		l.buttons[i] = b
	}
	rows := (len(panelCommands) + 1) / 2
	l.statusTop = top + rows*(buttonSize+buttonGap) + buttonGap
	return l
}

// hit returns the command under panel-local point (x, y).
func (l panelLayout) hit(x, y int, st PanelState) Command {
	pt := image.Pt(x, y)
	if pt.In(l.minus) {
		return CommandSlower
	}
	if pt.In(l.plus) {
		return CommandFaster
	}
	for _, b := range l.buttons {
		if pt.In(b.rect) && enabled(b.cmd, st) {
			return b.cmd
		}
	}
	return CommandNone
}

func enabled(cmd Command, st PanelState) bool {
	return cmd != CommandLoad || st.CanLoad
}

func buttonLabel(b panelButton, st PanelState) string {
	if b.cmd == CommandTogglePlay && st.Running {
		return "Pause"
	}
	return b.label
}
