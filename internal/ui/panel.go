package ui

import "lifeboard/internal/fps"

// PanelState is the controller state shown by the controls panel.
type PanelState struct {
	Running    bool
	Rate       int
	Generation int
	Population int
	ShowGrid   bool
	ShowFPS    bool
	CanLoad    bool
}

// Controls is the surface the panel and overlay drive.
type Controls interface {
	PanelState() PanelState
	Exec(cmd Command)
	FrameStats() (fps.Stats, []float64)
}
