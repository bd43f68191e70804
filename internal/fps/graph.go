package fps

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Summary formats stats as a single status line.
func Summary(st Stats) string {
	if st.Count == 0 {
		return "fps: no data"
	}
	return fmt.Sprintf("fps %.0f  avg %.0f  min %.0f  max %.0f", st.Latest, st.Mean, st.Min, st.Max)
}

// Graph plots the samples as an ASCII chart of the given size, captioned
// with the summary line.
func Graph(samples []float64, st Stats, width, height int) string {
	if len(samples) < 2 {
		return Summary(st)
	}
	return asciigraph.Plot(samples,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(0),
		asciigraph.Caption(Summary(st)),
	)
}
