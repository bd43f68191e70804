package ui

// sparkline maps samples to polyline points inside a w x h box with the
// origin at the top-left. Values are scaled against ceiling, which is raised
// to the largest sample when needed.
func sparkline(samples []float64, w, h, ceiling float64) [][2]float32 {
	if len(samples) < 2 || w <= 0 || h <= 0 {
		return nil
	}
	for _, s := range samples {
		if s > ceiling {
			ceiling = s
		}
	}
	if ceiling <= 0 {
		ceiling = 1
	}
	step := w / float64(len(samples)-1)
	pts := make([][2]float32, len(samples))
	for i, s := range samples {
		if s < 0 {
			s = 0
		}
		pts[i] = [2]float32{float32(float64(i) * step), float32(h - s/ceiling*h)}
	}
	return pts
}
