package ui

import "testing"

func TestSparklineScales(t *testing.T) {
	pts := sparkline([]float64{0, 30, 60}, 100, 50, 60)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0] != [2]float32{0, 50} || pts[1] != [2]float32{50, 25} || pts[2] != [2]float32{100, 0} {
		t.Fatalf("unexpected points %v", pts)
	}
}

func TestSparklineRaisesCeiling(t *testing.T) {
	pts := sparkline([]float64{120, 60}, 10, 10, 60)
	if pts[0][1] != 0 || pts[1][1] != 5 {
		t.Fatalf("ceiling not raised: %v", pts)
	}
}

func TestSparklineNeedsTwoSamples(t *testing.T) {
	if pts := sparkline([]float64{30}, 10, 10, 60); pts != nil {
		t.Fatalf("single sample should give no line, got %v", pts)
	}
}
