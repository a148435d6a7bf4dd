package clock

import (
	"math"
	"testing"

	"github.com/snitron/clockface/pkg/graphics"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestHandEndpoint_Directions(t *testing.T) {
	center := graphics.Offset{X: 100, Y: 100}
	tests := []struct {
		name string
		unit float64
		want graphics.Offset
	}{
		{"zero points up", 0, graphics.Offset{X: 100, Y: 50}},
		{"quarter points right", 15, graphics.Offset{X: 150, Y: 100}},
		{"half points down", 30, graphics.Offset{X: 100, Y: 150}},
		{"three quarters points left", 45, graphics.Offset{X: 50, Y: 100}},
		{"full sweep points up", 60, graphics.Offset{X: 100, Y: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip, _ := HandEndpoint(center, 100, 0.5, tt.unit, 60)
			if !near(tip.X, tt.want.X) || !near(tip.Y, tt.want.Y) {
				t.Errorf("tip = %v, want %v", tip, tt.want)
			}
		})
	}
}

func TestHandEndpoint_Tail(t *testing.T) {
	center := graphics.Offset{X: 10, Y: 20}
	tip, tail := HandEndpoint(center, 80, 1, 0, 12)

	// Tip is 80 up, tail a quarter of that down.
	if !near(tip.X, 10) || !near(tip.Y, -60) {
		t.Errorf("tip = %v", tip)
	}
	if !near(tail.X, 10) || !near(tail.Y, 40) {
		t.Errorf("tail = %v", tail)
	}
}

func TestHandEndpoint_ZeroLength(t *testing.T) {
	center := graphics.Offset{X: 3, Y: 4}
	tip, tail := HandEndpoint(center, 50, 0, 7, 60)
	if tip != center || tail != center {
		t.Errorf("zero length hand: tip=%v tail=%v, want both at center", tip, tail)
	}
}

func TestPointsOnCircle_Counts(t *testing.T) {
	for _, n := range []int{1, 4, 12, 60} {
		gap := 2 * math.Pi / float64(n)
		var angles []float64
		PointsOnCircle(gap, func(i int, angle float64) {
			if i != len(angles) {
				t.Fatalf("N=%d: index %d out of order", n, i)
			}
			angles = append(angles, angle)
		})

		if len(angles) < n || len(angles) > n+1 {
			t.Fatalf("N=%d: visited %d points", n, len(angles))
		}
		for i := 0; i < n; i++ {
			if math.Abs(angles[i]-float64(i)*gap) > 1e-9 {
				t.Errorf("N=%d: angle[%d] = %v, want %v", n, i, angles[i], float64(i)*gap)
			}
		}
		// Any extra visit sits on the seam.
		if len(angles) == n+1 && math.Abs(angles[n]-2*math.Pi) > 1e-9 {
			t.Errorf("N=%d: extra angle %v is not at the seam", n, angles[n])
		}
	}
}

func TestPointsOnCircle_Exact(t *testing.T) {
	for _, n := range []int{1, 4} {
		count := 0
		PointsOnCircle(2*math.Pi/float64(n), func(int, float64) { count++ })
		if count != n {
			t.Errorf("N=%d: visited %d points", n, count)
		}
	}
}

func TestPointsOnCircle_InvalidGap(t *testing.T) {
	for _, gap := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		PointsOnCircle(gap, func(int, float64) {
			t.Fatalf("gap %v should visit nothing", gap)
		})
	}
}

func TestPointOnCircle(t *testing.T) {
	p := PointOnCircle(graphics.Offset{X: 1, Y: 1}, 2, math.Pi/2)
	if !near(p.X, 1) || !near(p.Y, 3) {
		t.Errorf("PointOnCircle = %v, want (1, 3)", p)
	}
}
