package clock

import (
	"math"

	"github.com/snitron/clockface/pkg/graphics"
)

// HandAngle converts a position on a dial into radians. Zero points straight
// up and the angle grows clockwise in screen coordinates (y down).
func HandAngle(unit, maximum float64) float64 {
	return unit/maximum*2*math.Pi - math.Pi/2
}

// HandEndpoint returns the tip of a hand and the end of its tail.
//
// The tip lies length*radius away from center in the direction given by
// HandAngle(unit, maximum). The tail extends a quarter of that distance
// behind the center.
func HandEndpoint(center graphics.Offset, radius, length, unit, maximum float64) (tip, tail graphics.Offset) {
	angle := HandAngle(unit, maximum)
	shift := graphics.Offset{
		X: length * radius * math.Cos(angle),
		Y: length * radius * math.Sin(angle),
	}
	return center.Add(shift), center.Sub(shift.Scale(0.25))
}

// PointOnCircle returns the point at angle on a circle around center.
func PointOnCircle(center graphics.Offset, radius, angle float64) graphics.Offset {
	return graphics.Offset{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// PointsOnCircle walks the circle from angle zero in steps of gap, calling
// visit with the step index and the accumulated angle while the angle is
// below 2π.
//
// Angles accumulate, so rounding may produce one extra visit whose angle is
// a hair below 2π. Callers that must not draw twice at the seam check for it.
// A gap that is not positive and finite visits nothing.
func PointsOnCircle(gap float64, visit func(index int, angle float64)) {
	if !(gap > 0) || math.IsInf(gap, 1) {
		return
	}
	for i, angle := 0, 0.0; angle < 2*math.Pi; i, angle = i+1, angle+gap {
		visit(i, angle)
	}
}
