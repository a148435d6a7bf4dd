package clock

import (
	"math/rand/v2"

	"github.com/snitron/clockface/pkg/graphics"
)

const maxRandomRedrawInterval = 2000

// RandomOptions draws a complete set of options from rng. Every result is
// accepted by NewStyle.
func RandomOptions(rng *rand.Rand) Options {
	width := func(scale float64) float64 { return (rng.Float64() + 0.1) * scale }
	length := func() float64 { return min(max(rng.Float64(), 0.1), 1.0) }
	color := func() graphics.Color {
		return graphics.Color(uint32(rng.Float64()*0xFFFFFF) | 0xFF000000)
	}

	return Options{
		SecondHandWidth:   width(15),
		MinuteHandWidth:   width(15),
		HourHandWidth:     width(15),
		SecondHandRadius:  length(),
		MinuteHandRadius:  length(),
		HourHandRadius:    length(),
		SecondHandColor:   color(),
		MinuteHandColor:   color(),
		HourHandColor:     color(),
		BackgroundColor:   color(),
		BorderColor:       color(),
		BorderWidth:       width(30),
		DivisionCount:     rng.IntN(100),
		DivisionColor:     color(),
		DivisionRadius:    width(10),
		DivisionTextColor: color(),
		DivisionTextSize:  width(50) + 10,
		RedrawInterval:    1 + rng.IntN(maxRandomRedrawInterval-1),
	}
}
