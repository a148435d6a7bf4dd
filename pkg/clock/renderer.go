package clock

import (
	"math"
	"strconv"

	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/graphics"
)

const (
	// divisionPlacement and numeralPlacement are fractions of the work radius.
	divisionPlacement = 0.93
	numeralPlacement  = 0.8

	numeralCount = 12
	seamEpsilon  = 1e-5
)

// Renderer paints clock faces. Its output depends only on its arguments,
// so the same style, surface size and sample always yield the same calls.
//
// A Renderer may be shared by several clocks.
type Renderer struct {
	// Fonts measures and draws numerals. Nil uses the bundled typeface.
	Fonts *graphics.FontManager
}

// NewRenderer returns a renderer using fonts, or the bundled typeface when
// fonts is nil.
func NewRenderer(fonts *graphics.FontManager) *Renderer {
	return &Renderer{Fonts: fonts}
}

// Render samples provider and paints the face.
func (r *Renderer) Render(canvas graphics.Canvas, style *Style, provider TimeProvider) {
	if provider == nil {
		provider = SystemTime{}
	}
	r.Paint(canvas, style, SampleTime(provider.Now()))
}

// Paint draws the border, face, ticks, numerals and hands for sample.
//
// style is assumed valid. A border as wide as the usable radius leaves a
// non-positive work radius; the affected shapes are passed through to the
// canvas, which draws nothing for them.
func (r *Renderer) Paint(canvas graphics.Canvas, style *Style, sample TimeSample) {
	size := canvas.Size()
	radius := size.ShortestSide() / 2
	center := size.Center()

	canvas.DrawCircle(center, radius, graphics.FillPaint(style.borderColor))

	work := radius - style.borderWidth
	canvas.DrawCircle(center, work, graphics.FillPaint(style.backgroundColor))

	if style.divisionCount > 0 {
		dot := graphics.FillPaint(style.divisionColor)
		PointsOnCircle(2*math.Pi/float64(style.divisionCount), func(_ int, angle float64) {
			canvas.DrawCircle(PointOnCircle(center, divisionPlacement*work, angle), style.divisionRadius, dot)
		})
	}

	r.paintNumerals(canvas, style, center, work)

	for _, h := range Hands {
		unit, maximum := sample.HandPosition(h)
		tip, tail := HandEndpoint(center, work, style.handLength[h], unit, maximum)
		canvas.DrawLine(tail, tip, graphics.StrokePaint(style.handColor[h], style.handWidth[h]))
	}
}

// paintNumerals places 1 to 12 clockwise, starting with 3 at angle zero.
func (r *Renderer) paintNumerals(canvas graphics.Canvas, style *Style, center graphics.Offset, work float64) {
	fonts := r.Fonts
	if fonts == nil {
		fonts = graphics.DefaultFontManager()
		if fonts == nil {
			return
		}
	}
	textStyle := graphics.TextStyle{Color: style.divisionTextColor, FontSize: style.divisionTextSize}

	PointsOnCircle(2*math.Pi/numeralCount, func(i int, angle float64) {
		if math.Abs(angle-2*math.Pi) < seamEpsilon {
			return
		}
		label := i + 3
		if i >= 10 {
			label = i - 9
		}
		layout, err := graphics.LayoutText(strconv.Itoa(label), textStyle, fonts)
		if err != nil {
			errors.Report(&errors.ClockError{Op: "clock.paintNumerals", Kind: errors.KindRender, Err: err})
			return
		}
		anchor := PointOnCircle(center, numeralPlacement*work, angle)
		canvas.DrawText(layout, anchor.Add(layout.CenterOffset()))
	})
}
