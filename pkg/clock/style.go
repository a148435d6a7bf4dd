package clock

import (
	"fmt"
	"math"
	"time"

	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/graphics"
)

// Hand identifies one of the three clock hands.
type Hand int

const (
	HandSecond Hand = iota
	HandMinute
	HandHour
	handCount
)

// Hands lists the hands in draw order.
var Hands = [...]Hand{HandSecond, HandMinute, HandHour}

func (h Hand) String() string {
	switch h {
	case HandSecond:
		return "second"
	case HandMinute:
		return "minute"
	case HandHour:
		return "hour"
	default:
		return fmt.Sprintf("Hand(%d)", int(h))
	}
}

func (h Hand) valid() bool {
	return h >= HandSecond && h < handCount
}

// Default values for a new clock face.
const (
	DefaultSecondHandWidth  = 6.0
	DefaultMinuteHandWidth  = 14.0
	DefaultHourHandWidth    = 25.0
	DefaultSecondHandRadius = 0.7
	DefaultMinuteHandRadius = 0.6
	DefaultHourHandRadius   = 0.3
	DefaultBorderWidth      = 20.0
	DefaultDivisionCount    = 60
	DefaultDivisionRadius   = 10.0
	DefaultDivisionTextSize = 60.0
	DefaultRedrawInterval   = 100 * time.Millisecond
)

// Options is the plain, serializable form of a Style. Hand radii are length
// fractions of the work radius. RedrawInterval is in milliseconds.
type Options struct {
	SecondHandWidth   float64        `yaml:"secondHandWidth" koanf:"second_hand_width"`
	MinuteHandWidth   float64        `yaml:"minuteHandWidth" koanf:"minute_hand_width"`
	HourHandWidth     float64        `yaml:"hourHandWidth" koanf:"hour_hand_width"`
	SecondHandRadius  float64        `yaml:"secondHandRadius" koanf:"second_hand_radius"`
	MinuteHandRadius  float64        `yaml:"minuteHandRadius" koanf:"minute_hand_radius"`
	HourHandRadius    float64        `yaml:"hourHandRadius" koanf:"hour_hand_radius"`
	SecondHandColor   graphics.Color `yaml:"secondHandColor" koanf:"second_hand_color"`
	MinuteHandColor   graphics.Color `yaml:"minuteHandColor" koanf:"minute_hand_color"`
	HourHandColor     graphics.Color `yaml:"hourHandColor" koanf:"hour_hand_color"`
	BackgroundColor   graphics.Color `yaml:"backgroundColor" koanf:"background_color"`
	BorderColor       graphics.Color `yaml:"borderColor" koanf:"border_color"`
	BorderWidth       float64        `yaml:"borderWidth" koanf:"border_width"`
	DivisionCount     int            `yaml:"divisionCount" koanf:"division_count"`
	DivisionColor     graphics.Color `yaml:"divisionColor" koanf:"division_color"`
	DivisionRadius    float64        `yaml:"divisionRadius" koanf:"division_radius"`
	DivisionTextColor graphics.Color `yaml:"divisionTextColor" koanf:"division_text_color"`
	DivisionTextSize  float64        `yaml:"divisionTextSize" koanf:"division_text_size"`
	RedrawInterval    int            `yaml:"redrawInterval" koanf:"redraw_interval"`
}

// DefaultOptions returns the documented defaults: black hands, border,
// ticks and numerals on a white face.
func DefaultOptions() Options {
	return Options{
		SecondHandWidth:   DefaultSecondHandWidth,
		MinuteHandWidth:   DefaultMinuteHandWidth,
		HourHandWidth:     DefaultHourHandWidth,
		SecondHandRadius:  DefaultSecondHandRadius,
		MinuteHandRadius:  DefaultMinuteHandRadius,
		HourHandRadius:    DefaultHourHandRadius,
		SecondHandColor:   graphics.ColorBlack,
		MinuteHandColor:   graphics.ColorBlack,
		HourHandColor:     graphics.ColorBlack,
		BackgroundColor:   graphics.ColorWhite,
		BorderColor:       graphics.ColorBlack,
		BorderWidth:       DefaultBorderWidth,
		DivisionCount:     DefaultDivisionCount,
		DivisionColor:     graphics.ColorBlack,
		DivisionRadius:    DefaultDivisionRadius,
		DivisionTextColor: graphics.ColorBlack,
		DivisionTextSize:  DefaultDivisionTextSize,
		RedrawInterval:    int(DefaultRedrawInterval / time.Millisecond),
	}
}

// Style holds the visual parameters of one clock face.
//
// Every setter validates its argument first and leaves the field untouched
// on failure. Failures wrap errors.ErrInvalidArgument. Style is a plain value;
// copies are independent.
type Style struct {
	handWidth  [handCount]float64
	handLength [handCount]float64
	handColor  [handCount]graphics.Color

	backgroundColor graphics.Color
	borderColor     graphics.Color
	borderWidth     float64

	divisionCount     int
	divisionRadius    float64
	divisionColor     graphics.Color
	divisionTextColor graphics.Color
	divisionTextSize  float64

	redrawInterval time.Duration
}

// NewStyle builds a Style from opts. The first invalid field is reported
// and no Style is produced.
func NewStyle(opts Options) (Style, error) {
	var s Style
	setters := []func() error{
		func() error { return s.SetHandWidth(HandSecond, opts.SecondHandWidth) },
		func() error { return s.SetHandWidth(HandMinute, opts.MinuteHandWidth) },
		func() error { return s.SetHandWidth(HandHour, opts.HourHandWidth) },
		func() error { return s.SetHandLength(HandSecond, opts.SecondHandRadius) },
		func() error { return s.SetHandLength(HandMinute, opts.MinuteHandRadius) },
		func() error { return s.SetHandLength(HandHour, opts.HourHandRadius) },
		func() error { return s.SetBorderWidth(opts.BorderWidth) },
		func() error { return s.SetDivisionCount(opts.DivisionCount) },
		func() error { return s.SetDivisionRadius(opts.DivisionRadius) },
		func() error { return s.SetDivisionTextSize(opts.DivisionTextSize) },
		func() error {
			return s.SetRedrawInterval(time.Duration(opts.RedrawInterval) * time.Millisecond)
		},
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return Style{}, err
		}
	}
	s.handColor = [handCount]graphics.Color{opts.SecondHandColor, opts.MinuteHandColor, opts.HourHandColor}
	s.backgroundColor = opts.BackgroundColor
	s.borderColor = opts.BorderColor
	s.divisionColor = opts.DivisionColor
	s.divisionTextColor = opts.DivisionTextColor
	return s, nil
}

// DefaultStyle returns the style described by DefaultOptions.
func DefaultStyle() Style {
	s, err := NewStyle(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return s
}

// Options returns the serializable form of s.
func (s *Style) Options() Options {
	return Options{
		SecondHandWidth:   s.handWidth[HandSecond],
		MinuteHandWidth:   s.handWidth[HandMinute],
		HourHandWidth:     s.handWidth[HandHour],
		SecondHandRadius:  s.handLength[HandSecond],
		MinuteHandRadius:  s.handLength[HandMinute],
		HourHandRadius:    s.handLength[HandHour],
		SecondHandColor:   s.handColor[HandSecond],
		MinuteHandColor:   s.handColor[HandMinute],
		HourHandColor:     s.handColor[HandHour],
		BackgroundColor:   s.backgroundColor,
		BorderColor:       s.borderColor,
		BorderWidth:       s.borderWidth,
		DivisionCount:     s.divisionCount,
		DivisionColor:     s.divisionColor,
		DivisionRadius:    s.divisionRadius,
		DivisionTextColor: s.divisionTextColor,
		DivisionTextSize:  s.divisionTextSize,
		RedrawInterval:    int(s.redrawInterval / time.Millisecond),
	}
}

func (s *Style) HandWidth(h Hand) float64 {
	if !h.valid() {
		return 0
	}
	return s.handWidth[h]
}

func (s *Style) HandLength(h Hand) float64 {
	if !h.valid() {
		return 0
	}
	return s.handLength[h]
}

func (s *Style) HandColor(h Hand) graphics.Color {
	if !h.valid() {
		return graphics.ColorTransparent
	}
	return s.handColor[h]
}

func (s *Style) BackgroundColor() graphics.Color   { return s.backgroundColor }
func (s *Style) BorderColor() graphics.Color       { return s.borderColor }
func (s *Style) BorderWidth() float64              { return s.borderWidth }
func (s *Style) DivisionCount() int                { return s.divisionCount }
func (s *Style) DivisionRadius() float64           { return s.divisionRadius }
func (s *Style) DivisionColor() graphics.Color     { return s.divisionColor }
func (s *Style) DivisionTextColor() graphics.Color { return s.divisionTextColor }
func (s *Style) DivisionTextSize() float64         { return s.divisionTextSize }
func (s *Style) RedrawInterval() time.Duration     { return s.redrawInterval }

// SetHandWidth sets the stroke width of hand h.
func (s *Style) SetHandWidth(h Hand, width float64) error {
	if err := checkHand("clock.SetHandWidth", h); err != nil {
		return err
	}
	if err := checkNonNegative("clock.SetHandWidth", h.String()+"HandWidth", width); err != nil {
		return err
	}
	s.handWidth[h] = width
	return nil
}

// SetHandLength sets the length of hand h as a fraction of the work radius.
// Values above 1 are allowed and reach past the face.
func (s *Style) SetHandLength(h Hand, fraction float64) error {
	if err := checkHand("clock.SetHandLength", h); err != nil {
		return err
	}
	if err := checkNonNegative("clock.SetHandLength", h.String()+"HandRadius", fraction); err != nil {
		return err
	}
	s.handLength[h] = fraction
	return nil
}

// SetHandColor sets the color of hand h.
func (s *Style) SetHandColor(h Hand, color graphics.Color) error {
	if err := checkHand("clock.SetHandColor", h); err != nil {
		return err
	}
	s.handColor[h] = color
	return nil
}

func (s *Style) SetBackgroundColor(color graphics.Color)   { s.backgroundColor = color }
func (s *Style) SetBorderColor(color graphics.Color)       { s.borderColor = color }
func (s *Style) SetDivisionColor(color graphics.Color)     { s.divisionColor = color }
func (s *Style) SetDivisionTextColor(color graphics.Color) { s.divisionTextColor = color }

// SetBorderWidth sets the thickness of the outer ring.
func (s *Style) SetBorderWidth(width float64) error {
	if err := checkNonNegative("clock.SetBorderWidth", "borderWidth", width); err != nil {
		return err
	}
	s.borderWidth = width
	return nil
}

// SetDivisionCount sets the number of tick marks. Zero disables them.
func (s *Style) SetDivisionCount(count int) error {
	if count < 0 {
		return errors.NonNegative("clock.SetDivisionCount", "divisionCount", count)
	}
	s.divisionCount = count
	return nil
}

// SetDivisionRadius sets the radius of each tick dot.
func (s *Style) SetDivisionRadius(radius float64) error {
	if err := checkNonNegative("clock.SetDivisionRadius", "divisionRadius", radius); err != nil {
		return err
	}
	s.divisionRadius = radius
	return nil
}

// SetDivisionTextSize sets the numeral font size.
func (s *Style) SetDivisionTextSize(size float64) error {
	if err := checkNonNegative("clock.SetDivisionTextSize", "divisionTextSize", size); err != nil {
		return err
	}
	s.divisionTextSize = size
	return nil
}

// SetRedrawInterval sets the delay between forced repaints. It must be at
// least one millisecond. A running scheduler picks the new value up on its
// next start.
func (s *Style) SetRedrawInterval(d time.Duration) error {
	if d < time.Millisecond {
		return errors.Positive("clock.SetRedrawInterval", "redrawInterval", d)
	}
	s.redrawInterval = d
	return nil
}

func checkHand(op string, h Hand) error {
	if h.valid() {
		return nil
	}
	return &errors.ClockError{
		Op:   op,
		Kind: errors.KindInvalidArgument,
		Err:  fmt.Errorf("%w: unknown hand %v", errors.ErrInvalidArgument, h),
	}
}

// checkNonNegative rejects negative, NaN and infinite values.
func checkNonNegative(op, field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.NonNegative(op, field, v)
	}
	return nil
}
