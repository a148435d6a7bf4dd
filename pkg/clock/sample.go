package clock

import "time"

// TimeSample is a wall-clock reading in 12-hour form.
type TimeSample struct {
	Hour        int // 0-11
	Minute      int
	Second      int
	Millisecond int
}

// SampleTime converts t, in its own location, to a TimeSample.
func SampleTime(t time.Time) TimeSample {
	return TimeSample{
		Hour:        t.Hour() % 12,
		Minute:      t.Minute(),
		Second:      t.Second(),
		Millisecond: t.Nanosecond() / int(time.Millisecond),
	}
}

// HandPosition returns the position of hand h on its dial and the dial's
// full sweep, both in milliseconds.
func (s TimeSample) HandPosition(h Hand) (unit, maximum float64) {
	ms := s.Second*1000 + s.Millisecond
	switch h {
	case HandSecond:
		return float64(ms), 60_000
	case HandMinute:
		return float64(s.Minute*60_000 + ms), 3_600_000
	default:
		return float64(s.Hour*3_600_000 + s.Minute*60_000 + ms), 12 * 3_600_000
	}
}

// TimeProvider supplies the current time to the renderer.
type TimeProvider interface {
	Now() time.Time
}

// TimeProviderFunc adapts a function to TimeProvider.
type TimeProviderFunc func() time.Time

func (f TimeProviderFunc) Now() time.Time { return f() }

// SystemTime reads local wall-clock time.
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }
