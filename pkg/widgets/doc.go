// Package widgets provides the analog clock widget.
//
// A [Clock] composes a clock.Style, a scheduler.RedrawScheduler and a
// clock.Renderer. The host drives its lifecycle:
//
//	var c *widgets.Clock
//	c, err := widgets.NewClock(widgets.Config{
//	    Executor:   exec,
//	    Dispatcher: host,
//	    OnRepaint:  func() { c.Render(canvas, clock.SystemTime{}) },
//	})
//	c.Attach()   // starts periodic repaints
//	...
//	c.Dispose()  // stops them for good
//
// The scheduler runs only while the clock is attached, visible and its
// window is visible. Each transition into that state restarts it with the
// style's current redraw interval.
//
// # Style changes
//
// Style fields are changed through [Clock.Update], which applies the
// clock.Style setters to a copy and commits only when all of them succeed:
//
//	err := c.Update(func(s *clock.Style) error {
//	    return s.SetHandWidth(clock.HandSecond, 3)
//	})
package widgets
