// Package graphics provides the drawing surface abstraction used by the
// clock renderer, together with a command recorder and a CPU raster
// implementation.
//
// Renderers draw onto a [Canvas]. A [Recorder] captures the calls into a
// replayable [DisplayList], and a [RasterCanvas] turns them into pixels.
package graphics

// Canvas records or renders drawing commands.
//
// Zero or negative radii and non-positive font sizes draw nothing.
// Implementations must not treat them as errors.
type Canvas interface {
	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment with the provided paint.
	DrawLine(start, end Offset, paint Paint)

	// DrawText draws a pre-measured text layout with its baseline origin
	// at the given position.
	DrawText(layout *TextLayout, position Offset)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
