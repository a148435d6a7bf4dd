package graphics

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bezier curve.
const kappa = 0.5522847498307936

// maxExtent bounds coordinates, radii and stroke widths handed to the
// rasterizer. Geometry outside it is skipped. It keeps curve flattening to a
// few thousand segments per arc.
const maxExtent = 1e6

// RasterCanvas draws onto an in-memory RGBA image using anti-aliased
// scanline rasterization.
type RasterCanvas struct {
	img  *image.RGBA
	size Size
}

// NewRasterCanvas allocates a transparent canvas of the given pixel size.
func NewRasterCanvas(width, height int) *RasterCanvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &RasterCanvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		size: Size{Width: float64(width), Height: float64(height)},
	}
}

// Image returns the backing image. It is shared, not copied.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Size returns the size of the canvas in pixels.
func (c *RasterCanvas) Size() Size {
	return c.size
}

// EncodePNG writes the current pixels as a PNG image.
func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Clear fills the entire canvas with the given color.
func (c *RasterCanvas) Clear(color Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

// DrawCircle fills or strokes a circle. Non-positive radii draw nothing, and
// so do radii or centers that are non-finite or beyond maxExtent.
func (c *RasterCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 || !inExtent(radius) || !center.inExtent() || c.size.IsEmpty() {
		return
	}
	r := c.rasterizer()
	if paint.Style == PaintStyleStroke {
		half := strokeWidth(paint) / 2
		if !inExtent(radius + half) {
			return
		}
		addCircle(r, center, radius+half, false)
		if inner := radius - half; inner > 0 {
			addCircle(r, center, inner, true)
		}
	} else {
		addCircle(r, center, radius, false)
	}
	c.fill(r, paint.Color)
}

// DrawLine strokes a line segment. Zero-length segments draw nothing unless
// the cap extends past the endpoints. Segments with an endpoint or width that
// is non-finite or beyond maxExtent are skipped.
func (c *RasterCanvas) DrawLine(start, end Offset, paint Paint) {
	if c.size.IsEmpty() || !start.inExtent() || !end.inExtent() {
		return
	}
	half := strokeWidth(paint) / 2
	if !inExtent(half) {
		return
	}
	d := end.Sub(start)
	length := d.Distance()

	r := c.rasterizer()
	if length > 0 {
		dir := d.Scale(1 / length)
		if paint.StrokeCap == CapSquare {
			start = start.Sub(dir.Scale(half))
			end = end.Add(dir.Scale(half))
		}
		n := Offset{X: -dir.Y * half, Y: dir.X * half}
		p0, p1, p2, p3 := start.Add(n), end.Add(n), end.Sub(n), start.Sub(n)
		r.MoveTo(float32(p0.X), float32(p0.Y))
		r.LineTo(float32(p1.X), float32(p1.Y))
		r.LineTo(float32(p2.X), float32(p2.Y))
		r.LineTo(float32(p3.X), float32(p3.Y))
		r.ClosePath()
	}
	if paint.StrokeCap == CapRound {
		addCircle(r, start, half, false)
		addCircle(r, end, half, false)
	} else if length == 0 {
		return
	}
	c.fill(r, paint.Color)
}

// DrawText draws a text layout with its baseline origin at position.
func (c *RasterCanvas) DrawText(layout *TextLayout, position Offset) {
	if layout == nil || layout.manager == nil || layout.Text == "" || layout.Style.FontSize <= 0 || !position.inExtent() {
		return
	}
	layout.manager.drawString(c.img, layout, position)
}

func (c *RasterCanvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	return r
}

func (c *RasterCanvas) fill(r *vector.Rasterizer, color Color) {
	r.Draw(c.img, c.img.Bounds(), image.NewUniform(color.NRGBA()), image.Point{})
}

// strokeWidth maps a zero width to a one-pixel hairline.
func strokeWidth(paint Paint) float64 {
	if paint.StrokeWidth <= 0 {
		return 1
	}
	return paint.StrokeWidth
}

// addCircle appends a closed circular subpath. Reversed subpaths cancel
// coverage of overlapping forward ones, which is how rings are cut.
func addCircle(r *vector.Rasterizer, center Offset, radius float64, reverse bool) {
	if radius <= 0 || !inExtent(radius) || !center.inExtent() {
		return
	}
	k := radius * kappa
	cx, cy := center.X, center.Y
	f := func(v float64) float32 { return float32(v) }

	r.MoveTo(f(cx+radius), f(cy))
	if !reverse {
		r.CubeTo(f(cx+radius), f(cy+k), f(cx+k), f(cy+radius), f(cx), f(cy+radius))
		r.CubeTo(f(cx-k), f(cy+radius), f(cx-radius), f(cy+k), f(cx-radius), f(cy))
		r.CubeTo(f(cx-radius), f(cy-k), f(cx-k), f(cy-radius), f(cx), f(cy-radius))
		r.CubeTo(f(cx+k), f(cy-radius), f(cx+radius), f(cy-k), f(cx+radius), f(cy))
	} else {
		r.CubeTo(f(cx+radius), f(cy-k), f(cx+k), f(cy-radius), f(cx), f(cy-radius))
		r.CubeTo(f(cx-k), f(cy-radius), f(cx-radius), f(cy-k), f(cx-radius), f(cy))
		r.CubeTo(f(cx-radius), f(cy+k), f(cx-k), f(cy+radius), f(cx), f(cy+radius))
		r.CubeTo(f(cx+k), f(cy+radius), f(cx+radius), f(cy+k), f(cx+radius), f(cy))
	}
	r.ClosePath()
}

func inExtent(v float64) bool {
	return math.Abs(v) <= maxExtent
}

func (o Offset) inExtent() bool {
	return inExtent(o.X) && inExtent(o.Y)
}
