package testing

import (
	"fmt"
	"math"

	"github.com/snitron/clockface/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// RecordingCanvas implements graphics.Canvas and records every call as a
// DisplayOp. Coordinates are rounded to two decimals.
type RecordingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

// NewRecordingCanvas returns an empty canvas reporting size.
func NewRecordingCanvas(size graphics.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size}
}

// Record paints onto a fresh RecordingCanvas and returns its command log.
func Record(size graphics.Size, paint func(graphics.Canvas)) []DisplayOp {
	c := NewRecordingCanvas(size)
	paint(c)
	return c.Ops()
}

// RecordDisplayList replays dl and returns its command log.
func RecordDisplayList(dl *graphics.DisplayList) []DisplayOp {
	return Record(dl.Size(), dl.Paint)
}

// Ops returns a copy of the recorded operations.
func (c *RecordingCanvas) Ops() []DisplayOp {
	ops := make([]DisplayOp, len(c.ops))
	copy(ops, c.ops)
	return ops
}

// Count returns how many recorded operations have the given name.
func (c *RecordingCanvas) Count(op string) int {
	return CountOps(c.ops, op)
}

// CountOps returns how many operations in ops have the given name.
func CountOps(ops []DisplayOp, op string) int {
	n := 0
	for _, o := range ops {
		if o.Op == op {
			n++
		}
	}
	return n
}

func (c *RecordingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *RecordingCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	params := sortedMap(
		"cx", round2(center.X),
		"cy", round2(center.Y),
		"radius", round2(radius),
		"color", serializeColor(paint.Color),
	)
	if paint.Style == graphics.PaintStyleStroke {
		params["strokeWidth"] = round2(paint.StrokeWidth)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawCircle", Params: params})
}

func (c *RecordingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawLine",
		Params: sortedMap(
			"x1", round2(start.X), "y1", round2(start.Y),
			"x2", round2(end.X), "y2", round2(end.Y),
			"strokeWidth", round2(paint.StrokeWidth),
			"cap", paint.StrokeCap.String(),
			"color", serializeColor(paint.Color),
		),
	})
}

func (c *RecordingCanvas) DrawText(layout *graphics.TextLayout, position graphics.Offset) {
	params := sortedMap("x", round2(position.X), "y", round2(position.Y))
	if layout != nil {
		params["text"] = layout.Text
		params["fontSize"] = round2(layout.Style.FontSize)
		params["color"] = serializeColor(layout.Style.Color)
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawText", Params: params})
}

func (c *RecordingCanvas) Size() graphics.Size {
	return c.size
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. JSON encoding
// sorts the keys.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
