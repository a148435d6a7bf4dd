package testing

import (
	"testing"

	"github.com/snitron/clockface/pkg/graphics"
)

func TestRecord(t *testing.T) {
	size := graphics.Size{Width: 100, Height: 50}
	ops := Record(size, func(c graphics.Canvas) {
		if c.Size() != size {
			t.Errorf("Size = %v, want %v", c.Size(), size)
		}
		c.Clear(graphics.ColorWhite)
		c.DrawCircle(graphics.Offset{X: 1.234, Y: 5.678}, 3, graphics.FillPaint(graphics.ColorRed))
		c.DrawLine(graphics.Offset{}, graphics.Offset{X: 10, Y: 0}, graphics.StrokePaint(graphics.ColorBlue, 2))
		c.DrawText(&graphics.TextLayout{Text: "12", Style: graphics.TextStyle{FontSize: 20}}, graphics.Offset{X: 3, Y: 4})
	})

	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4", len(ops))
	}
	if ops[1].Op != "drawCircle" || ops[1].Params["cx"] != 1.23 || ops[1].Params["cy"] != 5.68 {
		t.Errorf("circle op = %+v", ops[1])
	}
	if ops[1].Params["color"] != "0xFFFF0000" {
		t.Errorf("circle color = %v", ops[1].Params["color"])
	}
	if ops[2].Params["strokeWidth"] != 2.0 || ops[2].Params["cap"] != "butt" {
		t.Errorf("line op = %+v", ops[2])
	}
	if ops[3].Params["text"] != "12" {
		t.Errorf("text op = %+v", ops[3])
	}
	if CountOps(ops, "drawLine") != 1 {
		t.Error("CountOps(drawLine) != 1")
	}
}

func TestRecordDisplayList(t *testing.T) {
	dl := graphics.Record(graphics.Size{Width: 10, Height: 10}, func(c graphics.Canvas) {
		c.DrawCircle(graphics.Offset{X: 5, Y: 5}, 2, graphics.FillPaint(graphics.ColorBlack))
		c.DrawCircle(graphics.Offset{X: 5, Y: 5}, 1, graphics.FillPaint(graphics.ColorWhite))
	})

	ops := RecordDisplayList(dl)
	if CountOps(ops, "drawCircle") != 2 {
		t.Errorf("ops = %+v", ops)
	}
}
