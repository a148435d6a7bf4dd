package graphics

import (
	"bytes"
	"image/png"
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FF0000", ColorRed},
		{"#80FF0000", Color(0x80FF0000)},
		{"0xFF000000", ColorBlack},
		{" #ffffff ", ColorWhite},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#FFF", "#GGGGGG", "#123456789"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) expected error", bad)
		}
	}
}

func TestColorText(t *testing.T) {
	c := RGBA8(0x12, 0x34, 0x56, 0x78)
	text, err := c.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "#78123456" {
		t.Errorf("MarshalText = %q", text)
	}
	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("UnmarshalText = %v, want %v", back, c)
	}
}

func TestColorComponents(t *testing.T) {
	c := RGB(255, 0, 51)
	r, g, b, a := c.RGBAF()
	if r != 1 || g != 0 || math.Abs(b-0.2) > 1e-9 || a != 1 {
		t.Errorf("RGBAF = %v %v %v %v", r, g, b, a)
	}
	if !c.IsOpaque() {
		t.Error("RGB color should be opaque")
	}
	n := c.NRGBA()
	if n.R != 255 || n.G != 0 || n.B != 51 || n.A != 255 {
		t.Errorf("NRGBA = %+v", n)
	}
}

func TestRecorderReplay(t *testing.T) {
	recorder := NewRecorder(Size{Width: 100, Height: 80})
	if recorder.Size() != (Size{Width: 100, Height: 80}) {
		t.Errorf("recorder size = %v", recorder.Size())
	}
	recorder.Clear(ColorWhite)
	recorder.DrawCircle(Offset{X: 50, Y: 40}, 10, FillPaint(ColorRed))
	recorder.DrawLine(Offset{}, Offset{X: 10, Y: 10}, StrokePaint(ColorBlue, 2))
	recorder.DrawText(&TextLayout{Text: "3"}, Offset{X: 1, Y: 2})
	dl := recorder.Finish()

	if dl.Len() != 4 {
		t.Fatalf("Len = %d, want 4", dl.Len())
	}

	spy := &spyCanvas{}
	dl.Paint(spy)
	want := []string{"clear", "circle", "line", "text"}
	if len(spy.calls) != len(want) {
		t.Fatalf("replayed %v, want %v", spy.calls, want)
	}
	for i := range want {
		if spy.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, spy.calls[i], want[i])
		}
	}

	// Calls after Finish are dropped.
	recorder.DrawCircle(Offset{}, 1, FillPaint(ColorRed))
	if dl.Len() != 4 {
		t.Error("display list changed after Finish")
	}
	if again := recorder.Finish(); again.Len() != 0 || again.Size() != dl.Size() {
		t.Errorf("second Finish = %d ops at %v, want empty at %v", again.Len(), again.Size(), dl.Size())
	}
}

func TestRecordMatchesDirectRaster(t *testing.T) {
	draw := func(c Canvas) {
		c.Clear(ColorWhite)
		c.DrawCircle(Offset{X: 16, Y: 16}, 10, StrokePaint(ColorBlack, 3))
		c.DrawLine(Offset{X: 16, Y: 16}, Offset{X: 16, Y: 4}, StrokePaint(ColorRed, 2))
	}
	direct := NewRasterCanvas(32, 32)
	draw(direct)

	dl := Record(direct.Size(), draw)
	replayed := NewRasterCanvas(32, 32)
	dl.Paint(replayed)

	if !bytes.Equal(direct.Image().Pix, replayed.Image().Pix) {
		t.Error("replayed frame differs from direct rendering")
	}
}

func TestNilDisplayList(t *testing.T) {
	var dl *DisplayList
	spy := &spyCanvas{}
	dl.Paint(spy)
	if dl.Len() != 0 || len(spy.calls) != 0 || !dl.Size().IsEmpty() {
		t.Error("nil display list should be empty")
	}
}

func TestRasterCanvasCircle(t *testing.T) {
	c := NewRasterCanvas(40, 40)
	c.Clear(ColorWhite)
	c.DrawCircle(Offset{X: 20, Y: 20}, 10, FillPaint(ColorRed))

	if got := c.Image().RGBAAt(20, 20); got.R != 255 || got.G != 0 || got.B != 0 {
		t.Errorf("center pixel = %+v, want red", got)
	}
	if got := c.Image().RGBAAt(2, 2); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("corner pixel = %+v, want white", got)
	}
}

func TestRasterCanvasRing(t *testing.T) {
	c := NewRasterCanvas(60, 60)
	c.Clear(ColorWhite)
	c.DrawCircle(Offset{X: 30, Y: 30}, 20, StrokePaint(ColorBlack, 4))

	if got := c.Image().RGBAAt(30, 30); got.R != 255 {
		t.Errorf("ring interior = %+v, want white", got)
	}
	if got := c.Image().RGBAAt(50, 30); got.R != 0 {
		t.Errorf("ring edge = %+v, want black", got)
	}
}

func TestRasterCanvasDegenerateShapes(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.Clear(ColorWhite)
	c.DrawCircle(Offset{X: 5, Y: 5}, 0, FillPaint(ColorBlack))
	c.DrawCircle(Offset{X: 5, Y: 5}, -3, FillPaint(ColorBlack))
	c.DrawLine(Offset{X: 5, Y: 5}, Offset{X: 5, Y: 5}, StrokePaint(ColorBlack, 4))
	c.DrawText(nil, Offset{})

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := c.Image().RGBAAt(x, y); got.R != 255 {
				t.Fatalf("pixel (%d,%d) = %+v, want untouched", x, y, got)
			}
		}
	}

	empty := NewRasterCanvas(-1, 0)
	empty.DrawCircle(Offset{}, 5, FillPaint(ColorBlack))
	empty.DrawLine(Offset{}, Offset{X: 1, Y: 1}, StrokePaint(ColorBlack, 1))
}

func TestRasterCanvasSkipsNonFiniteGeometry(t *testing.T) {
	inf := math.Inf(1)
	c := NewRasterCanvas(20, 20)
	c.Clear(ColorWhite)
	c.DrawCircle(Offset{X: 10, Y: 10}, inf, FillPaint(ColorBlack))
	c.DrawCircle(Offset{X: 10, Y: 10}, inf, StrokePaint(ColorBlack, 2))
	c.DrawCircle(Offset{X: 10, Y: 10}, math.NaN(), FillPaint(ColorBlack))
	c.DrawCircle(Offset{X: inf, Y: 10}, 5, FillPaint(ColorBlack))
	c.DrawCircle(Offset{X: 10, Y: 10}, 5, StrokePaint(ColorBlack, inf))
	c.DrawLine(Offset{X: 10, Y: 10}, Offset{X: inf, Y: -inf}, StrokePaint(ColorBlack, 2))
	c.DrawLine(Offset{X: math.NaN(), Y: 0}, Offset{X: 10, Y: 10}, StrokePaint(ColorBlack, 2))
	round := StrokePaint(ColorBlack, inf)
	round.StrokeCap = CapRound
	c.DrawLine(Offset{X: 2, Y: 2}, Offset{X: 18, Y: 18}, round)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if got := c.Image().RGBAAt(x, y); got.R != 255 {
				t.Fatalf("pixel (%d,%d) = %+v, want untouched", x, y, got)
			}
		}
	}

	c.DrawCircle(Offset{X: 10, Y: 10}, 1e20, FillPaint(ColorBlack))
	if got := c.Image().RGBAAt(10, 10); got.R != 255 {
		t.Errorf("radius beyond the extent drew %+v", got)
	}

	c.DrawCircle(Offset{X: 10, Y: 10}, 1e3, FillPaint(ColorBlack))
	if got := c.Image().RGBAAt(10, 10); got.R != 0 {
		t.Errorf("center pixel = %+v, want black", got)
	}
}

func TestRasterCanvasLine(t *testing.T) {
	c := NewRasterCanvas(40, 40)
	c.Clear(ColorWhite)
	c.DrawLine(Offset{X: 5, Y: 20}, Offset{X: 35, Y: 20}, StrokePaint(ColorBlue, 6))

	if got := c.Image().RGBAAt(20, 20); got.B != 255 || got.R != 0 {
		t.Errorf("line pixel = %+v, want blue", got)
	}
	if got := c.Image().RGBAAt(20, 30); got.R != 255 {
		t.Errorf("off-line pixel = %+v, want white", got)
	}
	if got := c.Image().RGBAAt(2, 20); got.R != 255 {
		t.Errorf("butt cap must not extend past start, got %+v", got)
	}
}

func TestRasterCanvasEncodePNG(t *testing.T) {
	c := NewRasterCanvas(8, 6)
	c.Clear(ColorGreen)
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestLayoutText(t *testing.T) {
	manager := DefaultFontManager()
	if manager == nil {
		t.Fatal("bundled font failed to load")
	}
	layout, err := LayoutText("12", TextStyle{Color: ColorBlack, FontSize: 40}, manager)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Advance <= 0 {
		t.Errorf("Advance = %v, want > 0", layout.Advance)
	}
	if layout.Bounds.Top >= 0 || layout.Bounds.Bottom < layout.Bounds.Top {
		t.Errorf("digits should sit above the baseline, got bounds %+v", layout.Bounds)
	}
	off := layout.CenterOffset()
	if off.Y <= 0 {
		t.Errorf("CenterOffset().Y = %v, want baseline below the ink center", off.Y)
	}

	c := NewRasterCanvas(100, 100)
	c.Clear(ColorWhite)
	c.DrawText(layout, Offset{X: 50, Y: 50}.Add(off))
	dark := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if c.Image().RGBAAt(x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected glyph pixels to be drawn")
	}
}

func TestLayoutTextZeroSize(t *testing.T) {
	layout, err := LayoutText("7", TextStyle{FontSize: 0}, DefaultFontManager())
	if err != nil {
		t.Fatal(err)
	}
	if layout.Advance != 0 || !layout.Bounds.IsEmpty() {
		t.Errorf("zero-size layout should be empty, got %+v", layout)
	}
	if _, err := LayoutText("7", TextStyle{FontSize: 10}, nil); err == nil {
		t.Error("expected error without font manager")
	}
}

func TestLayoutTextClampsFontSize(t *testing.T) {
	manager, err := NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	layout, err := LayoutText("12", TextStyle{Color: ColorBlack, FontSize: 1e5}, manager)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Style.FontSize != MaxFontSize {
		t.Errorf("FontSize = %v, want %v", layout.Style.FontSize, MaxFontSize)
	}

	c := NewRasterCanvas(50, 50)
	c.DrawText(layout, Offset{X: 0, Y: 40})
	c.DrawText(layout, Offset{X: math.Inf(1), Y: 40})

	for i := 1; i <= 3*maxCachedFaces; i++ {
		if _, err := LayoutText("9", TextStyle{FontSize: float64(i)}, manager); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(manager.faces); n > maxCachedFaces {
		t.Errorf("cached %d faces, want at most %d", n, maxCachedFaces)
	}
}

type spyCanvas struct {
	calls []string
}

func (s *spyCanvas) Clear(Color) {
	s.calls = append(s.calls, "clear")
}

func (s *spyCanvas) DrawCircle(Offset, float64, Paint) {
	s.calls = append(s.calls, "circle")
}

func (s *spyCanvas) DrawLine(Offset, Offset, Paint) {
	s.calls = append(s.calls, "line")
}

func (s *spyCanvas) DrawText(*TextLayout, Offset) {
	s.calls = append(s.calls, "text")
}

func (s *spyCanvas) Size() Size {
	return Size{}
}
