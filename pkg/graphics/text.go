package graphics

import (
	stderrors "errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/snitron/clockface/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color    Color
	FontSize float64
}

// TextLayout contains measured text metrics.
//
// Bounds is the ink box of the glyphs relative to the baseline origin, with
// y growing downwards: Bounds.Top is negative for glyphs above the baseline.
type TextLayout struct {
	Text    string
	Style   TextStyle
	Advance float64
	Bounds  Rect
	Ascent  float64
	Descent float64

	manager *FontManager
}

// CenterOffset returns the vector from the ink center of the glyphs to the
// baseline origin. Drawing at target.Add(layout.CenterOffset()) centers the
// glyphs on target.
func (l *TextLayout) CenterOffset() Offset {
	c := l.Bounds.Center()
	return Offset{X: -l.Advance / 2, Y: -c.Y}
}

// MaxFontSize is the largest glyph size in pixels. Larger sizes are clamped
// when text is laid out.
const MaxFontSize = 1024

// maxCachedFaces bounds the per-size face cache. The cache is dropped once
// it is full.
const maxCachedFaces = 32

// FontManager resolves font faces from a single bundled typeface.
// Faces are cached per size. A face is not safe for concurrent use, so all
// measuring and drawing goes through the manager's lock.
type FontManager struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager backed by the Go Regular typeface.
func NewFontManager() (*FontManager, error) {
	return NewFontManagerFromData(goregular.TTF)
}

// NewFontManagerFromData creates a font manager from TrueType or OpenType data.
func NewFontManagerFromData(data []byte) (*FontManager, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("graphics: failed to parse font: %w", err)
	}
	return &FontManager{font: f, faces: make(map[float64]font.Face)}, nil
}

// DefaultFontManagerErr returns a shared font manager with the bundled font.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.ClockError{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindRender,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns the shared font manager, or nil if the bundled
// font failed to load.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// faceLocked returns the cached face for size. m.mu must be held.
func (m *FontManager) faceLocked(size float64) (font.Face, error) {
	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	if len(m.faces) >= maxCachedFaces {
		for s, face := range m.faces {
			face.Close()
			delete(m.faces, s)
		}
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = face
	return face, nil
}

// LayoutText measures text using the provided font manager.
// A non-positive font size yields an empty layout that draws nothing. Sizes
// above MaxFontSize are clamped, and the returned layout carries the clamped
// size.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	if style.FontSize > MaxFontSize {
		style.FontSize = MaxFontSize
	}
	layout := &TextLayout{Text: text, Style: style, manager: manager}
	if style.FontSize <= 0 || math.IsNaN(style.FontSize) || text == "" {
		return layout, nil
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	face, err := manager.faceLocked(style.FontSize)
	if err != nil {
		return nil, err
	}
	bounds, advance := font.BoundString(face, text)
	metrics := face.Metrics()
	layout.Advance = fixedToFloat(advance)
	layout.Bounds = Rect{
		Left:   fixedToFloat(bounds.Min.X),
		Top:    fixedToFloat(bounds.Min.Y),
		Right:  fixedToFloat(bounds.Max.X),
		Bottom: fixedToFloat(bounds.Max.Y),
	}
	layout.Ascent = fixedToFloat(metrics.Ascent)
	layout.Descent = fixedToFloat(metrics.Descent)
	return layout, nil
}

// drawString renders layout onto dst with its baseline origin at position.
func (m *FontManager) drawString(dst draw.Image, layout *TextLayout, position Offset) {
	size := math.Min(layout.Style.FontSize, MaxFontSize)
	m.mu.Lock()
	defer m.mu.Unlock()
	face, err := m.faceLocked(size)
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(layout.Style.Color.NRGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(position.X), Y: floatToFixed(position.Y)},
	}
	d.DrawString(layout.Text)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
