package graphics

// DisplayList is a recorded frame: the canvas calls made while painting,
// in order. It does not change once a Recorder finishes it and may be
// replayed from any goroutine.
type DisplayList struct {
	size     Size
	commands []command
}

type commandKind uint8

const (
	cmdClear commandKind = iota
	cmdCircle
	cmdLine
	cmdText
)

// command is one canvas call. at is the circle center, line start or text
// origin; to is the line end. Clear keeps its color in paint.
type command struct {
	kind   commandKind
	at     Offset
	to     Offset
	radius float64
	paint  Paint
	layout *TextLayout
}

// Record paints draw onto a fresh Recorder of the given size and returns
// the finished frame.
func Record(size Size, draw func(Canvas)) *DisplayList {
	r := NewRecorder(size)
	draw(r)
	return r.Finish()
}

// Paint replays the frame onto canvas. A nil list paints nothing.
func (d *DisplayList) Paint(canvas Canvas) {
	if d == nil {
		return
	}
	for i := range d.commands {
		cmd := &d.commands[i]
		switch cmd.kind {
		case cmdClear:
			canvas.Clear(cmd.paint.Color)
		case cmdCircle:
			canvas.DrawCircle(cmd.at, cmd.radius, cmd.paint)
		case cmdLine:
			canvas.DrawLine(cmd.at, cmd.to, cmd.paint)
		case cmdText:
			canvas.DrawText(cmd.layout, cmd.at)
		}
	}
}

// Size returns the canvas size the frame was recorded at.
func (d *DisplayList) Size() Size {
	if d == nil {
		return Size{}
	}
	return d.size
}

// Len returns the number of recorded calls.
func (d *DisplayList) Len() int {
	if d == nil {
		return 0
	}
	return len(d.commands)
}

// Recorder is a Canvas that captures calls instead of drawing them.
// Calls made after Finish are dropped.
type Recorder struct {
	size     Size
	commands []command
	finished bool
}

// NewRecorder returns an empty recorder reporting size.
func NewRecorder(size Size) *Recorder {
	return &Recorder{size: size}
}

// Finish ends the recording and returns the frame. Later calls return an
// empty frame of the same size.
func (r *Recorder) Finish() *DisplayList {
	if r.finished {
		return &DisplayList{size: r.size}
	}
	r.finished = true
	dl := &DisplayList{size: r.size, commands: r.commands}
	r.commands = nil
	return dl
}

func (r *Recorder) push(cmd command) {
	if !r.finished {
		r.commands = append(r.commands, cmd)
	}
}

func (r *Recorder) Clear(color Color) {
	r.push(command{kind: cmdClear, paint: Paint{Color: color}})
}

func (r *Recorder) DrawCircle(center Offset, radius float64, paint Paint) {
	r.push(command{kind: cmdCircle, at: center, radius: radius, paint: paint})
}

func (r *Recorder) DrawLine(start, end Offset, paint Paint) {
	r.push(command{kind: cmdLine, at: start, to: end, paint: paint})
}

func (r *Recorder) DrawText(layout *TextLayout, position Offset) {
	r.push(command{kind: cmdText, at: position, layout: layout})
}

func (r *Recorder) Size() Size {
	return r.size
}
