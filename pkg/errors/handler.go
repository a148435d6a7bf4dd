package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// The process-wide handler receives failures that have no caller to return
// to: scheduler ticks, host callbacks and repaints. Every report is counted
// under its kind.

type handlerBox struct {
	h ErrorHandler
}

const kindCount = int(KindConfig) + 1

var (
	installed atomic.Pointer[handlerBox]
	reported  [kindCount]atomic.Uint64

	fallback ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the process-wide handler. Nil restores a
// LogHandler writing to the shared logger.
func SetHandler(h ErrorHandler) {
	if h == nil {
		installed.Store(nil)
		return
	}
	installed.Store(&handlerBox{h: h})
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	if b := installed.Load(); b != nil {
		return b.h
	}
	return fallback
}

// Report counts err, stamps it if it has no timestamp and passes it to the
// handler.
func Report(err *ClockError) {
	if err == nil {
		return
	}
	count(err.Kind)
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// ReportErr reports a failure of op. A ClockError in err's chain is
// reported as is, with op filled in if it has none; any other error is
// wrapped with kind. Nil is ignored.
func ReportErr(op string, kind ErrorKind, err error) {
	if err == nil {
		return
	}
	var ce *ClockError
	if !stderrors.As(err, &ce) {
		ce = &ClockError{Op: op, Kind: kind, Err: err}
	} else if ce.Op == "" {
		ce.Op = op
	}
	Report(ce)
}

// ReportPanic counts err as KindPanic and passes it to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	count(KindPanic)
	Handler().HandlePanic(err)
}

// Recover reports and swallows a panic. It must be deferred directly:
//
//	defer errors.Recover("scheduler.tick")
func Recover(op string) {
	r := recover()
	if r == nil {
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// Reported returns how many failures of kind have been reported since the
// process started.
func Reported(kind ErrorKind) uint64 {
	return reported[kindIndex(kind)].Load()
}

// ReportedByKind returns the non-zero report counts.
func ReportedByKind() map[ErrorKind]uint64 {
	counts := make(map[ErrorKind]uint64)
	for i := range reported {
		if n := reported[i].Load(); n > 0 {
			counts[ErrorKind(i)] = n
		}
	}
	return counts
}

func count(kind ErrorKind) {
	reported[kindIndex(kind)].Add(1)
}

func kindIndex(kind ErrorKind) int {
	if kind < 0 || int(kind) >= kindCount {
		return int(KindUnknown)
	}
	return int(kind)
}

// CaptureStack returns the caller's stack, one "function\n\tfile:line"
// entry per frame. Frames of CaptureStack, its caller and the runtime are
// left out, so inside Recover the trace starts at the panicking function.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
