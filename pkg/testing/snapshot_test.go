package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/snitron/clockface/pkg/graphics"
)

func dot(color graphics.Color, radius float64) func(graphics.Canvas) {
	return func(c graphics.Canvas) {
		c.DrawCircle(graphics.Offset{X: 25, Y: 25}, radius, graphics.FillPaint(color))
	}
}

var snapSize = graphics.Size{Width: 50, Height: 50}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := CaptureSnapshot(snapSize, dot(graphics.ColorRed, 10))
	b := CaptureSnapshot(snapSize, dot(graphics.ColorRed, 10))

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := CaptureSnapshot(snapSize, dot(graphics.ColorRed, 10))
	b := CaptureSnapshot(snapSize, dot(graphics.ColorGreen, 12))

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := CaptureSnapshot(snapSize, dot(graphics.ColorBlue, 8))

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "dot.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	snap := CaptureSnapshot(snapSize, dot(graphics.ColorRed, 10))

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing", "snap.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(UpdateEnv, "")
	first := CaptureSnapshot(snapSize, dot(graphics.ColorRed, 10))

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := first.UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	second := CaptureSnapshot(snapSize, dot(graphics.ColorBlue, 20))

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := CaptureSnapshot(snapSize, dot(graphics.ColorBlack, 5))
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(UpdateEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
