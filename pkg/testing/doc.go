// Package testing provides helpers for deterministic clock tests.
//
// # Time
//
// [FakeClock] is a controllable time source that satisfies
// clock.TimeProvider. [FakeExecutor] is a scheduler.Executor whose timers
// fire only when the test advances it:
//
//	exec := clocktest.NewFakeExecutor()
//	s := scheduler.NewRedrawScheduler(exec, onTick)
//	s.Start(100 * time.Millisecond)
//	exec.Advance(350 * time.Millisecond) // three ticks
//
// # Command logs
//
// [Record] runs a paint function against a serializing canvas and returns
// the drawing calls as [DisplayOp] values:
//
//	ops := clocktest.Record(size, func(c graphics.Canvas) {
//	    renderer.Paint(c, &style, sample)
//	})
//
// # Snapshot Testing
//
// Compare command logs against golden files:
//
//	clocktest.NewSnapshot(size, ops).MatchesFile(t, "testdata/face.snapshot.json")
//
// Update snapshots with:
//
//	CLOCKFACE_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import clocktest "github.com/snitron/clockface/pkg/testing"
package testing
