package collection_test

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snitron/clockface/pkg/clock"
	"github.com/snitron/clockface/pkg/collection"
	"github.com/snitron/clockface/pkg/errors"
	"github.com/snitron/clockface/pkg/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	kind         string
	start, count int
}

func recordEvents(c *collection.Collection) *[]event {
	var events []event
	c.AddListener(collection.ListenerFuncs{
		Inserted:     func(i int) { events = append(events, event{"inserted", i, 1}) },
		RangeChanged: func(s, n int) { events = append(events, event{"changed", s, n}) },
		Removed:      func(i int) { events = append(events, event{"removed", i, 1}) },
		Reset:        func() { events = append(events, event{kind: "reset"}) },
	})
	return &events
}

// styleWithCount tags a style so tests can tell entries apart.
func styleWithCount(t *testing.T, n int) clock.Style {
	t.Helper()
	s := clock.DefaultStyle()
	require.NoError(t, s.SetDivisionCount(n))
	return s
}

func counts(c *collection.Collection) []int {
	var out []int
	for _, e := range c.Entries() {
		out = append(out, e.Style.DivisionCount())
	}
	return out
}

func TestInsertAt_EmptyIgnoresIndex(t *testing.T) {
	for _, index := range []int{0, 3, -7, 100} {
		c := collection.New()
		events := recordEvents(c)

		pos, err := c.InsertAt(index, styleWithCount(t, 1))
		require.NoError(t, err)
		assert.Equal(t, 0, pos)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, []event{{"inserted", 0, 1}}, *events)
	}
}

func TestInsertAt_AfterIndex(t *testing.T) {
	c := collection.New()
	for i := 0; i < 5; i++ {
		s := styleWithCount(t, i)
		if c.Len() == 0 {
			_, err := c.InsertAt(0, s)
			require.NoError(t, err)
			continue
		}
		_, err := c.InsertAt(c.Len()-1, s)
		require.NoError(t, err)
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, counts(c))

	events := recordEvents(c)
	pos, err := c.InsertAt(2, styleWithCount(t, 99))
	require.NoError(t, err)

	assert.Equal(t, 3, pos)
	assert.Equal(t, 6, c.Len())
	assert.Equal(t, []int{0, 1, 2, 99, 3, 4}, counts(c))
	assert.Equal(t, []event{{"changed", 2, 2}}, *events)
}

func TestInsertAt_OutOfRange(t *testing.T) {
	c := collection.New(clock.DefaultStyle(), clock.DefaultStyle())
	events := recordEvents(c)

	for _, index := range []int{-1, 2, 10} {
		_, err := c.InsertAt(index, clock.DefaultStyle())
		assert.True(t, errors.IsInvalidArgument(err), "index %d: %v", index, err)
	}
	assert.Equal(t, 2, c.Len())
	assert.Empty(t, *events)
}

func TestRemoveAt(t *testing.T) {
	c := collection.New(styleWithCount(t, 1), styleWithCount(t, 2), styleWithCount(t, 3))
	events := recordEvents(c)
	id := c.Entries()[1].ID

	removed, err := c.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, id, removed.ID)
	assert.Equal(t, []int{1, 3}, counts(c))
	assert.Equal(t, []event{{"removed", 1, 1}}, *events)
	assert.Equal(t, -1, c.IndexOf(id))

	_, err = c.RemoveAt(5)
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = collection.New().RemoveAt(0)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestEntriesHaveUniqueIDs(t *testing.T) {
	s := clock.DefaultStyle()
	c := collection.New(s, s, s)

	seen := map[string]bool{}
	for _, e := range c.Entries() {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}

	e, ok := c.At(2)
	require.True(t, ok)
	assert.Equal(t, 2, c.IndexOf(e.ID))
	_, ok = c.At(3)
	assert.False(t, ok)
}

func TestRemoveListener(t *testing.T) {
	c := collection.New(clock.DefaultStyle())
	calls := 0
	remove := c.AddListener(collection.ListenerFuncs{RangeChanged: func(int, int) { calls++ }})

	_, err := c.InsertAt(0, clock.DefaultStyle())
	require.NoError(t, err)
	remove()
	_, err = c.InsertAt(0, clock.DefaultStyle())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	var styles []clock.Style
	for i := 0; i < 4; i++ {
		s, err := clock.NewStyle(clock.RandomOptions(rng))
		require.NoError(t, err)
		styles = append(styles, s)
	}
	src := collection.New(styles...)

	var buf bytes.Buffer
	require.NoError(t, src.Save(&buf))
	assert.Contains(t, buf.String(), "clocks:")
	assert.Contains(t, buf.String(), "secondHandWidth:")

	dst := collection.New()
	events := recordEvents(dst)
	require.NoError(t, dst.Restore(&buf))

	require.Equal(t, src.Len(), dst.Len())
	for i, want := range src.Entries() {
		got, _ := dst.At(i)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Style.Options(), got.Style.Options())
	}
	assert.Equal(t, []event{{kind: "reset"}}, *events)
}

func TestRestoreEmptyYieldsOneDefaultClock(t *testing.T) {
	for name, input := range map[string]string{
		"no input":   "",
		"empty list": "clocks: []\n",
		"null list":  "clocks:\n",
	} {
		t.Run(name, func(t *testing.T) {
			c := collection.New(styleWithCount(t, 7), styleWithCount(t, 8))
			require.NoError(t, c.Restore(strings.NewReader(input)))

			require.Equal(t, 1, c.Len())
			e, _ := c.At(0)
			assert.Equal(t, clock.DefaultOptions(), e.Style.Options())
			assert.NotEmpty(t, e.ID)
		})
	}
}

func TestRestorePartialEntryUsesDefaults(t *testing.T) {
	input := `clocks:
  - divisionCount: 12
    backgroundColor: "#FF112233"
`
	c := collection.New()
	require.NoError(t, c.Restore(strings.NewReader(input)))

	e, ok := c.At(0)
	require.True(t, ok)
	opts := e.Style.Options()
	assert.Equal(t, 12, opts.DivisionCount)
	assert.Equal(t, graphics.Color(0xFF112233), opts.BackgroundColor)
	assert.Equal(t, clock.DefaultSecondHandWidth, opts.SecondHandWidth)
	assert.NotEmpty(t, e.ID)
}

func TestRestoreRejectsInvalidEntry(t *testing.T) {
	c := collection.New(styleWithCount(t, 5))
	before := c.Entries()

	err := c.Restore(strings.NewReader("clocks:\n  - borderWidth: -4\n"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, before, c.Entries())

	err = c.Restore(strings.NewReader("clocks:\n  - divisionRadius: .inf\n"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, before, c.Entries())

	err = c.Restore(strings.NewReader("clocks: {not: a list"))
	require.Error(t, err)
	assert.Equal(t, before, c.Entries())
}

func TestSaveFileLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "clocks.yaml")

	missing := collection.New()
	require.NoError(t, missing.LoadFile(path))
	assert.Equal(t, 1, missing.Len(), "a missing file restores one default clock")

	src := collection.New(styleWithCount(t, 3), styleWithCount(t, 4))
	require.NoError(t, src.SaveFile(path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	dst := collection.New()
	require.NoError(t, dst.LoadFile(path))
	assert.Equal(t, []int{3, 4}, counts(dst))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".clocks.yaml.*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temporary files are cleaned up")
}
