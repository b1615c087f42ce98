package monitor

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_ReplaceStartsMonitors(t *testing.T) {
	h := newHarness()
	h.fetcher.Players("a", "A", 1).Players("b", "B", 2)

	g := NewGroup(h.env(false), NewJitter(55, 65, rand.New(rand.NewPCG(1, 1))))
	defer g.Close()
	g.Replace([]string{"a", "b", "a"})

	assert.Equal(t, []string{"a", "b"}, g.IDs())
	assert.Equal(t, 2, g.Len())

	snaps := g.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "A", snaps[0].Name)
	assert.Equal(t, "B", snaps[1].Name)
	for _, s := range snaps {
		assert.GreaterOrEqual(t, s.Interval, 55)
		assert.LessOrEqual(t, s.Interval, 65)
	}
}

func TestGroup_ReplaceDestroysOldMonitors(t *testing.T) {
	h := newHarness()
	h.fetcher.Players("a", "A", 1).Players("b", "B", 2)

	g := NewGroup(h.env(false), NewJitter(10, 10, nil))
	defer g.Close()
	g.Replace([]string{"a"})
	old, ok := g.Get("a")
	require.True(t, ok)

	g.Replace([]string{"a", "b"})
	fresh, ok := g.Get("a")
	require.True(t, ok)

	assert.NotSame(t, old, fresh, "monitors are recreated, not reused")
	assert.ErrorIs(t, old.ManualRefresh(), ErrClosed)
	assert.Equal(t, 4, h.clock.Pending(), "only the new monitors hold timers")

	h.clock.Advance(10 * time.Second)
	assert.Equal(t, 3, h.fetcher.Calls("a"))
}

func TestGroup_RefreshAllSkipsDown(t *testing.T) {
	h := newHarness()
	h.fetcher.Players("a", "A", 1).Fail("bad", notFound("bad"))

	g := NewGroup(h.env(false), NewJitter(30, 30, nil))
	defer g.Close()
	g.Replace([]string{"a", "bad"})

	assert.Equal(t, 1, g.RefreshAll())
	assert.Equal(t, 2, h.fetcher.Calls("a"))
	assert.Equal(t, 1, h.fetcher.Calls("bad"))
}

func TestGroup_Close(t *testing.T) {
	h := newHarness()
	h.fetcher.Players("a", "A", 1)

	g := NewGroup(h.env(false), nil)
	g.Replace([]string{"a"})
	g.Close()

	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, h.clock.Pending())
	_, ok := g.Get("a")
	assert.False(t, ok)
}

func TestGroup_ApplyIgnoresStaleLists(t *testing.T) {
	h := newHarness()
	h.fetcher.Players("a", "A", 1).Players("b", "B", 2)

	g := NewGroup(h.env(false), NewJitter(10, 10, nil))
	defer g.Close()

	// The newer list lands first; the older one must not overwrite it.
	assert.True(t, g.Apply(2, []string{"b"}))
	assert.False(t, g.Apply(1, []string{"a"}))
	assert.False(t, g.Apply(2, []string{"a"}))

	assert.Equal(t, []string{"b"}, g.IDs())
	assert.Equal(t, 0, h.fetcher.Calls("a"), "a stale list starts nothing")
	assert.Equal(t, 2, h.clock.Pending())

	assert.True(t, g.Apply(3, []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, g.IDs())
}

func TestGroup_ApplyAfterCloseIgnored(t *testing.T) {
	h := newHarness()
	h.fetcher.Players("a", "A", 1)

	g := NewGroup(h.env(false), nil)
	g.Close()

	assert.False(t, g.Apply(1, []string{"a"}))
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, h.fetcher.Calls("a"))
	assert.Equal(t, 0, h.clock.Pending())
}
