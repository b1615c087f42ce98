package testing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeFetcher_ScriptRepeatsLast(t *testing.T) {
	f := NewFakeFetcher().Players("1", "srv", 3, 4)
	ctx := context.Background()

	for _, want := range []int{3, 4, 4} {
		s, err := f.Fetch(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, want, s.Players)
		assert.Equal(t, "srv", s.Name)
	}
	assert.Equal(t, 3, f.Calls("1"))
	assert.Len(t, f.Contexts(), 3)
}

func TestFakeFetcher_Fail(t *testing.T) {
	boom := errors.New("boom")
	f := NewFakeFetcher().Fail("1", boom)

	s, err := f.Fetch(context.Background(), "1")
	assert.Nil(t, s)
	assert.ErrorIs(t, err, boom)
}

func TestFakeFetcher_Unscripted(t *testing.T) {
	_, err := NewFakeFetcher().Fetch(context.Background(), "nope")
	assert.Error(t, err)
}

func TestFakeFetcher_ReturnsCopies(t *testing.T) {
	f := NewFakeFetcher().Players("1", "srv", 3)
	a, _ := f.Fetch(context.Background(), "1")
	a.Players = 100
	b, _ := f.Fetch(context.Background(), "1")
	assert.Equal(t, 3, b.Players)
}

func TestManualExecutor(t *testing.T) {
	var e ManualExecutor
	var order []int

	e.Go(func() {
		order = append(order, 1)
		e.Go(func() { order = append(order, 3) })
	})
	e.Go(func() { order = append(order, 2) })
	assert.Equal(t, 2, e.Pending())
	assert.Empty(t, order)

	e.RunAll()
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.False(t, e.RunNext())
}

func TestRecorder(t *testing.T) {
	var r Recorder[int]
	_, ok := r.Last()
	assert.False(t, ok)

	r.Record(1)
	r.Record(2)
	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, 2, last)
	assert.Equal(t, []int{1, 2}, r.All())
	assert.Equal(t, 2, r.Len())

	r.Reset()
	assert.Zero(t, r.Len())
}
