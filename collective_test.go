package xbgas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/xbgas"
)

// TestBroadcastInt64 seeds the root PE with [1..8] and checks every PE's
// destination block, root included, since dest and src are distinct blocks.
func TestBroadcastInt64(t *testing.T) {
	rt := openTest(t, 4)

	src, err := rt.Alloc(256)
	require.NoError(t, err)
	dest, err := rt.Alloc(256)
	require.NoError(t, err)

	want := []int64{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, rt.PutInt64(want, src, len(want), 1, 0))
	require.NoError(t, rt.BroadcastInt64(dest, src, len(want), 1, 0))

	for pe := 0; pe < rt.NumPEs(); pe++ {
		got := make([]int64, len(want))
		require.NoError(t, rt.GetInt64(got, dest, len(want), 1, pe))
		assert.Equal(t, want, got, "pe %d", pe)
	}
}

// TestBroadcastInPlace uses the same address for dest and src: the root's
// block must survive untouched while every other PE receives the copy.
func TestBroadcastInPlace(t *testing.T) {
	rt := openTest(t, 4)

	addr, err := rt.Alloc(128)
	require.NoError(t, err)

	want := []int32{10, 20, 30, 40}
	require.NoError(t, rt.PutInt32(want, addr, len(want), 1, 2))
	require.NoError(t, rt.BroadcastInt32(addr, addr, len(want), 1, 2))

	for pe := 0; pe < rt.NumPEs(); pe++ {
		got := make([]int32, len(want))
		require.NoError(t, rt.GetInt32(got, addr, len(want), 1, pe))
		assert.Equal(t, want, got, "pe %d", pe)
	}
}

func TestBroadcastStrided(t *testing.T) {
	rt := openTest(t, 2)

	src, err := rt.Alloc(512)
	require.NoError(t, err)
	dest, err := rt.Alloc(512)
	require.NoError(t, err)

	want := []int64{7, 14, 21, 28, 35}
	require.NoError(t, rt.PutInt64(want, src, len(want), 3, 1))
	require.NoError(t, rt.BroadcastInt64(dest, src, len(want), 3, 1))

	for pe := 0; pe < 2; pe++ {
		got := make([]int64, len(want))
		require.NoError(t, rt.GetInt64(got, dest, len(want), 3, pe))
		assert.Equal(t, want, got, "pe %d", pe)
	}
}

func TestBroadcastInvalid(t *testing.T) {
	rt := openTest(t, 4)

	addr, err := rt.Alloc(64)
	require.NoError(t, err)

	assert.ErrorIs(t, rt.BroadcastInt64(addr, addr, 4, 0, 0), xbgas.ErrInvalidStride)
	assert.ErrorIs(t, rt.BroadcastInt64(addr, addr, 4, 1, 4), xbgas.ErrInvalidPE)
	assert.ErrorIs(t, rt.BroadcastInt64(addr, addr, 4, 1, -1), xbgas.ErrInvalidPE)

	partSize := uint64(1<<20) / 4
	past := addr + xbgas.Addr(partSize-8)
	assert.ErrorIs(t, rt.BroadcastInt64(addr, past, 4, 1, 0), xbgas.ErrOutOfRange)
	assert.ErrorIs(t, rt.BroadcastInt64(past, addr, 4, 1, 0), xbgas.ErrOutOfRange)
}

// TestReduceSumInt64 is the sum of per-PE constant blocks: with 4 PEs each
// holding [pe, pe, pe, pe], every destination element is 0+1+2+3 = 6.
func TestReduceSumInt64(t *testing.T) {
	rt := openTest(t, 4)

	src, err := rt.Alloc(256)
	require.NoError(t, err)
	dest, err := rt.Alloc(256)
	require.NoError(t, err)

	for pe := 0; pe < 4; pe++ {
		v := int64(pe)
		require.NoError(t, rt.PutInt64([]int64{v, v, v, v}, src, 4, 1, pe))
	}
	require.NoError(t, rt.ReduceSumInt64(dest, src, 4, 1, 2))

	got := make([]int64, 4)
	require.NoError(t, rt.GetInt64(got, dest, 4, 1, 2))
	assert.Equal(t, []int64{6, 6, 6, 6}, got)
}

// TestReduceSumInt32 varies elements within each PE so range splitting and
// the merge order both matter: PE p holds [p+1, 2(p+1), ..., n(p+1)], and
// element i of the result is (i+1) * sum(p+1) = (i+1)*10 for 4 PEs.
func TestReduceSumInt32(t *testing.T) {
	rt := openTest(t, 4)

	src, err := rt.Alloc(256)
	require.NoError(t, err)
	dest, err := rt.Alloc(256)
	require.NoError(t, err)

	const n = 6
	for pe := 0; pe < 4; pe++ {
		vals := make([]int32, n)
		for i := range vals {
			vals[i] = int32((i + 1) * (pe + 1))
		}
		require.NoError(t, rt.PutInt32(vals, src, n, 1, pe))
	}
	require.NoError(t, rt.ReduceSumInt32(dest, src, n, 1, 0))

	got := make([]int32, n)
	require.NoError(t, rt.GetInt32(got, dest, n, 1, 0))
	assert.Equal(t, []int32{10, 20, 30, 40, 50, 60}, got)
}

func TestReduceSumStrided(t *testing.T) {
	rt := openTest(t, 3)

	src, err := rt.Alloc(512)
	require.NoError(t, err)
	dest, err := rt.Alloc(512)
	require.NoError(t, err)

	const n = 5
	for pe := 0; pe < 3; pe++ {
		vals := make([]int64, n)
		for i := range vals {
			vals[i] = int64(pe + 1)
		}
		require.NoError(t, rt.PutInt64(vals, src, n, 2, pe))
	}
	require.NoError(t, rt.ReduceSumInt64(dest, src, n, 2, 1))

	got := make([]int64, n)
	require.NoError(t, rt.GetInt64(got, dest, n, 2, 1))
	assert.Equal(t, []int64{6, 6, 6, 6, 6}, got)
}

func TestReduceSumInvalid(t *testing.T) {
	rt := openTest(t, 2)

	addr, err := rt.Alloc(64)
	require.NoError(t, err)

	assert.ErrorIs(t, rt.ReduceSumInt64(addr, addr, 4, 0, 0), xbgas.ErrInvalidStride)
	assert.ErrorIs(t, rt.ReduceSumInt64(addr, addr, 4, 1, 2), xbgas.ErrInvalidPE)

	partSize := uint64(1<<20) / 2
	past := addr + xbgas.Addr(partSize-8)
	assert.ErrorIs(t, rt.ReduceSumInt64(addr, past, 4, 1, 0), xbgas.ErrOutOfRange)
	assert.ErrorIs(t, rt.ReduceSumInt64(past, addr, 4, 1, 0), xbgas.ErrOutOfRange)
}
