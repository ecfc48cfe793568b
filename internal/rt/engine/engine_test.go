package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/xbgas/internal/rt/platform"
	"github.com/kolkov/xbgas/internal/rt/pool"
	"github.com/kolkov/xbgas/internal/rt/rterr"
	"github.com/kolkov/xbgas/internal/rt/transfer"
)

func newTestEngine(t *testing.T, npes int) *Engine {
	t.Helper()
	e, err := New(Config{Platform: platform.NewEmulated(npes, 1<<16)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestNewTooManyPEs(t *testing.T) {
	_, err := New(Config{Platform: platform.NewEmulated(pool.Capacity+1, 1<<16)})
	require.ErrorIs(t, err, rterr.ErrTooManyPEs)
}

func TestQueries(t *testing.T) {
	e := newTestEngine(t, 4)
	assert.Equal(t, 0, e.MyPE())
	assert.Equal(t, 4, e.NumPEs())
}

func TestCloseSemantics(t *testing.T) {
	e, err := New(Config{Platform: platform.NewEmulated(2, 1<<12)})
	require.NoError(t, err)

	require.NoError(t, e.Close())
	assert.ErrorIs(t, e.Close(), rterr.ErrClosed)

	assert.Equal(t, -1, e.MyPE())
	assert.Equal(t, -1, e.NumPEs())
	assert.ErrorIs(t, e.Barrier(), rterr.ErrClosed)
	_, err = e.Alloc(16)
	assert.ErrorIs(t, err, rterr.ErrClosed)
	assert.False(t, e.AddrAccessible(platform.DefaultStartAddr, 0))
}

func TestAllocFreeAccessible(t *testing.T) {
	e := newTestEngine(t, 4)

	addr, err := e.Alloc(64)
	require.NoError(t, err)
	assert.Equal(t, 1, e.LiveAllocations())

	// The symmetric block is reachable on every PE.
	for pe := 0; pe < 4; pe++ {
		assert.True(t, e.AddrAccessible(addr, pe), "pe %d", pe)
		assert.True(t, e.AddrAccessible(addr+63, pe), "pe %d end", pe)
		assert.False(t, e.AddrAccessible(addr+64, pe), "pe %d past end", pe)
	}

	require.NoError(t, e.Free(addr))
	assert.Zero(t, e.LiveAllocations())
	assert.False(t, e.AddrAccessible(addr, 0))

	assert.ErrorIs(t, e.Free(addr), rterr.ErrDoubleFree)
	assert.ErrorIs(t, e.Free(addr+1024), rterr.ErrUntrackedFree)
}

func TestPutGetRoundTrip(t *testing.T) {
	e := newTestEngine(t, 4)

	addr, err := e.Alloc(256)
	require.NoError(t, err)

	src := []int64{11, -22, 33, -44}
	buf := make([]byte, len(src)*8)
	transfer.Encode(buf, src)

	for pe := 0; pe < 4; pe++ {
		require.NoError(t, e.PutBytes(buf, 8, addr, len(src), 2, pe))

		out := make([]byte, len(buf))
		require.NoError(t, e.GetBytes(out, 8, addr, len(src), 2, pe))

		got := make([]int64, len(src))
		transfer.Decode(got, out)
		assert.Equal(t, src, got, "pe %d", pe)
	}
}

func TestTransferBoundsRejection(t *testing.T) {
	e := newTestEngine(t, 4)

	partSize := uint64(1<<16) / 4
	addr, err := e.Alloc(64)
	require.NoError(t, err)
	buf := make([]byte, 1024)

	// A span reaching past the partition end must fail for every offset
	// beyond the boundary.
	nelems := int(partSize/8) + 1
	err = e.GetBytes(make([]byte, nelems*8), 8, addr, nelems, 1, 1)
	assert.ErrorIs(t, err, rterr.ErrOutOfRange)

	// Spans that start in the tail bytes of the partition and spill over.
	for _, tail := range []uint64{8, 16, 24} {
		err = e.PutBytes(buf, 8, addr+partSize-tail, 4, 1, 1)
		assert.ErrorIs(t, err, rterr.ErrOutOfRange, "tail %d", tail)
	}

	// An address past the emulated global region never resolves.
	err = e.PutBytes(buf, 8, platform.DefaultStartAddr+1<<16, 4, 1, 1)
	assert.ErrorIs(t, err, rterr.ErrOutOfRange)

	err = e.GetBytes(buf, 8, addr, 4, 0, 1)
	assert.ErrorIs(t, err, rterr.ErrInvalidStride)

	err = e.GetBytes(buf, 8, addr, 4, 1, 7)
	assert.ErrorIs(t, err, rterr.ErrInvalidPE)
}

func TestBroadcastDistinctDest(t *testing.T) {
	e := newTestEngine(t, 3)

	src, err := e.Alloc(64)
	require.NoError(t, err)
	dest, err := e.Alloc(64)
	require.NoError(t, err)

	want := []int32{7, 8, 9, 10}
	buf := make([]byte, len(want)*4)
	transfer.Encode(buf, want)
	require.NoError(t, e.PutBytes(buf, 4, src, len(want), 1, 0))

	require.NoError(t, e.Broadcast(4, dest, src, len(want), 1, 0))

	// Every PE, the root included, must hold the data at dest.
	for pe := 0; pe < 3; pe++ {
		out := make([]byte, len(buf))
		require.NoError(t, e.GetBytes(out, 4, dest, len(want), 1, pe))
		got := make([]int32, len(want))
		transfer.Decode(got, out)
		assert.Equal(t, want, got, "pe %d", pe)
	}
}

func TestReduceRemainderRanges(t *testing.T) {
	// 5 elements over 3 PEs exercises uneven range assignment.
	e := newTestEngine(t, 3)

	src, err := e.Alloc(64)
	require.NoError(t, err)
	dest, err := e.Alloc(64)
	require.NoError(t, err)

	for pe := 0; pe < 3; pe++ {
		vals := []int32{int32(pe), int32(pe * 2), int32(pe * 3), int32(pe * 4), int32(pe * 5)}
		buf := make([]byte, len(vals)*4)
		transfer.Encode(buf, vals)
		require.NoError(t, e.PutBytes(buf, 4, src, len(vals), 1, pe))
	}

	require.NoError(t, e.ReduceSum(4, dest, src, 5, 1, 0))

	out := make([]byte, 5*4)
	require.NoError(t, e.GetBytes(out, 4, dest, 5, 1, 0))
	got := make([]int32, 5)
	transfer.Decode(got, out)
	// Column i sums pe*(i+1) over pe in {0,1,2} = 3*(i+1).
	assert.Equal(t, []int32{3, 6, 9, 12, 15}, got)
}

func TestBarrierCompletes(t *testing.T) {
	e := newTestEngine(t, 8)
	for i := 0; i < 5; i++ {
		require.NoError(t, e.Barrier())
	}
}
