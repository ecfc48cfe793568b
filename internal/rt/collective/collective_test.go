package collective

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanges(t *testing.T) {
	tests := []struct {
		name   string
		nelems int
		parts  int
		want   []Range
	}{
		{name: "even split", nelems: 8, parts: 4, want: []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{name: "remainder spread", nelems: 10, parts: 4, want: []Range{{0, 3}, {3, 6}, {6, 8}, {8, 10}}},
		{name: "fewer elements than parts", nelems: 3, parts: 16, want: []Range{{0, 1}, {1, 2}, {2, 3}}},
		{name: "single part", nelems: 5, parts: 1, want: []Range{{0, 5}}},
		{name: "no elements", nelems: 0, parts: 4, want: nil},
		{name: "no parts", nelems: 4, parts: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ranges(tt.nelems, tt.parts)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestRangesCoverage is the property check: for many (nelems, parts) pairs
// the ranges tile [0, nelems) exactly.
func TestRangesCoverage(t *testing.T) {
	for nelems := 1; nelems <= 40; nelems++ {
		for parts := 1; parts <= 20; parts++ {
			rs := Ranges(nelems, parts)
			require.NotEmpty(t, rs)
			lo := 0
			for _, r := range rs {
				require.Equal(t, lo, r.Lo, "nelems=%d parts=%d", nelems, parts)
				require.Greater(t, r.Hi, r.Lo)
				lo = r.Hi
			}
			require.Equal(t, nelems, lo, "nelems=%d parts=%d", nelems, parts)
		}
	}
}

func TestAccumulate32(t *testing.T) {
	pack := func(vals ...int32) []byte {
		b := make([]byte, len(vals)*4)
		for i, v := range vals {
			binary.LittleEndian.PutUint32(b[i*4:], uint32(v))
		}
		return b
	}

	dst := pack(1, -2, 3)
	Accumulate(dst, pack(10, 20, -30), 4)
	assert.Equal(t, pack(11, 18, -27), dst)
}

func TestAccumulate64(t *testing.T) {
	pack := func(vals ...int64) []byte {
		b := make([]byte, len(vals)*8)
		for i, v := range vals {
			binary.LittleEndian.PutUint64(b[i*8:], uint64(v))
		}
		return b
	}

	dst := pack(1 << 40, -5)
	Accumulate(dst, pack(1<<40, 6), 8)
	assert.Equal(t, pack(1<<41, 1), dst)
}

func TestTotal(t *testing.T) {
	assert.Equal(t, int32(6), Total([]int32{1, 2, 3}))
	assert.Equal(t, int64(0), Total([]int64(nil)))
	assert.Equal(t, uint64(3), Total([]uint64{1, 2}))
}

func TestExpectedSum(t *testing.T) {
	assert.Equal(t, []int32{6, 6, 6, 6}, ExpectedSum[int32](4, 4))
	assert.Equal(t, []int64{0, 0}, ExpectedSum[int64](1, 2))
}
