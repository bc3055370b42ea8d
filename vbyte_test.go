package boolidx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVbyteRoundTrip(t *testing.T) {
	cases := []uint64{
		0, 1, 2, 127, 128, 129, 255, 256,
		1 << 14, 1<<14 - 1, 1<<21 + 5,
		math.MaxUint32,
		math.MaxUint64,
		math.MaxUint64 - 1,
	}
	for _, n := range cases {
		buf := appendVbyte(nil, n)
		require.LessOrEqual(t, len(buf), maxVbyteLen)
		require.Equal(t, sizeVbyte(n), len(buf))

		got, consumed, err := readVbyte(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), consumed)
		require.Equal(t, n, got)
	}
}

func TestVbyteMultipleValuesBackToBack(t *testing.T) {
	values := []uint64{0, 300, 1, 70000, 5}
	var buf []byte
	for _, v := range values {
		buf = appendVbyte(buf, v)
	}
	r := vbyteReader{}
	r.reset(buf)
	for _, want := range values {
		require.False(t, r.done())
		got, err := r.next()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.True(t, r.done())
}

func TestVbyteTruncated(t *testing.T) {
	buf := appendVbyte(nil, 1<<20)
	_, _, err := readVbyte(buf[:len(buf)-1])
	require.ErrorIs(t, err, ErrTruncated)
}
