package yadbf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccumulatorTakeRetainsRemainder(t *testing.T) {
	var a accumulator
	a.append([]byte{1, 2, 3})
	a.append([]byte{4, 5})
	require.Equal(t, 5, a.size())

	require.Equal(t, []byte{1, 2}, a.take(2))
	require.Equal(t, 3, a.size())
	require.Equal(t, []byte{3, 4, 5}, a.take(3))
	require.Equal(t, 0, a.size())
}

func TestAccumulatorTakeReturnsOwnedBytes(t *testing.T) {
	var a accumulator
	a.append([]byte{1, 2, 3, 4})
	taken := a.take(2)
	a.append([]byte{9, 9, 9, 9})
	a.take(4)
	require.Equal(t, []byte{1, 2}, taken)
}

func TestAccumulatorHasHeader(t *testing.T) {
	declared := make([]byte, 2)
	binary.LittleEndian.PutUint16(declared, 97)

	var a accumulator
	a.append(make([]byte, 8))
	a.append(declared)
	a.append(make([]byte, 22))
	require.Equal(t, 32, a.size())
	require.False(t, a.hasHeader())

	a.append(make([]byte, 64))
	require.False(t, a.hasHeader())
	a.append(make([]byte, 1))
	require.True(t, a.hasHeader())
}

func TestAccumulatorHasRecord(t *testing.T) {
	h := &Header{NumberOfBytesInRecord: 4}
	var a accumulator
	a.append([]byte{1, 2, 3})
	require.False(t, a.hasRecord(h))
	a.append([]byte{4})
	require.True(t, a.hasRecord(h))
}
