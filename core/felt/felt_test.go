package felt

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSubRoundTrip(t *testing.T) {
	a := FromUint64(42)
	b := FromUint64(7)

	sum := a.Add(b)
	back := sum.Sub(b)

	require.True(t, back.Equal(a))
}

func TestMulWrapsAtPrime(t *testing.T) {
	// Prime - 1, squared, must reduce back into the field.
	pMinusOne := FromBigInt(new(big.Int).Sub(Prime, big.NewInt(1)))
	sq := pMinusOne.Mul(pMinusOne)
	require.False(t, sq.BigInt().Cmp(Prime) >= 0)
}

func TestBytesRoundTrip(t *testing.T) {
	f := FromUint64(123456789)
	b := f.Bytes()
	require.Len(t, b, 32)
	require.True(t, FromBytes(b[:]).Equal(f))
}

func TestZeroIsZero(t *testing.T) {
	require.True(t, Zero.IsZero())
	require.False(t, One.IsZero())
}
