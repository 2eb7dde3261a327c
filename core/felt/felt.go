// Package felt implements the 252-bit prime-field arithmetic that every
// on-chain value in the engine is expressed in.
package felt

import (
	"fmt"
	"math/big"
)

// Felt is an element of the Stark field, reduced modulo Prime.
type Felt struct {
	v big.Int
}

// Prime is the Stark field modulus: 2^251 + 17*2^192 + 1.
var Prime *big.Int

func init() {
	Prime = new(big.Int)
	Prime.SetString("800000000000011000000000000000000000000000000000000000000000001", 16)
}

// Zero is the additive identity.
var Zero = Felt{}

// One is the multiplicative identity.
var One = FromUint64(1)

// FromUint64 builds a Felt from a small unsigned integer.
func FromUint64(n uint64) Felt {
	var f Felt
	f.v.SetUint64(n)
	return f
}

// FromBigInt reduces an arbitrary big.Int modulo Prime.
func FromBigInt(n *big.Int) Felt {
	var f Felt
	f.v.Mod(n, Prime)
	if f.v.Sign() < 0 {
		f.v.Add(&f.v, Prime)
	}
	return f
}

// FromBytes decodes 32 big-endian bytes into a Felt, reduced modulo Prime.
func FromBytes(b []byte) Felt {
	n := new(big.Int).SetBytes(b)
	return FromBigInt(n)
}

// Bytes serializes the Felt as 32 big-endian bytes.
func (f Felt) Bytes() [32]byte {
	var out [32]byte
	b := f.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// BigInt returns a copy of the underlying big.Int, always in [0, Prime).
func (f Felt) BigInt() *big.Int {
	return new(big.Int).Set(&f.v)
}

// Add returns f + g mod Prime.
func (f Felt) Add(g Felt) Felt {
	var r big.Int
	r.Add(&f.v, &g.v)
	return FromBigInt(&r)
}

// Sub returns f - g mod Prime.
func (f Felt) Sub(g Felt) Felt {
	var r big.Int
	r.Sub(&f.v, &g.v)
	return FromBigInt(&r)
}

// Mul returns f * g mod Prime.
func (f Felt) Mul(g Felt) Felt {
	var r big.Int
	r.Mul(&f.v, &g.v)
	return FromBigInt(&r)
}

// IsZero reports whether f is the additive identity.
func (f Felt) IsZero() bool {
	return f.v.Sign() == 0
}

// Equal reports whether f and g denote the same field element.
func (f Felt) Equal(g Felt) bool {
	return f.v.Cmp(&g.v) == 0
}

// Cmp compares f and g as non-negative integers (useful for deterministic
// ordering, e.g. sorting accessed storage keys).
func (f Felt) Cmp(g Felt) int {
	return f.v.Cmp(&g.v)
}

// Uint64 returns the low 64 bits of f, for callers that know the value fits.
func (f Felt) Uint64() uint64 {
	return f.v.Uint64()
}

// Short renders a truncated hex string, convenient for log fields.
func (f Felt) Short() string {
	s := f.v.Text(16)
	if len(s) > 12 {
		return "0x" + s[:6] + "…" + s[len(s)-6:]
	}
	return "0x" + s
}

// String implements fmt.Stringer.
func (f Felt) String() string {
	return fmt.Sprintf("0x%s", f.v.Text(16))
}
