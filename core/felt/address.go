package felt

// Address identifies a deployed contract account. The zero Address is
// reserved for the "system" caller (spec.md §3).
type Address struct {
	f Felt
}

// SystemAddress is the reserved address 0.
var SystemAddress = Address{}

// AddressFromFelt wraps a field element as an Address.
func AddressFromFelt(f Felt) Address {
	return Address{f: f}
}

// AddressFromBytes decodes 32 big-endian bytes into an Address.
func AddressFromBytes(b []byte) Address {
	return Address{f: FromBytes(b)}
}

// Felt returns the underlying field element.
func (a Address) Felt() Felt {
	return a.f
}

// Bytes serializes the address as 32 big-endian bytes.
func (a Address) Bytes() [32]byte {
	return a.f.Bytes()
}

// IsZero reports whether this is the system address.
func (a Address) IsZero() bool {
	return a.f.IsZero()
}

// Equal reports whether two addresses denote the same account.
func (a Address) Equal(b Address) bool {
	return a.f.Equal(b.f)
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return a.f.Short()
}

// ClassHash names a compiled contract class. It is stored as a 32-byte
// value carrying a Felt, but kept distinct from Address and Felt at the
// type level so the two are never accidentally interchanged.
type ClassHash [32]byte

// ZeroClassHash signals "no class deployed at this address".
var ZeroClassHash = ClassHash{}

// ClassHashFromFelt embeds a field element into a 32-byte class hash.
func ClassHashFromFelt(f Felt) ClassHash {
	return ClassHash(f.Bytes())
}

// Felt recovers the field element embedded in the class hash.
func (c ClassHash) Felt() Felt {
	return FromBytes(c[:])
}

// IsZero reports whether no class is named by this hash.
func (c ClassHash) IsZero() bool {
	return c == ZeroClassHash
}

// String implements fmt.Stringer.
func (c ClassHash) String() string {
	return c.Felt().Short()
}

// StorageKey is the 32-byte key half of a (Address, key) storage entry.
type StorageKey [32]byte

// StorageKeyFromFelt embeds a field element into a storage key.
func StorageKeyFromFelt(f Felt) StorageKey {
	return StorageKey(f.Bytes())
}

// Felt recovers the field element embedded in the storage key.
func (k StorageKey) Felt() Felt {
	return FromBytes(k[:])
}

// StorageEntry is the pair (Address, key) identifying one storage cell
// (spec.md §3 "Storage entry").
type StorageEntry struct {
	Address Address
	Key     StorageKey
}
