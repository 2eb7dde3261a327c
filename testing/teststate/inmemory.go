// Package teststate implements C12: a fixture scaffold for end-to-end
// transaction tests, grounded on the teacher's BlockchainHookMock-style
// in-memory accounts map (arwendebug/world.go, mock/context) adapted from
// a WASM account store to a Starknet state.Reader.
package teststate

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
)

// InMemoryReader is a state.Reader backed by plain maps, standing in for
// the chain's committed state a CachedState reads through. It implements
// only Reader; all mutation during a test goes through the CachedState
// built on top of it, exactly as a real committed-state backend would be
// used (spec.md §3's "reader" collaborator).
type InMemoryReader struct {
	classHashes         map[felt.Address]felt.ClassHash
	nonces              map[felt.Address]felt.Felt
	storage             map[felt.StorageEntry]felt.Felt
	compiledClassHashes map[felt.ClassHash]felt.ClassHash
	classes             map[felt.ClassHash]*class.CompiledClass
}

// NewInMemoryReader builds an empty committed-state snapshot.
func NewInMemoryReader() *InMemoryReader {
	return &InMemoryReader{
		classHashes:         make(map[felt.Address]felt.ClassHash),
		nonces:              make(map[felt.Address]felt.Felt),
		storage:             make(map[felt.StorageEntry]felt.Felt),
		compiledClassHashes: make(map[felt.ClassHash]felt.ClassHash),
		classes:             make(map[felt.ClassHash]*class.CompiledClass),
	}
}

func (r *InMemoryReader) GetClassHashAt(addr felt.Address) (felt.ClassHash, error) {
	if h, ok := r.classHashes[addr]; ok {
		return h, nil
	}
	return felt.ZeroClassHash, nil
}

func (r *InMemoryReader) GetNonceAt(addr felt.Address) (felt.Felt, error) {
	if n, ok := r.nonces[addr]; ok {
		return n, nil
	}
	return felt.Zero, nil
}

func (r *InMemoryReader) GetStorageAt(entry felt.StorageEntry) (felt.Felt, error) {
	if v, ok := r.storage[entry]; ok {
		return v, nil
	}
	return felt.Zero, nil
}

func (r *InMemoryReader) GetCompiledClassHashAt(hash felt.ClassHash) (felt.ClassHash, error) {
	if v, ok := r.compiledClassHashes[hash]; ok {
		return v, nil
	}
	return felt.ZeroClassHash, nil
}

func (r *InMemoryReader) GetContractClass(hash felt.ClassHash) (*class.CompiledClass, error) {
	if c, ok := r.classes[hash]; ok {
		return c, nil
	}
	return nil, state.ErrMissingClass
}

// SeedClass pre-commits a compiled class, as if already declared in an
// earlier block.
func (r *InMemoryReader) SeedClass(hash felt.ClassHash, c *class.CompiledClass) {
	r.classes[hash] = c
}

// SeedDeployedContract pre-commits a deployed class hash at addr, as if
// already deployed in an earlier block.
func (r *InMemoryReader) SeedDeployedContract(addr felt.Address, hash felt.ClassHash) {
	r.classHashes[addr] = hash
}

// SeedNonce pre-commits an account's nonce.
func (r *InMemoryReader) SeedNonce(addr felt.Address, n felt.Felt) {
	r.nonces[addr] = n
}

// SeedStorage pre-commits one storage cell.
func (r *InMemoryReader) SeedStorage(entry felt.StorageEntry, v felt.Felt) {
	r.storage[entry] = v
}
