package state

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// Reader is the read-only capability of spec.md §4.2: a view of the state
// committed by a prior block. Missing cells return the type's zero value;
// GetContractClass may fail with ErrMissingClass only when the hash is
// unknown to both the registry and any transitive reader.
//
// The in-memory test scaffold (testing/teststate) and a CachedState both
// satisfy Reader, letting a CachedState nest transactional children over
// either a committed chain state or another CachedState. The RPC-backed
// reader that fetches remote chain state is an external collaborator
// (spec.md §1 non-goal); only this interface shape is pinned here.
type Reader interface {
	GetClassHashAt(addr felt.Address) (felt.ClassHash, error)
	GetNonceAt(addr felt.Address) (felt.Felt, error)
	GetStorageAt(entry felt.StorageEntry) (felt.Felt, error)
	GetCompiledClassHashAt(hash felt.ClassHash) (felt.ClassHash, error)
	GetContractClass(hash felt.ClassHash) (*class.CompiledClass, error)
}
