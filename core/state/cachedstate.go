package state

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var logState = logger.GetOrCreate("core/state/cachedstate")

// CachedState composes a read-only Reader with a write cache and a shared
// class registry, per spec.md §4.3. It is single-owner: a running
// transaction holds one CachedState exclusively, while its shared
// collaborators (the registry, and whatever Reader sits underneath) must
// be safe for concurrent reads (spec.md §5 "Shared resources").
type CachedState struct {
	reader   Reader
	cache    *cache
	registry *ClassRegistry
	// classOverrides shadows the registry with classes declared within
	// this scope but not yet visible to sibling scopes.
	classOverrides map[felt.ClassHash]*class.CompiledClass
}

// NewCachedState builds a CachedState reading through to reader and
// declaring classes into registry.
func NewCachedState(reader Reader, registry *ClassRegistry) *CachedState {
	return &CachedState{
		reader:         reader,
		cache:          newCache(),
		registry:       registry,
		classOverrides: make(map[felt.ClassHash]*class.CompiledClass),
	}
}

// GetClassHashAt is the memoized read-through described in spec.md §3.
func (s *CachedState) GetClassHashAt(addr felt.Address) (felt.ClassHash, error) {
	if v, ok := s.cache.classHashWrites[addr]; ok {
		return v, nil
	}
	if v, ok := s.cache.classHashInitial[addr]; ok {
		return v, nil
	}
	v, err := s.reader.GetClassHashAt(addr)
	if err != nil {
		return felt.ZeroClassHash, err
	}
	s.cache.classHashInitial[addr] = v
	return v, nil
}

// GetNonceAt is the memoized read-through for account nonces.
func (s *CachedState) GetNonceAt(addr felt.Address) (felt.Felt, error) {
	if v, ok := s.cache.nonceWrites[addr]; ok {
		return v, nil
	}
	if v, ok := s.cache.nonceInitial[addr]; ok {
		return v, nil
	}
	v, err := s.reader.GetNonceAt(addr)
	if err != nil {
		return felt.Zero, err
	}
	s.cache.nonceInitial[addr] = v
	return v, nil
}

// GetStorageAt is the memoized read-through for a storage cell.
func (s *CachedState) GetStorageAt(entry felt.StorageEntry) (felt.Felt, error) {
	if v, ok := s.cache.storageWrites[entry]; ok {
		return v, nil
	}
	if v, ok := s.cache.storageInitial[entry]; ok {
		return v, nil
	}
	v, err := s.reader.GetStorageAt(entry)
	if err != nil {
		return felt.Zero, err
	}
	s.cache.storageInitial[entry] = v
	return v, nil
}

// GetCompiledClassHashAt is the memoized read-through for a class's
// compiled-class hash (Cairo 1 Sierra -> CASM binding).
func (s *CachedState) GetCompiledClassHashAt(hash felt.ClassHash) (felt.ClassHash, error) {
	if v, ok := s.cache.compiledClassHashWrites[hash]; ok {
		return v, nil
	}
	if v, ok := s.cache.compiledClassHashInitial[hash]; ok {
		return v, nil
	}
	v, err := s.reader.GetCompiledClassHashAt(hash)
	if err != nil {
		return felt.ZeroClassHash, err
	}
	s.cache.compiledClassHashInitial[hash] = v
	return v, nil
}

// GetContractClass resolves hash against this scope's overrides, then the
// shared registry, then falls through to the underlying reader — the
// reader only fails MissingClass when none of the three know the hash.
func (s *CachedState) GetContractClass(hash felt.ClassHash) (*class.CompiledClass, error) {
	if c, ok := s.classOverrides[hash]; ok {
		return c, nil
	}
	if c, ok := s.registry.Get(hash); ok {
		return c, nil
	}
	return s.reader.GetContractClass(hash)
}

// SetStorageAt writes v into the write-set.
func (s *CachedState) SetStorageAt(entry felt.StorageEntry, v felt.Felt) {
	s.cache.storageWrites[entry] = v
}

// SetClassHashAt writes h into the write-set; fails if addr is the system
// address.
func (s *CachedState) SetClassHashAt(addr felt.Address, h felt.ClassHash) error {
	if addr.IsZero() {
		return ErrContractAddressOutOfRange
	}
	s.cache.classHashWrites[addr] = h
	return nil
}

// DeployContract fails if addr is the system address or if a class is
// already deployed there; otherwise it writes h, per spec.md §4.3.
func (s *CachedState) DeployContract(addr felt.Address, h felt.ClassHash) error {
	if addr.IsZero() {
		return ErrContractAddressOutOfRange
	}

	current, err := s.GetClassHashAt(addr)
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return ErrContractAddressUnavailable
	}

	s.cache.classHashWrites[addr] = h
	logState.Trace("contract deployed", "address", addr.String(), "classHash", h.String())
	return nil
}

// IncrementNonce is the only way a nonce moves: read then write nonce+1.
func (s *CachedState) IncrementNonce(addr felt.Address) error {
	current, err := s.GetNonceAt(addr)
	if err != nil {
		return err
	}
	s.cache.nonceWrites[addr] = current.Add(felt.One)
	return nil
}

// SetCompiledClassHashAt binds a Sierra class hash to its compiled CASM
// hash (used by Declare v2+).
func (s *CachedState) SetCompiledClassHashAt(hash, compiled felt.ClassHash) {
	s.cache.compiledClassHashWrites[hash] = compiled
}

// SetContractClass inserts c into this scope's override map, shadowing the
// shared registry until the scope is committed.
func (s *CachedState) SetContractClass(hash felt.ClassHash, c *class.CompiledClass) {
	s.classOverrides[hash] = c
}

// CreateTransactional returns a child state whose reader is s and whose
// writes start empty, per spec.md §4.3. The child may be merged back into
// s via ApplyStateUpdate, or simply discarded on failure.
func (s *CachedState) CreateTransactional() *CachedState {
	child := NewCachedState(s, s.registry)
	for k, v := range s.classOverrides {
		child.classOverrides[k] = v
	}
	return child
}

// ApplyStateUpdate merges a child's state-diff into s.writes, and promotes
// any classes the child declared into s's own override map.
func (s *CachedState) ApplyStateUpdate(child *CachedState) {
	diff := child.cache.diff()

	for addr, h := range diff.ClassHashUpdates {
		s.cache.classHashWrites[addr] = h
	}
	for hash, compiled := range diff.CompiledClassHashUpdates {
		s.cache.compiledClassHashWrites[hash] = compiled
	}
	for addr, n := range diff.NonceUpdates {
		s.cache.nonceWrites[addr] = n
	}
	for addr, keys := range diff.StorageUpdates {
		for key, v := range keys {
			s.cache.storageWrites[felt.StorageEntry{Address: addr, Key: key}] = v
		}
	}
	for hash, c := range child.classOverrides {
		s.classOverrides[hash] = c
	}
}

// UpdateInitialValues folds writes into initialValues and clears writes —
// used when this scope's own child has just been committed and s wants to
// treat its own accumulated writes as the new baseline. Idempotent when
// writes is empty, per spec.md §8 invariant 7.
func (s *CachedState) UpdateInitialValues() {
	s.cache.updateInitialValues()
}

// StateDiff returns the commitable projection of this scope's writes.
func (s *CachedState) StateDiff() *StateDiff {
	return s.cache.diff()
}

// FeeTokenPair names the fee-token contract and the account paying the fee,
// passed to CountActualStateChanges so the fee-balance cell is always
// counted as modified even when its value happens not to change.
type FeeTokenPair struct {
	FeeTokenAddress felt.Address
	Payer           felt.Address
}

// CountActualStateChanges returns the shape in spec.md §4.3. When pair is
// non-nil, the fee-balance cell is always counted as modified.
func (s *CachedState) CountActualStateChanges(pair *FeeTokenPair) (nStorageUpdates, nClassHashUpdates, nCompiledClassHashUpdates, nModifiedContracts int) {
	var changes actualStateChanges
	if pair != nil {
		changes = s.cache.countActualStateChanges(pair.FeeTokenAddress, pair.Payer, true)
	} else {
		changes = s.cache.countActualStateChanges(felt.Address{}, felt.Address{}, false)
	}
	return changes.NStorageUpdates, changes.NClassHashUpdates, changes.NCompiledClassHashUpdates, changes.NModifiedContracts
}
