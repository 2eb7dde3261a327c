package state

import "github.com/lambdaclass/starknet-vm-go/core/felt"

// cache holds the two parallel maps per cell kind described in spec.md §3:
// initialValues (first-observed-from-reader values) and writes (values
// written by the current scope). It has no reader of its own — CachedState
// composes a cache with a Reader to implement read-through semantics.
type cache struct {
	classHashInitial map[felt.Address]felt.ClassHash
	classHashWrites  map[felt.Address]felt.ClassHash

	compiledClassHashInitial map[felt.ClassHash]felt.ClassHash
	compiledClassHashWrites  map[felt.ClassHash]felt.ClassHash

	nonceInitial map[felt.Address]felt.Felt
	nonceWrites  map[felt.Address]felt.Felt

	storageInitial map[felt.StorageEntry]felt.Felt
	storageWrites  map[felt.StorageEntry]felt.Felt
}

func newCache() *cache {
	return &cache{
		classHashInitial:         make(map[felt.Address]felt.ClassHash),
		classHashWrites:          make(map[felt.Address]felt.ClassHash),
		compiledClassHashInitial: make(map[felt.ClassHash]felt.ClassHash),
		compiledClassHashWrites:  make(map[felt.ClassHash]felt.ClassHash),
		nonceInitial:             make(map[felt.Address]felt.Felt),
		nonceWrites:              make(map[felt.Address]felt.Felt),
		storageInitial:           make(map[felt.StorageEntry]felt.Felt),
		storageWrites:            make(map[felt.StorageEntry]felt.Felt),
	}
}

// updateInitialValues folds writes into initialValues and clears writes,
// per spec.md §3 — used when a child scope is committed into its parent.
func (c *cache) updateInitialValues() {
	for k, v := range c.classHashWrites {
		c.classHashInitial[k] = v
	}
	c.classHashWrites = make(map[felt.Address]felt.ClassHash)

	for k, v := range c.compiledClassHashWrites {
		c.compiledClassHashInitial[k] = v
	}
	c.compiledClassHashWrites = make(map[felt.ClassHash]felt.ClassHash)

	for k, v := range c.nonceWrites {
		c.nonceInitial[k] = v
	}
	c.nonceWrites = make(map[felt.Address]felt.Felt)

	for k, v := range c.storageWrites {
		c.storageInitial[k] = v
	}
	c.storageWrites = make(map[felt.StorageEntry]felt.Felt)
}

// StateDiff is the commitable projection of a cached state: for each kind,
// writes \ initialValues (spec.md §3 "State diff").
type StateDiff struct {
	ClassHashUpdates         map[felt.Address]felt.ClassHash
	CompiledClassHashUpdates map[felt.ClassHash]felt.ClassHash
	NonceUpdates             map[felt.Address]felt.Felt
	// StorageUpdates is reshaped from (Address, key) -> value into
	// Address -> {key -> value}, per spec.md §3.
	StorageUpdates map[felt.Address]map[felt.StorageKey]felt.Felt
}

func newStateDiff() *StateDiff {
	return &StateDiff{
		ClassHashUpdates:         make(map[felt.Address]felt.ClassHash),
		CompiledClassHashUpdates: make(map[felt.ClassHash]felt.ClassHash),
		NonceUpdates:             make(map[felt.Address]felt.Felt),
		StorageUpdates:           make(map[felt.Address]map[felt.StorageKey]felt.Felt),
	}
}

// diff computes writes \ initialValues across every kind.
func (c *cache) diff() *StateDiff {
	d := newStateDiff()

	for addr, hash := range c.classHashWrites {
		if prior, ok := c.classHashInitial[addr]; !ok || prior != hash {
			d.ClassHashUpdates[addr] = hash
		}
	}
	for hash, compiled := range c.compiledClassHashWrites {
		if prior, ok := c.compiledClassHashInitial[hash]; !ok || prior != compiled {
			d.CompiledClassHashUpdates[hash] = compiled
		}
	}
	for addr, nonce := range c.nonceWrites {
		if prior, ok := c.nonceInitial[addr]; !ok || !prior.Equal(nonce) {
			d.NonceUpdates[addr] = nonce
		}
	}
	for entry, value := range c.storageWrites {
		if prior, ok := c.storageInitial[entry]; ok && prior.Equal(value) {
			continue
		}
		byAddr, ok := d.StorageUpdates[entry.Address]
		if !ok {
			byAddr = make(map[felt.StorageKey]felt.Felt)
			d.StorageUpdates[entry.Address] = byAddr
		}
		byAddr[entry.Key] = value
	}

	return d
}

// actualStateChanges is the §4.3 count_actual_state_changes shape.
type actualStateChanges struct {
	NStorageUpdates           int
	NClassHashUpdates         int
	NCompiledClassHashUpdates int
	NModifiedContracts        int
}

func (c *cache) countActualStateChanges(feeTokenAddress, payer felt.Address, chargeFee bool) actualStateChanges {
	d := c.diff()

	modified := make(map[felt.Address]struct{})
	for addr := range d.ClassHashUpdates {
		modified[addr] = struct{}{}
	}
	for addr := range d.NonceUpdates {
		modified[addr] = struct{}{}
	}
	storageUpdates := 0
	for addr, keys := range d.StorageUpdates {
		modified[addr] = struct{}{}
		storageUpdates += len(keys)
	}

	if chargeFee {
		modified[payer] = struct{}{}
		if _, ok := d.StorageUpdates[feeTokenAddress]; !ok {
			storageUpdates++
		}
	}

	return actualStateChanges{
		NStorageUpdates:           storageUpdates,
		NClassHashUpdates:         len(d.ClassHashUpdates),
		NCompiledClassHashUpdates: len(d.CompiledClassHashUpdates),
		NModifiedContracts:        len(modified),
	}
}
