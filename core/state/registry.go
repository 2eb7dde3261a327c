package state

import (
	"sync"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var logRegistry = logger.GetOrCreate("core/state/registry")

// ClassRegistry is the append-only class_hash -> CompiledClass mapping of
// spec.md §4.1. It is shared across concurrently-running transactions and
// therefore guards its map with a mutex, mirroring how the teacher's
// blockchain hook and compiled-code cache are shared read collaborators
// (arwen/contexts/blockchain.go SaveCompiledCode/GetCompiledCode).
type ClassRegistry struct {
	mu      sync.RWMutex
	classes map[felt.ClassHash]*class.CompiledClass
}

// NewClassRegistry builds an empty registry.
func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{
		classes: make(map[felt.ClassHash]*class.CompiledClass),
	}
}

// Get returns the compiled class registered under hash, if any.
func (r *ClassRegistry) Get(hash felt.ClassHash) (*class.CompiledClass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[hash]
	return c, ok
}

// Set registers c under hash. Re-registering the identical *CompiledClass
// value is a no-op (idempotent); registering a different value under an
// already-used hash is rejected, per spec.md §4.1.
func (r *ClassRegistry) Set(hash felt.ClassHash, c *class.CompiledClass) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.classes[hash]
	if ok && existing != c {
		logRegistry.Debug("class hash already declared", "hash", hash.String())
		return ErrClassAlreadyDeclaredWithDifferentBody
	}

	r.classes[hash] = c
	return nil
}
