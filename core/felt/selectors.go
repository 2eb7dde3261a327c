package felt

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// selectorFromName derives a Felt selector from the ASCII spelling of an
// entry-point or well-known name. This stands in for the project-defined
// hash named in spec.md §9 ("Global state") — the real digest (Pedersen or
// Poseidon) is an explicit non-goal of this engine (spec.md §1); only a
// deterministic, collision-resistant placeholder is needed so that the
// well-known selector constants below are stable across runs.
func selectorFromName(name string) Felt {
	h := sha3.Sum256([]byte(name))
	return FromBigInt(new(big.Int).SetBytes(h[:]))
}

// Well-known entry-point selectors and version flags, computed once at
// package init time from their ASCII names. Never mutated at runtime.
var (
	DefaultEntryPointSelector         = selectorFromName("default_entry_point")
	ExecuteEntryPointSelector         = selectorFromName("__execute__")
	ValidateEntryPointSelector        = selectorFromName("__validate__")
	ValidateDeclareEntryPointSelector = selectorFromName("__validate_declare__")
	ValidateDeployEntryPointSelector  = selectorFromName("__validate_deploy__")
	ConstructorEntryPointSelector     = selectorFromName("constructor")
	TransferEntryPointSelector        = selectorFromName("transfer")
)

// QueryVersionBase is the OR-mask (2^128) that flags a transaction version
// as simulation-only (spec.md §4.7 "Version verification").
var QueryVersionBase = func() *big.Int {
	b := new(big.Int).SetUint64(1)
	return b.Lsh(b, 128)
}()
