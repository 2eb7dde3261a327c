package state

import "errors"

// ErrContractAddressOutOfRange signals an attempt to deploy at address 0,
// which is reserved for the system caller.
var ErrContractAddressOutOfRange = errors.New("contract address out of range")

// ErrContractAddressUnavailable signals an attempt to deploy at an address
// that already carries a non-zero class hash.
var ErrContractAddressUnavailable = errors.New("contract address unavailable")

// ErrMissingClass signals that a class hash is unknown to both the
// registry and any transitive reader.
var ErrMissingClass = errors.New("missing compiled class")

// ErrClassAlreadyDeclaredWithDifferentBody signals that a class hash is
// already bound to a different compiled class (spec.md §4.1: "inserting a
// different class under the same hash is undefined and may be rejected" —
// this engine rejects it, rather than silently overwriting it).
var ErrClassAlreadyDeclaredWithDifferentBody = errors.New("class hash already declared with a different body")
