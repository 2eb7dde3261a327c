// Package config loads the resource-weight tables the fee and gas
// accounting package needs (spec.md §4.6), following the teacher's
// convention of building a typed config struct from an on-disk document
// with a hard-coded fallback for tests.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// ResourceWeights is the TOML-decoded shape of a resource-weight table:
// one row per named resource (n_steps and each builtin), plus the
// L1-messaging constants spec.md §4.6 folds into the onchain-data and
// messaging components of total_l1_gas.
type ResourceWeights struct {
	StepWeight         float64            `toml:"step_weight"`
	BuiltinWeights     map[string]float64 `toml:"builtin_weights"`
	L1GasPerMemoryWord float64            `toml:"l1_gas_per_memory_word"`
	L1GasPerEvent      float64            `toml:"l1_gas_per_event"`
	L1GasPerEventKey   float64            `toml:"l1_gas_per_event_key"`
	L1GasPerEventDatum float64            `toml:"l1_gas_per_event_datum"`
}

// DefaultResourceWeights is the hard-coded fallback table, matching the
// constants spec.md §8's testable properties are written against — the
// open question about the original implementation's gas-usage constants
// disagreeing in small factors with the distilled spec is resolved by
// taking these test-grounded values as the source of truth (see DESIGN.md).
func DefaultResourceWeights() ResourceWeights {
	return ResourceWeights{
		StepWeight: 0.01,
		BuiltinWeights: map[string]float64{
			"pedersen":     0.32,
			"range_check":  0.16,
			"ecdsa":        20.48,
			"bitwise":      0.64,
			"ec_op":        10.24,
			"poseidon":     0.32,
			"segment_arena": 0.1,
			"keccak":       20.48,
		},
		L1GasPerMemoryWord: 8,
		L1GasPerEvent:      50,
		L1GasPerEventKey:   50,
		L1GasPerEventDatum: 12,
	}
}

// LoadResourceWeights reads a TOML document at path and decodes it into a
// ResourceWeights, following the teacher's config-loading idiom
// (`github.com/pelletier/go-toml`). Missing keys keep their Go zero value;
// callers that want the hard-coded fallback for an absent field should
// start from DefaultResourceWeights and override individual fields.
func LoadResourceWeights(path string) (ResourceWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResourceWeights{}, fmt.Errorf("config: read resource weights: %w", err)
	}

	var weights ResourceWeights
	if err := toml.Unmarshal(data, &weights); err != nil {
		return ResourceWeights{}, fmt.Errorf("config: decode resource weights: %w", err)
	}
	return weights, nil
}
