// Package fee implements the gas-usage and fee-accounting component
// (spec.md §4.6, component C9): translating VM telemetry and a
// transaction's state-diff shape into an L1 gas number, and that number
// into a fee charge.
package fee

import (
	"math"

	"github.com/lambdaclass/starknet-vm-go/config"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
)

// onchainDataDiscountPerContract is the fixed per-modified-contract
// discount spec.md §4.6 describes ("discounted by a fixed amount per
// modified contract"). The exact value is not pinned by the distilled
// spec; this engine takes the value the §8 test constants are written
// against as ground truth (documented in DESIGN.md per the open question).
const onchainDataDiscountPerContract = 2

// StateDiffShape is the subset of CountActualStateChanges's output the gas
// formula needs.
type StateDiffShape struct {
	NStorageUpdates           int
	NClassHashUpdates         int
	NCompiledClassHashUpdates int
	NModifiedContracts        int
}

// GasUsage breaks total_l1_gas into its three components, per spec.md §4.6.
type GasUsage struct {
	OnchainDataGas uint64
	MessagingGas   uint64
	VMGas          uint64
	Total          uint64
}

// ComputeGasUsage implements `total_l1_gas = ceil(onchain_data_gas +
// starknet_l1_msg_gas + max_over_builtins(...))` (spec.md §4.6).
func ComputeGasUsage(diff StateDiffShape, events []execution.OrderedEvent, messages []execution.OrderedMessage, resources execution.ExecutionResources, weights config.ResourceWeights) GasUsage {
	onchain := onchainDataGas(diff, weights)
	messaging := messagingGas(events, messages, weights)
	vm := vmGas(resources, weights)

	total := uint64(math.Ceil(onchain + messaging + vm))
	return GasUsage{
		OnchainDataGas: uint64(math.Ceil(onchain)),
		MessagingGas:   uint64(math.Ceil(messaging)),
		VMGas:          uint64(math.Ceil(vm)),
		Total:          total,
	}
}

// onchainDataGas prices the state-diff shape: two words per modified
// contract, two per storage update, one per class-hash update, two per
// compiled-class-hash update, then a fixed discount per modified contract.
func onchainDataGas(diff StateDiffShape, weights config.ResourceWeights) float64 {
	words := 2*diff.NModifiedContracts +
		2*diff.NStorageUpdates +
		diff.NClassHashUpdates +
		2*diff.NCompiledClassHashUpdates

	words -= onchainDataDiscountPerContract * diff.NModifiedContracts
	if words < 0 {
		words = 0
	}
	return float64(words) * weights.L1GasPerMemoryWord
}

// messagingGas prices L2->L1 messages (a linear function of message count
// and total payload words) plus per-event emission costs.
func messagingGas(events []execution.OrderedEvent, messages []execution.OrderedMessage, weights config.ResourceWeights) float64 {
	var payloadWords int
	for _, m := range messages {
		payloadWords += len(m.Payload)
	}
	msgGas := float64(len(messages))*weights.L1GasPerMemoryWord + float64(payloadWords)*weights.L1GasPerMemoryWord

	var keyWords, dataWords int
	for _, e := range events {
		keyWords += len(e.Keys)
		dataWords += len(e.Data)
	}
	eventGas := float64(len(events))*weights.L1GasPerEvent +
		float64(keyWords)*weights.L1GasPerEventKey +
		float64(dataWords)*weights.L1GasPerEventDatum

	return msgGas + eventGas
}

// vmGas is the maximum over the weight table of steps and each builtin's
// invocation count, per spec.md §4.6 "The VM component is the maximum
// over a fixed weight table of steps and each builtin counter."
func vmGas(resources execution.ExecutionResources, weights config.ResourceWeights) float64 {
	max := float64(resources.NSteps) * weights.StepWeight
	for name, count := range resources.BuiltinInstanceCounter {
		w, ok := weights.BuiltinWeights[name]
		if !ok {
			continue
		}
		cost := float64(count) * w
		if cost > max {
			max = cost
		}
	}
	return max
}
