package execution

import (
	"math/big"

	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// TransactionExecutionContext is the mutable per-transaction state carried
// through every nested call (spec.md §3). The two monotonic counters are
// what give emitted events and sent messages a single, transaction-wide
// total order: every call_contract / library_call shares the same *Context
// pointer, so nested calls draw from the same counters as their caller.
type TransactionExecutionContext struct {
	AccountContractAddress felt.Address
	TransactionHash        felt.Felt
	Signature              []felt.Felt
	MaxFee                 uint64
	Nonce                  felt.Felt
	NStepsLimit            uint64
	Version                felt.Felt

	nEmittedEvents uint64
	nSentMessages  uint64
}

// NextEventOrder returns the order to stamp on the next emitted event and
// advances the counter, implementing emit_event's `order = ctx.n_emitted_events++`.
func (c *TransactionExecutionContext) NextEventOrder() uint64 {
	order := c.nEmittedEvents
	c.nEmittedEvents++
	return order
}

// NextMessageOrder returns the order to stamp on the next L1 message and
// advances the counter, implementing send_message_to_l1's
// `order = ctx.n_sent_messages++`.
func (c *TransactionExecutionContext) NextMessageOrder() uint64 {
	order := c.nSentMessages
	c.nSentMessages++
	return order
}

// NEmittedEvents reports the current counter value, used by the testable
// property that the final count equals the sum of every CallInfo's events.
func (c *TransactionExecutionContext) NEmittedEvents() uint64 { return c.nEmittedEvents }

// NSentMessages reports the current counter value.
func (c *TransactionExecutionContext) NSentMessages() uint64 { return c.nSentMessages }

// IsQueryOnly reports whether Version carries the QUERY_VERSION_BASE flag
// (spec.md §4.7 "Version verification"), meaning __validate__ is skipped.
func (c *TransactionExecutionContext) IsQueryOnly() bool {
	return c.Version.BigInt().Cmp(felt.QueryVersionBase) >= 0
}

// BareVersion strips the QUERY_VERSION_BASE flag, returning the real
// transaction version a simulation-only query is standing in for.
func (c *TransactionExecutionContext) BareVersion() felt.Felt {
	if !c.IsQueryOnly() {
		return c.Version
	}
	return felt.FromBigInt(new(big.Int).Sub(c.Version.BigInt(), felt.QueryVersionBase))
}
