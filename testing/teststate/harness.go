package teststate

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/config"
	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/fee"
	"github.com/lambdaclass/starknet-vm-go/core/state"
	"github.com/lambdaclass/starknet-vm-go/core/syscall"
	"github.com/lambdaclass/starknet-vm-go/core/transaction"
)

// Harness bundles a fresh CachedState, class registry and Environment,
// grounded on the teacher's testing/starknet_state.rs-style stateful test
// fixture (supplemented from original_source, since the distilled spec
// only describes the engine's internals, not a test harness around it).
type Harness struct {
	t        *testing.T
	Reader   *InMemoryReader
	Registry *state.ClassRegistry
	State    *state.CachedState
	Env      transaction.Environment
}

// NewHarness builds a harness over an empty committed state, a wired
// Engine (C7+C8), and default block parameters.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	reader := NewInMemoryReader()
	registry := state.NewClassRegistry()
	st := state.NewCachedState(reader, registry)
	engine := execution.NewEngine(syscall.NewFactory())

	weights := config.DefaultResourceWeights()
	block := &blockcontext.BlockContext{
		ChainID:           "SN_TEST",
		BlockNumber:       1,
		BlockTimestamp:    1000,
		SequencerAddress:  felt.AddressFromFelt(felt.FromUint64(900)),
		InvokeTxMaxNSteps: 10_000_000,
		ValidateMaxNSteps: 10_000_000,
		ResourceWeights:   weights,
	}
	block.GasPrices.Eth.PriceInWei = 1
	block.GasPrices.Eth.TokenAddress = felt.AddressFromFelt(felt.FromUint64(901))

	return &Harness{
		t:        t,
		Reader:   reader,
		Registry: registry,
		State:    st,
		Env: transaction.Environment{
			Engine:  engine,
			Block:   block,
			Weights: weights,
			Skip:    fee.SkipModes{SkipValidate: true, SkipFeeTransfer: true},
		},
	}
}

// DeclareAndDeploy registers c at hash and deploys it at addr, bypassing
// the Declare/DeployAccount transaction lifecycle entirely — a direct
// state-seeding shortcut for scenario tests that only care about the
// deployed contract's behavior, not the declare/deploy transactions
// themselves (those are exercised by core/transaction's own tests).
func (h *Harness) DeclareAndDeploy(hash felt.ClassHash, addr felt.Address, c *class.CompiledClass) {
	h.t.Helper()
	require := h.t
	if err := h.Registry.Set(hash, c); err != nil {
		require.Fatalf("declare: %v", err)
	}
	if err := h.State.DeployContract(addr, hash); err != nil {
		require.Fatalf("deploy: %v", err)
	}
}

// Invoke runs a bare entry-point call against an already-deployed
// contract (no transaction envelope, no fee), for scenario tests focused
// on C7/C8 call-tree shape rather than the transaction lifecycle.
func (h *Harness) Invoke(addr felt.Address, selector felt.Felt, calldata []felt.Felt) *execution.CallInfo {
	h.t.Helper()
	input := execution.EntryPointInput{
		ContractAddress:    addr,
		EntryPointSelector: selector,
		EntryPointType:     class.External,
		CallKind:           execution.DirectCall,
		Calldata:           calldata,
		InitialGas:         h.Env.Block.InvokeTxMaxNSteps,
	}
	call, err := h.Env.Engine.Execute(h.State, input, &execution.TransactionExecutionContext{NStepsLimit: h.Env.Block.InvokeTxMaxNSteps}, h.Env.Block, execution.NewResourceManager())
	if err != nil {
		h.t.Fatalf("invoke: %v", err)
	}
	return call
}
