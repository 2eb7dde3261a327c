// Package transaction implements the four transaction kinds (spec.md
// §4.7, component C10): Declare, DeployAccount, Deploy (legacy), and
// InvokeFunction, sharing the common
// verify_version -> handle_nonce -> apply -> charge_fee lifecycle.
package transaction

import (
	"fmt"

	"github.com/lambdaclass/starknet-vm-go/config"
	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/fee"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("core/transaction/common")

// TransactionExecutionInfo is spec.md §6's output record.
type TransactionExecutionInfo struct {
	ValidateCallInfo    *execution.CallInfo
	ExecuteCallInfo     *execution.CallInfo
	FeeTransferCallInfo *execution.CallInfo
	ActualFee           uint64
	ActualResources     map[string]uint64
	TxType              string
	RevertError         string
}

// Environment bundles the collaborators every transaction kind needs to
// run: the engine (C7+C8 wired together), the block context, the resource
// weight table, and skip-mode flags for simulation.
type Environment struct {
	Engine  *execution.Engine
	Block   *blockcontext.BlockContext
	Weights config.ResourceWeights
	Skip    fee.SkipModes
}

// verifyNoCallsToOtherContracts implements spec.md §4.7's "Validation
// restriction": the validate CallInfo and its descendants may only touch
// the sender's own contract.
func verifyNoCallsToOtherContracts(validateCallInfo *execution.CallInfo, sender felt.Address) error {
	if validateCallInfo == nil {
		return nil
	}
	if !validateCallInfo.ContractAddress.Equal(sender) {
		return fmt.Errorf("%w: %s", ErrUnauthorizedActionOnValidate, validateCallInfo.ContractAddress.String())
	}
	for _, inner := range validateCallInfo.InnerCalls {
		if err := verifyNoCallsToOtherContracts(inner, sender); err != nil {
			return err
		}
	}
	return nil
}

// handleNonce implements spec.md §4.7's nonce check + increment, used by
// Declare v1+ and Invoke. Declare v0 and legacy Deploy carry no meaningful
// nonce; DeployAccount requires a zero nonce and increments it itself.
func handleNonce(st *state.CachedState, sender felt.Address, expected felt.Felt) error {
	actual, err := st.GetNonceAt(sender)
	if err != nil {
		return err
	}
	if !actual.Equal(expected) {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidTransactionNonce, actual.String(), expected.String())
	}
	return st.IncrementNonce(sender)
}

// computeActualResources folds a CallInfo subtree's resources into the
// §6 `actual_resources` map, always including l1_gas_usage and n_steps.
func computeActualResources(gasUsage fee.GasUsage, calls ...*execution.CallInfo) map[string]uint64 {
	out := map[string]uint64{
		"l1_gas_usage": gasUsage.Total,
	}
	var total execution.ExecutionResources
	total.BuiltinInstanceCounter = make(map[string]uint64)
	for _, c := range calls {
		if c == nil {
			continue
		}
		total = total.Add(c.TotalResources())
	}
	out["n_steps"] = total.NSteps
	for name, count := range total.BuiltinInstanceCounter {
		out[name] = count
	}
	return out
}

// chargeFee runs the fee-transfer call_contract (spec.md §4.6 "Fee"),
// computing total_l1_gas from the executing state's diff and the block's
// resource weight table, then booking the actual fee via
// fee.CapActualFee: a v1+ overspend is capped at max_fee, a v0 overspend
// books 0 (ignored entirely when skip.IgnoreMaxFee is set).
func chargeFee(env Environment, st *state.CachedState, sender felt.Address, maxFee uint64, isV1Plus bool, executeCall *execution.CallInfo, ctx *execution.TransactionExecutionContext, resources *execution.ResourceManager) (*execution.CallInfo, uint64, fee.GasUsage, error) {
	feeTokenAddr := env.Block.FeeTokenAddress()

	nStorage, nClassHash, nCompiledClassHash, nModified := st.CountActualStateChanges(&state.FeeTokenPair{FeeTokenAddress: feeTokenAddr, Payer: sender})
	diff := fee.StateDiffShape{
		NStorageUpdates:           nStorage,
		NClassHashUpdates:         nClassHash,
		NCompiledClassHashUpdates: nCompiledClassHash,
		NModifiedContracts:        nModified,
	}

	var events []execution.OrderedEvent
	var messages []execution.OrderedMessage
	var vmResources execution.ExecutionResources
	vmResources.BuiltinInstanceCounter = make(map[string]uint64)
	if executeCall != nil {
		events = executeCall.AllEvents()
		messages = executeCall.AllMessages()
		vmResources = executeCall.TotalResources()
	}

	usage := fee.ComputeGasUsage(diff, events, messages, vmResources, env.Weights)
	actualFee := fee.CapActualFee(fee.ComputeFee(usage, env.Block.GasPriceInWei()), maxFee, isV1Plus, env.Skip.IgnoreMaxFee)

	if env.Skip.SkipFeeTransfer {
		return nil, actualFee, usage, nil
	}

	low := felt.FromUint64(actualFee)
	input := execution.EntryPointInput{
		ContractAddress:    feeTokenAddr,
		EntryPointSelector: felt.TransferEntryPointSelector,
		CallerAddress:      sender,
		EntryPointType:     class.External,
		CallKind:           execution.Call,
		Calldata:           []felt.Felt{env.Block.SequencerAddress.Felt(), low, felt.Zero},
	}

	transferCall, err := env.Engine.Execute(st, input, ctx, env.Block, resources)
	if err != nil {
		log.Debug("fee transfer failed", "sender", sender.String(), "error", err)
		return nil, 0, usage, fmt.Errorf("%w: %v", ErrFeeTransferError, err)
	}
	if transferCall.Failure != nil {
		return nil, 0, usage, fmt.Errorf("%w: %s", ErrFeeTransferError, transferCall.Failure.Message)
	}

	return transferCall, actualFee, usage, nil
}
