package transaction

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
)

// InvokeTransaction is spec.md §4.7's InvokeFunction.
type InvokeTransaction struct {
	SenderAddress   felt.Address
	Calldata        []felt.Felt
	MaxFee          uint64
	Signature       []felt.Felt
	Nonce           felt.Felt
	Version         felt.Felt
	TransactionHash felt.Felt
}

// isV1Plus reports whether this invocation requires __validate__, per
// spec.md §4.7 ("Call __validate__(...) on sender when v1+").
func (tx *InvokeTransaction) isV1Plus() bool {
	return tx.Version.Uint64() >= 1
}

// Execute runs the common lifecycle (spec.md §4.7's InvokeFunction row):
// optional __validate__, then __execute__ (which may revert without
// aborting the transaction), then fee charge.
func (tx *InvokeTransaction) Execute(env Environment, st *state.CachedState) (*TransactionExecutionInfo, error) {
	if err := handleNonce(st, tx.SenderAddress, tx.Nonce); err != nil {
		return nil, err
	}

	ctx := &execution.TransactionExecutionContext{
		AccountContractAddress: tx.SenderAddress,
		TransactionHash:        tx.TransactionHash,
		Signature:              tx.Signature,
		MaxFee:                 tx.MaxFee,
		Nonce:                  tx.Nonce,
		NStepsLimit:            env.Block.InvokeTxMaxNSteps,
		Version:                tx.Version,
	}
	resources := execution.NewResourceManager()

	var validateCall *execution.CallInfo
	if tx.isV1Plus() && !ctx.IsQueryOnly() && !env.Skip.SkipValidate {
		validateState := st.CreateTransactional()
		input := execution.EntryPointInput{
			ContractAddress:    tx.SenderAddress,
			EntryPointSelector: felt.ValidateEntryPointSelector,
			CallerAddress:      felt.SystemAddress,
			EntryPointType:     class.External,
			CallKind:           execution.Call,
			Calldata:           tx.Calldata,
			InitialGas:         env.Block.ValidateMaxNSteps,
		}
		call, err := env.Engine.Execute(validateState, input, ctx, env.Block, resources)
		if err != nil {
			return nil, err
		}
		if err := verifyNoCallsToOtherContracts(call, tx.SenderAddress); err != nil {
			return nil, err
		}
		if call.Failure != nil {
			return nil, execution.ErrExecutionFailed
		}
		st.ApplyStateUpdate(validateState)
		validateCall = call
	}

	var executeCall *execution.CallInfo
	var revertError string
	if !env.Skip.SkipExecute {
		executeState := st.CreateTransactional()
		input := execution.EntryPointInput{
			ContractAddress:    tx.SenderAddress,
			EntryPointSelector: felt.ExecuteEntryPointSelector,
			CallerAddress:      felt.SystemAddress,
			EntryPointType:     class.External,
			CallKind:           execution.Call,
			Calldata:           tx.Calldata,
			InitialGas:         env.Block.InvokeTxMaxNSteps,
		}
		call, err := env.Engine.Execute(executeState, input, ctx, env.Block, resources)
		switch {
		case err != nil:
			revertError = err.Error()
		case call.Failure != nil:
			revertError = call.Failure.Message
			executeCall = call
		default:
			st.ApplyStateUpdate(executeState)
			executeCall = call
		}
	}

	feeState := st.CreateTransactional()
	transferCall, actualFee, usage, err := chargeFee(env, feeState, tx.SenderAddress, tx.MaxFee, tx.isV1Plus(), executeCall, ctx, resources)
	if err != nil {
		return nil, err
	}
	st.ApplyStateUpdate(feeState)

	return &TransactionExecutionInfo{
		ValidateCallInfo:    validateCall,
		ExecuteCallInfo:     executeCall,
		FeeTransferCallInfo: transferCall,
		ActualFee:           actualFee,
		ActualResources:     computeActualResources(usage, validateCall, executeCall, transferCall),
		TxType:              "INVOKE_FUNCTION",
		RevertError:         revertError,
	}, nil
}
