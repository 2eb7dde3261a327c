package syscall

import (
	"fmt"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// callContract services `call_contract(addr, selector, calldata)`. args is
// [addr, selector, nCalldata, calldata0..calldataN-1, gasLimit] — the
// remaining gas is threaded through explicitly since the handler has no
// other channel back to the Program's own gas budget.
func (h *Handler) callContract(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) < 2 {
		return nil, ErrMalformedArgs
	}
	addr := felt.AddressFromFelt(args[0])
	selector := args[1]
	calldata, rest, err := takePrefixed(args[2:])
	if err != nil {
		return nil, err
	}
	gas, err := takeGas(rest)
	if err != nil {
		return nil, err
	}

	input := execution.EntryPointInput{
		ContractAddress:    addr,
		Calldata:           calldata,
		EntryPointSelector: selector,
		CallerAddress:      h.deps.SelfAddress,
		EntryPointType:     class.External,
		CallKind:           execution.Call,
		InitialGas:         gas,
	}
	return h.runNested(input)
}

// libraryCall services `library_call(class_hash, selector, calldata)`:
// code runs from class_hash but storage is the caller's own. args is
// [classHash, selector, nCalldata, calldata..., gasLimit].
func (h *Handler) libraryCall(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) < 2 {
		return nil, ErrMalformedArgs
	}
	classHash := felt.ClassHashFromFelt(args[0])
	selector := args[1]
	calldata, rest, err := takePrefixed(args[2:])
	if err != nil {
		return nil, err
	}
	gas, err := takeGas(rest)
	if err != nil {
		return nil, err
	}

	input := execution.EntryPointInput{
		ContractAddress:    h.deps.SelfAddress,
		Calldata:           calldata,
		EntryPointSelector: selector,
		CallerAddress:      h.deps.SelfAddress,
		EntryPointType:     class.External,
		CallKind:           execution.Delegate,
		ClassHash:          &classHash,
		InitialGas:         gas,
	}
	return h.runNested(input)
}

// runNested recurses into the execution engine and folds the child
// CallInfo into the call currently being built, per spec.md §4.5's
// "on success push the child's CallInfo into internal_calls" handling.
func (h *Handler) runNested(input execution.EntryPointInput) ([]felt.Felt, error) {
	child, err := h.deps.Executor.Execute(h.deps.State, input, h.deps.TxContext, h.deps.BlockContext, h.deps.Resources)
	if err != nil {
		return nil, err
	}
	h.deps.Recorder.RecordInnerCall(child)
	h.deps.Recorder.MergeChildStorageFootprint(child)

	if child.Failure != nil {
		return nil, fmt.Errorf("%w: %s", execution.ErrExecutionFailed, child.Failure.Message)
	}
	return child.Retdata, nil
}

// deploy services `deploy(class_hash, salt, calldata, deploy_from_zero)`.
// args is [classHash, salt, nCalldata, calldata..., deployFromZero, gasLimit].
func (h *Handler) deploy(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) < 2 {
		return nil, ErrMalformedArgs
	}
	classHash := felt.ClassHashFromFelt(args[0])
	salt := args[1]
	calldata, rest, err := takePrefixed(args[2:])
	if err != nil {
		return nil, err
	}
	if len(rest) < 1 {
		return nil, ErrMalformedArgs
	}
	deployFromZero := !rest[0].IsZero()
	gas, err := takeGas(rest[1:])
	if err != nil {
		return nil, err
	}

	deployer := h.deps.SelfAddress
	if deployFromZero {
		deployer = felt.SystemAddress
	}
	newAddr := execution.ComputeDeployAddress(salt, classHash, calldata, deployer)

	if err := h.deps.State.DeployContract(newAddr, classHash); err != nil {
		return nil, err
	}

	compiled, err := h.deps.State.GetContractClass(classHash)
	if err != nil {
		return nil, err
	}
	if !compiled.HasConstructor {
		if len(calldata) > 0 {
			return nil, ErrConstructorCalldataMismatch
		}
		return []felt.Felt{newAddr.Felt()}, nil
	}

	input := execution.EntryPointInput{
		ContractAddress:    newAddr,
		Calldata:           calldata,
		EntryPointSelector: felt.ConstructorEntryPointSelector,
		CallerAddress:      h.deps.SelfAddress,
		EntryPointType:     class.Constructor,
		CallKind:           execution.Call,
		InitialGas:         gas,
	}
	retdata, err := h.runNested(input)
	if err != nil {
		return nil, err
	}
	return append([]felt.Felt{newAddr.Felt()}, retdata...), nil
}

// replaceClass services `replace_class(class_hash)`.
func (h *Handler) replaceClass(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) != 1 {
		return nil, ErrMalformedArgs
	}
	classHash := felt.ClassHashFromFelt(args[0])
	return nil, h.deps.State.SetClassHashAt(h.deps.SelfAddress, classHash)
}

func takeGas(rest []felt.Felt) (uint64, error) {
	if len(rest) == 0 {
		return 0, nil
	}
	return rest[0].Uint64(), nil
}
