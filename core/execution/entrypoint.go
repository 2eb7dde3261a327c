package execution

import (
	"fmt"

	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("core/execution/entrypoint")

// EntryPointInput is spec.md §4.4's input record.
type EntryPointInput struct {
	ContractAddress    felt.Address
	Calldata           []felt.Felt
	EntryPointSelector felt.Felt
	CallerAddress      felt.Address
	EntryPointType     class.EntryPointType
	CallKind           CallKind
	// ClassHash is supplied directly for a Delegate (library_call)
	// invocation; for a Call or DirectCall it is resolved from state.
	ClassHash  *felt.ClassHash
	InitialGas uint64
}

// Executor is the recursive capability a syscall handler needs to service
// call_contract / library_call / deploy: re-enter the entry-point
// algorithm for a nested class. The concrete implementation is Engine
// below; syscall handlers depend only on this interface, never on Engine
// itself, so core/syscall can import core/execution without a cycle back.
type Executor interface {
	Execute(st *state.CachedState, input EntryPointInput, txCtx *TransactionExecutionContext, blockCtx *blockcontext.BlockContext, resources *ResourceManager) (*CallInfo, error)
}

// HandlerDeps bundles everything a syscall handler needs to service one
// entry-point execution, mirroring the way the teacher's host assembles a
// bundle of contexts (blockchain/runtime/metering/output/storage) before
// handing control to the WASM instance.
type HandlerDeps struct {
	State         *state.CachedState
	TxContext     *TransactionExecutionContext
	BlockContext  *blockcontext.BlockContext
	Resources     *ResourceManager
	Executor      Executor
	Recorder      Recorder
	SelfAddress   felt.Address
	SelfClassHash felt.ClassHash
	CallerAddress felt.Address
	Selector      felt.Felt
}

// HandlerFactory builds the syscall dispatcher a Program.Run call is given.
// It is supplied by whichever package composes the concrete syscall table
// (core/syscall), kept as a function value here purely to avoid
// core/execution importing core/syscall.
type HandlerFactory func(deps HandlerDeps) class.Syscalls

// Engine runs the C7 algorithm (spec.md §4.4), parameterized by a
// HandlerFactory for C8. It is the sole Executor implementation: nested
// calls recurse back through the same Engine, so every level of the call
// tree is serviced by the same syscall table.
type Engine struct {
	NewHandler HandlerFactory
}

// NewEngine builds an Engine that dispatches syscalls via newHandler.
func NewEngine(newHandler HandlerFactory) *Engine {
	return &Engine{NewHandler: newHandler}
}

// Execute implements spec.md §4.4 steps 1-5.
func (e *Engine) Execute(st *state.CachedState, input EntryPointInput, txCtx *TransactionExecutionContext, blockCtx *blockcontext.BlockContext, resources *ResourceManager) (*CallInfo, error) {
	classHash, err := e.resolveClass(st, input)
	if err != nil {
		return nil, err
	}

	compiled, err := st.GetContractClass(classHash)
	if err != nil {
		return nil, err
	}

	entryPoint, err := compiled.FindEntryPoint(input.EntryPointType, input.EntryPointSelector)
	if err != nil {
		return nil, err
	}

	callInfo := &CallInfo{
		CallerAddress:       input.CallerAddress,
		ContractAddress:     input.ContractAddress,
		ClassHash:           classHash,
		EntryPointSelector:  input.EntryPointSelector,
		EntryPointType:      input.EntryPointType,
		CallKind:            input.CallKind,
		Calldata:            input.Calldata,
		AccessedStorageKeys: make(map[felt.StorageKey]struct{}),
	}
	if input.CallKind == Delegate {
		ch := classHash
		callInfo.CodeAddress = &ch
	}

	handler := e.NewHandler(HandlerDeps{
		State:         st,
		TxContext:     txCtx,
		BlockContext:  blockCtx,
		Resources:     resources,
		Executor:      e,
		Recorder:      callInfo,
		SelfAddress:   input.ContractAddress,
		SelfClassHash: classHash,
		CallerAddress: input.CallerAddress,
		Selector:      input.EntryPointSelector,
	})

	budget := &class.GasBudget{Initial: input.InitialGas, Remaining: input.InitialGas}
	before := resources.Snapshot()

	retdata, failure, usage, err := compiled.Program.Run(entryPoint, input.EntryPointType, input.Calldata, handler, budget)
	if err != nil {
		log.Debug("entry point execution raised", "contract", input.ContractAddress.String(), "selector", input.EntryPointSelector.Short(), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	resources.Accumulate(toExecutionResources(usage), "")

	after := resources.Snapshot()
	callInfo.Resources = after.Sub(before)
	callInfo.Retdata = retdata
	callInfo.Failure = failure

	if failure != nil {
		log.Trace("entry point returned failure", "contract", input.ContractAddress.String(), "message", failure.Message)
	}

	return callInfo, nil
}

// toExecutionResources lifts a Program.Run call's self-reported
// class.ResourceUsage into the execution package's own ExecutionResources
// vector, so it can be folded into the shared ResourceManager the same way
// a nested call's delta is.
func toExecutionResources(u class.ResourceUsage) ExecutionResources {
	out := NewExecutionResources()
	out.NSteps = u.NSteps
	out.NMemoryHoles = u.NMemoryHoles
	for name, count := range u.BuiltinInstanceCounter {
		out.BuiltinInstanceCounter[name] = count
	}
	return out
}

// resolveClass implements step 1: a Delegate call with an explicit
// ClassHash runs that class's code directly (library_call); otherwise the
// class hash deployed at ContractAddress is looked up.
func (e *Engine) resolveClass(st *state.CachedState, input EntryPointInput) (felt.ClassHash, error) {
	if input.CallKind == Delegate && input.ClassHash != nil {
		return *input.ClassHash, nil
	}

	hash, err := st.GetClassHashAt(input.ContractAddress)
	if err != nil {
		return felt.ZeroClassHash, err
	}
	if hash.IsZero() {
		return felt.ZeroClassHash, fmt.Errorf("%w: %s", ErrNotDeployedContract, input.ContractAddress.String())
	}
	return hash, nil
}
