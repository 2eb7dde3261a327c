package execution

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
	"github.com/stretchr/testify/require"
)

type zeroReader struct{}

func (zeroReader) GetClassHashAt(felt.Address) (felt.ClassHash, error) { return felt.ZeroClassHash, nil }
func (zeroReader) GetNonceAt(felt.Address) (felt.Felt, error)          { return felt.Zero, nil }
func (zeroReader) GetStorageAt(felt.StorageEntry) (felt.Felt, error)   { return felt.Zero, nil }
func (zeroReader) GetCompiledClassHashAt(felt.ClassHash) (felt.ClassHash, error) {
	return felt.ZeroClassHash, nil
}
func (zeroReader) GetContractClass(felt.ClassHash) (*class.CompiledClass, error) {
	return nil, state.ErrMissingClass
}

// closureProgram adapts a plain function into a class.Program, mirroring
// the test scaffold's closure-over-mock-instance pattern in lieu of a real
// bytecode interpreter.
type closureProgram struct {
	run func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error)
}

func (p closureProgram) Run(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
	return p.run(ep, epType, calldata, syscalls, budget)
}

func noopHandlerFactory(deps HandlerDeps) class.Syscalls {
	return noopSyscalls{}
}

type noopSyscalls struct{}

func (noopSyscalls) Dispatch(name string, args []felt.Felt) ([]felt.Felt, error) { return nil, nil }

func fibonacciClass() *class.CompiledClass {
	selector := felt.FromUint64(1)
	return &class.CompiledClass{
		Kind: class.Casm,
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			budget.Deduct(10)
			return []felt.Felt{felt.FromUint64(144)}, nil, class.ResourceUsage{NSteps: 10}, nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: selector}},
		},
	}
}

func newFixtureState(t *testing.T, hash felt.ClassHash, c *class.CompiledClass, addr felt.Address) *state.CachedState {
	t.Helper()
	registry := state.NewClassRegistry()
	require.NoError(t, registry.Set(hash, c))
	st := state.NewCachedState(zeroReader{}, registry)
	require.NoError(t, st.DeployContract(addr, hash))
	return st
}

func TestEngineExecuteRunsEntryPointAndReturnsCallInfo(t *testing.T) {
	hash := felt.ClassHash{9}
	addr := felt.AddressFromFelt(felt.FromUint64(100))
	st := newFixtureState(t, hash, fibonacciClass(), addr)

	engine := NewEngine(noopHandlerFactory)
	txCtx := &TransactionExecutionContext{}
	blockCtx := &blockcontext.BlockContext{}
	resources := NewResourceManager()

	input := EntryPointInput{
		ContractAddress:    addr,
		EntryPointSelector: felt.FromUint64(1),
		EntryPointType:     class.External,
		CallKind:           DirectCall,
	}

	callInfo, err := engine.Execute(st, input, txCtx, blockCtx, resources)
	require.NoError(t, err)
	require.Nil(t, callInfo.Failure)
	require.Len(t, callInfo.Retdata, 1)
	require.True(t, callInfo.Retdata[0].Equal(felt.FromUint64(144)))
	require.Equal(t, hash, callInfo.ClassHash)
	require.Equal(t, uint64(10), callInfo.Resources.NSteps)
}

func TestEngineExecuteFailsWhenContractNotDeployed(t *testing.T) {
	st := state.NewCachedState(zeroReader{}, state.NewClassRegistry())
	engine := NewEngine(noopHandlerFactory)

	input := EntryPointInput{
		ContractAddress:    felt.AddressFromFelt(felt.FromUint64(55)),
		EntryPointSelector: felt.FromUint64(1),
		EntryPointType:     class.External,
	}

	_, err := engine.Execute(st, input, &TransactionExecutionContext{}, &blockcontext.BlockContext{}, NewResourceManager())
	require.ErrorIs(t, err, ErrNotDeployedContract)
}

func TestEngineExecuteFailsWhenEntryPointMissing(t *testing.T) {
	hash := felt.ClassHash{3}
	addr := felt.AddressFromFelt(felt.FromUint64(77))
	st := newFixtureState(t, hash, fibonacciClass(), addr)
	engine := NewEngine(noopHandlerFactory)

	input := EntryPointInput{
		ContractAddress:    addr,
		EntryPointSelector: felt.FromUint64(999),
		EntryPointType:     class.External,
	}

	_, err := engine.Execute(st, input, &TransactionExecutionContext{}, &blockcontext.BlockContext{}, NewResourceManager())
	require.ErrorIs(t, err, class.ErrEntryPointNotFound)
}

func TestEngineExecuteDelegateUsesSuppliedClassHash(t *testing.T) {
	libHash := felt.ClassHash{77}
	libAddr := felt.AddressFromFelt(felt.FromUint64(1)) // library classes need no deployed address
	st := newFixtureState(t, libHash, fibonacciClass(), libAddr)

	engine := NewEngine(noopHandlerFactory)
	selfAddr := felt.AddressFromFelt(felt.FromUint64(200))

	input := EntryPointInput{
		ContractAddress:    selfAddr,
		EntryPointSelector: felt.FromUint64(1),
		EntryPointType:     class.External,
		CallKind:           Delegate,
		ClassHash:          &libHash,
	}

	callInfo, err := engine.Execute(st, input, &TransactionExecutionContext{}, &blockcontext.BlockContext{}, NewResourceManager())
	require.NoError(t, err)
	require.Equal(t, libHash, callInfo.ClassHash)
	require.Equal(t, selfAddr, callInfo.ContractAddress)
	require.NotNil(t, callInfo.CodeAddress)
	require.Equal(t, libHash, *callInfo.CodeAddress)
}
