package syscall

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
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

type closureProgram struct {
	run func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error)
}

func (p closureProgram) Run(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
	return p.run(ep, epType, calldata, syscalls, budget)
}

func newEngineAndState(t *testing.T) (*execution.Engine, *state.CachedState) {
	t.Helper()
	engine := execution.NewEngine(NewFactory())
	st := state.NewCachedState(zeroReader{}, state.NewClassRegistry())
	return engine, st
}

func TestStorageWriteThenReadRoundTrips(t *testing.T) {
	hash := felt.ClassHash{1}
	addr := felt.AddressFromFelt(felt.FromUint64(10))
	engine, _ := newEngineAndState(t)

	c := &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			key := felt.FromUint64(7)
			if _, err := syscalls.Dispatch(StorageWrite, []felt.Felt{felt.Zero, key, felt.FromUint64(99)}); err != nil {
				return nil, nil, class.ResourceUsage{}, err
			}
			out, err := syscalls.Dispatch(StorageRead, []felt.Felt{felt.Zero, key})
			if err != nil {
				return nil, nil, class.ResourceUsage{}, err
			}
			return out, nil, class.ResourceUsage{NSteps: 1}, nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: {{Selector: felt.FromUint64(1)}}},
	}
	registry := state.NewClassRegistry()
	require.NoError(t, registry.Set(hash, c))
	st := state.NewCachedState(zeroReader{}, registry)
	require.NoError(t, st.DeployContract(addr, hash))

	input := execution.EntryPointInput{
		ContractAddress:    addr,
		EntryPointSelector: felt.FromUint64(1),
		EntryPointType:     class.External,
	}
	callInfo, err := engine.Execute(st, input, &execution.TransactionExecutionContext{}, &blockcontext.BlockContext{}, execution.NewResourceManager())
	require.NoError(t, err)
	require.Len(t, callInfo.Retdata, 1)
	require.True(t, callInfo.Retdata[0].Equal(felt.FromUint64(99)))
	require.Len(t, callInfo.AccessedStorageKeys, 1)
	require.Greater(t, callInfo.Resources.NSteps, uint64(0))
}

func TestEmitEventAssignsMonotonicOrder(t *testing.T) {
	hash := felt.ClassHash{2}
	addr := felt.AddressFromFelt(felt.FromUint64(11))

	c := &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			for i := 0; i < 3; i++ {
				if _, err := syscalls.Dispatch(EmitEvent, []felt.Felt{felt.Zero, felt.Zero}); err != nil {
					return nil, nil, class.ResourceUsage{}, err
				}
			}
			return nil, nil, class.ResourceUsage{NSteps: 3}, nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: {{Selector: felt.FromUint64(1)}}},
	}
	registry := state.NewClassRegistry()
	require.NoError(t, registry.Set(hash, c))
	st := state.NewCachedState(zeroReader{}, registry)
	require.NoError(t, st.DeployContract(addr, hash))

	engine := execution.NewEngine(NewFactory())
	input := execution.EntryPointInput{ContractAddress: addr, EntryPointSelector: felt.FromUint64(1), EntryPointType: class.External}
	callInfo, err := engine.Execute(st, input, &execution.TransactionExecutionContext{}, &blockcontext.BlockContext{}, execution.NewResourceManager())
	require.NoError(t, err)
	require.Len(t, callInfo.Events, 3)
	for i, ev := range callInfo.Events {
		require.Equal(t, uint64(i), ev.Order)
	}
}

func TestCallContractRecursesAndRecordsInnerCall(t *testing.T) {
	calleeHash := felt.ClassHash{3}
	calleeAddr := felt.AddressFromFelt(felt.FromUint64(20))
	callerHash := felt.ClassHash{4}
	callerAddr := felt.AddressFromFelt(felt.FromUint64(21))

	callee := &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			return []felt.Felt{felt.FromUint64(42)}, nil, class.ResourceUsage{NSteps: 1}, nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: {{Selector: felt.FromUint64(2)}}},
	}
	caller := &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			args := []felt.Felt{calleeAddr.Felt(), felt.FromUint64(2), felt.Zero, felt.Zero}
			retdata, err := syscalls.Dispatch(CallContract, args)
			if err != nil {
				return nil, nil, class.ResourceUsage{}, err
			}
			return retdata, nil, class.ResourceUsage{NSteps: 1}, nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: {{Selector: felt.FromUint64(1)}}},
	}

	registry := state.NewClassRegistry()
	require.NoError(t, registry.Set(calleeHash, callee))
	require.NoError(t, registry.Set(callerHash, caller))
	st := state.NewCachedState(zeroReader{}, registry)
	require.NoError(t, st.DeployContract(calleeAddr, calleeHash))
	require.NoError(t, st.DeployContract(callerAddr, callerHash))

	engine := execution.NewEngine(NewFactory())
	input := execution.EntryPointInput{ContractAddress: callerAddr, EntryPointSelector: felt.FromUint64(1), EntryPointType: class.External}
	callInfo, err := engine.Execute(st, input, &execution.TransactionExecutionContext{}, &blockcontext.BlockContext{}, execution.NewResourceManager())
	require.NoError(t, err)
	require.Len(t, callInfo.Retdata, 1)
	require.True(t, callInfo.Retdata[0].Equal(felt.FromUint64(42)))
	require.Len(t, callInfo.InnerCalls, 1)
	require.Equal(t, calleeAddr, callInfo.InnerCalls[0].ContractAddress)
	require.Greater(t, callInfo.Resources.NSteps, uint64(0))
}
