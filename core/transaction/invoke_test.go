package transaction

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/stretchr/testify/require"
)

func TestInvokeV0SkipsValidate(t *testing.T) {
	f := newTestEnvironment(t)

	hash := felt.ClassHash{1}
	addr := felt.AddressFromFelt(felt.FromUint64(10))
	ran := false
	c := &class.CompiledClass{
		Program: programFunc(func(felt.Felt, []felt.Felt) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			ran = true
			return []felt.Felt{felt.FromUint64(7)}, nil, class.ResourceUsage{NSteps: 1}, nil
		}),
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: selectorEntries(felt.ExecuteEntryPointSelector)},
	}
	require.NoError(t, f.registry.Set(hash, c))
	require.NoError(t, f.state.DeployContract(addr, hash))

	tx := &InvokeTransaction{
		SenderAddress: addr,
		Version:       felt.Zero,
		Nonce:         felt.Zero,
	}
	info, err := tx.Execute(f.env, f.state)
	require.NoError(t, err)
	require.True(t, ran)
	require.Nil(t, info.ValidateCallInfo)
	require.NotNil(t, info.ExecuteCallInfo)
	require.Empty(t, info.RevertError)
}

func TestInvokeV1RunsValidateThenExecute(t *testing.T) {
	f := newTestEnvironment(t)

	hash := felt.ClassHash{2}
	addr := felt.AddressFromFelt(felt.FromUint64(11))
	c := &class.CompiledClass{
		Program: alwaysOKProgram{},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: selectorEntries(
			felt.ValidateEntryPointSelector,
			felt.ExecuteEntryPointSelector,
		)},
	}
	require.NoError(t, f.registry.Set(hash, c))
	require.NoError(t, f.state.DeployContract(addr, hash))

	tx := &InvokeTransaction{
		SenderAddress: addr,
		Version:       felt.One,
		Nonce:         felt.Zero,
		MaxFee:        1_000_000,
	}
	info, err := tx.Execute(f.env, f.state)
	require.NoError(t, err)
	require.NotNil(t, info.ValidateCallInfo)
	require.NotNil(t, info.ExecuteCallInfo)
}

func TestInvokeRevertsWithoutAbortingFeeCharge(t *testing.T) {
	f := newTestEnvironment(t)

	hash := felt.ClassHash{3}
	addr := felt.AddressFromFelt(felt.FromUint64(12))
	c := &class.CompiledClass{
		Program: programFunc(func(felt.Felt, []felt.Felt) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			return nil, &class.Failure{Message: "boom"}, class.ResourceUsage{NSteps: 1}, nil
		}),
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: selectorEntries(felt.ExecuteEntryPointSelector)},
	}
	require.NoError(t, f.registry.Set(hash, c))
	require.NoError(t, f.state.DeployContract(addr, hash))

	tx := &InvokeTransaction{
		SenderAddress: addr,
		Version:       felt.Zero,
		Nonce:         felt.Zero,
	}
	info, err := tx.Execute(f.env, f.state)
	require.NoError(t, err)
	require.Equal(t, "boom", info.RevertError)
	require.Nil(t, info.FeeTransferCallInfo) // SkipFeeTransfer in the fixture, but charging itself must not error
}

func TestInvokeRejectsNonceMismatch(t *testing.T) {
	f := newTestEnvironment(t)
	addr := felt.AddressFromFelt(felt.FromUint64(13))

	tx := &InvokeTransaction{
		SenderAddress: addr,
		Version:       felt.Zero,
		Nonce:         felt.One,
	}
	_, err := tx.Execute(f.env, f.state)
	require.ErrorIs(t, err, ErrInvalidTransactionNonce)
}

// programFunc adapts a plain function to class.Program for tests that need
// to observe whether the body actually ran.
type programFunc func(selector felt.Felt, calldata []felt.Felt) ([]felt.Felt, *class.Failure, class.ResourceUsage, error)

func (p programFunc) Run(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
	return p(ep.Selector, calldata)
}
