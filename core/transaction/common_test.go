package transaction

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/config"
	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/fee"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
	"github.com/lambdaclass/starknet-vm-go/core/syscall"
	"github.com/stretchr/testify/require"
)

type fakeReader struct{}

func (fakeReader) GetClassHashAt(felt.Address) (felt.ClassHash, error) { return felt.ZeroClassHash, nil }
func (fakeReader) GetNonceAt(felt.Address) (felt.Felt, error)          { return felt.Zero, nil }
func (fakeReader) GetStorageAt(felt.StorageEntry) (felt.Felt, error)   { return felt.Zero, nil }
func (fakeReader) GetCompiledClassHashAt(felt.ClassHash) (felt.ClassHash, error) {
	return felt.ZeroClassHash, nil
}
func (fakeReader) GetContractClass(felt.ClassHash) (*class.CompiledClass, error) {
	return nil, state.ErrMissingClass
}

// alwaysOKProgram is a stand-in compiled-class body that always succeeds
// with no retdata, used for __validate__-style entry points in tests.
type alwaysOKProgram struct{}

func (alwaysOKProgram) Run(class.EntryPoint, class.EntryPointType, []felt.Felt, class.Syscalls, *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
	return nil, nil, class.ResourceUsage{NSteps: 1}, nil
}

func selectorEntries(selectors ...felt.Felt) []class.EntryPoint {
	out := make([]class.EntryPoint, len(selectors))
	for i, s := range selectors {
		out[i] = class.EntryPoint{Selector: s}
	}
	return out
}

type testFixture struct {
	env      Environment
	state    *state.CachedState
	registry *state.ClassRegistry
}

func newTestEnvironment(t *testing.T) testFixture {
	t.Helper()
	registry := state.NewClassRegistry()
	engine := execution.NewEngine(syscall.NewFactory())
	st := state.NewCachedState(fakeReader{}, registry)

	block := &blockcontext.BlockContext{
		ChainID:           "TEST",
		BlockNumber:       1,
		BlockTimestamp:    1000,
		SequencerAddress:  felt.AddressFromFelt(felt.FromUint64(900)),
		InvokeTxMaxNSteps: 1_000_000,
		ValidateMaxNSteps: 1_000_000,
		ResourceWeights:   config.DefaultResourceWeights(),
	}
	block.GasPrices.Eth.PriceInWei = 1
	block.GasPrices.Eth.TokenAddress = felt.AddressFromFelt(felt.FromUint64(901))

	env := Environment{
		Engine:  engine,
		Block:   block,
		Weights: config.DefaultResourceWeights(),
		Skip:    fee.SkipModes{SkipFeeTransfer: true},
	}
	return testFixture{env: env, state: st, registry: registry}
}

// deployFeeToken registers a no-op `transfer` class at the block's fee
// token address so chargeFee's call succeeds when a test does not set
// SkipFeeTransfer.
func (f testFixture) deployFeeToken(t *testing.T) {
	t.Helper()
	hash := felt.ClassHash{0xfe}
	c := &class.CompiledClass{
		Program:     alwaysOKProgram{},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{class.External: selectorEntries(felt.TransferEntryPointSelector)},
	}
	require.NoError(t, f.registry.Set(hash, c))
	require.NoError(t, f.state.DeployContract(f.env.Block.FeeTokenAddress(), hash))
}

// deployAccount registers a class exposing __validate__ and
// __validate_declare__/__validate_deploy__ (all no-op success) at addr.
func (f testFixture) deployAccount(t *testing.T, addr felt.Address, hash felt.ClassHash) {
	t.Helper()
	c := &class.CompiledClass{
		Program: alwaysOKProgram{},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: selectorEntries(
				felt.ValidateEntryPointSelector,
				felt.ValidateDeclareEntryPointSelector,
				felt.ValidateDeployEntryPointSelector,
			),
		},
	}
	require.NoError(t, f.registry.Set(hash, c))
	require.NoError(t, f.state.DeployContract(addr, hash))
}
