package transaction

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
)

// DeployTransaction is spec.md §4.7's legacy Deploy: identical to the
// `deploy` syscall (§4.5) but triggered top-level, with no caller so the
// deployer is always the system address, and with no fee settlement.
type DeployTransaction struct {
	ClassHash           felt.ClassHash
	ContractAddressSalt felt.Felt
	ConstructorCalldata []felt.Felt
	Version             felt.Felt
	TransactionHash     felt.Felt
}

// Execute deploys the class at the computed address and runs its
// constructor, mirroring the `deploy` syscall's own logic (core/syscall's
// deploy handler) but as a standalone transaction with no fee charge.
func (tx *DeployTransaction) Execute(env Environment, st *state.CachedState) (*TransactionExecutionInfo, error) {
	address := execution.ComputeDeployAddress(tx.ContractAddressSalt, tx.ClassHash, tx.ConstructorCalldata, felt.SystemAddress)

	if err := st.DeployContract(address, tx.ClassHash); err != nil {
		return nil, err
	}

	compiled, err := st.GetContractClass(tx.ClassHash)
	if err != nil {
		return nil, err
	}

	if !compiled.HasConstructor {
		if len(tx.ConstructorCalldata) > 0 {
			return nil, execution.ErrConstructorCalldataMismatch
		}
		return &TransactionExecutionInfo{
			ActualResources: map[string]uint64{"l1_gas_usage": 0, "n_steps": 0},
			TxType:          "DEPLOY",
		}, nil
	}

	ctx := &execution.TransactionExecutionContext{
		AccountContractAddress: address,
		TransactionHash:        tx.TransactionHash,
		NStepsLimit:            env.Block.InvokeTxMaxNSteps,
		Version:                tx.Version,
	}
	resources := execution.NewResourceManager()

	constructorState := st.CreateTransactional()
	input := execution.EntryPointInput{
		ContractAddress:    address,
		EntryPointSelector: felt.ConstructorEntryPointSelector,
		CallerAddress:      felt.SystemAddress,
		EntryPointType:     class.Constructor,
		CallKind:           execution.Call,
		Calldata:           tx.ConstructorCalldata,
		InitialGas:         env.Block.InvokeTxMaxNSteps,
	}
	constructorCall, err := env.Engine.Execute(constructorState, input, ctx, env.Block, resources)
	if err != nil {
		return nil, err
	}
	if constructorCall.Failure != nil {
		return nil, execution.ErrExecutionFailed
	}
	st.ApplyStateUpdate(constructorState)

	resourcesUsed := constructorCall.TotalResources()
	actualResources := map[string]uint64{"l1_gas_usage": 0, "n_steps": resourcesUsed.NSteps}
	for name, count := range resourcesUsed.BuiltinInstanceCounter {
		actualResources[name] = count
	}

	return &TransactionExecutionInfo{
		ExecuteCallInfo: constructorCall,
		ActualResources: actualResources,
		TxType:          "DEPLOY",
	}, nil
}
