package transaction

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
)

// DeployAccountTransaction is spec.md §4.7's DeployAccount: the address is
// computed from (salt, class_hash, calldata, deployer=0) per §4.5's deploy
// formula, the class is bound to that address, the constructor runs, and
// finally __validate_deploy__ confirms the new account authorizes itself.
type DeployAccountTransaction struct {
	ClassHash           felt.ClassHash
	ContractAddressSalt felt.Felt
	ConstructorCalldata []felt.Felt
	MaxFee              uint64
	Signature           []felt.Felt
	Nonce               felt.Felt
	Version             felt.Felt
	TransactionHash     felt.Felt
}

// Execute runs DeployAccount's lifecycle (spec.md §4.7's DeployAccount
// row): deploy the class at the computed address, run the constructor,
// call __validate_deploy__, then charge the fee from that same address.
func (tx *DeployAccountTransaction) Execute(env Environment, st *state.CachedState) (*TransactionExecutionInfo, error) {
	if !tx.Nonce.IsZero() {
		return nil, ErrInvalidNonce
	}

	address := execution.ComputeDeployAddress(tx.ContractAddressSalt, tx.ClassHash, tx.ConstructorCalldata, felt.SystemAddress)

	if err := st.DeployContract(address, tx.ClassHash); err != nil {
		return nil, err
	}

	ctx := &execution.TransactionExecutionContext{
		AccountContractAddress: address,
		TransactionHash:        tx.TransactionHash,
		Signature:              tx.Signature,
		MaxFee:                 tx.MaxFee,
		Nonce:                  tx.Nonce,
		NStepsLimit:            env.Block.ValidateMaxNSteps,
		Version:                tx.Version,
	}
	resources := execution.NewResourceManager()

	constructorState := st.CreateTransactional()
	constructorInput := execution.EntryPointInput{
		ContractAddress:    address,
		EntryPointSelector: felt.ConstructorEntryPointSelector,
		CallerAddress:      felt.SystemAddress,
		EntryPointType:     class.Constructor,
		CallKind:           execution.Call,
		Calldata:           tx.ConstructorCalldata,
		InitialGas:         env.Block.ValidateMaxNSteps,
	}
	constructorCall, err := env.Engine.Execute(constructorState, constructorInput, ctx, env.Block, resources)
	if err != nil {
		return nil, err
	}
	if constructorCall.Failure != nil {
		return nil, execution.ErrExecutionFailed
	}
	st.ApplyStateUpdate(constructorState)

	var validateCall *execution.CallInfo
	if !ctx.IsQueryOnly() && !env.Skip.SkipValidate {
		validateState := st.CreateTransactional()
		validateCalldata := append([]felt.Felt{tx.ClassHash.Felt(), tx.ContractAddressSalt}, tx.ConstructorCalldata...)
		validateInput := execution.EntryPointInput{
			ContractAddress:    address,
			EntryPointSelector: felt.ValidateDeployEntryPointSelector,
			CallerAddress:      felt.SystemAddress,
			EntryPointType:     class.External,
			CallKind:           execution.Call,
			Calldata:           validateCalldata,
			InitialGas:         env.Block.ValidateMaxNSteps,
		}
		call, err := env.Engine.Execute(validateState, validateInput, ctx, env.Block, resources)
		if err != nil {
			return nil, err
		}
		if err := verifyNoCallsToOtherContracts(call, address); err != nil {
			return nil, err
		}
		if call.Failure != nil {
			return nil, execution.ErrExecutionFailed
		}
		st.ApplyStateUpdate(validateState)
		validateCall = call
	}

	if err := st.IncrementNonce(address); err != nil {
		return nil, err
	}

	feeState := st.CreateTransactional()
	transferCall, actualFee, usage, err := chargeFee(env, feeState, address, tx.MaxFee, true, constructorCall, ctx, resources)
	if err != nil {
		return nil, err
	}
	st.ApplyStateUpdate(feeState)

	return &TransactionExecutionInfo{
		ValidateCallInfo:    validateCall,
		ExecuteCallInfo:     constructorCall,
		FeeTransferCallInfo: transferCall,
		ActualFee:           actualFee,
		ActualResources:     computeActualResources(usage, validateCall, constructorCall, transferCall),
		TxType:              "DEPLOY_ACCOUNT",
	}, nil
}
