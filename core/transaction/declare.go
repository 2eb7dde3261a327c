package transaction

import (
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
)

// DeclareTransaction is spec.md §4.7's Declare (v0, and v1+ when
// CompiledClassHash is set it is effectively v2+: a Sierra class bound to
// a CASM compiled-class hash).
type DeclareTransaction struct {
	SenderAddress     felt.Address
	ClassHash         felt.ClassHash
	CompiledClassHash felt.ClassHash
	CompiledClass     *class.CompiledClass
	MaxFee            uint64
	Signature         []felt.Felt
	Nonce             felt.Felt
	Version           felt.Felt
	TransactionHash   felt.Felt
}

// declareV0Sender is the well-known sender address Declare v0 requires
// (spec.md §4.7 "sender == 1").
var declareV0Sender = felt.AddressFromFelt(felt.One)

// ExecuteV0 runs Declare v0: no validation call, no fee, and fixed
// zero-valued max_fee/nonce/signature (spec.md §4.7's Declare v0 row).
func (tx *DeclareTransaction) ExecuteV0(st *state.CachedState) (*TransactionExecutionInfo, error) {
	if tx.MaxFee != 0 {
		return nil, ErrInvalidMaxFee
	}
	if !tx.Nonce.IsZero() {
		return nil, ErrInvalidNonce
	}
	if len(tx.Signature) != 0 {
		return nil, ErrInvalidSignature
	}
	if !tx.SenderAddress.Equal(declareV0Sender) {
		return nil, ErrInvalidSignature
	}

	st.SetContractClass(tx.ClassHash, tx.CompiledClass)

	return &TransactionExecutionInfo{
		ActualResources: map[string]uint64{"l1_gas_usage": 0, "n_steps": 0},
		TxType:          "DECLARE",
	}, nil
}

// ExecuteV1Plus runs Declare v1+: __validate_declare__ on the sender
// (forbidding cross-contract calls), then registers the compiled class
// (and its Sierra->CASM binding for v2+), then charges the fee.
func (tx *DeclareTransaction) ExecuteV1Plus(env Environment, st *state.CachedState) (*TransactionExecutionInfo, error) {
	existing, err := st.GetClassHashAt(tx.SenderAddress)
	if err != nil {
		return nil, err
	}
	if existing.IsZero() {
		return nil, ErrSenderDoesNotExist
	}

	if err := handleNonce(st, tx.SenderAddress, tx.Nonce); err != nil {
		return nil, err
	}

	ctx := &execution.TransactionExecutionContext{
		AccountContractAddress: tx.SenderAddress,
		TransactionHash:        tx.TransactionHash,
		Signature:              tx.Signature,
		MaxFee:                 tx.MaxFee,
		Nonce:                  tx.Nonce,
		NStepsLimit:            env.Block.ValidateMaxNSteps,
		Version:                tx.Version,
	}
	resources := execution.NewResourceManager()

	var validateCall *execution.CallInfo
	if !ctx.IsQueryOnly() && !env.Skip.SkipValidate {
		validateState := st.CreateTransactional()
		input := execution.EntryPointInput{
			ContractAddress:    tx.SenderAddress,
			EntryPointSelector: felt.ValidateDeclareEntryPointSelector,
			CallerAddress:      felt.SystemAddress,
			EntryPointType:     class.External,
			CallKind:           execution.Call,
			Calldata:           []felt.Felt{tx.ClassHash.Felt()},
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

	st.SetContractClass(tx.ClassHash, tx.CompiledClass)
	if !tx.CompiledClassHash.IsZero() {
		st.SetCompiledClassHashAt(tx.ClassHash, tx.CompiledClassHash)
	}

	feeState := st.CreateTransactional()
	transferCall, actualFee, usage, err := chargeFee(env, feeState, tx.SenderAddress, tx.MaxFee, true, nil, ctx, resources)
	if err != nil {
		return nil, err
	}
	st.ApplyStateUpdate(feeState)

	return &TransactionExecutionInfo{
		ValidateCallInfo:    validateCall,
		FeeTransferCallInfo: transferCall,
		ActualFee:           actualFee,
		ActualResources:     computeActualResources(usage, validateCall, transferCall),
		TxType:              "DECLARE",
	}, nil
}
