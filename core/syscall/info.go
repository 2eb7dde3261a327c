package syscall

import "github.com/lambdaclass/starknet-vm-go/core/felt"

// blockHashRegistryAddress is the designated system storage slot
// get_block_hash reads from (spec.md §4.5), distinct from any
// user-deployed contract address.
var blockHashRegistryAddress = felt.AddressFromFelt(felt.FromUint64(1))

// getExecutionInfo services `get_execution_info()` with no arguments. The
// response is flattened and length-prefixed in the order spec.md §4.5
// describes: block_info, tx_info (with an embedded length-prefixed
// signature), caller_address, contract_address, entry_point_selector.
func (h *Handler) getExecutionInfo(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) != 0 {
		return nil, ErrMalformedArgs
	}

	blockCtx := h.deps.BlockContext
	txCtx := h.deps.TxContext

	out := []felt.Felt{
		felt.FromUint64(blockCtx.BlockNumber),
		felt.FromUint64(blockCtx.BlockTimestamp),
		blockCtx.SequencerAddress.Felt(),

		txCtx.Version,
		txCtx.AccountContractAddress.Felt(),
		felt.FromUint64(txCtx.MaxFee),
		felt.FromUint64(uint64(len(txCtx.Signature))),
	}
	out = append(out, txCtx.Signature...)
	out = append(out,
		txCtx.TransactionHash,
		felt.FromBytes([]byte(blockCtx.ChainID)),
		txCtx.Nonce,

		h.deps.CallerAddress.Felt(),
		h.deps.SelfAddress.Felt(),
		h.deps.Selector,
	)
	return out, nil
}

// getBlockHash services `get_block_hash(block_number)`.
func (h *Handler) getBlockHash(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) != 1 {
		return nil, ErrMalformedArgs
	}
	key := felt.StorageKeyFromFelt(args[0])
	v, err := h.deps.State.GetStorageAt(felt.StorageEntry{Address: blockHashRegistryAddress, Key: key})
	if err != nil {
		return nil, err
	}
	return []felt.Felt{v}, nil
}
