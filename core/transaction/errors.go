package transaction

import "errors"

// Pre-flight validation failures (spec.md §7), raised before any state
// mutation.
var (
	ErrInvalidVersion   = errors.New("transaction: invalid version")
	ErrInvalidNonce     = errors.New("transaction: invalid nonce for this transaction kind")
	ErrInvalidMaxFee    = errors.New("transaction: invalid max fee for this transaction kind")
	ErrInvalidSignature = errors.New("transaction: invalid signature for this transaction kind")
)

// ErrInvalidTransactionNonce signals nonce != state.get_nonce_at(sender).
var ErrInvalidTransactionNonce = errors.New("transaction: nonce mismatch")

// ErrUnauthorizedActionOnValidate signals that a __validate__-family call
// touched a contract other than the sender itself (spec.md §4.7
// "Validation restriction").
var ErrUnauthorizedActionOnValidate = errors.New("transaction: validate call touched another contract")

// ErrFeeTransferError signals the fee-token transfer call failed; per
// spec.md §7 this aborts the whole transaction.
var ErrFeeTransferError = errors.New("transaction: fee transfer failed")

// ErrSenderDoesNotExist is Declare v1+'s pre-check, supplemented from the
// original implementation's `business_logic/transaction/objects/v2/declare_v2.rs`
// (the distilled spec only implies it through "Call __validate_declare__").
var ErrSenderDoesNotExist = errors.New("transaction: declare sender account does not exist")
