package fee

// SkipModes disables exactly one stage of the common transaction lifecycle
// each, per spec.md §4.6 "Skip modes" (used by simulation/estimate-fee
// callers).
type SkipModes struct {
	SkipValidate     bool
	SkipExecute      bool
	SkipFeeTransfer  bool
	IgnoreMaxFee     bool
}

// ComputeFee implements `fee = total_l1_gas * block.gas_price`.
func ComputeFee(gasUsage GasUsage, gasPriceInWei uint64) uint64 {
	return gasUsage.Total * gasPriceInWei
}

// CapActualFee implements the ground-truth `charge_fee` bound (original
// `transaction/fee.rs`): an overspend is never aborted, it is booked
// differently depending on the transaction version. A v0 transaction that
// exceeds max_fee books a fee of exactly 0 (spec.md §8 scenario 6); a v1+
// transaction books min(actualFee, maxFee) instead, so it is always capped
// at what the sender authorized. ignoreMaxFee (simulation) bypasses both
// rules and books the uncapped actualFee.
func CapActualFee(actualFee, maxFee uint64, isV1Plus bool, ignoreMaxFee bool) uint64 {
	if ignoreMaxFee {
		return actualFee
	}
	if actualFee <= maxFee {
		return actualFee
	}
	if !isV1Plus {
		return 0
	}
	return maxFee
}
