// Package blockcontext carries the chain-level parameters that are
// immutable for the duration of a single transaction (spec.md §4.8).
package blockcontext

import (
	"github.com/lambdaclass/starknet-vm-go/config"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// GasPrices exposes the gas price and fee-token address for every
// currently-existing fee-payment currency. Today only Eth-denominated
// fees exist; the layout leaves room for a future Strk-denominated
// variant without touching charge_fee's signature, per spec.md §4.8's
// design decision.
type GasPrices struct {
	Eth GasPrice
}

// GasPrice pairs a wei-per-gas price with the ERC20-style fee-token
// contract address it is charged through.
type GasPrice struct {
	PriceInWei    uint64
	TokenAddress  felt.Address
}

// BlockContext is spec.md §4.8's immutable per-transaction parameter set.
type BlockContext struct {
	ChainID             string
	GasPrices           GasPrices
	BlockNumber         uint64
	BlockTimestamp      uint64
	SequencerAddress    felt.Address
	InvokeTxMaxNSteps   uint64
	ValidateMaxNSteps   uint64
	ResourceWeights     config.ResourceWeights
}

// FeeTokenAddress returns the Eth fee-token address for all
// currently-existing transaction versions, per spec.md §4.8.
func (b *BlockContext) FeeTokenAddress() felt.Address {
	return b.GasPrices.Eth.TokenAddress
}

// GasPriceInWei returns the Eth gas price for all currently-existing
// transaction versions.
func (b *BlockContext) GasPriceInWei() uint64 {
	return b.GasPrices.Eth.PriceInWei
}
