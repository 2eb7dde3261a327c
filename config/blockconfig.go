package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml"
)

// BlockConfig is the typed shape of a scenario runner's block-context
// override document: chain id, block number/timestamp and the Eth gas
// price/fee-token pair a scenario run should use in place of the built-in
// test defaults.
type BlockConfig struct {
	ChainID          string `mapstructure:"chain_id"`
	BlockNumber      uint64 `mapstructure:"block_number"`
	BlockTimestamp   uint64 `mapstructure:"block_timestamp"`
	GasPriceInWei    uint64 `mapstructure:"gas_price_in_wei"`
	FeeTokenAddress  uint64 `mapstructure:"fee_token_address"`
}

// LoadBlockConfig reads a TOML document at path into a generic
// map[string]interface{} and decodes it into a BlockConfig via
// mapstructure, rather than unmarshaling directly into the struct: this
// is the shape a scenario document takes once merged with CLI-supplied
// overrides (themselves already a plain map, not a TOML node), so one
// decode path serves both origins.
func LoadBlockConfig(path string) (BlockConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BlockConfig{}, fmt.Errorf("config: read block config: %w", err)
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return BlockConfig{}, fmt.Errorf("config: parse block config: %w", err)
	}

	return DecodeBlockConfig(raw)
}

// DecodeBlockConfig decodes a loosely-typed document (parsed TOML, JSON,
// or CLI flag overrides collected into a map) into a BlockConfig.
func DecodeBlockConfig(raw map[string]interface{}) (BlockConfig, error) {
	var cfg BlockConfig
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return BlockConfig{}, fmt.Errorf("config: decode block config: %w", err)
	}
	return cfg, nil
}

// DefaultBlockConfig mirrors the harness defaults teststate.NewHarness
// builds when no override document is supplied.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		ChainID:         "SN_TEST",
		BlockNumber:     1,
		BlockTimestamp:  1000,
		GasPriceInWei:   1,
		FeeTokenAddress: 901,
	}
}
