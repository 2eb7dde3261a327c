package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadBlockConfigDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "block.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
chain_id = "SN_MAIN"
block_number = 42
block_timestamp = 99999
gas_price_in_wei = 5
fee_token_address = 7
`), 0o644))

	cfg, err := LoadBlockConfig(path)
	require.NoError(t, err)
	require.Equal(t, BlockConfig{
		ChainID:         "SN_MAIN",
		BlockNumber:     42,
		BlockTimestamp:  99999,
		GasPriceInWei:   5,
		FeeTokenAddress: 7,
	}, cfg)
}

func TestDecodeBlockConfigFromOverrideMap(t *testing.T) {
	cfg, err := DecodeBlockConfig(map[string]interface{}{
		"chain_id":     "SN_GOERLI",
		"block_number": uint64(10),
	})
	require.NoError(t, err)
	require.Equal(t, "SN_GOERLI", cfg.ChainID)
	require.Equal(t, uint64(10), cfg.BlockNumber)
}
