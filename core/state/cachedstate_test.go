package state

import (
	"testing"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/stretchr/testify/require"
)

type testReader struct{}

func (testReader) GetClassHashAt(felt.Address) (felt.ClassHash, error) { return felt.ZeroClassHash, nil }
func (testReader) GetNonceAt(felt.Address) (felt.Felt, error)          { return felt.Zero, nil }
func (testReader) GetStorageAt(felt.StorageEntry) (felt.Felt, error)   { return felt.Zero, nil }
func (testReader) GetCompiledClassHashAt(felt.ClassHash) (felt.ClassHash, error) {
	return felt.ZeroClassHash, nil
}
func (testReader) GetContractClass(felt.ClassHash) (*class.CompiledClass, error) {
	return nil, ErrMissingClass
}

func newTestState() *CachedState {
	return NewCachedState(testReader{}, NewClassRegistry())
}

func TestDeployContractZeroAddressFails(t *testing.T) {
	s := newTestState()
	err := s.DeployContract(felt.Address{}, felt.ClassHash{1})
	require.ErrorIs(t, err, ErrContractAddressOutOfRange)
}

func TestDeployContractThenReadsBackClassHash(t *testing.T) {
	s := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(7))
	hash := felt.ClassHash{2}

	require.NoError(t, s.DeployContract(addr, hash))

	got, err := s.GetClassHashAt(addr)
	require.NoError(t, err)
	require.Equal(t, hash, got)
}

func TestDeployContractOverExistingFails(t *testing.T) {
	s := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(7))
	hash := felt.ClassHash{2}

	require.NoError(t, s.DeployContract(addr, hash))
	err := s.DeployContract(addr, felt.ClassHash{3})
	require.ErrorIs(t, err, ErrContractAddressUnavailable)
}

func TestIncrementNonceTwice(t *testing.T) {
	s := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(9))

	require.NoError(t, s.IncrementNonce(addr))
	require.NoError(t, s.IncrementNonce(addr))

	got, err := s.GetNonceAt(addr)
	require.NoError(t, err)
	require.True(t, got.Equal(felt.FromUint64(2)))
}

func TestUpdateInitialValuesIdempotentWhenWritesEmpty(t *testing.T) {
	s := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(1))
	_, _ = s.GetNonceAt(addr) // populate initial_values only

	before := s.cache.nonceInitial[addr]
	s.UpdateInitialValues()
	s.UpdateInitialValues()

	require.True(t, s.cache.nonceInitial[addr].Equal(before))
	require.Empty(t, s.cache.nonceWrites)
}

func TestChildCommitRoundTrip(t *testing.T) {
	parent := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(11))
	key := felt.StorageKeyFromFelt(felt.FromUint64(42))
	entry := felt.StorageEntry{Address: addr, Key: key}

	child := parent.CreateTransactional()
	child.SetStorageAt(entry, felt.FromUint64(100))
	parent.ApplyStateUpdate(child)

	got, err := parent.GetStorageAt(entry)
	require.NoError(t, err)
	require.True(t, got.Equal(felt.FromUint64(100)))
}

func TestReadsAreMemoized(t *testing.T) {
	s := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(3))

	first, err := s.GetNonceAt(addr)
	require.NoError(t, err)

	// Mutate the cache directly to prove the second read does not
	// re-consult the reader (which would still return zero).
	s.cache.nonceInitial[addr] = felt.FromUint64(5)

	second, err := s.GetNonceAt(addr)
	require.NoError(t, err)
	require.False(t, second.Equal(first))
	require.True(t, second.Equal(felt.FromUint64(5)))
}

func TestStateDiffOnlyContainsActualChanges(t *testing.T) {
	s := newTestState()
	addr := felt.AddressFromFelt(felt.FromUint64(4))
	key := felt.StorageKeyFromFelt(felt.FromUint64(1))
	entry := felt.StorageEntry{Address: addr, Key: key}

	_, _ = s.GetStorageAt(entry) // memoize zero
	s.SetStorageAt(entry, felt.Zero)

	diff := s.StateDiff()
	require.Empty(t, diff.StorageUpdates)
}
