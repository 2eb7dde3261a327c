package syscall

import "github.com/lambdaclass/starknet-vm-go/core/felt"

// storageRead services `storage_read(domain, key)`. args = [domain, key];
// domain is reserved (always 0 today) and ignored, matching spec.md §4.5.
func (h *Handler) storageRead(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) != 2 {
		return nil, ErrMalformedArgs
	}
	key := felt.StorageKeyFromFelt(args[1])
	entry := felt.StorageEntry{Address: h.deps.SelfAddress, Key: key}

	v, err := h.deps.State.GetStorageAt(entry)
	if err != nil {
		return nil, err
	}
	h.deps.Recorder.RecordStorageRead(key, v)
	return []felt.Felt{v}, nil
}

// storageWrite services `storage_write(domain, key, value)`.
func (h *Handler) storageWrite(args []felt.Felt) ([]felt.Felt, error) {
	if len(args) != 3 {
		return nil, ErrMalformedArgs
	}
	key := felt.StorageKeyFromFelt(args[1])
	entry := felt.StorageEntry{Address: h.deps.SelfAddress, Key: key}

	h.deps.State.SetStorageAt(entry, args[2])
	h.deps.Recorder.RecordStorageAccess(key)
	return nil, nil
}
