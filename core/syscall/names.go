// Package syscall implements the syscall handler (spec.md §4.5, component
// C8): the dispatch table every contract entry point reaches into for
// storage access, cross-contract calls, event emission, L2->L1 messaging,
// deployment, introspection and the elliptic-curve primitive families.
package syscall

// Syscall names, matching the table in spec.md §4.5. A Program dispatches
// by name through class.Syscalls.Dispatch; argument and return encodings
// are documented per handler method.
const (
	StorageRead        = "storage_read"
	StorageWrite        = "storage_write"
	EmitEvent            = "emit_event"
	SendMessageToL1      = "send_message_to_l1"
	CallContract         = "call_contract"
	LibraryCall          = "library_call"
	Deploy               = "deploy"
	ReplaceClass         = "replace_class"
	GetExecutionInfo     = "get_execution_info"
	GetBlockHash         = "get_block_hash"
	Keccak               = "keccak"
	Secp256k1Add         = "secp256k1_add"
	Secp256k1Mul         = "secp256k1_mul"
	Secp256k1GetPointFromX = "secp256k1_get_point_from_x"
	Secp256k1GetXY       = "secp256k1_get_xy"
	Secp256r1Add         = "secp256r1_add"
	Secp256r1Mul         = "secp256r1_mul"
	Secp256r1GetPointFromX = "secp256r1_get_point_from_x"
	Secp256r1GetXY       = "secp256r1_get_xy"
)
