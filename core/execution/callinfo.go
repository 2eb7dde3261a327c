package execution

import (
	"sort"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
)

// CallKind distinguishes an ordinary cross-contract call (call_contract,
// which runs against the callee's own storage) from a library call
// (library_call, which runs the callee's code against the caller's
// storage), per spec.md §4.5.
type CallKind int

const (
	// DirectCall is the entry point of a transaction, not a syscall-driven
	// nested call.
	DirectCall CallKind = iota
	// Call is call_contract: code and storage both come from the callee.
	Call
	// Delegate is library_call: code comes from the callee, storage from
	// the caller.
	Delegate
)

// OrderedEvent pairs an emitted event with its position in the
// transaction-wide emission order (spec.md §3 "Global ordering").
type OrderedEvent struct {
	Order uint64
	Keys  []felt.Felt
	Data  []felt.Felt
}

// OrderedMessage pairs an L1 message with its position in the
// transaction-wide emission order.
type OrderedMessage struct {
	Order       uint64
	ToAddress   felt.Felt
	Payload     []felt.Felt
}

// CallInfo is the call-tree node spec.md §3 describes: one execution of one
// entry point, together with every side effect it produced and the nested
// calls it made. A full CallInfo tree is reconstructed bottom-up as nested
// Execute calls return, per spec.md §4.4 step 5.
type CallInfo struct {
	CallerAddress      felt.Address
	ContractAddress    felt.Address
	// CodeAddress is set only for a Delegate (library_call) invocation,
	// naming the class whose code ran against ContractAddress's storage.
	CodeAddress        *felt.ClassHash
	ClassHash          felt.ClassHash
	EntryPointSelector felt.Felt
	EntryPointType     class.EntryPointType
	CallKind           CallKind
	Calldata           []felt.Felt
	Retdata            []felt.Felt
	Failure            *class.Failure
	Resources          ExecutionResources
	Events             []OrderedEvent
	L2ToL1Messages     []OrderedMessage
	InnerCalls         []*CallInfo
	StorageReadValues  []felt.Felt
	AccessedStorageKeys map[felt.StorageKey]struct{}
}

// Succeeded reports whether this call (and, transitively, its whole
// subtree) completed without a Failure.
func (c *CallInfo) Succeeded() bool {
	if c.Failure != nil {
		return false
	}
	for _, inner := range c.InnerCalls {
		if !inner.Succeeded() {
			return false
		}
	}
	return true
}

// TotalResources returns the resources consumed by the whole subtree
// rooted at c. Resources already is that subtree's delta: the engine
// snapshots the shared ResourceManager around Program.Run, and nested
// calls accumulate into the same manager while the run is in progress.
func (c *CallInfo) TotalResources() ExecutionResources {
	return c.Resources
}

// AllEvents flattens this call's events together with every nested call's
// and sorts them by Order; since OrderedEvent.Order was assigned from one
// monotonic per-transaction counter (spec.md §3), the result is in global
// emission order.
func (c *CallInfo) AllEvents() []OrderedEvent {
	events := append([]OrderedEvent{}, c.Events...)
	for _, inner := range c.InnerCalls {
		events = append(events, inner.AllEvents()...)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Order < events[j].Order })
	return events
}

// AllMessages flattens this call's L1 messages together with every nested
// call's, sorted by Order, i.e. in global emission order.
func (c *CallInfo) AllMessages() []OrderedMessage {
	messages := append([]OrderedMessage{}, c.L2ToL1Messages...)
	for _, inner := range c.InnerCalls {
		messages = append(messages, inner.AllMessages()...)
	}
	sort.SliceStable(messages, func(i, j int) bool { return messages[i].Order < messages[j].Order })
	return messages
}

// Recorder is the write side of a CallInfo, handed to a syscall handler so
// it can report side effects back onto the call that is currently running
// without the handler needing to know CallInfo's full shape.
type Recorder interface {
	RecordStorageRead(key felt.StorageKey, v felt.Felt)
	RecordStorageAccess(key felt.StorageKey)
	RecordEvent(e OrderedEvent)
	RecordMessage(m OrderedMessage)
	RecordInnerCall(inner *CallInfo)
	MergeChildStorageFootprint(child *CallInfo)
}

// RecordStorageRead appends v to the in-order read log (spec.md §3
// "storage_read_values: in order of reads").
func (c *CallInfo) RecordStorageRead(key felt.StorageKey, v felt.Felt) {
	c.StorageReadValues = append(c.StorageReadValues, v)
	c.RecordStorageAccess(key)
}

// RecordStorageAccess inserts key into the accessed-keys set.
func (c *CallInfo) RecordStorageAccess(key felt.StorageKey) {
	if c.AccessedStorageKeys == nil {
		c.AccessedStorageKeys = make(map[felt.StorageKey]struct{})
	}
	c.AccessedStorageKeys[key] = struct{}{}
}

// RecordEvent appends an already-ordered event to this call's event buffer.
func (c *CallInfo) RecordEvent(e OrderedEvent) {
	c.Events = append(c.Events, e)
}

// RecordMessage appends an already-ordered message to this call's message
// buffer.
func (c *CallInfo) RecordMessage(m OrderedMessage) {
	c.L2ToL1Messages = append(c.L2ToL1Messages, m)
}

// RecordInnerCall appends a completed nested CallInfo as the next DFS
// child of this call (spec.md §3 "internal_calls: DFS-ordered children").
func (c *CallInfo) RecordInnerCall(inner *CallInfo) {
	c.InnerCalls = append(c.InnerCalls, inner)
}

// MergeChildStorageFootprint folds a just-completed nested call's storage
// reads and accessed keys into this call, per spec.md §4.5's call_contract
// / library_call handling ("merge its read values / accessed keys").
func (c *CallInfo) MergeChildStorageFootprint(child *CallInfo) {
	c.StorageReadValues = append(c.StorageReadValues, child.StorageReadValues...)
	for key := range child.AccessedStorageKeys {
		c.RecordStorageAccess(key)
	}
}
