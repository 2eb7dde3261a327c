// Package class defines the compiled-class data model shared by the
// contract-class registry, the cached state and the execution entry point.
//
// Splitting this out of core/state avoids a cycle: core/execution needs to
// know the shape of a CompiledClass to resolve and run an entry point, and
// core/state needs to know it to serve as the class registry's backing
// store, but execution and state must not import each other directly.
package class

import "github.com/lambdaclass/starknet-vm-go/core/felt"

// EntryPointType distinguishes the three selector tables a class exposes.
type EntryPointType int

const (
	// External entry points are reachable from ordinary invoke transactions.
	External EntryPointType = iota
	// L1Handler entry points are reachable only from L1-to-L2 messages.
	L1Handler
	// Constructor is invoked exactly once, at deploy time.
	Constructor
)

// String renders the entry-point type for logging.
func (t EntryPointType) String() string {
	switch t {
	case External:
		return "EXTERNAL"
	case L1Handler:
		return "L1_HANDLER"
	case Constructor:
		return "CONSTRUCTOR"
	default:
		return "UNKNOWN"
	}
}

// EntryPoint names one callable point of a class. Deprecated (Cairo 0)
// classes address it by bytecode Offset; Sierra/CASM (Cairo 1) classes
// address it by FunctionIndex.
type EntryPoint struct {
	Selector      felt.Felt
	Offset        uint64
	FunctionIndex uint64
}

// Kind tags which compiled representation a class carries.
type Kind int

const (
	// Deprecated classes are legacy Cairo 0 programs.
	Deprecated Kind = iota
	// Sierra classes are Cairo 1, compiled to the Sierra intermediate form.
	Sierra
	// Casm classes are Cairo 1, already lowered to CASM bytecode.
	Casm
)

// Program is the callable body of a compiled class. It is a narrow seam:
// the real Cairo VM / bytecode interpreter that would normally implement it
// is out of scope for this engine (spec.md §1 — the field-arithmetic
// library and program loader are assumed external collaborators), so in
// this repository Program is satisfied only by Go closures and similar
// test stand-ins for a compiled entry point body; no VM adapter is included.
type Program interface {
	// Run executes the entry point named by ep against the given calldata,
	// dispatching any side effect through syscalls. It returns retdata on
	// success or a structured Failure, plus the resource usage this one
	// call contributed (own cost only — nested calls report their own
	// usage separately, through their own Run, and the engine folds both
	// into the enclosing CallInfo's resource delta per spec.md §3).
	Run(entryPoint EntryPoint, epType EntryPointType, calldata []felt.Felt, syscalls Syscalls, budget *GasBudget) ([]felt.Felt, *Failure, ResourceUsage, error)
}

// ResourceUsage is a Program.Run call's self-reported slice of spec.md
// §3's ExecutionResources vector (VM steps, memory holes, per-builtin
// invocation counts). It is declared here rather than reusing
// core/execution's ExecutionResources type to avoid a class -> execution
// import cycle (core/execution already imports core/class); the execution
// engine converts it on the way into a CallInfo's resource delta.
type ResourceUsage struct {
	NSteps                 uint64
	NMemoryHoles           uint64
	BuiltinInstanceCounter map[string]uint64
}

// Syscalls is the minimal surface a Program needs to reach into the host
// engine; the concrete implementation lives in core/syscall to avoid a
// class -> syscall -> state -> class import cycle.
type Syscalls interface {
	Dispatch(name string, args []felt.Felt) ([]felt.Felt, error)
}

// GasBudget tracks the remaining Cairo-1 gas during a Program.Run, per
// spec.md §4.4 "Gas": initial_gas is deducted as execution proceeds.
type GasBudget struct {
	Initial   uint64
	Remaining uint64
}

// Deduct lowers the remaining budget, clamping at zero.
func (b *GasBudget) Deduct(amount uint64) {
	if amount >= b.Remaining {
		b.Remaining = 0
		return
	}
	b.Remaining -= amount
}

// Consumed reports how much gas has been spent so far.
func (b *GasBudget) Consumed() uint64 {
	return b.Initial - b.Remaining
}

// Failure describes a user-code (contract) error, as opposed to an engine
// control-flow error: it is carried as data on the CallInfo, matching
// spec.md §9's split between "user-code errors are data, engine errors are
// control flow".
type Failure struct {
	Message string
}

// CompiledClass is the tagged variant spec.md §3 describes.
type CompiledClass struct {
	Kind           Kind
	Program        Program
	EntryPoints    map[EntryPointType][]EntryPoint
	ABI            string
	HasConstructor bool
}

// FindEntryPoint resolves a selector within one entry-point-type table,
// implementing spec.md §4.4 step 2 (and the Open Question about a mismatch
// after a same-transaction class replacement: any failed lookup surfaces
// as ErrEntryPointNotFound, never a crash).
func (c *CompiledClass) FindEntryPoint(epType EntryPointType, selector felt.Felt) (EntryPoint, error) {
	entries := c.EntryPoints[epType]

	var found *EntryPoint
	for i := range entries {
		if entries[i].Selector.Equal(selector) {
			if found != nil {
				return EntryPoint{}, ErrNonUniqueEntryPoint
			}
			e := entries[i]
			found = &e
		}
	}
	if found != nil {
		return *found, nil
	}

	for i := range entries {
		if entries[i].Selector.Equal(felt.DefaultEntryPointSelector) {
			return entries[i], nil
		}
	}

	return EntryPoint{}, ErrEntryPointNotFound
}
