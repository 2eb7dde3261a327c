package execution

// ExecutionResources is the vector of VM-resource counters spec.md §3
// attaches to every CallInfo: the number of Cairo steps executed, the
// number of unused ("hole") memory cells, and a per-builtin invocation
// count. Addition and subtraction are pointwise; subtraction is used to
// compute the delta contributed by a nested call, mirroring the metering
// context's use-gas/restore-gas bookkeeping adapted from a single gas
// counter to a named vector.
type ExecutionResources struct {
	NSteps               uint64
	NMemoryHoles         uint64
	BuiltinInstanceCounter map[string]uint64
}

// NewExecutionResources returns a zeroed resource vector with an
// initialized builtin-counter map.
func NewExecutionResources() ExecutionResources {
	return ExecutionResources{BuiltinInstanceCounter: make(map[string]uint64)}
}

// Add returns the pointwise sum of r and other.
func (r ExecutionResources) Add(other ExecutionResources) ExecutionResources {
	out := NewExecutionResources()
	out.NSteps = r.NSteps + other.NSteps
	out.NMemoryHoles = r.NMemoryHoles + other.NMemoryHoles
	for k, v := range r.BuiltinInstanceCounter {
		out.BuiltinInstanceCounter[k] += v
	}
	for k, v := range other.BuiltinInstanceCounter {
		out.BuiltinInstanceCounter[k] += v
	}
	return out
}

// Sub returns the pointwise difference r - other, clamping each field at
// zero (a nested call can never have consumed more than its parent
// observed, but clamping guards against a misbehaving Program).
func (r ExecutionResources) Sub(other ExecutionResources) ExecutionResources {
	out := NewExecutionResources()
	out.NSteps = subClamped(r.NSteps, other.NSteps)
	out.NMemoryHoles = subClamped(r.NMemoryHoles, other.NMemoryHoles)
	for k, v := range r.BuiltinInstanceCounter {
		out.BuiltinInstanceCounter[k] = subClamped(v, other.BuiltinInstanceCounter[k])
	}
	return out
}

func subClamped(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// SyscallCounter tallies how many times each syscall name was invoked
// during one transaction. It is kept on the ResourceManager only: the gas
// formula in core/fee does not read it, and TransactionExecutionInfo does
// not carry it.
type SyscallCounter map[string]uint64

// Increment bumps the count for name by one.
func (c SyscallCounter) Increment(name string) {
	c[name]++
}

// ResourceManager is spec.md §3's `{syscall_counter, cairo_usage}` pair. It
// is owned exclusively by the running transaction and passed by pointer
// through the call stack, the same way the teacher threads a single
// metering context through every nested WASM invocation.
type ResourceManager struct {
	SyscallCounter SyscallCounter
	CairoUsage     ExecutionResources
}

// NewResourceManager returns an empty resource manager.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		SyscallCounter: make(SyscallCounter),
		CairoUsage:     NewExecutionResources(),
	}
}

// Snapshot returns the current cairo usage, for a caller to later compute a
// nested call's delta via Sub.
func (m *ResourceManager) Snapshot() ExecutionResources {
	return m.CairoUsage
}

// Accumulate folds a nested call's resource delta into the running total
// and bumps the named syscall's invocation counter.
func (m *ResourceManager) Accumulate(delta ExecutionResources, syscallName string) {
	m.CairoUsage = m.CairoUsage.Add(delta)
	if syscallName != "" {
		m.SyscallCounter.Increment(syscallName)
	}
}
