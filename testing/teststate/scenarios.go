package teststate

import (
	"math/big"

	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/syscall"
)

// closureProgram adapts a plain Go function to class.Program, the same
// narrow-seam stand-in core/syscall's own tests use in place of a real
// compiled Cairo body (spec.md §1's VM/bytecode-interpreter collaborator
// is out of scope; only the syscall surface it drives is in scope here).
type closureProgram struct {
	run func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error)
}

func (p closureProgram) Run(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
	return p.run(ep, epType, calldata, syscalls, budget)
}

// steps reports a closure's self-cost as a step count, standing in for the
// real VM's per-instruction telemetry (spec.md §1's program loader / field
// library are out of scope; only this self-reported count is needed to
// satisfy spec.md §8 invariant #1, n_steps > 0 for every successful call).
func steps(n uint64) class.ResourceUsage {
	return class.ResourceUsage{NSteps: n}
}

// FibSelector is the one external entry point FibonacciClass exposes.
var FibSelector = felt.FromUint64(1001)

// FibonacciClass implements spec.md §8 scenario 1: `fib(a, b, n)` iterates
// n times and returns the final term (fib(1,1,10) == 144).
func FibonacciClass() *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			if len(calldata) != 3 {
				return nil, &class.Failure{Message: "fib: expected 3 arguments"}, steps(1), nil
			}
			a, b, n := calldata[0], calldata[1], calldata[2].Uint64()
			for i := uint64(0); i < n; i++ {
				a, b = b, a.Add(b)
			}
			return []felt.Felt{b}, nil, steps(n + 1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: FibSelector}},
		},
	}
}

// SqrtSelector is the entry point SqrtLibraryClass exposes, called via
// library_call from CallerClass.
var SqrtSelector = felt.FromUint64(1002)

// SqrtLibraryClass implements the library_call target of spec.md §8
// scenario 2: `sqrt(n)` returns the integer square root.
func SqrtLibraryClass() *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			if len(calldata) != 1 {
				return nil, &class.Failure{Message: "sqrt: expected 1 argument"}, steps(1), nil
			}
			root := new(big.Int).Sqrt(calldata[0].BigInt())
			return []felt.Felt{felt.FromBigInt(root)}, nil, steps(1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: SqrtSelector}},
		},
	}
}

// SqrtCallerSelector is the entry point SqrtCallerClass exposes.
var SqrtCallerSelector = felt.FromUint64(1003)

// SqrtCallerClass delegates its "sqrt" entry point to libraryClassHash via
// library_call, per spec.md §8 scenario 2.
func SqrtCallerClass(libraryClassHash felt.ClassHash) *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			args := append([]felt.Felt{libraryClassHash.Felt(), SqrtSelector, felt.FromUint64(uint64(len(calldata)))}, calldata...)
			args = append(args, felt.FromUint64(budget.Remaining))
			retdata, err := syscalls.Dispatch(syscall.LibraryCall, args)
			if err != nil {
				return nil, &class.Failure{Message: err.Error()}, steps(1), nil
			}
			return retdata, nil, steps(1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: SqrtCallerSelector}},
		},
	}
}

// EmitterSelector is the entry point EmitterClass exposes.
var EmitterSelector = felt.FromUint64(1004)

// EmitterClass emits the single event spec.md §8 scenario 3 names
// (keys=[0x6E], data=[0x01]) from whatever address it runs at.
func EmitterClass() *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			args := []felt.Felt{felt.One, felt.FromUint64(0x6E), felt.One, felt.One}
			if _, err := syscalls.Dispatch(syscall.EmitEvent, args); err != nil {
				return nil, &class.Failure{Message: err.Error()}, steps(1), nil
			}
			return nil, nil, steps(1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: EmitterSelector}},
		},
	}
}

// CallerSelector is the entry point CallerClass exposes.
var CallerSelector = felt.FromUint64(1005)

// CallerClass calls into calleeAddress's EmitterSelector via
// call_contract, per spec.md §8 scenario 3's "caller ... callee" shape.
func CallerClass(calleeAddress felt.Address) *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			args := []felt.Felt{calleeAddress.Felt(), EmitterSelector, felt.Zero, felt.FromUint64(budget.Remaining)}
			if _, err := syscalls.Dispatch(syscall.CallContract, args); err != nil {
				return nil, &class.Failure{Message: err.Error()}, steps(1), nil
			}
			return nil, nil, steps(1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: CallerSelector}},
		},
	}
}

// GetNumberSelector and UpgradeSelector are UpgradeableClass's two entry
// points.
var (
	GetNumberSelector = felt.FromUint64(1006)
	UpgradeSelector   = felt.FromUint64(1007)
)

// UpgradeableClass implements spec.md §8 scenario 4: `get_number` returns
// a fixed value, `upgrade(class_hash)` replaces the deployed class so the
// next `get_number` call runs the new class's body instead.
func UpgradeableClass(number uint64) *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			switch {
			case ep.Selector.Equal(GetNumberSelector):
				return []felt.Felt{felt.FromUint64(number)}, nil, steps(1), nil
			case ep.Selector.Equal(UpgradeSelector):
				if len(calldata) != 1 {
					return nil, &class.Failure{Message: "upgrade: expected 1 argument"}, steps(1), nil
				}
				newClassHash := felt.ClassHashFromFelt(calldata[0])
				if _, err := syscalls.Dispatch(syscall.ReplaceClass, []felt.Felt{newClassHash.Felt()}); err != nil {
					return nil, &class.Failure{Message: err.Error()}, steps(1), nil
				}
				return nil, nil, steps(1), nil
			default:
				return nil, &class.Failure{Message: "upgradeable: unknown selector"}, steps(1), nil
			}
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {
				{Selector: GetNumberSelector},
				{Selector: UpgradeSelector},
			},
		},
	}
}

// DeployerSelector is the entry point DeployerClass exposes.
var DeployerSelector = felt.FromUint64(1008)

// DeployerClass deploys targetClassHash at `H(salt, targetClassHash,
// calldata=[100], self_addr)` via the `deploy` syscall, per spec.md §8
// scenario 5's collision setup.
func DeployerClass(targetClassHash felt.ClassHash) *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			args := []felt.Felt{
				targetClassHash.Felt(),
				felt.One,                       // salt = 1
				felt.One, felt.FromUint64(100), // calldata = [100]
				felt.Zero, // deploy_from_zero = false (deployer = self_addr)
				felt.FromUint64(budget.Remaining),
			}
			retdata, err := syscalls.Dispatch(syscall.Deploy, args)
			if err != nil {
				return nil, &class.Failure{Message: err.Error()}, steps(1), nil
			}
			return retdata, nil, steps(1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.External: {{Selector: DeployerSelector}},
		},
	}
}

// DeployTargetClass is the deploy target for spec.md §8 scenario 5: its
// constructor accepts the single-element calldata (`[100]`) DeployerClass
// passes, so the deploy syscall's constructor call surfaces as the
// asserted inner CallInfo instead of failing on a no-constructor/non-empty
// calldata mismatch.
func DeployTargetClass() *class.CompiledClass {
	return &class.CompiledClass{
		Program: closureProgram{run: func(ep class.EntryPoint, epType class.EntryPointType, calldata []felt.Felt, syscalls class.Syscalls, budget *class.GasBudget) ([]felt.Felt, *class.Failure, class.ResourceUsage, error) {
			return nil, nil, steps(1), nil
		}},
		EntryPoints: map[class.EntryPointType][]class.EntryPoint{
			class.Constructor: {{Selector: felt.ConstructorEntryPointSelector}},
		},
		HasConstructor: true,
	}
}
