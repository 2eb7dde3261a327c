// Command scenariorun drives one of the canned end-to-end scenarios
// (testing/teststate) against a fresh in-memory state and prints its
// call-tree, mirroring the teacher's cmd/mandostestcli as a small
// standalone executable over the library's test scaffolding, rebuilt
// around urfave/cli/v2 instead of the teacher's stdlib flag parsing.
package main

import (
	"fmt"
	"os"

	"github.com/lambdaclass/starknet-vm-go/config"
	"github.com/lambdaclass/starknet-vm-go/core/blockcontext"
	"github.com/lambdaclass/starknet-vm-go/core/class"
	"github.com/lambdaclass/starknet-vm-go/core/execution"
	"github.com/lambdaclass/starknet-vm-go/core/felt"
	"github.com/lambdaclass/starknet-vm-go/core/state"
	"github.com/lambdaclass/starknet-vm-go/core/syscall"
	"github.com/lambdaclass/starknet-vm-go/testing/teststate"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "scenariorun",
		Usage: "run one of the built-in end-to-end scenarios against a fresh in-memory state",
		Commands: []*cli.Command{
			listCommand(),
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

var scenarioNames = []string{"fibonacci", "sqrt", "emit", "upgrade", "deploy"}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list the available scenario names",
		Action: func(c *cli.Context) error {
			for _, name := range scenarioNames {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a named scenario",
		ArgsUsage: "<scenario>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "block-config", Usage: "path to a TOML block-context override document"},
			&cli.BoolFlag{Name: "dot", Usage: "print the resulting call tree as Graphviz DOT instead of a summary"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one scenario name, got %d", c.NArg())
			}
			name := c.Args().Get(0)

			blockCfg := config.DefaultBlockConfig()
			if path := c.String("block-config"); path != "" {
				loaded, err := config.LoadBlockConfig(path)
				if err != nil {
					return err
				}
				blockCfg = loaded
			}

			call, err := runScenario(name, blockCfg)
			if err != nil {
				return err
			}

			if c.Bool("dot") {
				dot, err := execution.CallTreeDot(call)
				if err != nil {
					return fmt.Errorf("render call tree: %w", err)
				}
				fmt.Println(dot)
				return nil
			}

			printSummary(call)
			return nil
		},
	}
}

func printSummary(call *execution.CallInfo) {
	status := "OK"
	if !call.Succeeded() {
		status = "FAILED: " + call.Failure.Message
	}
	fmt.Printf("contract=%s selector=%s status=%s\n", call.ContractAddress.String(), call.EntryPointSelector.Short(), status)
	for i, r := range call.Retdata {
		fmt.Printf("  retdata[%d] = %s\n", i, r.String())
	}
	for i, inner := range call.InnerCalls {
		fmt.Printf("  inner[%d]: contract=%s classHash=%s\n", i, inner.ContractAddress.String(), inner.ClassHash.String())
	}
	for _, ev := range call.AllEvents() {
		fmt.Printf("  event#%d keys=%v data=%v\n", ev.Order, ev.Keys, ev.Data)
	}
}

// buildEnvironment wires a fresh engine, committed state and block context
// the same way testing/teststate.NewHarness does, minus the *testing.T
// dependency a plain CLI binary has no use for.
func buildEnvironment(cfg config.BlockConfig) (*state.CachedState, *state.ClassRegistry, *execution.Engine, *blockcontext.BlockContext) {
	reader := teststate.NewInMemoryReader()
	registry := state.NewClassRegistry()
	st := state.NewCachedState(reader, registry)
	engine := execution.NewEngine(syscall.NewFactory())

	block := &blockcontext.BlockContext{
		ChainID:           cfg.ChainID,
		BlockNumber:       cfg.BlockNumber,
		BlockTimestamp:    cfg.BlockTimestamp,
		SequencerAddress:  felt.AddressFromFelt(felt.FromUint64(900)),
		InvokeTxMaxNSteps: 10_000_000,
		ValidateMaxNSteps: 10_000_000,
		ResourceWeights:   config.DefaultResourceWeights(),
	}
	block.GasPrices.Eth.PriceInWei = cfg.GasPriceInWei
	block.GasPrices.Eth.TokenAddress = felt.AddressFromFelt(felt.FromUint64(cfg.FeeTokenAddress))

	return st, registry, engine, block
}

func invoke(engine *execution.Engine, st *state.CachedState, block *blockcontext.BlockContext, addr felt.Address, selector felt.Felt, calldata []felt.Felt) (*execution.CallInfo, error) {
	input := execution.EntryPointInput{
		ContractAddress:    addr,
		EntryPointSelector: selector,
		EntryPointType:     class.External,
		CallKind:           execution.DirectCall,
		Calldata:           calldata,
		InitialGas:         block.InvokeTxMaxNSteps,
	}
	return engine.Execute(st, input, &execution.TransactionExecutionContext{NStepsLimit: block.InvokeTxMaxNSteps}, block, execution.NewResourceManager())
}

func runScenario(name string, cfg config.BlockConfig) (*execution.CallInfo, error) {
	st, registry, engine, block := buildEnvironment(cfg)

	switch name {
	case "fibonacci":
		hash := felt.ClassHashFromFelt(felt.FromUint64(1))
		addr := felt.AddressFromFelt(felt.FromUint64(10))
		if err := registry.Set(hash, teststate.FibonacciClass()); err != nil {
			return nil, err
		}
		if err := st.DeployContract(addr, hash); err != nil {
			return nil, err
		}
		return invoke(engine, st, block, addr, teststate.FibSelector, []felt.Felt{felt.One, felt.One, felt.FromUint64(10)})

	case "sqrt":
		libHash := felt.ClassHashFromFelt(felt.FromUint64(2))
		callerHash := felt.ClassHashFromFelt(felt.FromUint64(3))
		libAddr := felt.AddressFromFelt(felt.FromUint64(20))
		callerAddr := felt.AddressFromFelt(felt.FromUint64(21))
		if err := registry.Set(libHash, teststate.SqrtLibraryClass()); err != nil {
			return nil, err
		}
		if err := registry.Set(callerHash, teststate.SqrtCallerClass(libHash)); err != nil {
			return nil, err
		}
		if err := st.DeployContract(libAddr, libHash); err != nil {
			return nil, err
		}
		if err := st.DeployContract(callerAddr, callerHash); err != nil {
			return nil, err
		}
		return invoke(engine, st, block, callerAddr, teststate.SqrtCallerSelector, []felt.Felt{felt.FromUint64(81)})

	case "emit":
		calleeHash := felt.ClassHashFromFelt(felt.FromUint64(4))
		callerHash := felt.ClassHashFromFelt(felt.FromUint64(5))
		calleeAddr := felt.AddressFromFelt(felt.FromUint64(30))
		callerAddr := felt.AddressFromFelt(felt.FromUint64(31))
		if err := registry.Set(calleeHash, teststate.EmitterClass()); err != nil {
			return nil, err
		}
		if err := registry.Set(callerHash, teststate.CallerClass(calleeAddr)); err != nil {
			return nil, err
		}
		if err := st.DeployContract(calleeAddr, calleeHash); err != nil {
			return nil, err
		}
		if err := st.DeployContract(callerAddr, callerHash); err != nil {
			return nil, err
		}
		return invoke(engine, st, block, callerAddr, teststate.CallerSelector, nil)

	case "upgrade":
		oldHash := felt.ClassHashFromFelt(felt.FromUint64(6))
		newHash := felt.ClassHashFromFelt(felt.FromUint64(7))
		addr := felt.AddressFromFelt(felt.FromUint64(40))
		if err := registry.Set(oldHash, teststate.UpgradeableClass(1)); err != nil {
			return nil, err
		}
		if err := registry.Set(newHash, teststate.UpgradeableClass(2)); err != nil {
			return nil, err
		}
		if err := st.DeployContract(addr, oldHash); err != nil {
			return nil, err
		}
		if _, err := invoke(engine, st, block, addr, teststate.UpgradeSelector, []felt.Felt{newHash.Felt()}); err != nil {
			return nil, err
		}
		return invoke(engine, st, block, addr, teststate.GetNumberSelector, nil)

	case "deploy":
		deployerHash := felt.ClassHashFromFelt(felt.FromUint64(8))
		targetHash := felt.ClassHashFromFelt(felt.FromUint64(9))
		deployerAddr := felt.AddressFromFelt(felt.FromUint64(1111))
		if err := registry.Set(deployerHash, teststate.DeployerClass(targetHash)); err != nil {
			return nil, err
		}
		if err := registry.Set(targetHash, teststate.DeployTargetClass()); err != nil {
			return nil, err
		}
		if err := st.DeployContract(deployerAddr, deployerHash); err != nil {
			return nil, err
		}
		return invoke(engine, st, block, deployerAddr, teststate.DeployerSelector, nil)

	default:
		return nil, fmt.Errorf("unknown scenario %q (see `scenariorun list`)", name)
	}
}
