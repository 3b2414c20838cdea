// Command rv32icore is a small demonstration harness around the rv32icore
// library: it loads a raw RV32I machine-code image, wires it into a
// driver.Machine using the config package's execution limits, and either
// runs it to completion or hands it to the debugger or gui package.
//
// This binary is a convenience around the library, not the library itself —
// the core engine takes no dependency on flags, files, or any of this.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rv32i-go/rv32icore/config"
	"github.com/rv32i-go/rv32icore/debugger"
	"github.com/rv32i-go/rv32icore/driver"
	"github.com/rv32i-go/rv32icore/errs"
	"github.com/rv32i-go/rv32icore/gui"
	"github.com/rv32i-go/rv32icore/isa"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/monitor"
)

func main() {
	var (
		entry      = flag.Uint("entry", 0, "entry address to load the image at and start execution from")
		configPath = flag.String("config", "", "path to a TOML configuration file (defaults to the platform config path)")
		trace      = flag.Bool("trace", false, "attach an instruction/register-change trace monitor")
		stats      = flag.Bool("stats", false, "attach an instruction-mix/branch statistics monitor")
		debug      = flag.Bool("debug", false, "launch the command-line debugger instead of running to completion")
		tui        = flag.Bool("tui", false, "launch the full-screen TUI debugger instead of running to completion")
		viewer     = flag.Bool("gui", false, "attach a graphical register/memory viewer while running")
		verbose    = flag.Bool("verbose", false, "log diagnostic output to stderr")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rv32icore [flags] <image-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFrom(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = loaded
	} else if loaded, err := config.Load(); err == nil {
		cfg = loaded
	}

	image, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	mem := &memory.Memory{}
	mem.AddSegment("code", memory.CodeStart, cfg.Memory.CodeSize, memory.PermRead|memory.PermWrite|memory.PermExecute)
	mem.AddSegment("data", memory.DataStart, cfg.Memory.DataSize, memory.PermRead|memory.PermWrite)
	mem.AddSegment("heap", memory.HeapStart, cfg.Memory.HeapSize, memory.PermRead|memory.PermWrite)
	mem.AddSegment("stack", memory.StackStart, cfg.Memory.StackSize, memory.PermRead|memory.PermWrite)
	if err := mem.LoadImage(uint32(*entry), image); err != nil {
		fatal(err)
	}

	reader := driver.MemoryReader{Mem: mem}
	machine := driver.NewMachine(reader, mem, isa.NewDecoder(nil))
	machine.PC.SetUint32(uint32(*entry))

	if *verbose {
		machine.SetLog(os.Stderr)
	}

	var mons driver.MultiMonitor
	if *trace {
		mons = append(mons, monitor.NewTrace(os.Stderr))
	}
	if *stats {
		mons = append(mons, monitor.NewStats())
	}

	var view *gui.Viewer
	if *viewer {
		view = gui.NewViewer()
		mons = append(mons, view)
	}
	if len(mons) > 0 {
		machine.Monitor = mons
	}

	run := func() {
		switch {
		case *debug:
			dbg := debugger.NewDebugger(machine)
			if err := debugger.RunCLI(dbg); err != nil {
				fatal(err)
			}
		case *tui:
			dbg := debugger.NewDebugger(machine)
			if err := debugger.RunTUI(dbg); err != nil {
				fatal(err)
			}
		default:
			runToCompletion(machine, cfg.Execution.MaxRetirements)
		}
	}

	if view != nil {
		go func() {
			run()
			view.App.Quit()
		}()
		view.Run()
		return
	}
	run()
}

// runToCompletion steps machine until it reports ECALL/EBREAK, a reader
// exhaustion, or a decode/execute error, printing the outcome to stdout.
// A zero maxRetirements means unbounded.
func runToCompletion(machine *driver.Machine, maxRetirements uint64) {
	var retired uint64
	for {
		if maxRetirements > 0 && retired >= maxRetirements {
			fmt.Printf("stopped after %d retirements (limit reached)\n", retired)
			return
		}
		if err := machine.Step(); err != nil {
			switch {
			case errors.Is(err, errs.ErrEnvironmentCall):
				fmt.Printf("ECALL at pc=0x%08X after %d instructions\n", machine.PC.Uint32(), retired)
			case errors.Is(err, errs.ErrBreakpoint):
				fmt.Printf("EBREAK at pc=0x%08X after %d instructions\n", machine.PC.Uint32(), retired)
			default:
				fmt.Printf("stopped at pc=0x%08X after %d instructions: %v\n", machine.PC.Uint32(), retired, err)
			}
			return
		}
		retired++
	}
}

func fatal(err error) {
	log.SetFlags(0)
	log.Fatal(err)
}
