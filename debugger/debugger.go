// Package debugger implements an interactive, instruction-level stepper
// for an RV32I driver.Machine: breakpoint-by-address, step/continue, and
// register/memory/PC inspection, driven off the same Machine an embedder
// runs directly. It is adapted from the teacher's ARM command-line and TUI
// debugger, narrowed to the state this architecture actually has — no
// CPSR flags, no call stack, no assembly source or symbol table, since the
// core interprets raw machine words, not an assembly-language program.
package debugger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rv32i-go/rv32icore/driver"
	"github.com/rv32i-go/rv32icore/errs"
	"github.com/rv32i-go/rv32icore/isa"
)

// regNames maps the RISC-V ABI register names to their x-register index,
// so breakpoint/print/set commands accept either "x10" or "a0".
var regNames = map[string]uint32{
	"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
	"t0": 5, "t1": 6, "t2": 7,
	"s0": 8, "fp": 8, "s1": 9,
	"a0": 10, "a1": 11, "a2": 12, "a3": 13, "a4": 14, "a5": 15, "a6": 16, "a7": 17,
	"s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23, "s8": 24, "s9": 25, "s10": 26, "s11": 27,
	"t3": 28, "t4": 29, "t5": 30, "t6": 31,
}

// StopReason is not an error: it is why the run loop gave up control back
// to the embedder.
type StopReason int

const (
	StopNone StopReason = iota
	StopBreakpoint
	StopStep
	StopEnvironmentCall
	StopBreakInstruction
	StopError
	StopReaderExhausted
)

// Debugger wraps a driver.Machine with breakpoint management, command
// history, and a line-oriented command interpreter. It never calls
// Machine.Run — that loop has no stopping point for a breakpoint — and
// instead steps the machine itself, checking breakpoints before each tick.
type Debugger struct {
	Machine *driver.Machine

	Breakpoints *BreakpointManager
	History     *CommandHistory

	Running     bool
	LastCommand string
	LastErr     error
	LastStop    StopReason

	Output strings.Builder
}

// NewDebugger returns a Debugger over machine, with no breakpoints set.
func NewDebugger(machine *driver.Machine) *Debugger {
	return &Debugger{
		Machine:     machine,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
	}
}

// Printf writes formatted output to the output buffer.
func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

// Println writes a line to the output buffer.
func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

// GetOutput returns and clears the output buffer.
func (d *Debugger) GetOutput() string {
	s := d.Output.String()
	d.Output.Reset()
	return s
}

// ExecuteCommand parses and dispatches one command line. An empty line
// repeats the last command, matching the teacher's REPL behavior for
// step/continue.
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	cmdLine = strings.TrimSpace(cmdLine)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}
	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s", "si":
		return d.cmdStep(args)
	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdTBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdEnable(args)
	case "disable":
		return d.cmdDisable(args)
	case "print", "p":
		return d.cmdPrint(args)
	case "x":
		return d.cmdExamine(args)
	case "set":
		return d.cmdSet(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "reset":
		return d.cmdReset(args)
	case "history":
		return d.cmdHistory(args)
	case "help", "h", "?":
		return d.cmdHelp(args)
	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// resolveRegister parses a register token ("x10", "a0", "pc") into its
// x-register index, or -1 for "pc".
func (d *Debugger) resolveRegister(tok string) (int, error) {
	tok = strings.ToLower(tok)
	if tok == "pc" {
		return -1, nil
	}
	if i, ok := regNames[tok]; ok {
		return int(i), nil
	}
	if strings.HasPrefix(tok, "x") {
		n, err := strconv.Atoi(tok[1:])
		if err == nil && n >= 0 && n < 32 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("invalid register: %s", tok)
}

// resolveValue parses a register name or a numeric literal (0x-prefixed or
// decimal) into a uint32. There is no symbol table in this core's domain —
// addresses and register names are the only lvalues a debugger command
// understands.
func (d *Debugger) resolveValue(tok string) (uint32, error) {
	if reg, err := d.resolveRegister(tok); err == nil {
		if reg < 0 {
			return d.Machine.PC.Uint32(), nil
		}
		return d.Machine.Regs.Get(uint32(reg)), nil
	}
	return parseUint32(tok)
}

func parseUint32(tok string) (uint32, error) {
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		v, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid address: %s", tok)
		}
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", tok)
	}
	return uint32(v), nil
}

// stepOnce retires exactly one instruction and classifies the outcome.
// ECALL/EBREAK are architectural events, not debugger faults: the loop
// reports them and stops, leaving the embedder (here, the debugger's
// caller) to decide what happens next.
func (d *Debugger) stepOnce() (StopReason, *isa.Inst, error) {
	pcBefore := d.Machine.PC.Uint32()

	raw, err := d.Machine.Reader.Read(pcBefore, 4)
	if err != nil {
		return StopReaderExhausted, nil, err
	}
	inst, err := d.Machine.Decoder.Decode(raw)
	if err != nil {
		return StopError, nil, err
	}
	if err := inst.Execute(&d.Machine.PC, d.Machine.Regs, d.Machine.Mem); err != nil {
		switch {
		case errors.Is(err, errs.ErrEnvironmentCall):
			return StopEnvironmentCall, inst, err
		case errors.Is(err, errs.ErrBreakpoint):
			return StopBreakInstruction, inst, err
		default:
			return StopError, inst, err
		}
	}
	if d.Machine.Monitor != nil {
		d.Machine.Monitor.Observe(inst, pcBefore, d.Machine.Regs, d.Machine.Mem)
	}
	return StopNone, inst, nil
}

// Continue runs instructions until a breakpoint, an ECALL/EBREAK, or an
// error from the reader/decoder/executor. A breakpoint at the PC execution
// starts from is not checked, so Continue after a breakpoint stop moves on.
func (d *Debugger) Continue() (StopReason, error) {
	first := true
	for {
		if bp := d.Breakpoints.GetBreakpoint(d.Machine.PC.Uint32()); !first && bp != nil && bp.Enabled {
			hit := d.Breakpoints.ProcessHit(bp.Address)
			return StopBreakpoint, fmt.Errorf("breakpoint %d at 0x%08X", hit.ID, hit.Address)
		}
		first = false
		reason, _, err := d.stepOnce()
		if reason != StopNone {
			d.LastStop = reason
			d.LastErr = err
			d.Running = false
			return reason, err
		}
	}
}

// Step retires exactly one instruction, regardless of breakpoints.
func (d *Debugger) Step() (StopReason, error) {
	reason, _, err := d.stepOnce()
	if reason == StopNone {
		reason = StopStep
	}
	d.LastStop = reason
	d.LastErr = err
	return reason, err
}
