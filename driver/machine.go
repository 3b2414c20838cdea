// Package driver implements the fetch/execute/monitor loop that composes a
// bytecode reader, a memory, and an RV32I decoder into a runnable machine.
// It owns the program counter and register file for the lifetime of a run;
// nothing else mutates them.
package driver

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/rv32i-go/rv32icore/isa"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

// Reader is the bytecode source: given a PC-typed offset and a length in
// bytes, it returns a borrowed byte slice of at least that length, valid
// until the next call. The driver never mutates through this interface.
type Reader interface {
	Read(pc uint32, length uint8) ([]byte, error)
}

// ContextReader is the cooperative-async shape of Reader: the only
// operation in the whole driver loop allowed to suspend. A Machine whose
// Reader also implements ContextReader can be run with RunContext.
type ContextReader interface {
	ReadContext(ctx context.Context, pc uint32, length uint8) ([]byte, error)
}

// Monitor observes one retired instruction at a time. It is purely
// observational: it must not retain pc, regs, or mem across calls, since
// the driver reuses them for the next retirement.
type Monitor interface {
	Observe(inst *isa.Inst, pc uint32, regs *reg.File, mem memory.Reader)
}

// MultiMonitor fans a single retirement notification out to several
// monitors, in order.
type MultiMonitor []Monitor

// Observe notifies every monitor in order.
func (m MultiMonitor) Observe(inst *isa.Inst, pc uint32, regs *reg.File, mem memory.Reader) {
	for _, mon := range m {
		mon.Observe(inst, pc, regs, mem)
	}
}

// Machine owns the architectural state of one RV32I core: program counter,
// register file, a bytecode reader, a memory, and an optional monitor.
// Multiple machines may coexist; they share nothing by construction.
type Machine struct {
	PC      reg.Cell32
	Regs    *reg.File
	Reader  Reader
	Mem     memory.Writer
	Decoder *isa.Decoder
	Monitor Monitor

	// Log is the machine's diagnostic logger. It defaults to discarding
	// output; embedders opt in with SetLog. Step, Run, and RunContext do
	// not write to it: register-add overflow and a decode falling through
	// to Other are not logged.
	Log *log.Logger
}

// NewMachine returns a Machine ready to run from pc 0 with a zeroed
// register file and the given reader, memory, and decoder. Pass a nil
// Decoder to use isa.NewDecoder(nil).
func NewMachine(reader Reader, mem memory.Writer, decoder *isa.Decoder) *Machine {
	if decoder == nil {
		decoder = isa.NewDecoder(nil)
	}
	return &Machine{
		Regs:    reg.NewFile(),
		Reader:  reader,
		Mem:     mem,
		Decoder: decoder,
		Log:     log.New(io.Discard, "", 0),
	}
}

// SetLog installs w as the destination for the machine's diagnostic log.
func (m *Machine) SetLog(w io.Writer) {
	m.Log = log.New(w, "rv32i: ", log.LstdFlags)
}

// Step performs one fetch/decode/execute/monitor cycle: reads 4 bytes at
// the current PC, decodes them, executes the result against PC/regs/mem,
// and — only on success — notifies the monitor. Any error from the reader,
// decoder, or executor aborts the tick and is returned to the caller:
// executor errors unchanged, reader and decoder errors wrapped with the pc
// (errors.Is/As still reach the original). The embedder decides whether
// and how to continue.
func (m *Machine) Step() error {
	pcBefore := m.PC.Uint32()

	raw, err := m.Reader.Read(pcBefore, 4)
	if err != nil {
		return fmt.Errorf("riscv: read at pc=0x%08X: %w", pcBefore, err)
	}

	inst, err := m.Decoder.Decode(raw)
	if err != nil {
		return fmt.Errorf("riscv: decode at pc=0x%08X: %w", pcBefore, err)
	}

	if err := inst.Execute(&m.PC, m.Regs, m.Mem); err != nil {
		return err
	}

	if m.Monitor != nil {
		m.Monitor.Observe(inst, pcBefore, m.Regs, m.Mem)
	}
	return nil
}

// Run steps the machine until Step returns an error, then returns that
// error. ECALL, EBREAK, and end-of-bytecode all surface this way — the
// embedder distinguishes ECALL and EBREAK with errors.Is against the errs
// sentinels; end-of-bytecode arrives as the Reader's own error, wrapped.
func (m *Machine) Run() error {
	for {
		if err := m.Step(); err != nil {
			return err
		}
	}
}

// RunContext runs like Run, but checks ctx before each tick and uses
// ReadContext instead of Read when the Reader supports it — the one
// suspension point a cooperative-async embedder needs. Decode, execute,
// and monitor notification remain synchronous and non-blocking.
func (m *Machine) RunContext(ctx context.Context) error {
	cr, ok := m.Reader.(ContextReader)
	if !ok {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := m.Step(); err != nil {
				return err
			}
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.stepContext(ctx, cr); err != nil {
			return err
		}
	}
}

func (m *Machine) stepContext(ctx context.Context, cr ContextReader) error {
	pcBefore := m.PC.Uint32()

	raw, err := cr.ReadContext(ctx, pcBefore, 4)
	if err != nil {
		return fmt.Errorf("riscv: read at pc=0x%08X: %w", pcBefore, err)
	}

	inst, err := m.Decoder.Decode(raw)
	if err != nil {
		return fmt.Errorf("riscv: decode at pc=0x%08X: %w", pcBefore, err)
	}

	if err := inst.Execute(&m.PC, m.Regs, m.Mem); err != nil {
		return err
	}

	if m.Monitor != nil {
		m.Monitor.Observe(inst, pcBefore, m.Regs, m.Mem)
	}
	return nil
}
