// Package ext implements the extension-composition pattern used to bolt
// additional instruction sets onto the RV32I base: a Decoder capability
// that may wrap a fallback implementation of the same capability and
// forward words it does not recognize.
//
// Two independent uses of the pattern live here: Unit, a decoder that pins
// a chain by always failing, and EnvWrapper, which demonstrates layering
// ECALL/EBREAK over an arbitrary inner decoder rather than folding them
// into the inner decoder's own table — the composition approach the M/A/F/C
// extensions would use to sit on top of RV32I.
package ext

import (
	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/errs"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

// Decoded is an instruction a Decoder has already identified; Execute
// applies its semantics. It borrows nothing — pc/regs/mem are supplied
// fresh on every call.
type Decoded interface {
	Execute(pc *reg.Cell32, regs *reg.File, mem memory.Writer) error
}

// Decoder turns a 32-bit word into a Decoded instruction, or reports that
// it cannot. A Decoder may wrap an inner Decoder and delegate to it for any
// word it does not itself recognize.
type Decoder interface {
	Decode(w bits.Word) (Decoded, error)
}

// Unit is the trivial decoder that pins an extension chain: it never
// recognizes anything and always reports ErrFailedDecodeInstruction. An
// embedder that layers no extensions on top of RV32I uses Unit as the
// innermost fallback.
type Unit struct{}

// Decode always fails.
func (Unit) Decode(bits.Word) (Decoded, error) {
	return nil, errs.ErrFailedDecodeInstruction
}

// EnvWrapper layers ECALL/EBREAK recognition over an Inner decoder that
// does not itself special-case them. For any other opcode it delegates the
// entire decode to Inner — this is the minimal shape of the composition
// pattern: "outer handles what it knows, delegates otherwise."
type EnvWrapper struct {
	Inner Decoder
}

const systemOpcode = 0b1110011

// Decode recognizes ECALL (funct3=0, rs1=0, rd=0, imm=0) and EBREAK
// (same, imm=1) directly; everything else — including other encodings of
// opcode 0b1110011 this wrapper doesn't recognize — is delegated to Inner.
func (e EnvWrapper) Decode(w bits.Word) (Decoded, error) {
	if w.Opcode() == systemOpcode && w.Funct3() == 0 && w.Rd() == 0 && w.Rs1() == 0 {
		switch w.ImmI() {
		case 0:
			return envCall{}, nil
		case 1:
			return breakpoint{}, nil
		}
	}
	if e.Inner == nil {
		return nil, errs.ErrFailedDecodeInstruction
	}
	return e.Inner.Decode(w)
}

// envCall reports EnvironmentCall without mutating any state.
type envCall struct{}

func (envCall) Execute(*reg.Cell32, *reg.File, memory.Writer) error {
	return errs.ErrEnvironmentCall
}

// breakpoint reports Breakpoint without mutating any state.
type breakpoint struct{}

func (breakpoint) Execute(*reg.Cell32, *reg.File, memory.Writer) error {
	return errs.ErrBreakpoint
}
