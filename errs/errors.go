// Package errs holds the error taxonomy surfaced by the RV32I core to an
// embedder: decode failures, unsupported encodings, the EnvironmentCall and
// Breakpoint sentinels reported instead of handled, and a wrapper for
// errors that originate in the embedder's own bytecode reader.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors compared with errors.Is, never by string matching.
var (
	// ErrBytecodeLengthNotEnough means fewer than 4 bytes were available
	// at the program counter.
	ErrBytecodeLengthNotEnough = errors.New("riscv: fewer than 4 bytes available at pc")

	// ErrUnsupportedOpcode is returned only by legacy decoders that have
	// no extension sub-interpreter to fall back to.
	ErrUnsupportedOpcode = errors.New("riscv: unsupported opcode")

	// ErrUnsupportedFunct3 is returned only by legacy decoders that have
	// no extension sub-interpreter to fall back to.
	ErrUnsupportedFunct3 = errors.New("riscv: unsupported funct3")

	// ErrFailedDecodeInstruction is the terminal sentinel of an
	// extension chain: every sub-interpreter declined the word.
	ErrFailedDecodeInstruction = errors.New("riscv: no interpreter in the chain could decode this instruction")

	// ErrEnvironmentCall is reported when an ECALL retires. State is not
	// mutated beyond recording the encoding; the embedder decides what
	// to do next.
	ErrEnvironmentCall = errors.New("riscv: environment call")

	// ErrBreakpoint is reported when an EBREAK retires.
	ErrBreakpoint = errors.New("riscv: breakpoint")
)

// ReaderError is an opaque pass-through of the embedder's bytecode-reader
// or memory failure. It preserves the original error for errors.Is/As
// while giving the core a single type to recognize.
type ReaderError struct {
	Err error
}

// NewReaderError wraps err as a ReaderError, or returns nil if err is nil.
func NewReaderError(err error) error {
	if err == nil {
		return nil
	}
	return &ReaderError{Err: err}
}

// Error implements the error interface.
func (e *ReaderError) Error() string {
	return fmt.Sprintf("riscv: reader error: %v", e.Err)
}

// Unwrap allows errors.Is/errors.As to see through to the embedder's error.
func (e *ReaderError) Unwrap() error {
	return e.Err
}
