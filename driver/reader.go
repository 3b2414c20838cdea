package driver

import "github.com/rv32i-go/rv32icore/memory"

// MemoryReader adapts a memory.Reader into a bytecode Reader, for
// embedders that fetch instructions out of the same memory they load and
// store through rather than a separate source.
type MemoryReader struct {
	Mem memory.Reader
}

// Read loads length bytes at pc from the underlying memory.
func (r MemoryReader) Read(pc uint32, length uint8) ([]byte, error) {
	return r.Mem.Load(pc, length)
}

// SliceReader is a fixed byte slice treated as a flat bytecode source,
// convenient for tests that don't need a full Memory.
type SliceReader []byte

// Read returns length bytes starting at pc, or an error if the range is
// out of bounds.
func (r SliceReader) Read(pc uint32, length uint8) ([]byte, error) {
	end := uint64(pc) + uint64(length)
	if end > uint64(len(r)) {
		return nil, errShortRead
	}
	return r[pc:end], nil
}

var errShortRead = shortReadError{}

type shortReadError struct{}

func (shortReadError) Error() string { return "riscv: read past end of bytecode slice" }
