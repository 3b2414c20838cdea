// Package memory implements the linear-memory capability the RV32I
// executor loads from and stores to: a readable view (length + load) and a
// writable extension (store), both at byte granularity with no alignment
// requirement — RV32I defines no misaligned-access trap, so the core never
// raises one.
package memory

import "fmt"

// Reader is the readable half of the memory capability.
type Reader interface {
	// Length returns the addressable size of the memory.
	Length() uint32
	// Load returns exactly length bytes starting at offset, or an error
	// if the range is not mapped or not readable.
	Load(offset uint32, length uint8) ([]byte, error)
}

// Writer extends Reader with the writable half.
type Writer interface {
	Reader
	// Store copies data into memory starting at offset.
	Store(offset uint32, data []byte) error
}

// Permission is a bitset of access rights for a Segment.
type Permission byte

const (
	PermNone    Permission = 0
	PermRead    Permission = 1 << 0
	PermWrite   Permission = 1 << 1
	PermExecute Permission = 1 << 2
)

// Segment is a named, permissioned region of backing storage.
type Segment struct {
	Name        string
	Start       uint32
	Data        []byte
	Permissions Permission
}

// Default segment layout for a freestanding RV32I image: code low, then
// data, heap, and stack, each 64KB, mirroring the conventional layout an
// embedder without its own linker script would reach for.
const (
	CodeStart  = 0x00000000
	CodeSize   = 0x00010000
	DataStart  = 0x00010000
	DataSize   = 0x00010000
	HeapStart  = 0x00020000
	HeapSize   = 0x00010000
	StackStart = 0x00030000
	StackSize  = 0x00010000
)

// Memory is a segmented byte-addressed linear memory implementing Reader
// and Writer. It is a reference backing store for tests and the main-package
// embedder in this module — the core itself only depends on the Reader
// and Writer interfaces above.
type Memory struct {
	Segments []*Segment
}

// New returns a Memory with the conventional code/data/heap/stack layout.
func New() *Memory {
	m := &Memory{}
	m.AddSegment("code", CodeStart, CodeSize, PermRead|PermExecute|PermWrite)
	m.AddSegment("data", DataStart, DataSize, PermRead|PermWrite)
	m.AddSegment("heap", HeapStart, HeapSize, PermRead|PermWrite)
	m.AddSegment("stack", StackStart, StackSize, PermRead|PermWrite)
	return m
}

// NewFlat returns a Memory with a single read/write/execute segment of the
// given size starting at offset 0 — convenient for unit tests that don't
// care about segment layout.
func NewFlat(size uint32) *Memory {
	m := &Memory{}
	m.AddSegment("flat", 0, size, PermRead|PermWrite|PermExecute)
	return m
}

// AddSegment appends a new segment to the memory.
func (m *Memory) AddSegment(name string, start, size uint32, perm Permission) {
	m.Segments = append(m.Segments, &Segment{
		Name:        name,
		Start:       start,
		Data:        make([]byte, size),
		Permissions: perm,
	})
}

// Length returns the address one past the highest mapped byte.
func (m *Memory) Length() uint32 {
	var max uint32
	for _, seg := range m.Segments {
		if end := seg.Start + uint32(len(seg.Data)); end > max {
			max = end
		}
	}
	return max
}

func (m *Memory) findSegment(offset uint32, length uint8) (*Segment, uint32, error) {
	for _, seg := range m.Segments {
		size := uint32(len(seg.Data))
		if offset >= seg.Start && offset < seg.Start+size {
			rel := offset - seg.Start
			if uint64(rel)+uint64(length) > uint64(size) {
				return nil, 0, fmt.Errorf("memory: access at 0x%08X length %d crosses segment %q bounds", offset, length, seg.Name)
			}
			return seg, rel, nil
		}
	}
	return nil, 0, fmt.Errorf("memory: address 0x%08X is not mapped", offset)
}

// Load returns length bytes starting at offset. The returned slice aliases
// the backing segment; callers must not retain it across a Store.
func (m *Memory) Load(offset uint32, length uint8) ([]byte, error) {
	seg, rel, err := m.findSegment(offset, length)
	if err != nil {
		return nil, err
	}
	if seg.Permissions&PermRead == 0 {
		return nil, fmt.Errorf("memory: read permission denied for segment %q at 0x%08X", seg.Name, offset)
	}
	return seg.Data[rel : rel+uint32(length)], nil
}

// Store copies data into memory starting at offset.
func (m *Memory) Store(offset uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) > 0xFF {
		return fmt.Errorf("memory: store of %d bytes at 0x%08X exceeds the 255-byte access limit", len(data), offset)
	}
	seg, rel, err := m.findSegment(offset, uint8(len(data)))
	if err != nil {
		return err
	}
	if seg.Permissions&PermWrite == 0 {
		return fmt.Errorf("memory: write permission denied for segment %q at 0x%08X", seg.Name, offset)
	}
	copy(seg.Data[rel:], data)
	return nil
}

// LoadImage copies an entire program image into memory starting at
// offset, without the 255-byte cap Load/Store observe for individual
// instruction-level accesses. Used by embedders to install a binary before
// starting the driver loop.
func (m *Memory) LoadImage(offset uint32, data []byte) error {
	for _, seg := range m.Segments {
		size := uint32(len(seg.Data))
		if offset >= seg.Start && offset < seg.Start+size {
			rel := offset - seg.Start
			if uint64(rel)+uint64(len(data)) > uint64(size) {
				return fmt.Errorf("memory: image of %d bytes at 0x%08X overflows segment %q", len(data), offset, seg.Name)
			}
			copy(seg.Data[rel:], data)
			return nil
		}
	}
	return fmt.Errorf("memory: address 0x%08X is not mapped", offset)
}

// CheckExecutePermission reports whether offset is mapped with execute
// permission — used by embedders that fetch bytecode out of this same
// Memory rather than a separate reader.
func (m *Memory) CheckExecutePermission(offset uint32) error {
	seg, _, err := m.findSegment(offset, 1)
	if err != nil {
		return err
	}
	if seg.Permissions&PermExecute == 0 {
		return fmt.Errorf("memory: execute permission denied for segment %q at 0x%08X", seg.Name, offset)
	}
	return nil
}
