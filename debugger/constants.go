package debugger

// Memory Display Constants
const (
	// MemoryDisplayRows is the number of rows to show in the memory hex dump view.
	MemoryDisplayRows = 16

	// MemoryDisplayColumns is the number of bytes per row in the memory hex dump view.
	MemoryDisplayColumns = 16
)

// Register Display Constants
const (
	// RegisterGroupSize is the number of registers displayed per row.
	RegisterGroupSize = 4
)

// DisassemblyWindow is the number of instructions shown around PC in the
// TUI's disassembly panel (half before, half after).
const DisassemblyWindow = 16
