package reg

// NumRegisters is the size of the RV32I general-purpose register file.
const NumRegisters = 32

// File is the RV32I register file: 32 cells, with x0 architecturally
// hard-wired to zero. Get/Set never check bounds beyond the array's own
// size — rd/rs1/rs2 are always 5-bit fields, so index 0..31 is guaranteed
// by construction at the decode layer.
type File struct {
	cells [NumRegisters]uint32
}

// NewFile returns a zeroed register file.
func NewFile() *File {
	return &File{}
}

// Get returns register i as unsigned.
func (f *File) Get(i uint32) uint32 {
	return f.cells[i]
}

// Set writes v into register i. It does not special-case x0 — callers
// retire an instruction and then call ClearX0 once, matching the
// executor's "write freely, then force x0 back to zero" discipline.
func (f *File) Set(i uint32, v uint32) {
	f.cells[i] = v
}

// GetSigned returns register i reinterpreted as signed.
func (f *File) GetSigned(i uint32) int32 {
	return int32(f.cells[i])
}

// SetSigned writes v into register i, reinterpreted as unsigned.
func (f *File) SetSigned(i uint32, v int32) {
	f.cells[i] = uint32(v)
}

// ClearX0 forces register 0 back to zero. The executor calls this after
// every retired instruction, regardless of whether rd was 0, so that no
// observer — including a Monitor — ever sees a non-zero x0.
func (f *File) ClearX0() {
	f.cells[0] = 0
}

// Snapshot returns a copy of all 32 registers, for use by monitors that
// must not retain a reference into the live file across retirements.
func (f *File) Snapshot() [NumRegisters]uint32 {
	return f.cells
}
