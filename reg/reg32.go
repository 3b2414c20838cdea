// Package reg implements the register-cell capability and the 32-entry
// register file the RV32I executor operates on.
//
// Reg32 is deliberately a capability set rather than a concrete type: any
// word-sized storage can implement it, including a 64-bit cell that
// truncates on 32-bit reads and zero- or sign-extends on 32-bit writes
// depending on which setter is used. That is what lets an RV64 executor
// reuse RV32I semantics unchanged — it only needs a Reg32 view over its
// wider cells.
package reg

// Reg32 is the capability a register cell must provide for RV32I
// arithmetic: unsigned and signed 32-bit views, plus add operations that
// report overflow without treating it as fatal (the caller decides whether
// to log it; the core never faults on it).
type Reg32 interface {
	// Uint32 returns the cell's value as an unsigned 32-bit integer.
	Uint32() uint32
	// SetUint32 stores v, truncating or zero-extending as the underlying
	// cell width requires.
	SetUint32(v uint32)
	// Int32 returns the cell's value reinterpreted as signed.
	Int32() int32
	// SetInt32 stores v, sign-extending into a wider cell if required.
	SetInt32(v int32)
	// AddSigned adds a signed delta to the cell's value, modulo 2^32,
	// and reports whether the add wrapped.
	AddSigned(delta int32) (overflowed bool)
	// AddUnsigned adds an unsigned delta to the cell's value, modulo
	// 2^32, and reports whether the add wrapped.
	AddUnsigned(delta uint32) (overflowed bool)
}

// Cell32 is a Reg32 over a plain 32-bit word. The driver uses it for the
// program counter; File stores its registers as plain uint32 words.
type Cell32 struct{ v uint32 }

// Uint32 returns the cell's value.
func (c *Cell32) Uint32() uint32 { return c.v }

// SetUint32 stores v.
func (c *Cell32) SetUint32(v uint32) { c.v = v }

// Int32 returns the cell's value reinterpreted as signed.
func (c *Cell32) Int32() int32 { return int32(c.v) }

// SetInt32 stores v reinterpreted as unsigned.
func (c *Cell32) SetInt32(v int32) { c.v = uint32(v) }

// AddSigned adds delta modulo 2^32 and reports signed overflow.
func (c *Cell32) AddSigned(delta int32) bool {
	before := int32(c.v)
	result := before + delta
	c.v = uint32(result)
	// Signed overflow: operands share a sign and the result's sign differs.
	return (before >= 0) == (delta >= 0) && (result >= 0) != (before >= 0)
}

// AddUnsigned adds delta modulo 2^32 and reports unsigned overflow.
func (c *Cell32) AddUnsigned(delta uint32) bool {
	result := c.v + delta
	overflowed := result < c.v
	c.v = result
	return overflowed
}

// Cell64 is a Reg32 over a 64-bit word: 32-bit reads truncate to the low
// half, and 32-bit writes either zero-extend (SetUint32) or sign-extend
// (SetInt32) into the full 64 bits. It exists to demonstrate that an RV64
// register file can host the same Reg32 capability an RV32I executor
// expects, per the register-capability design note; nothing in this
// module's RV32I execution path uses it.
type Cell64 struct{ v uint64 }

// Uint32 returns the low 32 bits of the cell.
func (c *Cell64) Uint32() uint32 { return uint32(c.v) }

// SetUint32 zero-extends v into the full 64-bit cell.
func (c *Cell64) SetUint32(v uint32) { c.v = uint64(v) }

// Int32 returns the low 32 bits reinterpreted as signed.
func (c *Cell64) Int32() int32 { return int32(uint32(c.v)) }

// SetInt32 sign-extends v into the full 64-bit cell.
func (c *Cell64) SetInt32(v int32) { c.v = uint64(int64(v)) }

// AddSigned adds delta to the low 32 bits modulo 2^32, zero-extending the
// result, and reports signed overflow of that 32-bit add.
func (c *Cell64) AddSigned(delta int32) bool {
	before := int32(uint32(c.v))
	result := before + delta
	c.v = uint64(uint32(result))
	return (before >= 0) == (delta >= 0) && (result >= 0) != (before >= 0)
}

// AddUnsigned adds delta to the low 32 bits modulo 2^32, zero-extending
// the result, and reports unsigned overflow of that 32-bit add.
func (c *Cell64) AddUnsigned(delta uint32) bool {
	low := uint32(c.v)
	result := low + delta
	c.v = uint64(result)
	return result < low
}

// Uint64 returns the full 64-bit value of the cell.
func (c *Cell64) Uint64() uint64 { return c.v }
