// Package bits provides a typed view over a raw 32-bit RISC-V instruction
// word: opcode, register index, and immediate extraction. Nothing here can
// fail — a word is always 4 bytes once constructed, and every field is a
// pure bit-mask of the underlying value.
package bits

import (
	"encoding/binary"

	"github.com/rv32i-go/rv32icore/errs"
)

// Word is a decoded-but-unparsed 32-bit instruction. Fields are computed on
// demand from the raw value rather than stored, so a Word is cheap to copy
// and carries no more information than the 4 bytes it came from.
type Word uint32

// NewWord reads a little-endian 32-bit word from the front of b.
func NewWord(b []byte) (Word, error) {
	if len(b) < 4 {
		return 0, errs.ErrBytecodeLengthNotEnough
	}
	return Word(binary.LittleEndian.Uint32(b)), nil
}

// Bytes returns the little-endian encoding of w.
func (w Word) Bytes() [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], uint32(w))
	return out
}

// Opcode returns bits 6:0.
func (w Word) Opcode() uint32 { return uint32(w) & 0x7F }

// Rd returns bits 11:7.
func (w Word) Rd() uint32 { return (uint32(w) >> 7) & 0x1F }

// Funct3 returns bits 14:12.
func (w Word) Funct3() uint32 { return (uint32(w) >> 12) & 0x7 }

// Rs1 returns bits 19:15.
func (w Word) Rs1() uint32 { return (uint32(w) >> 15) & 0x1F }

// Rs2 returns bits 24:20.
func (w Word) Rs2() uint32 { return (uint32(w) >> 20) & 0x1F }

// Funct7 returns bits 31:25.
func (w Word) Funct7() uint32 { return (uint32(w) >> 25) & 0x7F }

// ImmU returns the U-immediate in place: bits 31:12, low 12 bits zero.
func (w Word) ImmU() uint32 { return uint32(w) & 0xFFFFF000 }

// ImmUSymbol is the U-immediate reinterpreted as signed; LUI/AUIPC only
// ever use the unsigned 32-bit pattern, so this is a bit-cast, not a
// sign-extension of a narrower field.
func (w Word) ImmUSymbol() int32 { return int32(w.ImmU()) }

// ImmI returns the 12-bit I-immediate, zero-extended to 32 bits.
func (w Word) ImmI() uint32 { return uint32(w) >> 20 }

// ImmISymbol returns the 12-bit I-immediate, sign-extended to 32 bits.
func (w Word) ImmISymbol() int32 { return int32(w) >> 20 }

// ImmS returns the 12-bit S-immediate: bits 31:25 -> 11:5, bits 11:7 -> 4:0.
func (w Word) ImmS() uint32 {
	return ((uint32(w) >> 25) << 5) | ((uint32(w) >> 7) & 0x1F)
}

// ImmSSymbol returns the S-immediate sign-extended to 32 bits.
func (w Word) ImmSSymbol() int32 { return signExtend(w.ImmS(), 11) }

// ImmSB returns the 13-bit B-immediate (branch offset) with bit 0 forced to
// zero: bit 31 -> 12, bits 30:25 -> 10:5, bits 11:8 -> 4:1, bit 7 -> 11.
func (w Word) ImmSB() uint32 {
	v := uint32(w)
	return ((v & 0x80000000) >> 19) |
		((v & 0x7E000000) >> 20) |
		((v & 0x00000F00) >> 7) |
		((v & 0x00000080) << 4)
}

// ImmSBSymbol returns the B-immediate sign-extended to 32 bits.
func (w Word) ImmSBSymbol() int32 { return signExtend(w.ImmSB(), 12) }

// ImmUJ returns the 21-bit J-immediate (jump offset) with bit 0 forced to
// zero: bit 31 -> 20, bits 30:21 -> 10:1, bit 20 -> 11, bits 19:12 -> 19:12.
func (w Word) ImmUJ() uint32 {
	v := uint32(w)
	return ((v & 0x80000000) >> 11) |
		((v & 0x7FE00000) >> 20) |
		((v & 0x00100000) >> 9) |
		(v & 0x000FF000)
}

// ImmUJSymbol returns the J-immediate sign-extended to 32 bits.
func (w Word) ImmUJSymbol() int32 { return signExtend(w.ImmUJ(), 20) }

// signExtend treats v as a value whose sign bit sits at signBit and
// extends it to a full 32-bit two's-complement int32.
func signExtend(v uint32, signBit uint) int32 {
	shift := 31 - signBit
	return int32(v<<shift) >> shift
}
