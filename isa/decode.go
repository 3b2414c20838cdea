// Package isa implements the RV32I decoder and executor: the component
// that turns a 4-byte little-endian word into a tagged instruction and
// then applies its semantics to the program counter, register file, and
// memory.
package isa

import (
	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/ext"
)

// Inst is a decoded RV32I instruction. It stores the raw word rather than
// extracted fields — format wrappers compute fields on demand — so it is
// cheap to copy and carries no more state than the word it came from. An
// Inst is constructed fresh from each fetch, consumed once by Execute, and
// then dropped; it is never retained between fetches.
type Inst struct {
	Kind Kind
	Word bits.Word
	Sub  ext.Decoded // valid only when Kind == KindOther
}

// Decoder decodes RV32I base-integer words. Opcodes it does not recognize
// are handed to Sub, the extension sub-interpreter; if Sub is nil, the
// zero-value ext.Unit is used, so an unrecognized opcode with no
// configured extension reports ErrFailedDecodeInstruction.
type Decoder struct {
	Sub ext.Decoder
}

// NewDecoder returns a Decoder that falls back to sub for any opcode this
// decoder's table doesn't cover. Pass nil to pin the chain with ext.Unit.
func NewDecoder(sub ext.Decoder) *Decoder {
	return &Decoder{Sub: sub}
}

func (d *Decoder) sub() ext.Decoder {
	if d.Sub == nil {
		return ext.Unit{}
	}
	return d.Sub
}

// Decode turns bytes into a tagged Inst, dispatching on opcode first and
// then on funct3/funct7 as the encoding requires. Fewer than 4 bytes is a
// BytecodeLengthNotEnough error; an opcode/funct3/funct7 triple this table
// does not cover decodes via the sub-interpreter into KindOther, and that
// sub-interpreter's own decode error propagates unchanged.
func (d *Decoder) Decode(raw []byte) (*Inst, error) {
	w, err := bits.NewWord(raw)
	if err != nil {
		return nil, err
	}
	return d.DecodeWord(w)
}

// DecodeWord decodes an already-assembled word. Its result type is *Inst
// rather than ext.Decoded, so Decoder does not itself satisfy ext.Decoder;
// AsExt wraps it for use as the Inner of an ext.EnvWrapper or any other
// extension built the same way.
func (d *Decoder) DecodeWord(w bits.Word) (*Inst, error) {
	switch w.Opcode() {
	case 0b0110111:
		return &Inst{Kind: KindLUI, Word: w}, nil
	case 0b0010111:
		return &Inst{Kind: KindAUIPC, Word: w}, nil
	case 0b1101111:
		return &Inst{Kind: KindJAL, Word: w}, nil
	case 0b1100111:
		return &Inst{Kind: KindJALR, Word: w}, nil
	case 0b1100011:
		switch w.Funct3() {
		case 0b000:
			return &Inst{Kind: KindBEQ, Word: w}, nil
		case 0b001:
			return &Inst{Kind: KindBNE, Word: w}, nil
		case 0b100:
			return &Inst{Kind: KindBLT, Word: w}, nil
		case 0b101:
			return &Inst{Kind: KindBGE, Word: w}, nil
		case 0b110:
			return &Inst{Kind: KindBLTU, Word: w}, nil
		case 0b111:
			return &Inst{Kind: KindBGEU, Word: w}, nil
		default:
			return d.decodeOther(w)
		}
	case 0b0000011:
		switch w.Funct3() {
		case 0b000:
			return &Inst{Kind: KindLB, Word: w}, nil
		case 0b001:
			return &Inst{Kind: KindLH, Word: w}, nil
		case 0b010:
			return &Inst{Kind: KindLW, Word: w}, nil
		case 0b100:
			return &Inst{Kind: KindLBU, Word: w}, nil
		case 0b101:
			return &Inst{Kind: KindLHU, Word: w}, nil
		default:
			return d.decodeOther(w)
		}
	case 0b0100011:
		switch w.Funct3() {
		case 0b000:
			return &Inst{Kind: KindSB, Word: w}, nil
		case 0b001:
			return &Inst{Kind: KindSH, Word: w}, nil
		case 0b010:
			return &Inst{Kind: KindSW, Word: w}, nil
		default:
			return d.decodeOther(w)
		}
	case 0b0010011:
		switch w.Funct3() {
		case 0b000:
			return &Inst{Kind: KindADDI, Word: w}, nil
		case 0b010:
			return &Inst{Kind: KindSLTI, Word: w}, nil
		case 0b011:
			return &Inst{Kind: KindSLTIU, Word: w}, nil
		case 0b100:
			return &Inst{Kind: KindXORI, Word: w}, nil
		case 0b110:
			return &Inst{Kind: KindORI, Word: w}, nil
		case 0b111:
			return &Inst{Kind: KindANDI, Word: w}, nil
		case 0b001:
			return &Inst{Kind: KindSLLI, Word: w}, nil
		case 0b101:
			// Bit 10 of the I-immediate (imm[10], here isolated with
			// 0x400) distinguishes SRAI (arithmetic) from SRLI (logical).
			if w.ImmI()&0x400 == 0 {
				return &Inst{Kind: KindSRLI, Word: w}, nil
			}
			return &Inst{Kind: KindSRAI, Word: w}, nil
		default:
			return d.decodeOther(w)
		}
	case 0b0110011:
		switch w.Funct3() {
		case 0b000:
			if w.Funct7() == 0 {
				return &Inst{Kind: KindADD, Word: w}, nil
			}
			return &Inst{Kind: KindSUB, Word: w}, nil
		case 0b001:
			return &Inst{Kind: KindSLL, Word: w}, nil
		case 0b010:
			return &Inst{Kind: KindSLT, Word: w}, nil
		case 0b011:
			return &Inst{Kind: KindSLTU, Word: w}, nil
		case 0b100:
			return &Inst{Kind: KindXOR, Word: w}, nil
		case 0b101:
			if w.Funct7() == 0 {
				return &Inst{Kind: KindSRL, Word: w}, nil
			}
			return &Inst{Kind: KindSRA, Word: w}, nil
		case 0b110:
			return &Inst{Kind: KindOR, Word: w}, nil
		case 0b111:
			return &Inst{Kind: KindAND, Word: w}, nil
		default:
			return d.decodeOther(w)
		}
	case 0b1110011:
		if w.Funct3() == 0 && w.Rd() == 0 && w.Rs1() == 0 {
			switch w.ImmI() {
			case 0:
				return &Inst{Kind: KindECALL, Word: w}, nil
			case 1:
				return &Inst{Kind: KindEBREAK, Word: w}, nil
			}
		}
		return d.decodeOther(w)
	default:
		return d.decodeOther(w)
	}
}

func (d *Decoder) decodeOther(w bits.Word) (*Inst, error) {
	sub, err := d.sub().Decode(w)
	if err != nil {
		return nil, err
	}
	return &Inst{Kind: KindOther, Word: w, Sub: sub}, nil
}

// AsExt adapts this Decoder to the ext.Decoder capability, so a full RV32I
// decoder can itself be the Inner of an ext.EnvWrapper or any other
// extension wrapper built against that interface.
func (d *Decoder) AsExt() ext.Decoder { return extAdapter{d} }

type extAdapter struct{ d *Decoder }

func (a extAdapter) Decode(w bits.Word) (ext.Decoded, error) {
	return a.d.DecodeWord(w)
}
