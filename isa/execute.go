package isa

import (
	"encoding/binary"

	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/errs"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

// Execute applies the instruction's semantics to pc, regs, and mem. Unless a
// case below says otherwise, the next program counter is pc+4; register 0
// is forced back to zero after every successful retirement, regardless of
// whether rd happened to be 0, via ClearX0. ECALL and EBREAK return their
// sentinel errors without touching pc or regs at all — the embedder decides
// what happens next, including whether retirement counts.
func (i *Inst) Execute(pc *reg.Cell32, regs *reg.File, mem memory.Writer) error {
	w := i.Word
	next := pc.Uint32() + 4

	switch i.Kind {
	case KindLUI:
		u := bits.NewU(w)
		regs.Set(u.Rd(), u.Imm())

	case KindAUIPC:
		u := bits.NewU(w)
		regs.Set(u.Rd(), pc.Uint32()+uint32(u.ImmSymbol()))

	case KindJAL:
		j := bits.NewJ(w)
		target := pc.Uint32() + uint32(j.ImmSymbol())
		regs.Set(j.Rd(), next)
		next = target

	case KindJALR:
		in := bits.NewI(w)
		// Read rs1 before writing rd: they may be the same register.
		target := (regs.Get(in.Rs1()) + uint32(in.ImmSymbol())) &^ 1
		regs.Set(in.Rd(), next)
		next = target

	case KindBEQ, KindBNE, KindBLT, KindBGE, KindBLTU, KindBGEU:
		b := bits.NewB(w)
		lhs, rhs := regs.Get(b.Rs1()), regs.Get(b.Rs2())
		var taken bool
		switch i.Kind {
		case KindBEQ:
			taken = lhs == rhs
		case KindBNE:
			taken = lhs != rhs
		case KindBLT:
			taken = int32(lhs) < int32(rhs)
		case KindBGE:
			taken = int32(lhs) >= int32(rhs)
		case KindBLTU:
			taken = lhs < rhs
		case KindBGEU:
			taken = lhs >= rhs
		}
		if taken {
			next = pc.Uint32() + uint32(b.ImmSymbol())
		}

	case KindLB, KindLH, KindLW, KindLBU, KindLHU:
		in := bits.NewI(w)
		addr := regs.Get(in.Rs1()) + uint32(in.ImmSymbol())
		var length uint8
		switch i.Kind {
		case KindLB, KindLBU:
			length = 1
		case KindLH, KindLHU:
			length = 2
		case KindLW:
			length = 4
		}
		data, err := mem.Load(addr, length)
		if err != nil {
			return errs.NewReaderError(err)
		}
		var val uint32
		switch i.Kind {
		case KindLB:
			val = uint32(int32(int8(data[0])))
		case KindLBU:
			val = uint32(data[0])
		case KindLH:
			val = uint32(int32(int16(uint16(data[0]) | uint16(data[1])<<8)))
		case KindLHU:
			val = uint32(data[0]) | uint32(data[1])<<8
		case KindLW:
			val = binary.LittleEndian.Uint32(data)
		}
		regs.Set(in.Rd(), val)

	case KindSB, KindSH, KindSW:
		s := bits.NewS(w)
		addr := regs.Get(s.Rs1()) + uint32(s.ImmSymbol())
		v := regs.Get(s.Rs2())
		var data []byte
		switch i.Kind {
		case KindSB:
			data = []byte{byte(v)}
		case KindSH:
			data = []byte{byte(v), byte(v >> 8)}
		case KindSW:
			data = make([]byte, 4)
			binary.LittleEndian.PutUint32(data, v)
		}
		if err := mem.Store(addr, data); err != nil {
			return errs.NewReaderError(err)
		}

	case KindADDI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), regs.Get(in.Rs1())+uint32(in.ImmSymbol()))

	case KindSLTI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), boolToReg(regs.GetSigned(in.Rs1()) < in.ImmSymbol()))

	case KindSLTIU:
		in := bits.NewI(w)
		regs.Set(in.Rd(), boolToReg(regs.Get(in.Rs1()) < uint32(in.ImmSymbol())))

	case KindXORI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), regs.Get(in.Rs1())^uint32(in.ImmSymbol()))

	case KindORI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), regs.Get(in.Rs1())|uint32(in.ImmSymbol()))

	case KindANDI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), regs.Get(in.Rs1())&uint32(in.ImmSymbol()))

	case KindSLLI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), regs.Get(in.Rs1())<<(in.Imm()&0x1F))

	case KindSRLI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), regs.Get(in.Rs1())>>(in.Imm()&0x1F))

	case KindSRAI:
		in := bits.NewI(w)
		regs.Set(in.Rd(), uint32(regs.GetSigned(in.Rs1())>>(in.Imm()&0x1F)))

	case KindADD:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())+regs.Get(r.Rs2()))

	case KindSUB:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())-regs.Get(r.Rs2()))

	case KindSLL:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())<<(regs.Get(r.Rs2())&0x1F))

	case KindSLT:
		r := bits.NewR(w)
		regs.Set(r.Rd(), boolToReg(regs.GetSigned(r.Rs1()) < regs.GetSigned(r.Rs2())))

	case KindSLTU:
		r := bits.NewR(w)
		regs.Set(r.Rd(), boolToReg(regs.Get(r.Rs1()) < regs.Get(r.Rs2())))

	case KindXOR:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())^regs.Get(r.Rs2()))

	case KindSRL:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())>>(regs.Get(r.Rs2())&0x1F))

	case KindSRA:
		r := bits.NewR(w)
		regs.Set(r.Rd(), uint32(regs.GetSigned(r.Rs1())>>(regs.Get(r.Rs2())&0x1F)))

	case KindOR:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())|regs.Get(r.Rs2()))

	case KindAND:
		r := bits.NewR(w)
		regs.Set(r.Rd(), regs.Get(r.Rs1())&regs.Get(r.Rs2()))

	case KindECALL:
		return errs.ErrEnvironmentCall

	case KindEBREAK:
		return errs.ErrBreakpoint

	case KindOther:
		if err := i.Sub.Execute(pc, regs, mem); err != nil {
			return err
		}
		regs.ClearX0()
		return nil

	default:
		return errs.ErrFailedDecodeInstruction
	}

	pc.SetUint32(next)
	regs.ClearX0()
	return nil
}

func boolToReg(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
