package isa

import (
	"errors"
	"testing"

	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/errs"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

func encodeS(opcode, funct3, rs1, rs2, imm uint32) bits.Word {
	lo := imm & 0x1F
	hi := (imm >> 5) & 0x7F
	return bits.Word(opcode | (lo << 7) | (funct3 << 12) | (rs1 << 15) | (rs2 << 20) | (hi << 25))
}

// encodeJ builds a J-type word for a given signed, even immediate using the
// scattered-field layout JAL defines.
func encodeJ(opcode, rd uint32, imm int32) bits.Word {
	u := uint32(imm)
	var v uint32 = opcode | (rd << 7)
	v |= ((u >> 20) & 0x1) << 31
	v |= ((u >> 1) & 0x3FF) << 21
	v |= ((u >> 11) & 0x1) << 20
	v |= ((u >> 12) & 0xFF) << 12
	return bits.Word(v)
}

// encodeB builds a B-type word for a given signed, even immediate using the
// scattered-field layout branches define.
func encodeB(opcode, funct3, rs1, rs2 uint32, imm int32) bits.Word {
	u := uint32(imm)
	var v uint32 = opcode | (funct3 << 12) | (rs1 << 15) | (rs2 << 20)
	v |= ((u >> 12) & 0x1) << 31
	v |= ((u >> 5) & 0x3F) << 25
	v |= ((u >> 1) & 0xF) << 8
	v |= ((u >> 11) & 0x1) << 7
	return bits.Word(v)
}

func TestExecute_ADDI(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)

	inst := &Inst{Kind: KindADDI, Word: encodeI(0b0010011, 0b000, 1, 0, 5)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.Get(1); got != 5 {
		t.Errorf("x1 = %d, want 5", got)
	}
	if got := pc.Uint32(); got != 4 {
		t.Errorf("pc = %d, want 4", got)
	}
}

func TestExecute_ADDINegativeImmediate(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)

	regs.Set(1, 10)
	// addi x2, x1, -1
	inst := &Inst{Kind: KindADDI, Word: encodeI(0b0010011, 0b000, 2, 1, 0xFFF)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.Get(2); got != 9 {
		t.Errorf("x2 = %d, want 9", got)
	}
}

func TestExecute_X0AlwaysZero(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)

	// addi x0, x0, 5 -- writes to x0, must still read back as zero.
	inst := &Inst{Kind: KindADDI, Word: encodeI(0b0010011, 0b000, 0, 0, 5)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.Get(0); got != 0 {
		t.Errorf("x0 = %d, want 0", got)
	}
}

func TestExecute_LUI(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)

	inst := &Inst{Kind: KindLUI, Word: bits.Word(0x12345000 | (1 << 7) | 0b0110111)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.Get(1); got != 0x12345000 {
		t.Errorf("x1 = %#x, want 0x12345000", got)
	}
}

func TestExecute_JAL(t *testing.T) {
	pc := &reg.Cell32{}
	pc.SetUint32(100)
	regs := reg.NewFile()
	mem := memory.NewFlat(4096)

	inst := &Inst{Kind: KindJAL, Word: encodeJ(0b1101111, 1, 8)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.Get(1); got != 104 {
		t.Errorf("x1 (return addr) = %d, want 104", got)
	}
	if got := pc.Uint32(); got != 108 {
		t.Errorf("pc = %d, want 108", got)
	}
}

func TestExecute_JALR_RdEqualsRs1(t *testing.T) {
	pc := &reg.Cell32{}
	pc.SetUint32(100)
	regs := reg.NewFile()
	mem := memory.NewFlat(4096)
	regs.Set(1, 40)

	// jalr x1, x1, 0 -- rd == rs1, must read rs1 before overwriting it.
	inst := &Inst{Kind: KindJALR, Word: encodeI(0b1100111, 0, 1, 1, 0)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.Get(1); got != 104 {
		t.Errorf("x1 = %d, want 104 (return address)", got)
	}
	if got := pc.Uint32(); got != 40 {
		t.Errorf("pc = %d, want 40", got)
	}
}

func TestExecute_BranchTaken(t *testing.T) {
	pc := &reg.Cell32{}
	pc.SetUint32(0)
	regs := reg.NewFile()
	mem := memory.NewFlat(4096)
	regs.Set(1, 7)
	regs.Set(2, 7)

	inst := &Inst{Kind: KindBEQ, Word: encodeB(0b1100011, 0b000, 1, 2, 8)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := pc.Uint32(); got != 8 {
		t.Errorf("pc = %d, want 8", got)
	}
}

func TestExecute_BranchNotTaken(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(4096)
	regs.Set(1, 7)
	regs.Set(2, 9)

	inst := &Inst{Kind: KindBEQ, Word: encodeB(0b1100011, 0b000, 1, 2, 8)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := pc.Uint32(); got != 4 {
		t.Errorf("pc = %d, want 4 (not taken)", got)
	}
}

func TestExecute_StoreLoadRoundTrip(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)
	regs.Set(1, 0)          // base address
	regs.Set(2, 0xFFFFFFF0) // value to store, as -16

	sw := &Inst{Kind: KindSW, Word: encodeS(0b0100011, 0b010, 1, 2, 0)}
	if err := sw.Execute(pc, regs, mem); err != nil {
		t.Fatalf("sw Execute: %v", err)
	}

	lw := &Inst{Kind: KindLW, Word: encodeI(0b0000011, 0b010, 3, 1, 0)}
	if err := lw.Execute(pc, regs, mem); err != nil {
		t.Fatalf("lw Execute: %v", err)
	}
	if got := regs.Get(3); got != 0xFFFFFFF0 {
		t.Errorf("x3 = %#x, want 0xFFFFFFF0", got)
	}
}

func TestExecute_LoadSignExtension(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)
	if err := mem.Store(0, []byte{0xFF}); err != nil {
		t.Fatalf("Store: %v", err)
	}

	lb := &Inst{Kind: KindLB, Word: encodeI(0b0000011, 0b000, 1, 0, 0)}
	if err := lb.Execute(pc, regs, mem); err != nil {
		t.Fatalf("lb Execute: %v", err)
	}
	if got := regs.GetSigned(1); got != -1 {
		t.Errorf("x1 (LB) = %d, want -1", got)
	}

	lbu := &Inst{Kind: KindLBU, Word: encodeI(0b0000011, 0b100, 2, 0, 0)}
	if err := lbu.Execute(pc, regs, mem); err != nil {
		t.Fatalf("lbu Execute: %v", err)
	}
	if got := regs.Get(2); got != 0xFF {
		t.Errorf("x2 (LBU) = %#x, want 0xFF", got)
	}
}

func TestExecute_SRAPreservesSign(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)
	regs.SetSigned(1, -8)
	regs.Set(2, 1)

	// sra x3, x1, x2
	inst := &Inst{Kind: KindSRA, Word: encodeR(0b0110011, 0b101, 0b0100000, 3, 1, 2)}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := regs.GetSigned(3); got != -4 {
		t.Errorf("x3 = %d, want -4", got)
	}
}

func TestExecute_ECALLDoesNotMutate(t *testing.T) {
	pc := &reg.Cell32{}
	pc.SetUint32(40)
	regs := reg.NewFile()
	regs.Set(1, 77)
	mem := memory.NewFlat(64)

	inst := &Inst{Kind: KindECALL, Word: encodeI(0b1110011, 0, 0, 0, 0)}
	err := inst.Execute(pc, regs, mem)
	if !errors.Is(err, errs.ErrEnvironmentCall) {
		t.Fatalf("Execute error = %v, want ErrEnvironmentCall", err)
	}
	if got := pc.Uint32(); got != 40 {
		t.Errorf("pc after ECALL = %d, want unchanged 40", got)
	}
	if got := regs.Get(1); got != 77 {
		t.Errorf("x1 after ECALL = %d, want unchanged 77", got)
	}
}

func TestExecute_EBREAK(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)

	inst := &Inst{Kind: KindEBREAK, Word: encodeI(0b1110011, 0, 0, 0, 1)}
	err := inst.Execute(pc, regs, mem)
	if !errors.Is(err, errs.ErrBreakpoint) {
		t.Errorf("Execute error = %v, want ErrBreakpoint", err)
	}
}

func TestExecute_KindOtherDelegatesToSub(t *testing.T) {
	pc := &reg.Cell32{}
	regs := reg.NewFile()
	mem := memory.NewFlat(64)

	sub := &recordingDecoded{}
	inst := &Inst{Kind: KindOther, Word: 0, Sub: sub}
	if err := inst.Execute(pc, regs, mem); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !sub.called {
		t.Error("Sub.Execute was not called for KindOther")
	}
}

type recordingDecoded struct{ called bool }

func (r *recordingDecoded) Execute(pc *reg.Cell32, regs *reg.File, mem memory.Writer) error {
	r.called = true
	return nil
}
