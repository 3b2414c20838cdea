package monitor

import (
	"testing"

	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/isa"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

func encodeBranch(opcode, funct3, rs1, rs2 uint32, imm int32) bits.Word {
	u := uint32(imm)
	var v uint32 = opcode | (funct3 << 12) | (rs1 << 15) | (rs2 << 20)
	v |= ((u >> 12) & 0x1) << 31
	v |= ((u >> 5) & 0x3F) << 25
	v |= ((u >> 1) & 0xF) << 8
	v |= ((u >> 11) & 0x1) << 7
	return bits.Word(v)
}

func TestStats_CountsInstructionMixAndBranches(t *testing.T) {
	s := NewStats()
	regs := reg.NewFile()
	regs.Set(1, 5)
	regs.Set(2, 5)
	mem := memory.NewFlat(16)

	taken := &isa.Inst{Kind: isa.KindBEQ, Word: encodeBranch(0b1100011, 0b000, 1, 2, 8)}
	s.Observe(taken, 0, regs, mem)

	regs.Set(2, 9)
	notTaken := &isa.Inst{Kind: isa.KindBEQ, Word: encodeBranch(0b1100011, 0b000, 1, 2, 8)}
	s.Observe(notTaken, 4, regs, mem)

	if s.TotalInstructions != 2 {
		t.Errorf("TotalInstructions = %d, want 2", s.TotalInstructions)
	}
	if s.BranchCount != 2 {
		t.Errorf("BranchCount = %d, want 2", s.BranchCount)
	}
	if s.BranchTakenCount != 1 {
		t.Errorf("BranchTakenCount = %d, want 1", s.BranchTakenCount)
	}
	if s.InstructionCounts["BEQ"] != 2 {
		t.Errorf(`InstructionCounts["BEQ"] = %d, want 2`, s.InstructionCounts["BEQ"])
	}
}
