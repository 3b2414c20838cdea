package monitor

import (
	"encoding/json"
	"io"

	"github.com/rv32i-go/rv32icore/bits"
	"github.com/rv32i-go/rv32icore/isa"
	"github.com/rv32i-go/rv32icore/memory"
	"github.com/rv32i-go/rv32icore/reg"
)

// Stats is a driver.Monitor that accumulates a run's instruction mix and
// branch-taken/not-taken counts, adapted from the teacher's
// PerformanceStatistics with the cycle-timing and call-graph tracking
// dropped — this core has no notion of a cycle cost per instruction or a
// call stack, only retirement count.
type Stats struct {
	TotalInstructions uint64
	InstructionCounts map[string]uint64

	BranchCount      uint64
	BranchTakenCount uint64

	HotPC map[uint32]uint64
}

// NewStats returns an empty Stats collector.
func NewStats() *Stats {
	return &Stats{
		InstructionCounts: make(map[string]uint64),
		HotPC:             make(map[uint32]uint64),
	}
}

var branchMnemonics = map[isa.Kind]bool{
	isa.KindBEQ:  true,
	isa.KindBNE:  true,
	isa.KindBLT:  true,
	isa.KindBGE:  true,
	isa.KindBLTU: true,
	isa.KindBGEU: true,
}

// Observe implements driver.Monitor. Branches never write a register, so
// regs still holds the values the predicate was evaluated against; the
// outcome is recomputed here with the same comparison the executor used,
// rather than inferred from a before/after PC delta this interface doesn't
// carry.
func (s *Stats) Observe(inst *isa.Inst, pc uint32, regs *reg.File, mem memory.Reader) {
	s.TotalInstructions++
	s.InstructionCounts[inst.Kind.String()]++
	s.HotPC[pc]++

	if !branchMnemonics[inst.Kind] {
		return
	}
	s.BranchCount++
	if branchTaken(inst, regs) {
		s.BranchTakenCount++
	}
}

func branchTaken(inst *isa.Inst, regs *reg.File) bool {
	b := bits.NewB(inst.Word)
	lhs, rhs := regs.Get(b.Rs1()), regs.Get(b.Rs2())
	switch inst.Kind {
	case isa.KindBEQ:
		return lhs == rhs
	case isa.KindBNE:
		return lhs != rhs
	case isa.KindBLT:
		return int32(lhs) < int32(rhs)
	case isa.KindBGE:
		return int32(lhs) >= int32(rhs)
	case isa.KindBLTU:
		return lhs < rhs
	case isa.KindBGEU:
		return lhs >= rhs
	default:
		return false
	}
}

// WriteJSON serializes the collected statistics as JSON to w.
func (s *Stats) WriteJSON(w io.Writer) error {
	return json.NewEncoder(w).Encode(s)
}
