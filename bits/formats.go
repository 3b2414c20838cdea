package bits

// Format wrappers expose only the fields that are meaningful for their
// encoding, so the executor cannot, say, read an S-immediate off an R-type
// instruction. Each wrapper is a zero-cost newtype over Word; constructing
// one is infallible since the underlying word is already known-good.

// U wraps a U-type instruction word (LUI, AUIPC).
type U struct{ w Word }

// NewU constructs a U-type view over w.
func NewU(w Word) U { return U{w} }

// Rd returns the destination register index.
func (u U) Rd() uint32 { return u.w.Rd() }

// Imm returns the unsigned U-immediate.
func (u U) Imm() uint32 { return u.w.ImmU() }

// ImmSymbol returns the U-immediate reinterpreted as signed.
func (u U) ImmSymbol() int32 { return u.w.ImmUSymbol() }

// J wraps a J-type instruction word (JAL).
type J struct{ w Word }

// NewJ constructs a J-type view over w.
func NewJ(w Word) J { return J{w} }

// Rd returns the destination register index.
func (j J) Rd() uint32 { return j.w.Rd() }

// Imm returns the unsigned J-immediate.
func (j J) Imm() uint32 { return j.w.ImmUJ() }

// ImmSymbol returns the sign-extended J-immediate.
func (j J) ImmSymbol() int32 { return j.w.ImmUJSymbol() }

// I wraps an I-type instruction word (JALR, loads, OP-IMM, ECALL/EBREAK).
type I struct{ w Word }

// NewI constructs an I-type view over w.
func NewI(w Word) I { return I{w} }

// Rd returns the destination register index.
func (i I) Rd() uint32 { return i.w.Rd() }

// Rs1 returns the source-1 register index.
func (i I) Rs1() uint32 { return i.w.Rs1() }

// Funct3 returns the secondary-dispatch field.
func (i I) Funct3() uint32 { return i.w.Funct3() }

// Imm returns the unsigned I-immediate.
func (i I) Imm() uint32 { return i.w.ImmI() }

// ImmSymbol returns the sign-extended I-immediate.
func (i I) ImmSymbol() int32 { return i.w.ImmISymbol() }

// S wraps an S-type instruction word (stores).
type S struct{ w Word }

// NewS constructs an S-type view over w.
func NewS(w Word) S { return S{w} }

// Rs1 returns the base-address register index.
func (s S) Rs1() uint32 { return s.w.Rs1() }

// Rs2 returns the source-value register index.
func (s S) Rs2() uint32 { return s.w.Rs2() }

// Funct3 returns the secondary-dispatch field.
func (s S) Funct3() uint32 { return s.w.Funct3() }

// Imm returns the unsigned S-immediate.
func (s S) Imm() uint32 { return s.w.ImmS() }

// ImmSymbol returns the sign-extended S-immediate.
func (s S) ImmSymbol() int32 { return s.w.ImmSSymbol() }

// B wraps a B-type instruction word (branches).
type B struct{ w Word }

// NewB constructs a B-type view over w.
func NewB(w Word) B { return B{w} }

// Rs1 returns the first compare-operand register index.
func (b B) Rs1() uint32 { return b.w.Rs1() }

// Rs2 returns the second compare-operand register index.
func (b B) Rs2() uint32 { return b.w.Rs2() }

// Funct3 returns the branch-predicate selector.
func (b B) Funct3() uint32 { return b.w.Funct3() }

// Imm returns the unsigned B-immediate (branch offset).
func (b B) Imm() uint32 { return b.w.ImmSB() }

// ImmSymbol returns the sign-extended B-immediate.
func (b B) ImmSymbol() int32 { return b.w.ImmSBSymbol() }

// R wraps an R-type instruction word (register-register OP).
type R struct{ w Word }

// NewR constructs an R-type view over w.
func NewR(w Word) R { return R{w} }

// Rd returns the destination register index.
func (r R) Rd() uint32 { return r.w.Rd() }

// Rs1 returns the first source-register index.
func (r R) Rs1() uint32 { return r.w.Rs1() }

// Rs2 returns the second source-register index.
func (r R) Rs2() uint32 { return r.w.Rs2() }

// Funct3 returns the secondary-dispatch field.
func (r R) Funct3() uint32 { return r.w.Funct3() }

// Funct7 returns the tertiary-dispatch field.
func (r R) Funct7() uint32 { return r.w.Funct7() }
