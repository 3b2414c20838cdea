package isa

// Kind identifies which RV32I mnemonic a decoded instruction represents.
// Other carries an instruction decoded by an extension sub-interpreter.
type Kind uint8

const (
	KindLUI Kind = iota
	KindAUIPC
	KindJAL
	KindJALR
	KindBEQ
	KindBNE
	KindBLT
	KindBGE
	KindBLTU
	KindBGEU
	KindLB
	KindLH
	KindLW
	KindLBU
	KindLHU
	KindSB
	KindSH
	KindSW
	KindADDI
	KindSLTI
	KindSLTIU
	KindXORI
	KindORI
	KindANDI
	KindSLLI
	KindSRLI
	KindSRAI
	KindADD
	KindSUB
	KindSLL
	KindSLT
	KindSLTU
	KindXOR
	KindSRL
	KindSRA
	KindOR
	KindAND
	KindECALL
	KindEBREAK
	KindOther
)

var kindNames = [...]string{
	"LUI", "AUIPC", "JAL", "JALR",
	"BEQ", "BNE", "BLT", "BGE", "BLTU", "BGEU",
	"LB", "LH", "LW", "LBU", "LHU",
	"SB", "SH", "SW",
	"ADDI", "SLTI", "SLTIU", "XORI", "ORI", "ANDI", "SLLI", "SRLI", "SRAI",
	"ADD", "SUB", "SLL", "SLT", "SLTU", "XOR", "SRL", "SRA", "OR", "AND",
	"ECALL", "EBREAK", "OTHER",
}

// String returns the mnemonic name, or "OTHER" for an extension-decoded
// instruction.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}
