package machine

import (
	"strings"
)

// Instruction is a single machine instruction. The opcode is mutable at run
// time via tgl; Optimized and ChunkHead are assigned by the optimizer and
// never reset once set.
type Instruction struct {
	Opcode Opcode
	Args   []Operand

	Optimized bool // Part of a rewritten chunk; frozen against toggling.
	ChunkHead bool // First instruction of a rewritten chunk.

	// Per-instruction statistics for debugging.
	Executed int
	Toggled  int
}

// String returns the assembly language representation of the instruction.
func (in *Instruction) String() string {
	words := make([]string, 0, 1+len(in.Args))
	words = append(words, in.Opcode.String())
	for _, arg := range in.Args {
		words = append(words, arg.String())
	}

	return strings.Join(words, " ")
}

// toggle transforms the instruction per the tgl arity rule: one-operand
// instructions flip between inc and dec, all others flip between jnz and cpy.
// The caller is responsible for rejecting toggles of optimized instructions.
func (in *Instruction) toggle() {
	in.Toggled++

	if len(in.Args) == 1 {
		if in.Opcode == OP_INC {
			in.Opcode = OP_DEC
		} else {
			in.Opcode = OP_INC
		}
	} else {
		if in.Opcode == OP_JNZ {
			in.Opcode = OP_CPY
		} else {
			in.Opcode = OP_JNZ
		}
	}
}
