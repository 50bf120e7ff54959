package machine

import (
	"strconv"
)

// Register is an arithmetic register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
	REG_C = Register(2) // c
	REG_D = Register(3) // d
)

// RegisterCount is the size of the register file.
const RegisterCount = 4

// registerMap maps register names.
var registerMap = map[string]Register{
	"a": REG_A,
	"b": REG_B,
	"c": REG_C,
	"d": REG_D,
}

// RegisterByName looks up a register by its one-letter name.
func RegisterByName(name string) (reg Register, ok bool) {
	reg, ok = registerMap[name]
	return
}

// Opcode is the operation tag of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_CPY = Opcode(0) // cpy
	OP_INC = Opcode(1) // inc
	OP_DEC = Opcode(2) // dec
	OP_JNZ = Opcode(3) // jnz
	OP_TGL = Opcode(4) // tgl
	OP_OUT = Opcode(5) // out
	OP_MUL = Opcode(6) // mul
	OP_NOP = Opcode(7) // nop
)

// opcodeMap maps the mnemonics with a textual form. OP_MUL and OP_NOP are
// produced only by the optimizer and are deliberately absent.
var opcodeMap = map[string]Opcode{
	"cpy": OP_CPY,
	"inc": OP_INC,
	"dec": OP_DEC,
	"jnz": OP_JNZ,
	"tgl": OP_TGL,
	"out": OP_OUT,
}

// Arity returns the number of operands required by the opcode.
func (op Opcode) Arity() int {
	switch op {
	case OP_CPY, OP_JNZ, OP_MUL:
		return 2
	case OP_INC, OP_DEC, OP_TGL, OP_OUT:
		return 1
	default:
		return 0
	}
}

// Operand is a register reference or an integer literal.
type Operand struct {
	Register   Register // Register index, valid when IsRegister is set.
	Literal    int64    // Literal value, valid when IsRegister is clear.
	IsRegister bool
}

// Reg creates a register operand.
func Reg(reg Register) Operand {
	return Operand{Register: reg, IsRegister: true}
}

// Lit creates a literal operand.
func Lit(value int64) Operand {
	return Operand{Literal: value}
}

// String returns the assembly language representation of the operand.
func (arg Operand) String() string {
	if arg.IsRegister {
		return arg.Register.String()
	}

	return strconv.FormatInt(arg.Literal, 10)
}
