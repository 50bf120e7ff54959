package machine

import (
	"iter"
	"math/big"
	"slices"
	"strings"
)

// Program is an ordered, 0-indexed, mutable sequence of instructions.
type Program struct {
	Code []Instruction
}

// Clone returns an independently mutable copy of the program, so that the
// toggles of one run never leak into another.
func (prog *Program) Clone() *Program {
	code := slices.Clone(prog.Code)
	for n := range code {
		code[n].Args = slices.Clone(code[n].Args)
	}

	return &Program{Code: code}
}

// Instructions iterates over (address, instruction) pairs.
func (prog *Program) Instructions() iter.Seq2[int, *Instruction] {
	return func(yield func(addr int, in *Instruction) bool) {
		for n := range prog.Code {
			if !yield(n, &prog.Code[n]) {
				return
			}
		}
	}
}

// String returns the program listing, one instruction per line.
func (prog *Program) String() string {
	lines := make([]string, 0, len(prog.Code))
	for _, in := range prog.Instructions() {
		lines = append(lines, in.String())
	}

	return strings.Join(lines, "\n")
}

// Run executes the program to completion on a private clone and returns the
// machine holding the final register file.
func (prog *Program) Run(initial Registers) (m *Machine, err error) {
	m = NewMachine(prog, initial)
	err = m.Run()

	return
}

// Outputs executes the program on a private clone, returning its emitted
// values as a pull-based sequence. The sequence is infinite unless the
// program halts; the consumer cancels by ceasing to pull.
func (prog *Program) Outputs(initial Registers) iter.Seq2[*big.Int, error] {
	return NewMachine(prog, initial).Outputs()
}
