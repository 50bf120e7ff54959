// Package machine implements the assembunny register machine.
//
// A program is an ordered, mutable sequence of instructions over four signed
// registers (a-d) of unbounded magnitude. The instruction set is
// self-modifying: tgl rewrites the opcode of another instruction at run time.
// A peephole optimizer recognizes the one nested-loop multiply idiom and
// rewrites it into a single mul, freezing the rewritten chunk so that neither
// a toggle nor a jump can corrupt it.
//
// The parser provides the textual instruction grammar, with optional
// compile-time $(...) expression evaluation against predefined equates.
package machine
