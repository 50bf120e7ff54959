package machine

import (
	"fmt"
	"iter"
	"log"
	"math/big"
	"strings"
)

// Registers is a set of initial register overrides; registers not named
// default to 0.
type Registers map[Register]int64

// Machine executes a private clone of a program over an instruction pointer
// and a register file of unbounded signed integers. Unoptimized multiply
// loops can transiently grow registers past any fixed width, so the register
// type must never wrap.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Ip       int                     // Current instruction pointer.
	Register [RegisterCount]*big.Int // Register file.

	Ticks int // Executed instruction counter.

	code []Instruction // Private clone of the program.
}

// NewMachine creates a machine over an independent clone of the program,
// with the instruction pointer at 0 and the given initial registers.
func NewMachine(prog *Program, initial Registers) (m *Machine) {
	m = &Machine{
		code: prog.Clone().Code,
	}

	for n := range m.Register {
		m.Register[n] = big.NewInt(0)
	}
	for reg, value := range initial {
		m.Register[reg].SetInt64(value)
	}

	return
}

// action is the control tag produced by executing a single instruction.
type action int

const (
	actionNext   action = iota // advance to the next instruction
	actionJump                 // transfer control to effect.addr
	actionToggle               // mutate the opcode at effect.addr
	actionEmit                 // yield effect.value to the output sequence
)

// effect is the outcome of a single executed instruction.
type effect struct {
	action action
	addr   int
	value  *big.Int
}

var bigOne = big.NewInt(1)

// value fetches a register/literal instruction argument.
func (m *Machine) value(arg Operand) *big.Int {
	if arg.IsRegister {
		return m.Register[arg.Register]
	}

	return big.NewInt(arg.Literal)
}

// target computes Ip plus a dynamically resolved offset, saturating just
// outside program bounds when the offset exceeds the addressable range.
func (m *Machine) target(arg Operand) int {
	offset := m.value(arg)
	if !offset.IsInt64() {
		if offset.Sign() < 0 {
			return -1
		}
		return len(m.code)
	}

	off := offset.Int64()
	switch {
	case off > int64(len(m.code)):
		return len(m.code)
	case off < -int64(m.Ip)-1:
		return -1
	default:
		return m.Ip + int(off)
	}
}

// execute runs a single instruction and reports its control effect. The two
// malformed-operand cases (a literal destination left behind by a toggle)
// are silent no-ops per the machine semantics, never errors.
func (m *Machine) execute(in *Instruction) (eff effect) {
	in.Executed++

	switch in.Opcode {
	case OP_CPY:
		src, dst := in.Args[0], in.Args[1]
		if dst.IsRegister {
			m.Register[dst.Register].Set(m.value(src))
		}
	case OP_INC:
		if reg := in.Args[0]; reg.IsRegister {
			m.Register[reg.Register].Add(m.Register[reg.Register], bigOne)
		}
	case OP_DEC:
		if reg := in.Args[0]; reg.IsRegister {
			m.Register[reg.Register].Sub(m.Register[reg.Register], bigOne)
		}
	case OP_JNZ:
		if m.value(in.Args[0]).Sign() != 0 {
			eff = effect{action: actionJump, addr: m.target(in.Args[1])}
		}
	case OP_MUL:
		src, dst := in.Args[0], in.Args[1]
		if dst.IsRegister {
			m.Register[dst.Register].Mul(m.Register[dst.Register], m.value(src))
		}
	case OP_TGL:
		eff = effect{action: actionToggle, addr: m.target(in.Args[0])}
	case OP_OUT:
		eff = effect{action: actionEmit, value: new(big.Int).Set(m.value(in.Args[0]))}
	case OP_NOP:
		// Do nothing.
	}

	return
}

// Step executes a single instruction. It reports the value emitted by this
// step, if any, and whether the machine has halted. The instruction pointer
// leaving program bounds is the only normal termination.
func (m *Machine) Step() (out *big.Int, halted bool, err error) {
	if m.Ip < 0 || m.Ip >= len(m.code) {
		halted = true
		return
	}

	in := &m.code[m.Ip]
	if m.Verbose {
		log.Printf("%3d: %v", m.Ip, in)
	}
	m.Ticks++

	eff := m.execute(in)

	switch eff.action {
	case actionNext:
		m.Ip++
	case actionJump:
		if eff.addr >= 0 && eff.addr < len(m.code) {
			dst := &m.code[eff.addr]
			if dst.Optimized && !dst.ChunkHead {
				err = &ErrRuntime{Ip: m.Ip, Err: &ErrJumpIntoChunk{Addr: eff.addr, Opcode: dst.Opcode}}
				return
			}
		}
		m.Ip = eff.addr
	case actionToggle:
		// The pointer advances before the mutation lands.
		m.Ip++
		if eff.addr >= 0 && eff.addr < len(m.code) {
			dst := &m.code[eff.addr]
			if dst.Optimized {
				err = &ErrRuntime{Ip: m.Ip - 1, Err: &ErrToggleOptimized{Addr: eff.addr, Opcode: dst.Opcode}}
				return
			}
			dst.toggle()
		}
	case actionEmit:
		m.Ip++
		out = eff.value
	}

	return
}

// Run executes the machine until it halts.
func (m *Machine) Run() (err error) {
	for {
		var halted bool
		_, halted, err = m.Step()
		if err != nil || halted {
			return
		}
	}
}

// Outputs returns the machine's emitted values as a pull-based sequence. The
// machine performs no work between pulls; the consumer cancels by ceasing to
// pull, which is always safe because nothing beyond the current step is
// buffered. A fatal run-time error ends the sequence with a non-nil error.
func (m *Machine) Outputs() iter.Seq2[*big.Int, error] {
	return func(yield func(*big.Int, error) bool) {
		for {
			out, halted, err := m.Step()
			if err != nil {
				yield(nil, err)
				return
			}
			if halted {
				return
			}
			if out != nil && !yield(out, nil) {
				return
			}
		}
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text = fmt.Sprintf("   ip: %v\n", m.Ip)
	for n, val := range m.Register {
		text += fmt.Sprintf("    %v: %v\n", Register(n), val)
	}

	return
}

// Stats returns a per-instruction execution and toggle listing.
func (m *Machine) Stats() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "  # exec'ed toggled instruction\n")
	fmt.Fprintf(&sb, "--- ------- ------- -----------\n")
	for n := range m.code {
		in := &m.code[n]
		fmt.Fprintf(&sb, "%3d %7d %7d %v\n", n, in.Executed, in.Toggled, in)
	}
	fmt.Fprintf(&sb, "--- ------- ------- -----------\n")
	fmt.Fprintf(&sb, "    %7d = total\n", m.Ticks)

	return sb.String()
}
