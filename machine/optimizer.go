package machine

// The optimizer recognizes exactly one idiom: a pair of nested counted loops
// that computes w += x*z by repeated increment,
//
//	cpy w z      cpy 0 w      cpy x y      inc w
//	dec y        jnz y -2     dec z        jnz z -5
//
// with w, x, y, z bound to four distinct registers, and rewrites it in place
// as a single multiply plus counter cleanup,
//
//	mul x w      cpy 0 y      cpy 0 z      nop (x5)
//
// The five trailing nops preserve the addresses of everything after the
// chunk, so jump offsets computed before the rewrite stay valid after it.

// Symbolic register slots of the multiply pattern.
const (
	symW = iota
	symX
	symY
	symZ
	symCount
)

// patternArg matches one operand: a symbolic register slot, or an exact
// literal when sym is negative.
type patternArg struct {
	sym     int
	literal int64
}

func symArg(sym int) patternArg {
	return patternArg{sym: sym}
}

func litArg(value int64) patternArg {
	return patternArg{sym: -1, literal: value}
}

// patternOp matches one instruction: an opcode plus its operand shapes.
type patternOp struct {
	opcode Opcode
	args   []patternArg
}

var multiplyPattern = [8]patternOp{
	{OP_CPY, []patternArg{symArg(symW), symArg(symZ)}},
	{OP_CPY, []patternArg{litArg(0), symArg(symW)}},
	{OP_CPY, []patternArg{symArg(symX), symArg(symY)}},
	{OP_INC, []patternArg{symArg(symW)}},
	{OP_DEC, []patternArg{symArg(symY)}},
	{OP_JNZ, []patternArg{symArg(symY), litArg(-2)}},
	{OP_DEC, []patternArg{symArg(symZ)}},
	{OP_JNZ, []patternArg{symArg(symZ), litArg(-5)}},
}

// matchWindow unifies a window of instructions against the multiply pattern,
// binding the symbolic registers consistently and requiring the four bindings
// to be mutually distinct.
func matchWindow(window []Instruction) (bind [symCount]Register, ok bool) {
	bound := [symCount]bool{}

	for n, pat := range multiplyPattern {
		in := &window[n]
		if in.Opcode != pat.opcode || len(in.Args) != len(pat.args) {
			return
		}
		for i, arg := range pat.args {
			concrete := in.Args[i]
			if arg.sym < 0 {
				if concrete.IsRegister || concrete.Literal != arg.literal {
					return
				}
				continue
			}
			if !concrete.IsRegister {
				return
			}
			if bound[arg.sym] {
				if bind[arg.sym] != concrete.Register {
					return
				}
				continue
			}
			bind[arg.sym] = concrete.Register
			bound[arg.sym] = true
		}
	}

	for a := 0; a < symCount; a++ {
		for b := a + 1; b < symCount; b++ {
			if bind[a] == bind[b] {
				return
			}
		}
	}

	ok = true
	return
}

// Optimize rewrites the first occurrence of the multiply idiom in place and
// freezes the rewritten chunk. At most one rewrite is applied per call; a
// rewritten chunk can never match again because its opcodes no longer fit the
// pattern. Fails with ErrNoMultiplyPattern if no window matches.
func (prog *Program) Optimize() (err error) {
	for offset := 0; offset+len(multiplyPattern) <= len(prog.Code); offset++ {
		bind, ok := matchWindow(prog.Code[offset : offset+len(multiplyPattern)])
		if !ok {
			continue
		}

		rewrite := []Instruction{
			{Opcode: OP_MUL, Args: []Operand{Reg(bind[symX]), Reg(bind[symW])}},
			// Set (now unused) counters to expected values.
			{Opcode: OP_CPY, Args: []Operand{Lit(0), Reg(bind[symY])}},
			{Opcode: OP_CPY, Args: []Operand{Lit(0), Reg(bind[symZ])}},
			// Pad to preserve the addresses after the chunk.
			{Opcode: OP_NOP},
			{Opcode: OP_NOP},
			{Opcode: OP_NOP},
			{Opcode: OP_NOP},
			{Opcode: OP_NOP},
		}
		for n, in := range rewrite {
			in.Optimized = true
			prog.Code[offset+n] = in
		}
		prog.Code[offset].ChunkHead = true

		return
	}

	err = ErrNoMultiplyPattern
	return
}
