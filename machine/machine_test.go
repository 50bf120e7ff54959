package machine

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/averas/assembunny/internal"
)

func TestRunCountdown(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"cpy 41 a",
		"inc a",
		"inc a",
		"dec a",
		"jnz a 2",
		"dec a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal("42", m.Register[REG_A].String())
}

func TestRunToggleChain(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"cpy 2 a",
		"tgl a",
		"tgl a",
		"tgl a",
		"cpy 1 a",
		"dec a",
		"dec a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal("3", m.Register[REG_A].String())

	// Toggles land on the run's private clone, never the template.
	assert.Equal(OP_CPY, prog.Code[4].Opcode)
	assert.Equal(OP_DEC, prog.Code[5].Opcode)

	again, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal("3", again.Register[REG_A].String())
}

func TestToggleTable(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		addr    int
		want    Opcode
	}){
		{"inc_to_dec", []string{"tgl 1", "inc a"}, 1, OP_DEC},
		{"dec_to_inc", []string{"tgl 1", "dec a"}, 1, OP_INC},
		{"jnz_to_cpy", []string{"tgl 1", "jnz a 2"}, 1, OP_CPY},
		{"cpy_to_jnz", []string{"tgl 1", "cpy a b"}, 1, OP_JNZ},
		{"out_to_inc", []string{"tgl 1", "out a"}, 1, OP_INC},
		{"tgl_to_inc", []string{"tgl 0"}, 0, OP_INC},
	}

	for _, entry := range table {
		m := NewMachine(mustParse(t, entry.program), nil)

		_, halted, err := m.Step()
		assert.NoError(err, entry.name)
		assert.False(halted, entry.name)
		assert.Equal(entry.want, m.code[entry.addr].Opcode, entry.name)
	}
}

func TestToggleOutOfRange(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"tgl 5",
		"tgl -3",
		"inc a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal("1", m.Register[REG_A].String())
	for n, in := range m.code {
		assert.Equal(prog.Code[n].Opcode, in.Opcode, n)
	}
}

func TestToggledLiteralDestinationIsNoop(t *testing.T) {
	assert := assert.New(t)

	// tgl turns the jnz into "cpy 1 2", whose literal destination makes it
	// a no-op instead of an error.
	prog := mustParse(t, []string{
		"tgl 1",
		"jnz 1 2",
		"inc a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal(OP_CPY, m.code[1].Opcode)
	assert.Equal("1", m.Register[REG_A].String())
}

func TestToggledLiteralIncIsNoop(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"tgl 1",
		"dec 1",
		"inc a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal(OP_INC, m.code[1].Opcode)
	assert.Equal("1", m.Register[REG_A].String())
}

func TestDynamicJumpOffset(t *testing.T) {
	assert := assert.New(t)

	// The jump offset is a register, resolved at the moment of the jump.
	prog := mustParse(t, []string{
		"cpy 2 b",
		"jnz 1 b",
		"dec a",
		"inc a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Equal("1", m.Register[REG_A].String())
}

func TestJumpOutOfBoundsHalts(t *testing.T) {
	assert := assert.New(t)

	table := [][]string{
		{"jnz 1 -10"},
		{"cpy 10 a", "jnz 1 a"},
	}

	for _, program := range table {
		m, err := mustParse(t, program).Run(nil)
		assert.NoError(err)
		assert.NotNil(m)
	}
}

func TestJumpIntoChunkGuard(t *testing.T) {
	assert := assert.New(t)

	// A jnz landing at offset 3 inside the rewritten window is fatal.
	prog := mustParse(t, slices.Concat(multiplyLines, []string{"jnz 1 -5"}))
	assert.NoError(prog.Optimize())

	_, err := prog.Run(nil)

	var jump *ErrJumpIntoChunk
	if assert.True(errors.As(err, &jump)) {
		assert.Equal(3, jump.Addr)
		assert.Equal(OP_NOP, jump.Opcode)
	}

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(8, runtime.Ip)
	}
}

func TestJumpToChunkHeadAllowed(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, slices.Concat(multiplyLines, []string{
		"dec b",
		"jnz b -9",
	}))
	assert.NoError(prog.Optimize())

	m, err := prog.Run(Registers{REG_A: 1, REG_B: 2})
	assert.NoError(err)
	assert.Equal("2", m.Register[REG_A].String())
	assert.Equal("0", m.Register[REG_B].String())
}

func TestToggleOptimizedGuard(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, slices.Concat(multiplyLines, []string{"tgl -1"}))
	assert.NoError(prog.Optimize())

	_, err := prog.Run(nil)

	var toggle *ErrToggleOptimized
	if assert.True(errors.As(err, &toggle)) {
		assert.Equal(7, toggle.Addr)
		assert.Equal(OP_NOP, toggle.Opcode)
	}
}

func TestOutputsAlternating(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"out a",
		"inc a",
		"out a",
		"dec a",
		"jnz 1 -4",
	})

	count := 0
	for value, err := range internal.IterSeq2Take(prog.Outputs(nil), 12) {
		assert.NoError(err)
		assert.Equal(int64(count%2), value.Int64(), count)
		count++
	}
	assert.Equal(12, count)
}

func TestOutputsHalting(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"cpy 3 a",
		"out a",
	})

	var values []string
	for value, err := range prog.Outputs(nil) {
		assert.NoError(err)
		values = append(values, value.String())
	}
	assert.Equal([]string{"3"}, values)
}

func TestDeterminism(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"cpy 7 d",
		"out d",
		"inc c",
		"dec d",
		"jnz d -3",
	})

	collect := func() (values []string) {
		for value, err := range internal.IterSeq2Take(prog.Outputs(Registers{REG_C: 2}), 5) {
			assert.NoError(err)
			values = append(values, value.String())
		}
		return
	}

	assert.Equal(collect(), collect())

	one, err := prog.Run(Registers{REG_C: 2})
	assert.NoError(err)
	two, err := prog.Run(Registers{REG_C: 2})
	assert.NoError(err)
	for n := range one.Register {
		assert.Equal(one.Register[n].String(), two.Register[n].String(), Register(n))
	}
}

func TestUnboundedRegisters(t *testing.T) {
	assert := assert.New(t)

	// Repeated squaring blows well past any fixed-width integer.
	code := []Instruction{
		{Opcode: OP_CPY, Args: []Operand{Lit(10), Reg(REG_A)}},
	}
	for range 7 {
		code = append(code, Instruction{Opcode: OP_MUL, Args: []Operand{Reg(REG_A), Reg(REG_A)}})
	}

	m, err := (&Program{Code: code}).Run(nil)
	assert.NoError(err)
	assert.Equal(129, len(m.Register[REG_A].String()))
}

func TestMachineListing(t *testing.T) {
	assert := assert.New(t)

	prog := mustParse(t, []string{
		"cpy 41 a",
		"inc a",
	})

	m, err := prog.Run(nil)
	assert.NoError(err)
	assert.Contains(m.String(), "a: 42")
	assert.Contains(m.Stats(), "total")
	assert.Contains(m.Stats(), "inc a")
	assert.Equal(2, m.Ticks)
}
