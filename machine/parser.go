package machine

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Parser converts assembunny source text into a Program, one instruction per
// line. Operands may use compile-time $(...) expressions, evaluated against
// the predefined equates; plain source is passed through untouched.
type Parser struct {
	Verbose bool // If set, verbosely logs the parsed lines.

	predefine map[string]int64 // Predefines
}

// Predefine defines an integer equate usable in $(...) expressions.
func (p *Parser) Predefine(name string, value int64) {
	if p.predefine == nil {
		p.predefine = map[string]int64{name: value}
	} else {
		p.predefine[name] = value
	}
}

// parenEval does parse-time $(...) evaluations.
func (p *Parser) parenEval(expr string, lineno int) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(lineno),
	}
	for key, val := range p.predefine {
		pred[key] = starlark.MakeInt64(val)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var exprRegexp = regexp.MustCompile(`\$\([^)]*\)`)

// ParseLine parses a single line of program text into an instruction.
func (p *Parser) ParseLine(line string) (in Instruction, err error) {
	return p.parseLine(line, 0)
}

// parseOperand parses a register/literal instruction argument.
func parseOperand(word string) (arg Operand, err error) {
	value, nerr := strconv.ParseInt(word, 10, 64)
	if nerr == nil {
		arg = Lit(value)
		return
	}

	reg, ok := registerMap[word]
	if ok {
		arg = Reg(reg)
		return
	}

	err = ErrParseValue(word)
	return
}

func (p *Parser) parseLine(line string, lineno int) (in Instruction, err error) {
	// Do $() evaluations
	line = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := p.parenEval(str[2:len(str)-1], lineno)
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	opcode, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < opcode.Arity() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > opcode.Arity() {
		err = ErrOpcodeExtraArgs
		return
	}

	in.Opcode = opcode
	in.Args = make([]Operand, 0, len(args))
	for _, word := range args {
		var arg Operand
		arg, err = parseOperand(word)
		if err != nil {
			return
		}
		in.Args = append(in.Args, arg)
	}

	return
}

// Parse parses an input stream into a Program. Any line not matching the
// instruction grammar fails the whole parse, identified by its 0-based line
// number.
func (p *Parser) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	lineno := -1

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	prog = &Program{}
	for scanner.Scan() {
		line = scanner.Text()
		lineno++

		if p.Verbose {
			log.Printf("%3d: %v", lineno, line)
		}

		var in Instruction
		in, err = p.parseLine(line, lineno)
		if err != nil {
			return
		}

		prog.Code = append(prog.Code, in)
	}

	return
}
