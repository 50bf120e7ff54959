package machine

import (
	"errors"

	"github.com/averas/assembunny/translate"
)

var f = translate.From

var (
	// Parser errors
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))

	// Optimizer errors
	ErrNoMultiplyPattern = errors.New(f("no multiply pattern"))
)

// ErrParseValue reports a token that is neither a literal nor a register.
type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
}

// ErrParseExpression reports an invalid compile-time $(...) expression.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates a parse error on its 0-based source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrToggleOptimized reports a tgl aimed at a frozen, optimizer-verified
// instruction.
type ErrToggleOptimized struct {
	Addr   int
	Opcode Opcode
}

func (err *ErrToggleOptimized) Error() string {
	return f("cannot toggle optimized instruction %d (%v)", err.Addr, err.Opcode)
}

// ErrJumpIntoChunk reports a control transfer into the interior of a
// rewritten chunk.
type ErrJumpIntoChunk struct {
	Addr   int
	Opcode Opcode
}

func (err *ErrJumpIntoChunk) Error() string {
	return f("cannot jump into optimized chunk at %d (%v)", err.Addr, err.Opcode)
}

// ErrRuntime indicates the instruction address of a fatal run-time error.
type ErrRuntime struct {
	Ip  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("address %d %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
