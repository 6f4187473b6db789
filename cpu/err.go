package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrRomTooLarge = errors.New(f("rom too large"))

	// Cpu errors
	ErrPcRange        = errors.New(f("pc out of range"))
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))

	// Instruction decode errors
	ErrOpcodeUnknown = errors.New(f("unknown opcode"))
	ErrOpcodeSys     = errors.New(f("machine code routine"))
	ErrOpcodeAlu     = errors.New(f("alu"))
	ErrOpcodeKey     = errors.New(f("key"))
	ErrOpcodeMisc    = errors.New(f("misc"))
)

// ErrRomSize reports the size of a rejected program image.
type ErrRomSize int

func (err ErrRomSize) Error() string {
	return f("rom is %d bytes, limit is %d", int(err), PROGRAM_LIMIT)
}

func (err ErrRomSize) Unwrap() error {
	return ErrRomTooLarge
}

// ErrOpcode tags an execution error with the instruction that caused it.
type ErrOpcode struct {
	Pc   uint16
	Code Code
	Err  error
}

func (eo *ErrOpcode) Error() string {
	return f("0x%03x: opcode 0x%04x %v: %v", eo.Pc, uint16(eo.Code), eo.Code.String(), eo.Err)
}

func (eo *ErrOpcode) Unwrap() error {
	return eo.Err
}
