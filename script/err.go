package script

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrCheck         = errors.New(f("check failed"))
	ErrRegisterRange = errors.New(f("register out of range"))
	ErrMemoryRange   = errors.New(f("memory range out of bounds"))
)

// ErrRegister reports the register index requested by a script.
type ErrRegister int

func (err ErrRegister) Error() string {
	return f("%v: v%d", ErrRegisterRange, int(err))
}

func (err ErrRegister) Unwrap() error {
	return ErrRegisterRange
}

// ErrMemory reports the memory range requested by a script.
type ErrMemory struct {
	Addr int
	Size int
}

func (err *ErrMemory) Error() string {
	return f("%v: 0x%x+%d", ErrMemoryRange, err.Addr, err.Size)
}

func (err *ErrMemory) Unwrap() error {
	return ErrMemoryRange
}

// ErrCheckFailed reports a failed check() in a script.
type ErrCheckFailed struct {
	Message string
}

func (err *ErrCheckFailed) Error() string {
	if len(err.Message) == 0 {
		return ErrCheck.Error()
	}
	return f("%v: %v", ErrCheck, err.Message)
}

func (err *ErrCheckFailed) Unwrap() error {
	return ErrCheck
}
