package emulator

import (
	"errors"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Scheduler errors
	ErrOverrun = errors.New(f("scheduler overrun"))

	// Configuration errors
	ErrConfig    = errors.New(f("invalid configuration"))
	ErrNoProgram = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the location of a fatal runtime error.
type ErrRuntime struct {
	Pc   uint16
	Code cpu.Code
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%03x: %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrOverrunTime reports how much wall clock time was discarded.
type ErrOverrunTime struct {
	Dropped int // Instruction quanta dropped.
}

func (err ErrOverrunTime) Error() string {
	return f("%v: dropped %d instructions", ErrOverrun, err.Dropped)
}

func (err ErrOverrunTime) Unwrap() error {
	return ErrOverrun
}

// ErrConfigValue reports an out of range configuration value.
type ErrConfigValue struct {
	Key   string
	Value any
}

func (err *ErrConfigValue) Error() string {
	return f("%v: %v = %v", ErrConfig, err.Key, err.Value)
}

func (err *ErrConfigValue) Unwrap() error {
	return ErrConfig
}
