package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Keypad errors
	ErrKeyRange = errors.New(f("key index out of range"))
)

// ErrKey reports a rejected key index.
type ErrKey int

func (ek ErrKey) Error() string {
	return f("key %d: %v", int(ek), ErrKeyRange)
}

func (ek ErrKey) Unwrap() error {
	return ErrKeyRange
}
