package frontend

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	ErrNoWindow     = errors.New(f("window support not built"))
	ErrNoAudio      = errors.New(f("audio support not built"))
	ErrTerminalSize = errors.New(f("terminal too small"))
)
