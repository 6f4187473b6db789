package emulator

import (
	"errors"

	"github.com/retroenv/retrogolib/log"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

// Signal is an out of band request from the input collaborator.
// SignalQuit ends the session, and SignalRestart reloads the program.
type Signal int

//go:generate go tool stringer -linecomment -type=Signal
const (
	SignalNone    = Signal(iota) // none
	SignalQuit                   // quit
	SignalRestart                // restart
)

// Renderer presents a copy of the display.
type Renderer interface {
	Render(frame io.Frame)
}

// AudioSink starts and stops the tone.
type AudioSink interface {
	SetTone(active bool)
}

// Input refreshes the keypad state, and reports quit and restart requests.
type Input interface {
	Poll(kp *io.Keypad) Signal
}

// DiagnosticSink receives non-fatal errors.
type DiagnosticSink interface {
	Report(err error)
}

// Observer receives a copy of the machine state at the presentation rate.
type Observer interface {
	Observe(state cpu.State, program []byte)
}

// LogSink reports diagnostics to a logger.
type LogSink struct {
	Logger *log.Logger
	Count  int // Reports received.
}

var _ DiagnosticSink = (*LogSink)(nil)

func (ls *LogSink) Report(err error) {
	ls.Count++

	var op *cpu.ErrOpcode
	var overrun ErrOverrunTime
	switch {
	case errors.As(err, &overrun) && overrun.Dropped == 0:
		ls.Logger.Debug("Scheduler resync", log.Err(err))
	case errors.Is(err, ErrOverrun):
		ls.Logger.Warn("Scheduler overrun", log.Err(err))
	case errors.As(err, &op):
		ls.Logger.Warn("Unknown opcode",
			log.Hex("pc", op.Pc),
			log.Hex("opcode", uint16(op.Code)))
	default:
		ls.Logger.Error("Emulation error", log.Err(err))
	}
}
