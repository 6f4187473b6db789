//go:build headless

package frontend

import (
	"github.com/ezrec/chip8/debug"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

// Beeper is not available in headless builds.
type Beeper struct {
	*SquareWave
}

func NewBeeper(tone emulator.ToneConfig) (bp *Beeper, err error) {
	err = ErrNoAudio
	return
}

func (bp *Beeper) Close() (err error) {
	return
}

// Window is not available in headless builds.
type Window struct{}

func NewWindow(title string, scale int, overlay *debug.Overlay) (w *Window, err error) {
	err = ErrNoWindow
	return
}

func (w *Window) Render(frame io.Frame) {}

func (w *Window) Poll(kp *io.Keypad) emulator.Signal {
	return emulator.SignalQuit
}

func (w *Window) Run() error {
	return ErrNoWindow
}

func (w *Window) Close() error {
	return nil
}
