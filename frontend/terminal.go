package frontend

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

const (
	KEY_HOLD = 150 * time.Millisecond // A terminal has no key release; keys are held this long.

	TERM_WIDTH  = io.DISPLAY_WIDTH
	TERM_HEIGHT = io.DISPLAY_HEIGHT / 2 // Two display rows per text line.

	_ctrl_c = 0x03
	_ctrl_r = 0x12
	_escape = 0x1b
)

// Terminal presents the display with half-block characters, and reads
// the keypad from raw terminal input.
type Terminal struct {
	In  *os.File
	Out *bufio.Writer

	mutex  sync.Mutex
	held   [io.KEY_COUNT]time.Time
	signal emulator.Signal
	now    func() time.Time

	state *term.State
}

var _ emulator.Renderer = (*Terminal)(nil)
var _ emulator.Input = (*Terminal)(nil)

// NewTerminal creates a terminal frontend. If in is a terminal, it is
// switched to raw mode until Close.
func NewTerminal(in *os.File, out *os.File) (tm *Terminal, err error) {
	tm = &Terminal{
		In:  in,
		Out: bufio.NewWriter(out),
		now: time.Now,
	}

	fd := int(out.Fd())
	if term.IsTerminal(fd) {
		width, height, size_err := term.GetSize(fd)
		if size_err == nil && (width < TERM_WIDTH || height < TERM_HEIGHT) {
			tm = nil
			err = ErrTerminalSize
			return
		}
	}

	fd = int(in.Fd())
	if term.IsTerminal(fd) {
		tm.state, err = term.MakeRaw(fd)
		if err != nil {
			return
		}
	}

	// Clear the screen, hide the cursor.
	tm.Out.WriteString("\x1b[2J\x1b[?25l")
	tm.Out.Flush()

	return
}

// Close restores the terminal.
func (tm *Terminal) Close() (err error) {
	tm.Out.WriteString("\x1b[?25h\r\n")
	tm.Out.Flush()

	if tm.state != nil {
		err = term.Restore(int(tm.In.Fd()), tm.state)
		tm.state = nil
	}

	return
}

// Listen reads input until the context is done or the input closes.
func (tm *Terminal) Listen(ctx context.Context) {
	buf := make([]byte, 16)
	for ctx.Err() == nil {
		n, err := tm.In.Read(buf)
		for _, b := range buf[:n] {
			tm.Handle(b)
		}
		if err != nil {
			tm.mutex.Lock()
			tm.signal = emulator.SignalQuit
			tm.mutex.Unlock()
			return
		}
	}
}

// Handle a single input byte.
func (tm *Terminal) Handle(b byte) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	switch b {
	case _ctrl_c, _escape:
		tm.signal = emulator.SignalQuit
	case _ctrl_r:
		tm.signal = emulator.SignalRestart
	default:
		if key, ok := KeyFor(rune(b)); ok {
			tm.held[key] = tm.now()
		}
	}
}

// Poll reports the keys pressed within the last KEY_HOLD.
func (tm *Terminal) Poll(kp *io.Keypad) (signal emulator.Signal) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	now := tm.now()
	kp.ClearAll()
	for key, when := range tm.held {
		if !when.IsZero() && now.Sub(when) < KEY_HOLD {
			kp.SetKey(key, true)
		}
	}

	signal = tm.signal
	tm.signal = emulator.SignalNone

	return
}

// Render draws the frame at the top left of the terminal.
func (tm *Terminal) Render(frame io.Frame) {
	tm.Out.WriteString("\x1b[H")
	tm.Out.WriteString(HalfBlocks(&frame))
	tm.Out.Flush()
}

var _half_blocks = [4]string{" ", "▀", "▄", "█"}

// HalfBlocks renders a frame as TERM_HEIGHT lines of half-block
// characters, each line ending in CR LF.
func HalfBlocks(frame *io.Frame) string {
	var sb strings.Builder
	for y := 0; y < io.DISPLAY_HEIGHT; y += 2 {
		for x := range io.DISPLAY_WIDTH {
			index := frame.Pixel(x, y) | frame.Pixel(x, y+1)<<1
			sb.WriteString(_half_blocks[index])
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}
