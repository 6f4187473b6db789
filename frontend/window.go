//go:build !headless

package frontend

import (
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/ezrec/chip8/debug"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

const (
	OVERLAY_WIDTH = 320 // Overlay panel width, in window pixels.
	OVERLAY_LINE  = 14  // Overlay line height, in window pixels.
)

var (
	_color_on      = color.RGBA{0xe0, 0xf0, 0xe0, 0xff}
	_color_off     = color.RGBA{0x10, 0x18, 0x10, 0xff}
	_color_overlay = color.RGBA{0x80, 0xff, 0x80, 0xff}
)

// Physical keys of the keypad layout.
var _ebiten_keys = map[ebiten.Key]rune{
	ebiten.Key1: '1', ebiten.Key2: '2', ebiten.Key3: '3', ebiten.Key4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

// Window presents the display in an ebiten window, and reads the keypad
// from the host keyboard. Render and Poll are called from the emulator
// goroutine; ebiten calls Update and Draw from the main goroutine.
type Window struct {
	Title   string
	Scale   int
	Overlay *debug.Overlay // Optional; toggled with F1.

	mutex  sync.Mutex
	frame  io.Frame
	keys   [io.KEY_COUNT]bool
	signal emulator.Signal

	show   atomic.Bool
	closed atomic.Bool
	image  *ebiten.Image
	pixels []byte
}

var _ emulator.Renderer = (*Window)(nil)
var _ emulator.Input = (*Window)(nil)
var _ ebiten.Game = (*Window)(nil)

// NewWindow creates a window. The overlay may be nil.
func NewWindow(title string, scale int, overlay *debug.Overlay) (w *Window, err error) {
	w = &Window{
		Title:   title,
		Scale:   scale,
		Overlay: overlay,
		pixels:  make([]byte, io.DISPLAY_WIDTH*io.DISPLAY_HEIGHT*4),
	}
	w.show.Store(overlay != nil)

	return
}

// Render copies the frame for the next Draw.
func (w *Window) Render(frame io.Frame) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.frame = frame
}

// Poll copies the keys held at the last Update.
func (w *Window) Poll(kp *io.Keypad) (signal emulator.Signal) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	kp.ClearAll()
	for key, held := range w.keys {
		if held {
			kp.SetKey(key, true)
		}
	}

	signal = w.signal
	w.signal = emulator.SignalNone

	return
}

// Close ends the ebiten loop at the next Update.
func (w *Window) Close() (err error) {
	w.closed.Store(true)
	return
}

// Run the ebiten loop on the calling goroutine. Returns when the window is
// closed, or after Close.
func (w *Window) Run() (err error) {
	width, height := w.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetRunnableOnUnfocused(true)

	err = ebiten.RunGame(w)
	return
}

func (w *Window) Update() error {
	if w.closed.Load() {
		return ebiten.Termination
	}

	var keys [io.KEY_COUNT]bool
	for ekey, r := range _ebiten_keys {
		if !ebiten.IsKeyPressed(ekey) {
			continue
		}
		if key, ok := KeyFor(r); ok {
			keys[key] = true
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) && w.Overlay != nil {
		w.show.Store(!w.show.Load())
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.keys = keys
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		w.signal = emulator.SignalQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		w.signal = emulator.SignalRestart
	}

	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(io.DISPLAY_WIDTH, io.DISPLAY_HEIGHT)
	}

	w.mutex.Lock()
	for y, row := range w.frame {
		for x, lit := range row {
			c := _color_off
			if lit {
				c = _color_on
			}
			offset := (y*io.DISPLAY_WIDTH + x) * 4
			w.pixels[offset+0] = c.R
			w.pixels[offset+1] = c.G
			w.pixels[offset+2] = c.B
			w.pixels[offset+3] = c.A
		}
	}
	w.mutex.Unlock()

	w.image.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.Scale), float64(w.Scale))
	screen.DrawImage(w.image, op)

	if !w.show.Load() {
		return
	}

	x := io.DISPLAY_WIDTH*w.Scale + 8
	rows := (io.DISPLAY_HEIGHT*w.Scale)/OVERLAY_LINE - 8
	for n, line := range w.Overlay.Lines(max(rows, 1)) {
		text.Draw(screen, line, basicfont.Face7x13, x, (n+1)*OVERLAY_LINE, _color_overlay)
	}
}

func (w *Window) Layout(_, _ int) (int, int) {
	width := io.DISPLAY_WIDTH * w.Scale
	if w.Overlay != nil {
		width += OVERLAY_WIDTH
	}

	return width, io.DISPLAY_HEIGHT * w.Scale
}
