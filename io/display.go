package io

import (
	"strings"
)

const (
	DISPLAY_WIDTH  = 64 // Pixels per row.
	DISPLAY_HEIGHT = 32 // Rows.
)

// Frame is a copy of the display contents, row-major.
type Frame [DISPLAY_HEIGHT][DISPLAY_WIDTH]bool

// Pixel returns 1 if the pixel at (x, y) is lit, 0 otherwise.
// Coordinates wrap.
func (fr *Frame) Pixel(x, y int) uint8 {
	if fr[wrap(y, DISPLAY_HEIGHT)][wrap(x, DISPLAY_WIDTH)] {
		return 1
	}
	return 0
}

// Lit counts the lit pixels.
func (fr *Frame) Lit() (count int) {
	for _, row := range fr {
		for _, px := range row {
			if px {
				count++
			}
		}
	}
	return
}

// String renders the frame as text, one line per row.
func (fr *Frame) String() string {
	var sb strings.Builder
	sb.Grow(DISPLAY_HEIGHT * (DISPLAY_WIDTH + 1))
	for _, row := range fr {
		for _, px := range row {
			if px {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Display is the 64x32 monochrome frame buffer.
type Display struct {
	frame Frame
	dirty bool
}

// Reset blanks the display.
func (dp *Display) Reset() {
	dp.Clear()
}

// Clear blanks the display.
func (dp *Display) Clear() {
	dp.frame = Frame{}
	dp.dirty = true
}

// Draw XORs an 8 pixel wide sprite, one byte per row, at (x0, y0). Every
// pixel wraps around the display edges independently. Collision is set if
// any lit pixel was turned off.
func (dp *Display) Draw(x0, y0 int, rows []byte) (collision bool) {
	for r, bits := range rows {
		y := wrap(y0+r, DISPLAY_HEIGHT)
		for b := range 8 {
			if (bits & (0x80 >> b)) == 0 {
				continue
			}
			x := wrap(x0+b, DISPLAY_WIDTH)
			if dp.frame[y][x] {
				collision = true
			}
			dp.frame[y][x] = !dp.frame[y][x]
		}
	}

	if len(rows) > 0 {
		dp.dirty = true
	}

	return
}

// Pixel returns 1 if the pixel at (x, y) is lit, 0 otherwise.
func (dp *Display) Pixel(x, y int) uint8 {
	return dp.frame.Pixel(x, y)
}

// Lit counts the lit pixels.
func (dp *Display) Lit() int {
	return dp.frame.Lit()
}

// Snapshot returns a copy of the current frame.
func (dp *Display) Snapshot() Frame {
	return dp.frame
}

// Dirty reports if the display changed since the last ClearDirty.
func (dp *Display) Dirty() bool {
	return dp.dirty
}

// ClearDirty marks the current contents as presented.
func (dp *Display) ClearDirty() {
	dp.dirty = false
}

func wrap(v, limit int) int {
	v %= limit
	if v < 0 {
		v += limit
	}
	return v
}
