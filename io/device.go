// Package io provides the peripherals of the CHIP-8 machine: the sixteen
// key hexadecimal keypad (Keypad), the 64x32 monochrome display (Display)
// and the delay and sound countdown timers (Timer).
//
// Peripherals hold plain state. The CPU reads and writes them while
// executing instructions; the scheduler ticks the timers and presents the
// display.
package io

// Device is a peripheral that is returned to its power-on state when the
// machine is reset.
type Device interface {
	// Reset returns the device to its initial state.
	Reset()
}

var (
	_ Device = (*Keypad)(nil)
	_ Device = (*Display)(nil)
	_ Device = (*Timer)(nil)
)
