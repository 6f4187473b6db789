// Package frontend connects an emulator to the host: an ebiten window, a
// text terminal, and an oto tone generator.
//
// Build with the "headless" tag to omit the window and audio backends.
package frontend
