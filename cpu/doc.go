// Package cpu implements the CHIP-8 interpreter core.
//
// The CPU consists of sixteen 8-bit registers (V0-VF), a 16-bit index
// register (I), a program counter, a sixteen entry call stack and 4KiB of
// byte addressable memory. The bottom of memory holds the hexadecimal glyph
// table; programs are loaded at PROGRAM_START.
//
// Instructions are fetched big-endian, two bytes at a time, and decoded
// against the fixed 35 instruction table. The keypad, display and timers are
// peripherals from the io package; the CPU only reads and writes them, it
// never advances the timers itself.
package cpu
