package frontend

import (
	"unicode"
)

// KEYMAP is the host keyboard layout of the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  =>  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var KEYMAP = map[rune]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// KeyFor returns the keypad index of a host key.
func KeyFor(r rune) (key int, ok bool) {
	key, ok = KEYMAP[unicode.ToLower(r)]
	return
}
