package io

const (
	KEY_COUNT = 16 // Keys on the hexadecimal keypad.
)

// Keypad is the state of the sixteen hexadecimal keys.
type Keypad struct {
	Keys [KEY_COUNT]bool
}

// Reset releases all keys.
func (kp *Keypad) Reset() {
	kp.ClearAll()
}

// ClearAll releases all keys. Input collaborators call this before each
// polling pass, then set the keys that are held.
func (kp *Keypad) ClearAll() {
	clear(kp.Keys[:])
}

// SetKey sets the state of one key. Indexes outside 0x0-0xF are rejected.
func (kp *Keypad) SetKey(index int, pressed bool) (err error) {
	if index < 0 || index >= KEY_COUNT {
		err = ErrKey(index)
		return
	}

	kp.Keys[index] = pressed
	return
}

// Pressed reports whether a key is held. Only the low nibble of the index
// is significant.
func (kp *Keypad) Pressed(index uint8) bool {
	return kp.Keys[index&0xf]
}

// FirstPressed returns the lowest held key.
func (kp *Keypad) FirstPressed() (index int, ok bool) {
	for n, pressed := range kp.Keys {
		if pressed {
			return n, true
		}
	}

	return
}
