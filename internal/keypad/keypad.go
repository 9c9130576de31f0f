// Package keypad implements the 16 key hexadecimal CHIP-8 keypad.
package keypad

import (
	"errors"
	"fmt"
)

// Size is the number of keys, 0x0 through 0xF.
const Size = 16

// ErrInvalidKeyIndex is returned for key indices outside 0-15.
var ErrInvalidKeyIndex = errors.New("invalid key index")

// State is the pressed state of every key, indexed by key number.
type State [Size]bool

// Keypad holds the key state written by the host.
type Keypad struct {
	keys State
}

// Set updates the pressed state of a single key.
func (k *Keypad) Set(index int, pressed bool) error {
	if index < 0 || index >= Size {
		return fmt.Errorf("setting key %d: %w", index, ErrInvalidKeyIndex)
	}
	k.keys[index] = pressed
	return nil
}

// SetAll replaces the state of all keys.
func (k *Keypad) SetAll(state State) {
	k.keys = state
}

// Pressed returns whether the key with the low nibble of index is pressed.
func (k *Keypad) Pressed(index byte) bool {
	return k.keys[index&0x0F]
}

// FirstPressed returns the lowest index of all pressed keys.
func (k *Keypad) FirstPressed() (byte, bool) {
	for i, pressed := range k.keys {
		if pressed {
			return byte(i), true
		}
	}
	return 0, false
}

// State returns a copy of the key state.
func (k *Keypad) State() State {
	return k.keys
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.keys = State{}
}
