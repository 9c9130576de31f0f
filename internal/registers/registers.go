// Package registers implements the CHIP-8 register file and call stack.
package registers

import (
	"errors"
	"fmt"
)

const (
	// Count is the number of general purpose registers V0-VF.
	Count = 16

	// Flag is the index of VF, the carry, borrow and collision flag register.
	Flag = 0xF
)

// ErrInvalidRegisterIndex is returned for register indices outside 0-15.
var ErrInvalidRegisterIndex = errors.New("invalid register index")

// Registers holds the general purpose registers, the index register,
// the program counter and the call stack.
type Registers struct {
	V     [Count]byte
	I     uint16
	PC    uint16
	Stack Stack
}

// New returns a register file with the program counter set to pc.
func New(pc uint16) *Registers {
	r := &Registers{}
	r.Reset(pc)
	return r
}

// Reset clears all registers and the stack and sets the program counter.
func (r *Registers) Reset(pc uint16) {
	*r = Registers{PC: pc}
}

// Get returns the value of register Vindex.
func (r *Registers) Get(index int) (byte, error) {
	if err := checkIndex(index); err != nil {
		return 0, err
	}
	return r.V[index], nil
}

// Set stores value into register Vindex.
func (r *Registers) Set(index int, value byte) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	r.V[index] = value
	return nil
}

// Span returns the registers V0 through Vlast. The slice aliases the
// register file.
func (r *Registers) Span(last int) ([]byte, error) {
	if err := checkIndex(last); err != nil {
		return nil, err
	}
	return r.V[:last+1], nil
}

func checkIndex(index int) error {
	if index < 0 || index >= Count {
		return fmt.Errorf("accessing register %d: %w", index, ErrInvalidRegisterIndex)
	}
	return nil
}
