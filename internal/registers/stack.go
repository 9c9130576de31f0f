package registers

import (
	"errors"
	"fmt"
)

// StackSize is the number of return addresses the stack can hold.
const StackSize = 16

var (
	// ErrStackOverflow is returned when pushing onto a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when popping from an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// Stack is the bounded call stack of return addresses.
type Stack struct {
	entries [StackSize]uint16
	sp      int
}

// Push stores a return address on top of the stack.
func (s *Stack) Push(address uint16) error {
	if s.sp >= StackSize {
		return fmt.Errorf("pushing address 0x%03x: %w", address, ErrStackOverflow)
	}
	s.entries[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the return address on top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Full returns whether another push would overflow.
func (s *Stack) Full() bool {
	return s.sp >= StackSize
}

// Depth returns the number of addresses on the stack.
func (s *Stack) Depth() int {
	return s.sp
}

// Entries returns a copy of the stacked addresses, bottom first.
func (s *Stack) Entries() []uint16 {
	entries := make([]uint16, s.sp)
	copy(entries, s.entries[:s.sp])
	return entries
}
