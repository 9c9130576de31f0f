// Package memory implements the 4KB CHIP-8 address space.
package memory

import (
	"errors"
	"fmt"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Font sprites (16 glyphs of 5 bytes)
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// Size is the total number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address programs are loaded to and start executing at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = Size - ProgramStart
)

var (
	// ErrRomTooLarge is returned when a program does not fit into the program space.
	ErrRomTooLarge = errors.New("rom too large")
	// ErrMemoryOutOfBounds is returned for any access at or above Size.
	ErrMemoryOutOfBounds = errors.New("memory out of bounds")
)

// Memory is the flat byte store holding the font sprites and the loaded program.
type Memory struct {
	data [Size]byte
}

// New returns a memory with the font sprites preloaded.
func New() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes the memory and reloads the font sprites.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	copy(m.data[FontStart:], fontset[:])
}

// Load copies the program bytes into memory starting at ProgramStart.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("loading %d bytes, maximum is %d: %w", len(program), MaxProgramSize, ErrRomTooLarge)
	}
	copy(m.data[ProgramStart:], program)
	return nil
}

// Byte returns the byte at the given address.
func (m *Memory) Byte(address uint16) (byte, error) {
	if err := m.CheckRange(address, 1); err != nil {
		return 0, err
	}
	return m.data[address], nil
}

// ReadWord returns the big-endian 16-bit word starting at the given address.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if err := m.CheckRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// SetByte stores a byte at the given address.
func (m *Memory) SetByte(address uint16, value byte) error {
	if err := m.CheckRange(address, 1); err != nil {
		return err
	}
	m.data[address] = value
	return nil
}

// ReadRange returns a copy of length bytes starting at the given address.
// Nothing is read unless the whole range is addressable.
func (m *Memory) ReadRange(address uint16, length int) ([]byte, error) {
	if length < 1 {
		return []byte{}, nil
	}
	if err := m.CheckRange(address, length); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, m.data[address:])
	return buf, nil
}

// WriteRange copies data into memory starting at the given address.
// Nothing is written unless the whole range is addressable.
func (m *Memory) WriteRange(address uint16, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := m.CheckRange(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}

// CheckRange verifies that length bytes starting at the given address are addressable.
func (m *Memory) CheckRange(address uint16, length int) error {
	if length < 1 {
		return nil
	}
	end := int(address) + length - 1
	if end >= Size {
		return fmt.Errorf("accessing address 0x%03x: %w", end, ErrMemoryOutOfBounds)
	}
	return nil
}
