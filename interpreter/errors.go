package interpreter

import (
	"errors"

	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
)

// Errors returned by the interpreter. All of them are fatal to the instance,
// match them with errors.Is.
var (
	ErrRomTooLarge          = memory.ErrRomTooLarge
	ErrMemoryOutOfBounds    = memory.ErrMemoryOutOfBounds
	ErrStackOverflow        = registers.ErrStackOverflow
	ErrStackUnderflow       = registers.ErrStackUnderflow
	ErrInvalidRegisterIndex = registers.ErrInvalidRegisterIndex
	ErrInvalidKeyIndex      = keypad.ErrInvalidKeyIndex

	ErrUnknownOpcode = errors.New("unknown opcode")
	ErrHalted        = errors.New("interpreter halted")
)
