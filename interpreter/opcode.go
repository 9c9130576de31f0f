package interpreter

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonic returns the instruction name of the opcode as listed in the
// CHIP-8 opcode table, or an empty string if the opcode is not listed.
// It does not decode the operands, use Decode for that.
func Mnemonic(opcode uint16) string {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction.Name
		}
	}
	return ""
}
