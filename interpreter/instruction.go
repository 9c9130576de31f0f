package interpreter

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a decoded CHIP-8 instruction variant.
type Op uint8

// Instruction variants, one per distinct behavior.
const (
	OpInvalid   Op = iota
	OpCls          // 00E0
	OpRet          // 00EE
	OpJp           // 1NNN
	OpCall         // 2NNN
	OpSeImm        // 3XNN
	OpSneImm       // 4XNN
	OpSeReg        // 5XY0
	OpLdImm        // 6XNN
	OpAddImm       // 7XNN
	OpLdReg        // 8XY0
	OpOr           // 8XY1
	OpAnd          // 8XY2
	OpXor          // 8XY3
	OpAddReg       // 8XY4
	OpSub          // 8XY5
	OpShr          // 8XY6
	OpSubn         // 8XY7
	OpShl          // 8XYE
	OpSneReg       // 9XY0
	OpLdI          // ANNN
	OpJpV0         // BNNN
	OpRnd          // CXNN
	OpDrw          // DXYN
	OpSkp          // EX9E
	OpSknp         // EXA1
	OpLdVxDT       // FX07
	OpLdVxK        // FX0A
	OpLdDTVx       // FX15
	OpLdSTVx       // FX18
	OpAddI         // FX1E
	OpLdF          // FX29
	OpLdB          // FX33
	OpStoreRegs    // FX55
	OpLoadRegs     // FX65

	opCount
)

// opInstructions maps every variant to its assembler instruction.
var opInstructions = [opCount]*chip8.Instruction{
	OpCls:       chip8.ClsInst,
	OpRet:       chip8.RetInst,
	OpJp:        chip8.JpInst,
	OpCall:      chip8.CallInst,
	OpSeImm:     chip8.SeInst,
	OpSneImm:    chip8.SneInst,
	OpSeReg:     chip8.SeInst,
	OpLdImm:     chip8.LdInst,
	OpAddImm:    chip8.AddInst,
	OpLdReg:     chip8.LdInst,
	OpOr:        chip8.OrInst,
	OpAnd:       chip8.AndInst,
	OpXor:       chip8.XorInst,
	OpAddReg:    chip8.AddInst,
	OpSub:       chip8.SubInst,
	OpShr:       chip8.ShrInst,
	OpSubn:      chip8.SubnInst,
	OpShl:       chip8.ShlInst,
	OpSneReg:    chip8.SneInst,
	OpLdI:       chip8.LdInst,
	OpJpV0:      chip8.JpInst,
	OpRnd:       chip8.RndInst,
	OpDrw:       chip8.DrwInst,
	OpSkp:       chip8.SkpInst,
	OpSknp:      chip8.SknpInst,
	OpLdVxDT:    chip8.LdInst,
	OpLdVxK:     chip8.LdInst,
	OpLdDTVx:    chip8.LdInst,
	OpLdSTVx:    chip8.LdInst,
	OpAddI:      chip8.AddInst,
	OpLdF:       chip8.LdInst,
	OpLdB:       chip8.LdInst,
	OpStoreRegs: chip8.LdInst,
	OpLoadRegs:  chip8.LdInst,
}

// Instruction is a decoded CHIP-8 opcode with all its operand fields extracted.
type Instruction struct {
	Op     Op
	Opcode uint16 // raw 16-bit opcode
	X      uint8  // register index in bits 8-11
	Y      uint8  // register index in bits 4-7
	N      uint8  // lowest 4 bits
	NN     byte   // lowest 8 bits
	NNN    uint16 // lowest 12 bits, an address
}

// Decode splits the opcode into its fields and identifies the instruction variant.
// Opcodes that are not part of the instruction set return ErrUnknownOpcode.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
		N:      uint8(opcode) & 0x0F,
		NN:     byte(opcode),
		NNN:    opcode & 0x0FFF,
	}
	ins.Op = decodeOp(opcode, ins.N, ins.NN)
	if ins.Op == OpInvalid {
		return ins, unknownOpcode(opcode)
	}
	return ins, nil
}

func decodeOp(opcode uint16, n uint8, nn byte) Op {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeImm
	case 0x4000:
		return OpSneImm
	case 0x5000:
		if n == 0 {
			return OpSeReg
		}
	case 0x6000:
		return OpLdImm
	case 0x7000:
		return OpAddImm
	case 0x8000:
		return decodeALU(n)
	case 0x9000:
		if n == 0 {
			return OpSneReg
		}
	case 0xA000:
		return OpLdI
	case 0xB000:
		return OpJpV0
	case 0xC000:
		return OpRnd
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch nn {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF000:
		return decodeMisc(nn)
	}
	return OpInvalid
}

// decodeALU decodes the register arithmetic group 8XYN.
func decodeALU(n uint8) Op {
	switch n {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpInvalid
}

// decodeMisc decodes the timer, keypad and memory transfer group FXNN.
func decodeMisc(nn byte) Op {
	switch nn {
	case 0x07:
		return OpLdVxDT
	case 0x0A:
		return OpLdVxK
	case 0x15:
		return OpLdDTVx
	case 0x18:
		return OpLdSTVx
	case 0x1E:
		return OpAddI
	case 0x29:
		return OpLdF
	case 0x33:
		return OpLdB
	case 0x55:
		return OpStoreRegs
	case 0x65:
		return OpLoadRegs
	}
	return OpInvalid
}

func unknownOpcode(opcode uint16) error {
	return fmt.Errorf("%w 0x%04x", ErrUnknownOpcode, opcode)
}

// Name returns the assembler mnemonic of the instruction.
func (i Instruction) Name() string {
	if i.Op >= opCount || opInstructions[i.Op] == nil {
		return ""
	}
	return opInstructions[i.Op].Name
}

// String returns the instruction in assembler syntax with its operands.
func (i Instruction) String() string {
	name := i.Name()
	if name == "" {
		return fmt.Sprintf("$%04X", i.Opcode)
	}
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Op {
	case OpJp, OpCall:
		return fmt.Sprintf("$%03X", i.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case OpSeImm, OpSneImm, OpLdImm, OpAddImm, OpRnd:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", i.X)
	case OpLdI:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case OpLdVxDT:
		return fmt.Sprintf("V%X, DT", i.X)
	case OpLdVxK:
		return fmt.Sprintf("V%X, K", i.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, V%X", i.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, V%X", i.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", i.X)
	case OpLdF:
		return fmt.Sprintf("F, V%X", i.X)
	case OpLdB:
		return fmt.Sprintf("B, V%X", i.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", i.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", i.X)
	}
	return ""
}
