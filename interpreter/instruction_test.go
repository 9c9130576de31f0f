package interpreter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
	}{
		{0x00E0, OpCls},
		{0x00EE, OpRet},
		{0x1ABC, OpJp},
		{0x2ABC, OpCall},
		{0x3A12, OpSeImm},
		{0x4A12, OpSneImm},
		{0x5AB0, OpSeReg},
		{0x6A12, OpLdImm},
		{0x7A12, OpAddImm},
		{0x8AB0, OpLdReg},
		{0x8AB1, OpOr},
		{0x8AB2, OpAnd},
		{0x8AB3, OpXor},
		{0x8AB4, OpAddReg},
		{0x8AB5, OpSub},
		{0x8AB6, OpShr},
		{0x8AB7, OpSubn},
		{0x8ABE, OpShl},
		{0x9AB0, OpSneReg},
		{0xAABC, OpLdI},
		{0xBABC, OpJpV0},
		{0xCA12, OpRnd},
		{0xDAB5, OpDrw},
		{0xEA9E, OpSkp},
		{0xEAA1, OpSknp},
		{0xFA07, OpLdVxDT},
		{0xFA0A, OpLdVxK},
		{0xFA15, OpLdDTVx},
		{0xFA18, OpLdSTVx},
		{0xFA1E, OpAddI},
		{0xFA29, OpLdF},
		{0xFA33, OpLdB},
		{0xFA55, OpStoreRegs},
		{0xFA65, OpLoadRegs},
	}

	for _, tt := range tests {
		ins, err := Decode(tt.opcode)
		assert.NoError(t, err)
		assert.Equal(t, tt.op, ins.Op)
		assert.Equal(t, tt.opcode, ins.Opcode)

		name := opInstructions[tt.op].Name
		assert.Equal(t, name, ins.Name())
		assert.Contains(t, ins.String(), name)
	}
}

func TestDecode_Fields(t *testing.T) {
	ins, err := Decode(0xD4A7)
	assert.NoError(t, err)
	assert.Equal(t, OpDrw, ins.Op)
	assert.Equal(t, uint8(0x4), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x7), ins.N)
	assert.Equal(t, byte(0xA7), ins.NN)
	assert.Equal(t, uint16(0x4A7), ins.NNN)
	assert.Contains(t, ins.String(), "V4, VA, $7")

	ins, err = Decode(0xF355)
	assert.NoError(t, err)
	assert.Contains(t, ins.String(), "[I], V3")
}

func TestDecode_Unknown(t *testing.T) {
	opcodes := []uint16{
		0x0000, 0x0123, 0x00E1, 0x00FF,
		0x5AB1, 0x9ABF,
		0x8AB8, 0x8AB9, 0x8ABD, 0x8ABF,
		0xEA00, 0xEA9F,
		0xFA00, 0xFA30, 0xFA75, 0xFAFF,
	}

	for _, opcode := range opcodes {
		ins, err := Decode(opcode)
		assert.True(t, errors.Is(err, ErrUnknownOpcode))
		assert.Equal(t, OpInvalid, ins.Op)
		assert.Equal(t, "", ins.Name())
	}
}

func TestDecode_UnknownMessage(t *testing.T) {
	for _, opcode := range []uint16{0x0123, 0x5121, 0x8128, 0x9121, 0xE1FF, 0xF1FF} {
		_, err := Decode(opcode)
		assert.Equal(t, fmt.Sprintf("unknown opcode 0x%04x", opcode), err.Error())
	}
}

func TestInstruction_StringInvalid(t *testing.T) {
	ins := Instruction{Opcode: 0xFFFF}
	assert.Equal(t, "$FFFF", ins.String())
}

func TestInstruction_String(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, chip8.ClsName},
		{0x00EE, chip8.RetName},
		{0x1ABC, "jp $ABC"},
		{0x2ABC, "call $ABC"},
		{0x3A12, "se VA, $12"},
		{0x8AB4, "add VA, VB"},
		{0x8AB6, "shr VA"},
		{0xBABC, "jp V0, $ABC"},
		{0xCA12, "rnd VA, $12"},
		{0xD4A7, "drw V4, VA, $7"},
		{0xEAA1, "sknp VA"},
		{0xFA0A, "ld VA, K"},
		{0xF355, "ld [I], V3"},
		{0xF365, "ld V3, [I]"},
	}

	for _, tt := range tests {
		ins, err := Decode(tt.opcode)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, ins.String())
	}
}

func TestMnemonic(t *testing.T) {
	assert.Equal(t, chip8.ClsName, Mnemonic(0x00E0))
	assert.Equal(t, chip8.JpName, Mnemonic(0x1234))
	assert.Equal(t, chip8.DrwName, Mnemonic(0xD125))
	assert.Equal(t, "", Mnemonic(0x5121))
}

func TestMnemonic_MatchesDecode(t *testing.T) {
	for opcode := 0; opcode <= 0xFFFF; opcode++ {
		ins, err := Decode(uint16(opcode))
		name := Mnemonic(uint16(opcode))
		if err != nil {
			assert.Equal(t, "", name, fmt.Sprintf("opcode 0x%04x", opcode))
			continue
		}
		assert.Equal(t, ins.Name(), name, fmt.Sprintf("opcode 0x%04x", opcode))
	}
}
