package interpreter

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/display"
	"github.com/retroenv/retrochip8/hardware/mocks"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestInterpreter returns an interpreter with the given opcodes loaded.
func newTestInterpreter(t *testing.T, quirks Quirks, opcodes ...uint16) (*Interpreter, *mocks.Hardware) {
	t.Helper()
	hw := mocks.New()
	in := New(log.NewTestLogger(t), hw, quirks)
	assert.NoError(t, in.Load(assemble(opcodes...)))
	return in, hw
}

func assemble(opcodes ...uint16) []byte {
	program := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		program = append(program, byte(op>>8), byte(op))
	}
	return program
}

func stepN(t *testing.T, in *Interpreter, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, in.Step())
	}
}

func TestNew_InitialState(t *testing.T) {
	in := New(log.NewTestLogger(t), mocks.New(), Quirks{})
	state := in.State()

	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, uint16(0), state.I)
	assert.Equal(t, 0, len(state.Stack))
	assert.Equal(t, Running, state.Mode)
	assert.Equal(t, byte(0), state.Delay)
	assert.Equal(t, byte(0), state.Sound)
	assert.Equal(t, display.Framebuffer{}, in.Framebuffer())

	b, err := in.ReadMemory(0x000)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
}

func TestLoad_RomTooLarge(t *testing.T) {
	in := New(log.NewTestLogger(t), mocks.New(), Quirks{})

	err := in.Load(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrRomTooLarge))

	assert.NoError(t, in.Load(make([]byte, MaxProgramSize)))
}

func TestReadMemory_OutOfBounds(t *testing.T) {
	in := New(log.NewTestLogger(t), mocks.New(), Quirks{})

	_, err := in.ReadMemory(0x1000)
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
}

func TestStep_EndToEnd(t *testing.T) {
	program := assemble(
		0x00E0, // CLS
		0x6005, // LD V0, 5
		0x6105, // LD V1, 5
		0xA210, // LD I, 0x210
		0xD015, // DRW V0, V1, 5
	)
	program = append(program, make([]byte, 0x10-len(program))...)
	program = append(program, 0xF0, 0x00, 0x00, 0x00, 0x00)

	hw := mocks.New()
	in := New(log.NewTestLogger(t), hw, Quirks{})
	assert.NoError(t, in.Load(program))
	stepN(t, in, 5)

	state := in.State()
	assert.Equal(t, byte(5), state.V[0])
	assert.Equal(t, byte(5), state.V[1])
	assert.Equal(t, uint16(0x210), state.I)
	assert.Equal(t, byte(0), state.V[0xF])
	assert.Equal(t, uint16(0x20A), state.PC)
	assert.Equal(t, uint64(5), state.Steps)

	fb := in.Framebuffer()
	assert.Equal(t, 4, fb.Count())
	for x := 5; x < 9; x++ {
		assert.True(t, fb.Pixel(x, 5))
	}

	assert.Equal(t, 2, len(hw.Renders))
	last, ok := hw.LastRender()
	assert.True(t, ok)
	assert.Equal(t, fb, last)
}

func TestStep_DrawSelfInverse(t *testing.T) {
	// draw the glyph for 8 twice at (10, 3)
	in, hw := newTestInterpreter(t, Quirks{},
		0x600A, // LD V0, 10
		0x6103, // LD V1, 3
		0x6208, // LD V2, 8
		0xF229, // LD F, V2
		0xD015, // DRW V0, V1, 5
		0xD015, // DRW V0, V1, 5
	)

	stepN(t, in, 5)
	assert.Equal(t, byte(0), in.State().V[0xF])
	drawn := in.Framebuffer()
	assert.True(t, drawn.Count() > 0)

	stepN(t, in, 1)
	assert.Equal(t, byte(1), in.State().V[0xF])
	assert.Equal(t, display.Framebuffer{}, in.Framebuffer())
	assert.Equal(t, 2, len(hw.Renders))
}

func TestStep_DrawClipsAtEdges(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{},
		0x603E, // LD V0, 62
		0x611F, // LD V1, 31
		0xA300, // LD I, 0x300
		0xD012, // DRW V0, V1, 2
	)
	assert.NoError(t, in.memory.SetByte(0x300, 0xFF))

	stepN(t, in, 4)
	fb := in.Framebuffer()
	assert.Equal(t, 2, fb.Count())
	assert.True(t, fb.Pixel(62, 31))
	assert.True(t, fb.Pixel(63, 31))
	assert.False(t, fb.Pixel(0, 31))
	assert.False(t, fb.Pixel(62, 0))
}

func TestStep_DrawWrapsWithQuirk(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{WrapSprites: true},
		0x603E, // LD V0, 62
		0x611F, // LD V1, 31
		0xA300, // LD I, 0x300
		0xD012, // DRW V0, V1, 2
	)
	assert.NoError(t, in.memory.WriteRange(0x300, []byte{0xFF, 0xFF}))

	stepN(t, in, 4)
	fb := in.Framebuffer()
	assert.Equal(t, 16, fb.Count())
	assert.True(t, fb.Pixel(0, 31))
	assert.True(t, fb.Pixel(62, 0))
	assert.True(t, fb.Pixel(5, 0))
}

func TestStep_StackRoundTrip(t *testing.T) {
	for depth := 1; depth <= 16; depth++ {
		// subroutine i at 0x300+4*i calls the next one, the deepest returns
		opcodes := map[uint16]uint16{0x200: 0x2300}
		for i := 0; i < depth; i++ {
			address := uint16(0x300 + 4*i)
			if i == depth-1 {
				opcodes[address] = 0x00EE
				continue
			}
			opcodes[address] = 0x2000 | (address + 4)
			opcodes[address+2] = 0x00EE
		}

		in := New(log.NewTestLogger(t), mocks.New(), Quirks{})
		for address, opcode := range opcodes {
			assert.NoError(t, in.memory.WriteRange(address, []byte{byte(opcode >> 8), byte(opcode)}))
		}

		stepN(t, in, depth)
		assert.Equal(t, depth, len(in.State().Stack))

		stepN(t, in, depth)
		state := in.State()
		assert.Equal(t, 0, len(state.Stack))
		assert.Equal(t, uint16(0x202), state.PC)
	}
}

func TestStep_StackOverflow(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{}, 0x2200) // CALL 0x200, recursing forever

	stepN(t, in, 16)
	before := in.State()

	err := in.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, before.PC, in.PC())
	assert.Equal(t, 16, len(in.State().Stack))
}

func TestStep_StackUnderflow(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{}, 0x00EE)

	err := in.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), in.PC())
}

func TestStep_UnknownOpcode(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
	}{
		{"system call", 0x0123},
		{"register skip with nibble", 0x5121},
		{"arithmetic group 8", 0x8128},
		{"register skip not equal with nibble", 0x912F},
		{"key group", 0xE1FF},
		{"misc group", 0xF1FF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, _ := newTestInterpreter(t, Quirks{}, tt.opcode)

			err := in.Step()
			assert.True(t, errors.Is(err, ErrUnknownOpcode))
			assert.Equal(t, uint16(ProgramStart), in.PC())
		})
	}
}

func TestStep_HaltsAfterFatalError(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{}, 0xFFFF)

	err := in.Step()
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.True(t, errors.Is(in.Halted(), ErrUnknownOpcode))

	err = in.Step()
	assert.True(t, errors.Is(err, ErrHalted))
	assert.True(t, errors.Is(err, ErrUnknownOpcode))

	in.Reset()
	assert.NoError(t, in.Halted())
	assert.NoError(t, in.Load(assemble(0x6001)))
	assert.NoError(t, in.Step())
}

func TestStep_FetchOutOfBounds(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{}, 0x1FFF) // JP 0xFFF

	assert.NoError(t, in.Step())
	assert.Equal(t, uint16(0xFFF), in.PC())

	err := in.Step()
	assert.True(t, errors.Is(err, ErrMemoryOutOfBounds))
	assert.Equal(t, uint16(0xFFF), in.PC())
}

func TestStep_KeyWaitSuspends(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{},
		0xF30A, // LD V3, K
		0x6001, // LD V0, 1
	)

	for i := 0; i < 5; i++ {
		assert.NoError(t, in.Step())
		assert.Equal(t, uint16(ProgramStart), in.PC())
		assert.Equal(t, AwaitingKey, in.Mode())
	}

	assert.NoError(t, in.SetKey(0xB, true))
	assert.NoError(t, in.Step())
	state := in.State()
	assert.Equal(t, uint16(ProgramStart+2), state.PC)
	assert.Equal(t, byte(0xB), state.V[3])
	assert.Equal(t, Running, state.Mode)

	assert.NoError(t, in.Step())
	assert.Equal(t, byte(1), in.State().V[0])
}

func TestStep_KeyWaitCompletesImmediately(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{}, 0xF50A)

	var keys [16]bool
	keys[0x9] = true
	keys[0x2] = true
	in.SetKeys(keys)

	assert.NoError(t, in.Step())
	assert.Equal(t, uint16(ProgramStart+2), in.PC())
	assert.Equal(t, byte(0x2), in.State().V[5])
	assert.Equal(t, Running, in.Mode())
}

func TestStep_TimersKeepRunningDuringKeyWait(t *testing.T) {
	in, _ := newTestInterpreter(t, Quirks{},
		0x6005, // LD V0, 5
		0xF015, // LD DT, V0
		0xF10A, // LD V1, K
	)
	stepN(t, in, 3)

	in.Tick()
	in.Tick()
	assert.NoError(t, in.Step())
	assert.Equal(t, byte(3), in.State().Delay)
	assert.Equal(t, AwaitingKey, in.Mode())
}

func TestSetKey_InvalidIndex(t *testing.T) {
	in := New(log.NewTestLogger(t), mocks.New(), Quirks{})

	err := in.SetKey(16, true)
	assert.True(t, errors.Is(err, ErrInvalidKeyIndex))
}

func TestTick_Audio(t *testing.T) {
	in, hw := newTestInterpreter(t, Quirks{},
		0x6002, // LD V0, 2
		0xF018, // LD ST, V0
	)
	stepN(t, in, 2)
	assert.True(t, in.SoundActive())
	assert.Equal(t, 1, len(hw.Audio))
	assert.True(t, hw.Audio[0])

	in.Tick()
	assert.Equal(t, 1, len(hw.Audio))

	in.Tick()
	assert.False(t, in.SoundActive())
	assert.Equal(t, 2, len(hw.Audio))
	assert.False(t, hw.Audio[1])

	in.Tick()
	assert.Equal(t, 2, len(hw.Audio))
	assert.Equal(t, byte(0), in.State().Sound)
}

func TestReset(t *testing.T) {
	in, hw := newTestInterpreter(t, Quirks{},
		0x6009, // LD V0, 9
		0xF018, // LD ST, V0
		0x2300, // CALL 0x300
	)
	stepN(t, in, 3)
	assert.NoError(t, in.SetKey(1, true))

	in.Reset()

	state := in.State()
	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, byte(0), state.V[0])
	assert.Equal(t, 0, len(state.Stack))
	assert.Equal(t, byte(0), state.Sound)
	assert.Equal(t, uint64(0), state.Steps)
	assert.False(t, in.keypad.Pressed(1))
	assert.Equal(t, 2, len(hw.Audio))
	assert.False(t, hw.Audio[1])

	b, err := in.ReadMemory(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestHandlers_Exhaustive(t *testing.T) {
	for op := OpInvalid; op < opCount; op++ {
		assert.NotNil(t, handlers[op])
		if op != OpInvalid {
			assert.NotNil(t, opInstructions[op])
		}
	}
}
