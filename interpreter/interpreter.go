package interpreter

import (
	"fmt"

	"github.com/retroenv/retrochip8/display"
	"github.com/retroenv/retrochip8/hardware"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/log"
)

// ProgramStart is the address programs are loaded to and start executing at.
const ProgramStart = memory.ProgramStart

// MaxProgramSize is the largest program that Load accepts.
const MaxProgramSize = memory.MaxProgramSize

// Mode is the execution state of the interpreter.
type Mode int

const (
	// Running fetches and executes one instruction per step.
	Running Mode = iota
	// AwaitingKey suspends execution until a key is pressed.
	AwaitingKey
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Interpreter is a CHIP-8 virtual machine. It owns memory, registers,
// timers, framebuffer and keypad and executes one instruction per Step.
// It is not safe for concurrent use.
type Interpreter struct {
	logger *log.Logger
	hw     hardware.Hardware
	quirks Quirks

	memory    *memory.Memory
	registers *registers.Registers
	timers    timer.Timers
	keypad    keypad.Keypad
	display   display.Framebuffer

	mode    Mode
	waitReg uint8 // destination register of a pending key wait
	audio   bool  // last audio state signaled to the hardware
	halted  error // fatal error that stopped execution
	next    uint16
	steps   uint64
}

// New returns an interpreter in its initial state with the font loaded
// and the program counter at ProgramStart.
func New(logger *log.Logger, hw hardware.Hardware, quirks Quirks) *Interpreter {
	return &Interpreter{
		logger:    logger,
		hw:        hw,
		quirks:    quirks,
		memory:    memory.New(),
		registers: registers.New(ProgramStart),
	}
}

// Reset returns the interpreter to its initial state. A loaded program is
// removed and a halted interpreter can be used again.
func (in *Interpreter) Reset() {
	in.memory.Reset()
	in.registers.Reset(ProgramStart)
	in.timers.Reset()
	in.keypad.Reset()
	in.display.Clear()
	in.mode = Running
	in.halted = nil
	in.steps = 0
	in.updateAudio()
}

// Load copies the program into memory at ProgramStart.
func (in *Interpreter) Load(program []byte) error {
	if err := in.memory.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	in.logger.Debug("Program loaded", log.Int("size", len(program)))
	return nil
}

// Step executes a single instruction. While awaiting a key it only checks
// the keypad. Any returned error is fatal, the state is left as it was
// before the step.
func (in *Interpreter) Step() error {
	if in.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, in.halted)
	}
	if in.mode == AwaitingKey {
		in.resumeKeyWait()
		return nil
	}

	pc := in.registers.PC
	opcode, err := in.memory.ReadWord(pc)
	if err != nil {
		return in.fail(fmt.Errorf("fetching instruction at 0x%03x: %w", pc, err))
	}

	ins, err := Decode(opcode)
	if err != nil {
		return in.fail(fmt.Errorf("decoding instruction at 0x%03x: %w", pc, err))
	}

	in.logger.Debug("Executing instruction",
		log.Hex("pc", pc),
		log.Hex("opcode", opcode),
		log.String("instruction", ins.String()))

	in.next = pc + 2
	if err := handlers[ins.Op](in, ins); err != nil {
		return in.fail(fmt.Errorf("executing %s at 0x%03x: %w", ins, pc, err))
	}
	in.registers.PC = in.next
	in.steps++
	return nil
}

// Tick decrements the delay and sound timers. It has to be called at
// 60 Hz, independent of the rate Step is called at.
func (in *Interpreter) Tick() {
	in.timers.Tick()
	in.updateAudio()
}

// SetKey updates the pressed state of a single keypad key.
func (in *Interpreter) SetKey(index int, pressed bool) error {
	if err := in.keypad.Set(index, pressed); err != nil {
		return fmt.Errorf("updating keypad: %w", err)
	}
	return nil
}

// SetKeys replaces the pressed state of all keypad keys.
func (in *Interpreter) SetKeys(state [hardware.KeyCount]bool) {
	in.keypad.SetAll(keypad.State(state))
}

// Mode returns the current execution mode.
func (in *Interpreter) Mode() Mode {
	return in.mode
}

// Halted returns the fatal error that stopped execution, or nil.
func (in *Interpreter) Halted() error {
	return in.halted
}

// PC returns the program counter.
func (in *Interpreter) PC() uint16 {
	return in.registers.PC
}

// Framebuffer returns a snapshot of the screen.
func (in *Interpreter) Framebuffer() display.Framebuffer {
	return in.display
}

// SoundActive returns whether the buzzer is sounding.
func (in *Interpreter) SoundActive() bool {
	return in.timers.SoundActive()
}

// ReadMemory returns the byte at the given address.
func (in *Interpreter) ReadMemory(address uint16) (byte, error) {
	b, err := in.memory.Byte(address)
	if err != nil {
		return 0, fmt.Errorf("reading memory: %w", err)
	}
	return b, nil
}

// Snapshot is a read-only copy of the interpreter state.
type Snapshot struct {
	PC    uint16
	I     uint16
	V     [registers.Count]byte
	Delay byte
	Sound byte
	Stack []uint16 // return addresses, bottom first
	Mode  Mode
	Steps uint64 // number of executed instructions
}

// State returns a snapshot of the registers, timers and stack.
func (in *Interpreter) State() Snapshot {
	return Snapshot{
		PC:    in.registers.PC,
		I:     in.registers.I,
		V:     in.registers.V,
		Delay: in.timers.Delay,
		Sound: in.timers.Sound,
		Stack: in.registers.Stack.Entries(),
		Mode:  in.mode,
		Steps: in.steps,
	}
}

func (in *Interpreter) fail(err error) error {
	in.halted = err
	return err
}

// resumeKeyWait completes a pending FX0A once a key is pressed.
func (in *Interpreter) resumeKeyWait() {
	key, ok := in.keypad.FirstPressed()
	if !ok {
		return
	}

	in.registers.V[in.waitReg] = key
	in.registers.PC += 2
	in.mode = Running
	in.steps++
	in.logger.Debug("Key wait finished",
		log.Hex("pc", in.registers.PC),
		log.Uint8("key", key))
}

// updateAudio signals the hardware when the sound timer state changed.
func (in *Interpreter) updateAudio() {
	active := in.timers.SoundActive()
	if active == in.audio {
		return
	}
	in.audio = active
	in.hw.SetAudio(active)
}

func (in *Interpreter) render() {
	in.hw.Render(in.display)
}
