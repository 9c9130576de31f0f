// Package interpreter implements a CHIP-8 virtual machine.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for
// simple games on early microcomputers. The virtual machine consists of:
//   - 4KB of memory, font sprites at 0x000-0x04F, programs from 0x200
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - a 16-bit index register I and program counter PC
//   - a call stack of 16 return addresses
//   - delay and sound timers counting down at 60 Hz
//   - a 64x32 monochrome framebuffer
//   - a 16 key hexadecimal keypad
//
// # Execution Model
//
// The host drives the interpreter cooperatively. Step executes exactly one
// instruction, Tick decrements the timers and must be called at a fixed
// rate of 60 Hz, independent of how often Step is called. Key state is
// pushed in by the host with SetKey or SetKeys.
//
// The wait for key instruction (FX0A) does not block. When no key is
// pressed the interpreter switches to the AwaitingKey mode and every
// following Step only checks the keypad until a key is pressed.
//
// All effects that leave the virtual machine (rendering, random numbers,
// audio) go through the hardware.Hardware interface.
//
// # Errors
//
// Every error returned by Step or Load is fatal to the instance. A failing
// step never partially applies its effects. After a fatal error Step
// returns ErrHalted until the interpreter is Reset.
//
// # Quirks
//
// CHIP-8 implementations disagree on some instruction details. The
// defaults follow the original interpreter this package is modeled on,
// sprites are clipped at the screen edges. Every difference is a field of
// Quirks.
//
// # Usage Example
//
//	hw := newHost() // implements hardware.Hardware
//	vm := interpreter.New(logger, hw, interpreter.Quirks{})
//	if err := vm.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := vm.Step(); err != nil {
//			return fmt.Errorf("executing program: %w", err)
//		}
//	}
package interpreter
