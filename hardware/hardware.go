// Package hardware defines the capabilities the CHIP-8 interpreter requires from its host.
package hardware

import "github.com/retroenv/retrochip8/display"

// KeyCount is the number of keys on the CHIP-8 keypad.
const KeyCount = 16

// Hardware is implemented by the host to connect the interpreter to the
// real world. All methods are called from the goroutine that drives the
// interpreter.
type Hardware interface {
	// Render is called with a snapshot of the framebuffer whenever the
	// screen content was changed by a clear or draw instruction.
	Render(fb display.Framebuffer)

	// RandomByte returns the next random value used by the RND instruction.
	RandomByte() byte

	// SetAudio is called when the buzzer switches on or off.
	SetAudio(active bool)

	// KeyState returns the pressed state of all keypad keys.
	KeyState() [KeyCount]bool

	// Yield is the cooperative scheduling point, called once per main loop
	// iteration. It returns true to request a shutdown of the loop.
	Yield() bool
}
