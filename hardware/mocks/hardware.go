// Package mocks provides a deterministic hardware implementation for testing.
package mocks

import (
	"github.com/retroenv/retrochip8/display"
	"github.com/retroenv/retrochip8/hardware"
)

// Compile-time check to ensure Hardware implements hardware.Hardware.
var _ hardware.Hardware = (*Hardware)(nil)

// Hardware is an in-memory hardware double. Random values and key states
// are played back from scripted sequences, renders and audio signals are
// recorded.
type Hardware struct {
	// Random is the sequence returned by RandomByte, repeated when exhausted.
	Random []byte
	// Keys is the sequence returned by KeyState, one entry per call.
	// The last entry is repeated when exhausted.
	Keys [][hardware.KeyCount]bool
	// ShutdownAfter requests a shutdown on the given Yield call, counting
	// from 1. Zero never requests a shutdown.
	ShutdownAfter int

	Renders []display.Framebuffer // all rendered framebuffers in order
	Audio   []bool                // all audio signals in order
	Yields  int                   // number of Yield calls

	randomIndex int
	keyIndex    int
}

// New returns a hardware double that returns the given random sequence.
func New(random ...byte) *Hardware {
	return &Hardware{
		Random: random,
	}
}

// Render records the framebuffer snapshot.
func (h *Hardware) Render(fb display.Framebuffer) {
	h.Renders = append(h.Renders, fb)
}

// RandomByte returns the next value of the scripted random sequence.
func (h *Hardware) RandomByte() byte {
	if len(h.Random) == 0 {
		return 0
	}
	b := h.Random[h.randomIndex%len(h.Random)]
	h.randomIndex++
	return b
}

// SetAudio records the audio signal.
func (h *Hardware) SetAudio(active bool) {
	h.Audio = append(h.Audio, active)
}

// KeyState returns the next scripted key state.
func (h *Hardware) KeyState() [hardware.KeyCount]bool {
	if len(h.Keys) == 0 {
		return [hardware.KeyCount]bool{}
	}
	index := min(h.keyIndex, len(h.Keys)-1)
	h.keyIndex++
	return h.Keys[index]
}

// Yield counts the call and reports a shutdown request once ShutdownAfter is reached.
func (h *Hardware) Yield() bool {
	h.Yields++
	return h.ShutdownAfter > 0 && h.Yields >= h.ShutdownAfter
}

// PressKeys appends a key state with the given keys pressed to the key script.
func (h *Hardware) PressKeys(keys ...int) {
	var state [hardware.KeyCount]bool
	for _, key := range keys {
		state[key] = true
	}
	h.Keys = append(h.Keys, state)
}

// LastRender returns the most recent rendered framebuffer.
func (h *Hardware) LastRender() (display.Framebuffer, bool) {
	if len(h.Renders) == 0 {
		return display.Framebuffer{}, false
	}
	return h.Renders[len(h.Renders)-1], true
}
