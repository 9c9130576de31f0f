// Package timer implements the CHIP-8 delay and sound timers.
package timer

// Timers holds the two 8-bit countdown timers. Both are decremented
// by Tick at a fixed rate that is independent of instruction execution.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements each non-zero timer by one.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// SoundActive returns whether the buzzer should be sounding.
func (t *Timers) SoundActive() bool {
	return t.Sound > 0
}

// Reset sets both timers to zero.
func (t *Timers) Reset() {
	t.Delay = 0
	t.Sound = 0
}
