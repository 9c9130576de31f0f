package interpreter

import "github.com/retroenv/retrochip8/display"

// Quirks selects between the behaviors of historical CHIP-8 implementations.
// The zero value clips sprites at the screen edges and otherwise matches
// the original interpreter.
type Quirks struct {
	// WrapSprites draws sprite pixels that fall past a screen edge on the
	// opposite side instead of clipping them.
	WrapSprites bool

	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting
	// VX in place.
	ShiftUsesVY bool

	// LoadStoreIncrementsI makes FX55 and FX65 advance I by X+1.
	LoadStoreIncrementsI bool

	// IndexOverflowFlag makes FX1E set VF to 1 when I+VX exceeds 0xFFF and
	// to 0 otherwise.
	IndexOverflowFlag bool

	// ResetFlagOnLogic makes 8XY1, 8XY2 and 8XY3 set VF to 0.
	ResetFlagOnLogic bool

	// JumpUsesVX makes BNNN jump to NNN+VX, X being the high nibble of NNN.
	JumpUsesVX bool
}

// CosmacVIPQuirks returns the behavior of the original COSMAC VIP interpreter.
func CosmacVIPQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
		ResetFlagOnLogic:     true,
	}
}

func (q Quirks) edgeMode() display.EdgeMode {
	if q.WrapSprites {
		return display.Wrap
	}
	return display.Clip
}
