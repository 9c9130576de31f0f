// Package display implements the monochrome 64x32 CHIP-8 framebuffer.
package display

import "strings"

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32
)

// EdgeMode defines what happens to sprite pixels that fall outside the grid.
// CHIP-8 implementations disagree on this, so it is a configuration point.
type EdgeMode int

const (
	// Clip drops pixels that fall past the right or bottom edge.
	Clip EdgeMode = iota
	// Wrap draws pixels that fall past an edge on the opposite side.
	Wrap
)

// Framebuffer is a 64x32 bit grid. Every row is stored as a uint64 with
// column 0 in the most significant bit. The zero value is a cleared screen.
// Framebuffer is a value type, copies are independent snapshots.
type Framebuffer struct {
	rows [Height]uint64
}

// Clear unsets all pixels.
func (f *Framebuffer) Clear() {
	f.rows = [Height]uint64{}
}

// Pixel returns whether the pixel at the given coordinate is set.
// Coordinates outside the grid are reported as unset.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.rows[y]&columnMask(x) != 0
}

// Row returns the pixel bits of row y, column 0 in the most significant bit.
func (f *Framebuffer) Row(y int) uint64 {
	if y < 0 || y >= Height {
		return 0
	}
	return f.rows[y]
}

// DrawSprite XORs the sprite onto the grid with its top-left corner at (x, y).
// Every sprite byte is one row of 8 pixels, most significant bit leftmost.
// It returns true if any pixel was switched from set to unset.
func (f *Framebuffer) DrawSprite(x, y int, sprite []byte, mode EdgeMode) bool {
	collision := false
	for row, data := range sprite {
		py := y + row
		if mode == Wrap {
			py %= Height
		} else if py >= Height {
			break
		}

		for col := 0; col < 8; col++ {
			if data&(0x80>>col) == 0 {
				continue
			}

			px := x + col
			if mode == Wrap {
				px %= Width
			} else if px >= Width {
				break
			}

			mask := columnMask(px)
			if f.rows[py]&mask != 0 {
				collision = true
			}
			f.rows[py] ^= mask
		}
	}
	return collision
}

// Count returns the number of set pixels.
func (f *Framebuffer) Count() int {
	count := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Pixel(x, y) {
				count++
			}
		}
	}
	return count
}

// String renders the grid as text, one line per row, '#' for set pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func columnMask(x int) uint64 {
	return 1 << (Width - 1 - x)
}
