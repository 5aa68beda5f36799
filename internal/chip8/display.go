package chip8

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// frameBuffer packs the monochrome 64x32 display one bit per pixel, eight
// horizontally adjacent pixels per byte, MSB leftmost. Coordinates are
// (column, row) with the origin at the top-left.
type frameBuffer struct {
	buf [DisplayWidth * DisplayHeight / 8]byte
}

// flip XORs the pixel at (x, y) and reports whether the pixel was lit before
// the flip, i.e. whether the flip turned it off. This is the draw collision
// signal.
func (f *frameBuffer) flip(x, y int) bool {
	idx := (y*DisplayWidth + x) / 8
	mask := byte(0x80) >> (x % 8)
	on := f.buf[idx]&mask != 0
	f.buf[idx] ^= mask
	return on
}

func (f *frameBuffer) isOn(x, y int) bool {
	return f.buf[(y*DisplayWidth+x)/8]&(0x80>>(x%8)) != 0
}

func (f *frameBuffer) clear() {
	f.buf = [DisplayWidth * DisplayHeight / 8]byte{}
}

// String renders the buffer for debugging, one character per pixel.
func (f *frameBuffer) String() string {
	var b strings.Builder
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if f.isOn(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
