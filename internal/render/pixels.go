package render

import (
	"image"
	"image/color"
)

// fillRectRGBA writes c into every pixel of r within an RGBA pixel buffer.
// r must already be clipped to the buffer bounds.
func fillRectRGBA(pix []byte, stride int, origin image.Point, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	width := r.Dx() * 4
	row := pix[(r.Min.Y-origin.Y)*stride+(r.Min.X-origin.X)*4:]
	line := row[:width]
	for i := 0; i < width; i += 4 {
		line[i+0] = c.R
		line[i+1] = c.G
		line[i+2] = c.B
		line[i+3] = c.A
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		row = row[stride:]
		copy(row[:width], line)
	}
}
