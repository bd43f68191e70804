package render

import (
	"image"
	"image/color"
)

// Surface is a fixed-size drawing target with a current fill style.
type Surface interface {
	Bounds() image.Rectangle
	SetFillColor(c color.RGBA)
	FillRect(x, y, w, h int)
	Clear()
}

// ImageSurface draws into an in-memory RGBA image.
type ImageSurface struct {
	img      *image.RGBA
	fill     color.RGBA
	switches int
}

// NewImageSurface allocates a transparent surface of w x h pixels.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Bounds returns the pixel bounds of the surface.
func (s *ImageSurface) Bounds() image.Rectangle { return s.img.Bounds() }

// SetFillColor changes the fill style used by FillRect.
func (s *ImageSurface) SetFillColor(c color.RGBA) {
	if c != s.fill {
		s.switches++
	}
	s.fill = c
}

// FillRect fills the rectangle at (x, y) of size w x h, clipped to the surface.
func (s *ImageSurface) FillRect(x, y, w, h int) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Rect)
	fillRectRGBA(s.img.Pix, s.img.Stride, s.img.Rect.Min, r, s.fill)
}

// Clear resets every pixel to transparent black.
func (s *ImageSurface) Clear() { clear(s.img.Pix) }

// Image exposes the backing image. Callers must not resize it.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// Pix returns the raw RGBA bytes, row-major.
func (s *ImageSurface) Pix() []byte { return s.img.Pix }

// FillSwitches counts how often the fill style actually changed.
func (s *ImageSurface) FillSwitches() int { return s.switches }
