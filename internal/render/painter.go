//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter mirrors an ImageSurface into an ebiten image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
}

// NewGridPainter allocates a painter for a surface of w x h pixels.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Upload copies the surface pixels into the painter image.
func (gp *GridPainter) Upload(s *ImageSurface) {
	b := s.Bounds()
	if b.Dx() != gp.w || b.Dy() != gp.h {
		return
	}
	gp.img.WritePixels(s.Pix())
}

// Blit draws the painter image onto dst at the given offset and scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, x, y float64, scale int) {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(x, y)
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
