package core

import (
	"errors"
	"fmt"
)

// ErrBufferSize reports a packed buffer too short for the board it describes.
var ErrBufferSize = errors.New("core: packed buffer too short")

// BufferLen returns the number of bytes needed to pack w*h cells, one bit each.
func BufferLen(w, h int) int {
	return (w*h + 7) / 8
}

// Index returns the linear cell index for (row, col).
func Index(w, row, col int) int { return row*w + col }

// Alive reports whether cell n is set. Cell n lives in byte n/8 under mask
// 1<<(n%8). An out-of-range n panics.
func Alive(buf []byte, n int) bool {
	return buf[n>>3]&(1<<(uint(n)&7)) != 0
}

// SetBit sets or clears cell n.
func SetBit(buf []byte, n int, alive bool) {
	mask := byte(1) << (uint(n) & 7)
	if alive {
		buf[n>>3] |= mask
		return
	}
	buf[n>>3] &^= mask
}

// FlipBit inverts cell n.
func FlipBit(buf []byte, n int) {
	buf[n>>3] ^= 1 << (uint(n) & 7)
}

// Snapshot is a decoded boolean view of a packed buffer at one instant.
type Snapshot struct {
	W, H  int
	Cells []bool
}

// NewSnapshot allocates a snapshot for a board of the given size.
func NewSnapshot(size Size) *Snapshot {
	return &Snapshot{W: size.W, H: size.H, Cells: make([]bool, size.Cells())}
}

// Decode refreshes the snapshot from buf. The Cells slice is reused when its
// length already matches the board.
func (s *Snapshot) Decode(buf []byte) error {
	total := s.W * s.H
	if need := BufferLen(s.W, s.H); len(buf) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrBufferSize, len(buf), need)
	}
	if len(s.Cells) != total {
		s.Cells = make([]bool, total)
	}
	for n := range s.Cells {
		s.Cells[n] = Alive(buf, n)
	}
	return nil
}

// At reports the state of the cell at (row, col).
func (s *Snapshot) At(row, col int) bool {
	return s.Cells[row*s.W+col]
}

// Population counts the live cells in the snapshot.
func (s *Snapshot) Population() int {
	n := 0
	for _, alive := range s.Cells {
		if alive {
			n++
		}
	}
	return n
}

// Wrap applies toroidal wrapping to (row, col) for a board of the given size.
func Wrap(size Size, row, col int) (int, int) {
	row = (row%size.H + size.H) % size.H
	col = (col%size.W + size.W) % size.W
	return row, col
}
