package coord

import (
	"errors"
	"fmt"
)

var ErrInvalidBounds = errors.New("lotmap: invalid bounds")

// Bounds is an inclusive rectangular filter over cell coordinates.
type Bounds struct {
	MinX int
	MaxX int
	MinY int
	MaxY int
}

// NewBounds builds an inclusive cell-coordinate rectangle. Both minima
// must not exceed the corresponding maxima.
func NewBounds(minX, maxX, minY, maxY int) (*Bounds, error) {
	if minX > maxX || minY > maxY {
		return nil, fmt.Errorf("%w: min (%d,%d) exceeds max (%d,%d)", ErrInvalidBounds, minX, minY, maxX, maxY)
	}
	return &Bounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}, nil
}

// Contains reports whether the cell falls within the bounds. A nil
// Bounds contains every cell.
func (b *Bounds) Contains(c Cell) bool {
	if b == nil {
		return true
	}
	return c.X >= b.MinX && c.X <= b.MaxX &&
		c.Y >= b.MinY && c.Y <= b.MaxY
}
