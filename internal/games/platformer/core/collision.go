package core

import "math"

// Touches reports whether the box at pos with the given size covers any cell
// of the given kind. The covered range is [floor(min), ceil(max)) per axis, so
// any fractional overlap registers.
func (l *Level) Touches(pos, size Vec, kind CellKind) bool {
	xStart := int(math.Floor(pos.X))
	xEnd := int(math.Ceil(pos.X + size.X))
	yStart := int(math.Floor(pos.Y))
	yEnd := int(math.Ceil(pos.Y + size.Y))

	for y := yStart; y < yEnd; y++ {
		for x := xStart; x < xEnd; x++ {
			if l.At(x, y) == kind {
				return true
			}
		}
	}
	return false
}

// Touches reports whether the actor's footprint covers a cell of the given kind.
func (w *World) Touches(a Actor, kind CellKind) bool {
	return w.level.Touches(a.Pos, a.Size, kind)
}

// Overlap reports strict AABB intersection. Boxes that only share an edge do
// not overlap.
func Overlap(a, b Actor) bool {
	return a.Pos.X < b.Pos.X+b.Size.X && b.Pos.X < a.Pos.X+a.Size.X &&
		a.Pos.Y < b.Pos.Y+b.Size.Y && b.Pos.Y < a.Pos.Y+a.Size.Y
}
