package gmath

import "fmt"

// Box is an integer-coordinate rectangle: output geometry, scene node
// bounds, plane destination rects, and DRM mode dimensions are all
// expressed this way.
type Box struct {
	X, Y          int32
	Width, Height int32
}

// NewBox creates a Box.
func NewBox(x, y, width, height int32) Box {
	return Box{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// ContainsPoint reports whether (x, y) falls within the box.
func (b Box) ContainsPoint(x, y int32) bool {
	if b.Empty() {
		return false
	}
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Intersection returns the overlapping region of two boxes. The
// result is empty (Width/Height <= 0) when the boxes don't overlap.
func (b Box) Intersection(other Box) Box {
	x1 := max32(b.X, other.X)
	y1 := max32(b.Y, other.Y)
	x2 := min32(b.X+b.Width, other.X+other.Width)
	y2 := min32(b.Y+b.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Box{}
	}
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersects reports whether two boxes overlap.
func (b Box) Intersects(other Box) bool {
	return !b.Intersection(other).Empty()
}

// Union returns the smallest box containing both b and other. A
// Union with an empty box returns the other operand unchanged.
func (b Box) Union(other Box) Box {
	if b.Empty() {
		return other
	}
	if other.Empty() {
		return b
	}
	x1 := min32(b.X, other.X)
	y1 := min32(b.Y, other.Y)
	x2 := max32(b.X+b.Width, other.X+other.Width)
	y2 := max32(b.Y+b.Height, other.Y+other.Height)
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// ContainsBox reports whether other lies entirely within b.
func (b Box) ContainsBox(other Box) bool {
	if other.Empty() {
		return true
	}
	return other.X >= b.X && other.Y >= b.Y &&
		other.X+other.Width <= b.X+b.Width &&
		other.Y+other.Height <= b.Y+b.Height
}

// Translate returns b shifted by (dx, dy).
func (b Box) Translate(dx, dy int32) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, Width: b.Width, Height: b.Height}
}

// String returns a string representation.
func (b Box) String() string {
	return fmt.Sprintf("Box(%d, %d, %dx%d)", b.X, b.Y, b.Width, b.Height)
}

// FBox is a float-coordinate rectangle, used for a scene buffer's
// source crop into a client buffer (sub-pixel accurate after
// fractional-scale rounding).
type FBox struct {
	X, Y          float64
	Width, Height float64
}

// NewFBox creates an FBox.
func NewFBox(x, y, width, height float64) FBox {
	return FBox{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the box has no area.
func (b FBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// String returns a string representation.
func (b FBox) String() string {
	return fmt.Sprintf("FBox(%f, %f, %fx%f)", b.X, b.Y, b.Width, b.Height)
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
