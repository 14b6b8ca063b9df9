package skin

// Selection is a rectangular region in surface coordinates. Only pixels
// inside it may be mutated by selection-aware tools.
type Selection struct {
	X, Y, W, H int
}

// NewSelection builds a selection from two gesture corner points, inclusive
// of both endpoints. A drag that collapses to non-positive width or height
// yields nil rather than a degenerate rectangle.
func NewSelection(startX, startY, endX, endY int) *Selection {
	x := min(startX, endX)
	y := min(startY, endY)
	w := abs(endX-startX) + 1
	h := abs(endY-startY) + 1

	sel := &Selection{X: x, Y: y, W: w, H: h}
	if !sel.Valid() {
		return nil
	}
	return sel
}

// Valid reports whether the selection has positive area.
func (s *Selection) Valid() bool {
	return s != nil && s.W > 0 && s.H > 0
}

// Contains reports whether (x, y) lies inside the selection.
func (s *Selection) Contains(x, y int) bool {
	return x >= s.X && x < s.X+s.W && y >= s.Y && y < s.Y+s.H
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
