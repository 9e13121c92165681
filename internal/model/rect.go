package model

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Rect is a screen rectangle in Android pixels.
type Rect struct {
	X      int `yaml:"x" json:"x"`
	Y      int `yaml:"y" json:"y"`
	Width  int `yaml:"w" json:"w"`
	Height int `yaml:"h" json:"h"`
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Intersects reports whether r and o share any area. Empty rectangles never
// intersect anything.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Union returns the smallest rectangle containing both r and o. An empty
// operand contributes nothing.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Contains reports whether o lies entirely inside r. Every rectangle contains
// the empty rectangle.
func (r Rect) Contains(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return r.X <= o.X && r.Y <= o.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Array returns the rectangle as [x, y, width, height].
func (r Rect) Array() [4]int {
	return [4]int{r.X, r.Y, r.Width, r.Height}
}

// RectFromArray is the inverse of Array.
func RectFromArray(b [4]int) Rect {
	return Rect{X: b[0], Y: b[1], Width: b[2], Height: b[3]}
}

// ParseRect parses a "x,y,w,h" string into a Rect.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, errors.Newf("invalid rect %q: expected x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, errors.Wrapf(err, "invalid rect %q", s)
		}
		vals[i] = v
	}
	return RectFromArray(vals), nil
}
