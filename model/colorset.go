package model

// ColorSet is a fixed, ordered list of colors.  It is immutable once built, the
// constructor and accessors copy so that callers can never alias its storage
type ColorSet struct {
	colors []RgbaColor
}

// NewColorSet creates a ColorSet holding a copy of the supplied colors
func NewColorSet(colors ...RgbaColor) ColorSet {
	cpy := make([]RgbaColor, len(colors))
	copy(cpy, colors)
	return ColorSet{colors: cpy}
}

// Len is the number of colors in the set
func (cs ColorSet) Len() int {
	return len(cs.colors)
}

// At returns the color at index i, indices outside of the set are clamped to the
// first or last entry.  An empty set yields opaque black
func (cs ColorSet) At(i int) RgbaColor {
	if len(cs.colors) == 0 {
		return Black
	}
	if i < 0 {
		i = 0
	}
	if i >= len(cs.colors) {
		i = len(cs.colors) - 1
	}
	return cs.colors[i]
}

// Colors returns a copy of the colors in the set
func (cs ColorSet) Colors() []RgbaColor {
	cpy := make([]RgbaColor, len(cs.colors))
	copy(cpy, cs.colors)
	return cpy
}
