package model

// Gradient is a set of color stops placed at positions in the range 0-255.  Positions
// are expected to be in ascending order, the type does not sort or validate them
//
// The easing function is applied to the fraction of the way between the two stops that
// surround a sample, not to the overall progress
type Gradient struct {
	colors    ColorSet
	positions []uint8
	easing    func(float64) float64
}

// NewGradient creates a gradient.  When positions is nil, or does not have one entry
// per color, the stops are spread evenly with the first at 0 and the last at 255.  A nil
// easing function is linear
func NewGradient(colors ColorSet, positions []uint8, easing func(float64) float64) Gradient {
	n := colors.Len()
	pos := make([]uint8, n)
	if len(positions) == n {
		copy(pos, positions)
	} else if n > 1 {
		for i := range pos {
			pos[i] = uint8(255 * i / (n - 1))
		}
	}
	if easing == nil {
		easing = func(p float64) float64 { return p }
	}
	return Gradient{colors: colors, positions: pos, easing: easing}
}

// bracket finds the last stop at or before the effective position using an ascending
// scan, the caller has already handled positions before the first and after the last stop
func (g Gradient) bracket(effective int) (before int) {
	for i, pos := range g.positions {
		if int(pos) > effective {
			break
		}
		before = i
	}
	return before
}

// Color samples the gradient at progress, which is clamped to [0,1]
func (g Gradient) Color(progress float64) RgbaColor {
	n := g.colors.Len()
	switch n {
	case 0:
		return Black
	case 1:
		return g.colors.At(0)
	}

	progress = clamp01(progress)

	// Space before the first stop belongs to the first color and space after the last
	// stop belongs to the last color
	effective := int(progress * 255)
	if effective <= int(g.positions[0]) {
		return g.colors.At(0)
	}
	if effective >= int(g.positions[n-1]) {
		return g.colors.At(n - 1)
	}

	before := g.bracket(effective)
	after := before + 1
	if after >= n {
		return g.colors.At(before)
	}

	beforePos := float64(g.positions[before]) / 255.0
	afterPos := float64(g.positions[after]) / 255.0
	diff := afterPos - beforePos
	if diff <= 0 {
		return g.colors.At(after)
	}

	// Clamped to absorb the error introduced by the integer effective position
	partial := clamp01((progress - beforePos) / diff)

	return LinearBlendRgba(g.colors.At(before), g.colors.At(after), g.easing(partial))
}
