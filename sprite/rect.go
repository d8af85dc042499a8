package sprite

// Rect is a normalized texture-coordinate rectangle. V0 is the bottom edge
// and V1 the top edge, matching sheets that are flipped vertically on load.
type Rect struct {
	U0, V0, U1, V1 float32
}

// FrameRect returns the rectangle of frame i in a horizontal sheet of n
// frames. Frame i spans [i/n, (i+1)/n]; a flipped rect swaps U0 and U1 so
// the frame is mirrored left to right.
func FrameRect(i, n int, flipped bool) Rect {
	width := 1 / float32(n)
	left := float32(i) * width
	right := left + width

	if flipped {
		left, right = right, left
	}
	return Rect{U0: left, V0: 0, U1: right, V1: 1}
}

// Mirror returns r mirrored horizontally.
func (r Rect) Mirror() Rect {
	r.U0, r.U1 = r.U1, r.U0
	return r
}

// FrameCount returns how many frames of frameWidth pixels fit in a sheet of
// sheetWidth pixels. A sheet narrower than one frame still has one frame.
func FrameCount(sheetWidth, frameWidth int) int {
	if frameWidth <= 0 {
		return 1
	}
	return max(sheetWidth/frameWidth, 1)
}
