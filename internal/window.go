package internal

// Window describes the portion of a source visible to a cursor. Start is the
// absolute offset mapped to logical position zero. When Bounded is set, Last
// is the absolute offset of the last visible byte (inclusive).
type Window struct {
	Start   int64
	Last    int64
	Bounded bool
}

// Absolute maps a logical position to an absolute source offset.
func (w Window) Absolute(logical int64) int64 {
	return SaturatingAdd(w.Start, logical)
}

// Logical maps an absolute source offset back to a logical position.
func (w Window) Logical(absolute int64) int64 {
	return absolute - w.Start
}

// Length returns the amount of bytes visible through the window. The second
// value is false for unbounded windows, in which case the length is unknown.
func (w Window) Length() (int64, bool) {
	if !w.Bounded {
		return 0, false
	}
	return w.Last - w.Start + 1, true
}

// Reached reports whether the absolute offset lies at or past the first byte
// after the window's upper bound.
func (w Window) Reached(absolute int64) bool {
	return w.Bounded && absolute > w.Last
}

// Clip shrinks a fetch of size bytes at the absolute offset so it never
// crosses the window's upper bound. hitBoundary is true when the returned
// size ends exactly at the bound, meaning nothing can be fetched after it.
func (w Window) Clip(absolute int64, size int) (clipped int, hitBoundary bool) {
	if !w.Bounded {
		return size, false
	}
	if absolute > w.Last {
		return 0, true
	}
	available := w.Last - absolute + 1
	if int64(size) >= available {
		return int(available), true
	}
	return size, false
}
