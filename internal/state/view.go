package state

// View is the scroll position over a Buffer. Scroll is the index of the
// first visible row; HScroll is the horizontal offset applied to plain lines.
type View struct {
	Scroll  int
	HScroll int
}

// MaxScroll returns the largest valid Scroll for a buffer of length entries
// shown in rows visible rows.
func MaxScroll(length, rows int) int {
	if rows < 0 {
		rows = 0
	}
	if length <= rows {
		return 0
	}
	return length - rows
}

// AtTail reports whether the view shows the newest content.
func (v View) AtTail(length, rows int) bool {
	return v.Scroll == MaxScroll(length, rows)
}

// Clamp pulls Scroll into [0, MaxScroll] and HScroll to at least 0.
func (v *View) Clamp(length, rows int) {
	if limit := MaxScroll(length, rows); v.Scroll > limit {
		v.Scroll = limit
	}
	if v.Scroll < 0 {
		v.Scroll = 0
	}
	if v.HScroll < 0 {
		v.HScroll = 0
	}
}
