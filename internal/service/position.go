package service

// ClampPosition resolves a requested 1-based slot into [1, upper].
// No request means the last slot; anything below 1 means the first.
func ClampPosition(requested *int, upper int) int {
	if requested == nil {
		return upper
	}
	switch p := *requested; {
	case p < 1:
		return 1
	case p > upper:
		return upper
	default:
		return p
	}
}

// resolveColumnPosition picks the insertion slot for a new column given the
// next free slot of its board. Requests past the end land at the end.
func resolveColumnPosition(requested *int, next int) int {
	if requested == nil || *requested <= 0 {
		return next
	}
	return ClampPosition(requested, next)
}
