package pricing

import "time"

// MinEventGap is the minimum spacing between two events at the same
// location before they are considered in conflict.
const MinEventGap = 4 * time.Hour

// Conflicts reports whether two event start instants collide: they fall
// on the same calendar day and are strictly less than MinEventGap
// apart. Exactly MinEventGap apart is not a conflict; identical
// instants are. Events on different calendar days never conflict, even
// across midnight.
func Conflicts(a, b time.Time) bool {
	if !sameDay(a, b) {
		return false
	}

	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff < MinEventGap
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
