package sv

// matches reports whether a and b describe the same event.  Callers must
// already have partitioned records by chromosome and type; this predicate
// only judges positions.
//
// Point types compare anchor positions under the larger of the two wiggles.
// Span types match when the overlap is reciprocal (at least ratioA of a's
// length and ratioB of b's), or when both endpoint deltas fall within the
// larger wiggle.  Reciprocal overlap alone penalizes very short calls, and
// wiggle alone is too loose for very large ones; the disjunction covers
// both regimes.
func matches(a, b *Interval, ratioA, ratioB float64) bool {
	if a.Type.IsPoint() {
		return absDiff(a.Start, b.Start) <= maxPos(a.Wiggle, b.Wiggle)
	}
	if overlap := minPos(a.End, b.End) - maxPos(a.Start, b.Start); overlap > 0 {
		if float64(overlap) >= ratioA*float64(a.Length()) &&
			float64(overlap) >= ratioB*float64(b.Length()) {
			return true
		}
	}
	wiggle := maxPos(a.Wiggle, b.Wiggle)
	return absDiff(a.Start, b.Start) <= wiggle && absDiff(a.End, b.End) <= wiggle
}

// overlapsAny reports whether iv matches any member of list.  ratioSelf
// applies to iv's own length and ratioOther to the candidate's, so callers
// can be asymmetric: ratioSelf == ratioOther == 0 means any touching
// interval counts, stricter ratios drive merge decisions.
func overlapsAny(iv *Interval, list []Interval, ratioSelf, ratioOther float64) bool {
	for i := range list {
		if matches(iv, &list[i], ratioSelf, ratioOther) {
			return true
		}
	}
	return false
}
