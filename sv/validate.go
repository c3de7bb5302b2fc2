package sv

// doValidation sets the validated and precision flags on a merged record.
//
// A record is validated when it has MinSupport distinct supporting
// detectors, or when any supporting detector is in the trusted set.  A
// record stays precise only if every contributor was precise and each
// contributor's span agrees with the consensus span within that
// contributor's own wiggle; precise sources that disagree about where the
// breakpoints are demote the merged record to imprecise.
func doValidation(iv *Interval, minSupport int, trusted map[string]bool) {
	iv.IsValidated = len(iv.Sources) >= minSupport
	if !iv.IsValidated {
		for name := range iv.Sources {
			if trusted[name] {
				iv.IsValidated = true
				break
			}
		}
	}
	if iv.IsPrecise {
		for _, p := range iv.parts {
			if absDiff(p.start, iv.Start) > p.wiggle || absDiff(p.end, iv.End) > p.wiggle {
				iv.IsPrecise = false
				break
			}
		}
	}
}

// fixPos normalizes record coordinates.  It is total and idempotent: it
// never fails, and every record it returns satisfies start <= end, with
// start < end for span types and start == end for point types.
func fixPos(iv *Interval) {
	if iv.Start < 0 {
		iv.Start = 0
	}
	if iv.Type.IsPoint() {
		// The union start is the minimum contributor breakpoint; that
		// becomes the canonical insertion position.
		iv.End = iv.Start
	} else if iv.End <= iv.Start {
		iv.End = iv.Start + 1
	}
}
