package sv

import "sort"

// absorb folds rec into the running cluster union: span union, source-set
// union, minimum wiggle among members, AND of precision flags.
func (iv *Interval) absorb(rec *Interval) {
	iv.Start = minPos(iv.Start, rec.Start)
	iv.End = maxPos(iv.End, rec.End)
	for name := range rec.Sources {
		iv.Sources[name] = true
	}
	iv.Wiggle = minPos(iv.Wiggle, rec.Wiggle)
	iv.IsPrecise = iv.IsPrecise && rec.IsPrecise
	iv.parts = append(iv.parts, rec.parts...)
}

// mergeClusters groups same-chromosome, same-type records into connected
// components under matches and returns one merged record per component.
//
// The input is sorted by (Start, End) and folded in a single left-to-right
// sweep, keeping one open cluster whose running union span grows as records
// are absorbed.  The union carries the minimum wiggle among its members, so
// absorption only gets more conservative as a cluster grows.  Once a record
// fails to match the running union the cluster is closed for good: every
// remaining candidate starts at or after the current record, so none of
// them can overlap the closed cluster better than this one did.
func mergeClusters(recs []Interval, ratio float64) []Interval {
	if len(recs) == 0 {
		return nil
	}
	ordered := make([]*Interval, len(recs))
	for i := range recs {
		ordered[i] = &recs[i]
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].End < ordered[j].End
	})

	var merged []Interval
	open := ordered[0].clone()
	for _, rec := range ordered[1:] {
		if matches(&open, rec, ratio, ratio) {
			open.absorb(rec)
			continue
		}
		merged = append(merged, open)
		open = rec.clone()
	}
	return append(merged, open)
}

// mergePerChrom partitions records by chromosome and runs mergeClusters on
// each partition, concatenating the results in chromosome order.  The
// predicate never compares across chromosomes, so this is exactly
// mergeClusters extended to a whole-genome record list.
func mergePerChrom(recs []Interval, ratio float64) []Interval {
	byChrom := make(map[string][]Interval)
	for i := range recs {
		byChrom[recs[i].Chrom] = append(byChrom[recs[i].Chrom], recs[i])
	}
	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	var merged []Interval
	for _, chrom := range chroms {
		merged = append(merged, mergeClusters(byChrom[chrom], ratio)...)
	}
	return merged
}
