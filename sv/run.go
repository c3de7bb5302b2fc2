package sv

import (
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// Calls maps detector name -> SV type -> that detector's filtered calls.
// The mapping is constructed once by the reading boundary and passed by
// value into Run; the engine never mutates it.
type Calls map[string]map[Type][]Interval

// Add appends one call under its detector and type.
func (c Calls) Add(tool string, iv Interval) {
	byType := c[tool]
	if byType == nil {
		byType = make(map[Type][]Interval)
		c[tool] = byType
	}
	byType[iv.Type] = append(byType[iv.Type], iv)
}

// Run executes the full consensus pipeline: the two-phase merge per SV
// type, validation and coordinate normalization, and a final ordering by
// (chromosome, start, end).  The per-type computations share no state and
// run concurrently.
//
// Run returns an error only for an invalid configuration; an empty or
// partially empty input is not an error and yields the corresponding
// subset of merged records.
func Run(calls Calls, opts Opts) ([]Interval, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	trusted := make(map[string]bool, len(opts.TrustedTools))
	for _, name := range opts.TrustedTools {
		trusted[name] = true
	}
	ord := newChromOrder(opts.Contigs)

	// Regroup by type; each type's pool is fully local to its own merge.
	byType := make(map[Type]map[string][]Interval)
	for tool, perType := range calls {
		for typ, recs := range perType {
			if byType[typ] == nil {
				byType[typ] = make(map[string][]Interval)
			}
			byType[typ][tool] = recs
		}
	}
	types := make([]Type, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	results := make([][]Interval, len(types))
	err := traverse.Each(len(types), func(i int) error {
		typ := types[i]
		merged := consensusType(byType[typ], opts.OverlapRatio)
		for j := range merged {
			doValidation(&merged[j], opts.MinSupport, trusted)
			fixPos(&merged[j])
		}
		sort.Slice(merged, func(a, b int) bool {
			return compareIntervals(&merged[a], &merged[b], ord) < 0
		})
		log.Printf("%v: %d merged call(s)", typ, len(merged))
		results[i] = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mergeOrdered(results, ord), nil
}

// mergeLeaf is one per-type sorted record list taking part in the N-way
// ordered merge.  seq breaks ties so that two leaves never compare equal;
// llrb.Tree.Insert replaces equal elements.
type mergeLeaf struct {
	recs []Interval
	pos  int
	seq  int
	ord  chromOrder
}

func (l *mergeLeaf) head() *Interval { return &l.recs[l.pos] }

// Compare orders leaves by their current head record.
func (l *mergeLeaf) Compare(c llrb.Comparable) int {
	l1 := c.(*mergeLeaf)
	if c := compareIntervals(l.head(), l1.head(), l.ord); c != 0 {
		return c
	}
	return l.seq - l1.seq
}

// mergeOrdered N-way merges the per-type sorted outputs into one list
// ordered by (chromosome, start, end).
func mergeOrdered(lists [][]Interval, ord chromOrder) []Interval {
	total := 0
	leafs := llrb.Tree{}
	for i, recs := range lists {
		total += len(recs)
		if len(recs) > 0 {
			leafs.Insert(&mergeLeaf{recs: recs, seq: i, ord: ord})
		}
	}
	out := make([]Interval, 0, total)
	for leafs.Len() > 0 {
		top := leafs.Min().(*mergeLeaf)
		leafs.DeleteMin()
		out = append(out, *top.head())
		if top.pos++; top.pos < len(top.recs) {
			leafs.Insert(top)
		}
	}
	return out
}
