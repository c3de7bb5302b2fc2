package sv

import "sort"

// PosType is the coordinate type used throughout the consensus engine.
// Coordinates are 0-based, half-open.
type PosType int32

// Type identifies the kind of structural variant a call describes.  The set
// is closed; detector output with any other type tag is dropped at the
// reading boundary and never reaches the engine.
type Type int

const (
	// DEL is a deletion.
	DEL Type = iota
	// INS is an insertion.  Insertion calls are point events anchored at
	// Start; their reference span is empty after normalization.
	INS
	// DUP is a tandem or interspersed duplication.
	DUP
	// INV is an inversion.
	INV
	// ITX is an intra-chromosomal translocation.
	ITX
	// CTX is an inter-chromosomal translocation.
	CTX

	numTypes int = iota
)

var typeNames = [...]string{"DEL", "INS", "DUP", "INV", "ITX", "CTX"}

func (t Type) String() string {
	if t < 0 || int(t) >= numTypes {
		return "INVALID"
	}
	return typeNames[t]
}

// ParseType maps a detector's SV-type tag to a Type.  The second return
// value is false for tags outside the closed set.
func ParseType(tag string) (Type, bool) {
	for i, name := range typeNames {
		if tag == name {
			return Type(i), true
		}
	}
	return 0, false
}

// IsPoint reports whether calls of this type are anchored point events
// rather than reference spans.
func (t Type) IsPoint() bool { return t == INS }

// contributor records the original span of one pre-merge call.  Merged
// records keep their contributors' spans so that precision can be judged
// against what each detector actually reported, not against intermediate
// unions.
type contributor struct {
	start, end PosType
	wiggle     PosType
}

// Interval is one structural-variant call: either a single detector's call,
// or the consensus of several.  Intervals are value objects; the engine
// never mutates an input record, it builds new ones through merging.
type Interval struct {
	Chrom string
	Start PosType
	End   PosType
	Type  Type
	// Sources holds the names of the detectors supporting this call.  It is
	// never empty, and merging only ever grows it.
	Sources map[string]bool
	// Wiggle is the positional slop, in bases, tolerated when comparing this
	// call's breakpoints against another call's.
	Wiggle PosType
	// IsPrecise is true when the breakpoints are exact rather than
	// estimated.  A merged record is precise only if every contributor was.
	IsPrecise bool
	// IsValidated is set by finalization when the call has enough
	// independent support.
	IsValidated bool

	parts []contributor
}

// NewInterval returns a single-source call as produced by one detector.
func NewInterval(chrom string, start, end PosType, typ Type, source string, wiggle PosType, precise bool) Interval {
	return Interval{
		Chrom:     chrom,
		Start:     start,
		End:       end,
		Type:      typ,
		Sources:   map[string]bool{source: true},
		Wiggle:    wiggle,
		IsPrecise: precise,
		parts:     []contributor{{start: start, end: end, wiggle: wiggle}},
	}
}

// Length returns End - Start.  Point-type records report zero after
// normalization.
func (iv *Interval) Length() PosType { return iv.End - iv.Start }

// SourceNames returns the supporting detector names in sorted order.
func (iv *Interval) SourceNames() []string {
	names := make([]string, 0, len(iv.Sources))
	for name := range iv.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clone returns a deep copy of iv.  Merging starts from a clone so that
// absorption never aliases an input record's source set.
func (iv *Interval) clone() Interval {
	c := *iv
	c.Sources = make(map[string]bool, len(iv.Sources))
	for name := range iv.Sources {
		c.Sources[name] = true
	}
	c.parts = make([]contributor, len(iv.parts))
	copy(c.parts, iv.parts)
	return c
}

// compareIntervals orders calls by (Chrom, Start, End, Type).  ord may be
// nil, in which case chromosomes compare lexicographically.
func compareIntervals(a, b *Interval, ord chromOrder) int {
	if c := ord.compare(a.Chrom, b.Chrom); c != 0 {
		return c
	}
	if a.Start != b.Start {
		return int(a.Start - b.Start)
	}
	if a.End != b.End {
		return int(a.End - b.End)
	}
	return int(a.Type - b.Type)
}

// chromOrder maps chromosome name to output rank.  Chromosomes absent from
// the map (or a nil map) sort lexicographically after ranked ones.
type chromOrder map[string]int

func newChromOrder(contigs []string) chromOrder {
	if len(contigs) == 0 {
		return nil
	}
	ord := make(chromOrder, len(contigs))
	for i, name := range contigs {
		ord[name] = i
	}
	return ord
}

func (o chromOrder) compare(a, b string) int {
	ra, oka := o[a]
	rb, okb := o[b]
	switch {
	case oka && okb:
		return ra - rb
	case oka:
		return -1
	case okb:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func minPos(a, b PosType) PosType {
	if a < b {
		return a
	}
	return b
}

func maxPos(a, b PosType) PosType {
	if a > b {
		return a
	}
	return b
}

func absDiff(a, b PosType) PosType {
	if a > b {
		return a - b
	}
	return b - a
}
