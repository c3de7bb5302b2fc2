package sv

import (
	"fmt"
	"sort"
)

// Opts configures the consensus engine.  The engine holds no package-level
// state; an Opts value is passed into Run and never mutated afterwards.
type Opts struct {
	// OverlapRatio is the reciprocal-overlap fraction required, in both
	// directions, for two span calls to be considered the same event.
	// Must be in (0, 1].
	OverlapRatio float64
	// Wiggle is the default breakpoint slop in bases.
	Wiggle PosType
	// InsWiggle overrides Wiggle for insertion calls; the effective
	// insertion wiggle is max(InsWiggle, Wiggle).
	InsWiggle PosType
	// MinSVLen is the minimum call length accepted at the reading boundary.
	MinSVLen PosType
	// MinSupport is the number of distinct supporting detectors required to
	// mark a merged call validated.
	MinSupport int
	// TrustedTools lists detectors considered independently reliable: their
	// calls are marked validated even without corroboration.
	TrustedTools []string
	// Contigs, when set, defines the output chromosome order.  Chromosomes
	// not listed sort lexicographically after the listed ones.
	Contigs []string
}

// DefaultOpts holds the default engine parameters.
var DefaultOpts = Opts{
	OverlapRatio: 0.5,
	Wiggle:       100,
	InsWiggle:    100,
	MinSVLen:     50,
	MinSupport:   2,
	TrustedTools: []string{"BreakSeq"},
}

// EffectiveWiggle returns the breakpoint slop to assign to a new call of
// the given type.
func (o *Opts) EffectiveWiggle(typ Type) PosType {
	if typ.IsPoint() {
		return maxPos(o.InsWiggle, o.Wiggle)
	}
	return o.Wiggle
}

// validate rejects configurations the engine must not run with.  It is
// called before any merging starts; a bad configuration is fatal rather
// than producing a partial result.
func (o *Opts) validate() error {
	if o.OverlapRatio <= 0 || o.OverlapRatio > 1 {
		return fmt.Errorf("overlap-ratio must be in (0, 1], got %v", o.OverlapRatio)
	}
	if o.Wiggle < 0 {
		return fmt.Errorf("wiggle must be non-negative, got %d", o.Wiggle)
	}
	if o.InsWiggle < 0 {
		return fmt.Errorf("inswiggle must be non-negative, got %d", o.InsWiggle)
	}
	if o.MinSVLen < 0 {
		return fmt.Errorf("minsvlen must be non-negative, got %d", o.MinSVLen)
	}
	if o.MinSupport < 1 {
		return fmt.Errorf("min-support must be at least 1, got %d", o.MinSupport)
	}
	return nil
}

// consensusType runs the two-phase merge over all calls of one SV type.
// byTool maps detector name to that detector's calls of this type.
//
// Phase 1 collapses duplicate and overlapping calls within each tool.
// Phase 2 pools the phase-1 outputs, builds an anchor clustering across
// tools, and then re-tests each pooled record's individual support against
// the anchors before trusting the grouping.  A naive transitive merge is
// vulnerable to bridging: a short call at the edge of a large one can chain
// through a third record into a single bogus cluster.  Records that only
// joined an anchor transitively re-cluster among themselves instead of
// inflating an unrelated call.
func consensusType(byTool map[string][]Interval, ratio float64) []Interval {
	tools := make([]string, 0, len(byTool))
	for tool := range byTool {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	// Phase 1: intra-tool.
	byChrom := make(map[string][]Interval)
	for _, tool := range tools {
		for _, rec := range mergePerChrom(byTool[tool], ratio) {
			byChrom[rec.Chrom] = append(byChrom[rec.Chrom], rec)
		}
	}
	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)

	// Phase 2: inter-tool, anchor based, one chromosome at a time.
	var merged []Interval
	for _, chrom := range chroms {
		pool := byChrom[chrom]
		anchors := mergeClusters(pool, ratio)
		var wellSupported, poorlySupported []Interval
		for i := range pool {
			if overlapsAny(&pool[i], anchors, ratio, ratio) {
				wellSupported = append(wellSupported, pool[i])
			} else {
				poorlySupported = append(poorlySupported, pool[i])
			}
		}
		merged = append(merged, mergeClusters(wellSupported, ratio)...)
		merged = append(merged, mergeClusters(poorlySupported, ratio)...)
	}
	return merged
}
