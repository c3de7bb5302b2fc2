package sv

import (
	"sort"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func consensusRender(byTool map[string][]Interval, ratio float64) []string {
	lines := renderAll(consensusType(byTool, ratio))
	sort.Strings(lines)
	return lines
}

func TestConsensusIntraToolCollapse(t *testing.T) {
	byTool := map[string][]Interval{
		"tool1": {
			del("1", 100, 200, "tool1", 100),
			del("1", 150, 250, "tool1", 100),
		},
		"tool2": {
			del("1", 120, 230, "tool2", 100),
		},
	}
	expect.EQ(t, consensusRender(byTool, 0.5), []string{
		"1:100-250 DEL src=tool1,tool2 precise=false validated=false",
	})
}

// TestConsensusBridging is the bridging regression: a short call at the
// edge of a long one must never drag an unrelated call into the cluster.
// C has no overlap with either A or B and stays its own record.
//
// A and B staying separate is deliberate, not incidental: overlap must be
// reciprocal, clearing the ratio against BOTH lengths.  Their 100-base
// overlap is half of B but only 1% of A, so a rule that merged them would
// have to accept a one-sided ratio, and a one-sided ratio is exactly what
// lets a short edge call bridge into a long one.  See the bridging notes
// in DESIGN.md.
func TestConsensusBridging(t *testing.T) {
	byTool := map[string][]Interval{
		"tool1": {del("1", 1000, 11000, "tool1", 100)},
		"tool2": {
			del("1", 10900, 11100, "tool2", 100),
			del("1", 1, 100, "tool2", 100),
		},
	}
	expect.EQ(t, consensusRender(byTool, 0.5), []string{
		"1:1-100 DEL src=tool2 precise=false validated=false",
		"1:1000-11000 DEL src=tool1 precise=false validated=false",
		"1:10900-11100 DEL src=tool2 precise=false validated=false",
	})
}

// TestConsensusAntiBridging exercises the phase-2 partition.  With wiggle
// 200, r3 chains onto the r1/r2 cluster through the running union even
// though r1 and r3 never touch.  The anchor re-test notices that r1 no
// longer reciprocally supports the inflated anchor and re-isolates it.
func TestConsensusAntiBridging(t *testing.T) {
	r1 := del("1", 1000, 1100, "tool1", 200)
	r2 := del("1", 1050, 1150, "tool2", 200)
	r3 := del("1", 1150, 1350, "tool3", 200)
	byTool := map[string][]Interval{
		"tool1": {r1},
		"tool2": {r2},
		"tool3": {r3},
	}

	// The naive transitive clustering alone produces one bogus record.
	naive := mergeClusters([]Interval{r1, r2, r3}, 0.5)
	expect.EQ(t, renderAll(naive), []string{
		"1:1000-1350 DEL src=tool1,tool2,tool3 precise=false validated=false",
	})

	expect.EQ(t, consensusRender(byTool, 0.5), []string{
		"1:1000-1100 DEL src=tool1 precise=false validated=false",
		"1:1050-1350 DEL src=tool2,tool3 precise=false validated=false",
	})
}

func TestConsensusSeparateChromosomes(t *testing.T) {
	byTool := map[string][]Interval{
		"tool1": {del("1", 1000, 2000, "tool1", 100)},
		"tool2": {del("2", 1000, 2000, "tool2", 100)},
	}
	expect.EQ(t, consensusRender(byTool, 0.5), []string{
		"1:1000-2000 DEL src=tool1 precise=false validated=false",
		"2:1000-2000 DEL src=tool2 precise=false validated=false",
	})
}

func TestConsensusEmpty(t *testing.T) {
	expect.EQ(t, len(consensusType(nil, 0.5)), 0)
	expect.EQ(t, len(consensusType(map[string][]Interval{"tool1": nil}, 0.5)), 0)
}
