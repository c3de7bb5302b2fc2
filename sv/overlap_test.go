package sv

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMatchesReciprocalOverlap(t *testing.T) {
	tests := []struct {
		aStart, aEnd PosType
		bStart, bEnd PosType
		wiggle       PosType
		ratio        float64
		want         bool
	}{
		// Identical spans always match.
		{1000, 2000, 1000, 2000, 0, 1.0, true},
		// 60% reciprocal overlap at ratio 0.5.
		{1000, 2000, 1400, 2400, 0, 0.5, true},
		// Contained short interval fails the long side's ratio.
		{0, 10, 0, 100, 0, 1.0, false},
		// With ratio 1.0 and no wiggle, only bit-identical spans match.
		{0, 100, 0, 101, 0, 1.0, false},
		// Near-zero ratio merges any two touching intervals.
		{0, 100, 99, 200, 0, 1e-9, true},
		// ...but not intervals that merely abut.
		{0, 100, 100, 200, 0, 1e-9, false},
		// Ratio fails but both endpoint deltas are within the wiggle.
		{1000, 1100, 1080, 1180, 100, 0.5, true},
		// One endpoint delta beyond the wiggle is not enough.
		{1000, 1100, 1080, 1280, 100, 0.5, false},
	}
	for _, test := range tests {
		a := NewInterval("1", test.aStart, test.aEnd, DEL, "tool1", test.wiggle, false)
		b := NewInterval("1", test.bStart, test.bEnd, DEL, "tool2", test.wiggle, false)
		expect.EQ(t, matches(&a, &b, test.ratio, test.ratio), test.want,
			"a=[%d,%d) b=[%d,%d) wiggle=%d ratio=%v",
			test.aStart, test.aEnd, test.bStart, test.bEnd, test.wiggle, test.ratio)
		expect.EQ(t, matches(&b, &a, test.ratio, test.ratio), test.want, "predicate must be symmetric")
	}
}

func TestMatchesInsertion(t *testing.T) {
	ins := func(pos PosType, wiggle PosType) Interval {
		return NewInterval("1", pos, pos, INS, "tool1", wiggle, false)
	}
	a := ins(5000, 100)
	b := ins(5080, 100)
	expect.True(t, matches(&a, &b, 0.5, 0.5))

	c := ins(5150, 100)
	expect.False(t, matches(&a, &c, 0.5, 0.5))

	// The larger of the two wiggles governs.
	d := ins(5150, 200)
	expect.True(t, matches(&a, &d, 0.5, 0.5))
}

func TestOverlapsAnyAsymmetric(t *testing.T) {
	iv := NewInterval("1", 0, 100, DEL, "tool1", 0, false)
	long := NewInterval("1", 50, 5000, DEL, "tool2", 0, false)
	list := []Interval{long}

	// Ratio zero on both sides: any touching interval counts.
	expect.True(t, overlapsAny(&iv, list, 0, 0))
	// Strict reciprocal overlap: the long candidate fails its own side.
	expect.False(t, overlapsAny(&iv, list, 0.5, 0.5))
	// Asymmetric: only iv's side is held to the ratio.
	expect.True(t, overlapsAny(&iv, list, 0.5, 0))

	expect.False(t, overlapsAny(&iv, nil, 0, 0))
}
