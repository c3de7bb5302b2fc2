package sv

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestDoValidationSupport(t *testing.T) {
	trusted := map[string]bool{"BreakSeq": true}

	two := mergeClusters([]Interval{
		del("1", 1000, 2000, "tool1", 100),
		del("1", 1000, 2000, "tool2", 100),
	}, 0.5)[0]
	doValidation(&two, 2, trusted)
	expect.True(t, two.IsValidated)

	one := del("1", 1000, 2000, "tool1", 100)
	doValidation(&one, 2, trusted)
	expect.False(t, one.IsValidated)

	// A trusted detector validates alone.
	solo := NewInterval("1", 1000, 2000, DEL, "BreakSeq", 100, true)
	doValidation(&solo, 2, trusted)
	expect.True(t, solo.IsValidated)

	// MinSupport 1 validates everything.
	doValidation(&one, 1, nil)
	expect.True(t, one.IsValidated)
}

func TestDoValidationPrecision(t *testing.T) {
	// Precise contributors agreeing within their wiggles stay precise.
	agree := mergeClusters([]Interval{
		NewInterval("1", 1000, 2000, DEL, "tool1", 100, true),
		NewInterval("1", 1050, 2050, DEL, "tool2", 100, true),
	}, 0.5)[0]
	doValidation(&agree, 2, nil)
	expect.True(t, agree.IsPrecise)

	// Precise contributors that disagree beyond their wiggles demote the
	// merged record to imprecise.
	disagree := mergeClusters([]Interval{
		NewInterval("1", 1000, 2000, DEL, "tool1", 10, true),
		NewInterval("1", 1500, 2500, DEL, "tool2", 10, true),
	}, 0.5)[0]
	expect.EQ(t, disagree.End, PosType(2500))
	doValidation(&disagree, 2, nil)
	expect.False(t, disagree.IsPrecise)
}

func TestFixPos(t *testing.T) {
	neg := del("1", 0, 100, "tool1", 100)
	neg.Start = -50
	fixPos(&neg)
	expect.EQ(t, neg.Start, PosType(0))
	expect.EQ(t, neg.End, PosType(100))

	// Point types collapse to the minimum contributor position.
	ins := mergeClusters([]Interval{
		NewInterval("1", 5000, 5000, INS, "tool1", 100, false),
		NewInterval("1", 5080, 5080, INS, "tool2", 100, false),
	}, 0.5)[0]
	expect.EQ(t, ins.End, PosType(5080))
	fixPos(&ins)
	expect.EQ(t, ins.Start, PosType(5000))
	expect.EQ(t, ins.End, PosType(5000))

	// Span types get a minimum length of 1.
	empty := del("1", 300, 300, "tool1", 100)
	fixPos(&empty)
	expect.EQ(t, empty.Start, PosType(300))
	expect.EQ(t, empty.End, PosType(301))

	// fixPos is idempotent on everything it produces.
	for _, iv := range []Interval{neg, ins, empty} {
		again := iv
		fixPos(&again)
		expect.EQ(t, again.Start, iv.Start)
		expect.EQ(t, again.End, iv.End)
	}
}
