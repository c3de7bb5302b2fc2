package svcall

import (
	"strings"
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/svmerge/sv"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func testMerged() []sv.Interval {
	del := sv.NewInterval("chr1", 1000, 2000, sv.DEL, "BreakDancer", 100, false)
	del.Sources["Pindel"] = true
	del.IsValidated = true
	ins := sv.NewInterval("chr2", 5000, 5000, sv.INS, "Pindel", 100, true)
	return []sv.Interval{del, ins}
}

func TestVCFWriter(t *testing.T) {
	chr1, _ := sam.NewReference("chr1", "", "", 248956422, nil, nil)
	chr2, _ := sam.NewReference("chr2", "", "", 242193529, nil, nil)
	var buf strings.Builder
	w := NewVCFWriter(&buf, "sample1", []*sam.Reference{chr1, chr2})
	for _, iv := range testMerged() {
		assert.NoError(t, w.Write(&iv))
	}
	assert.NoError(t, w.Flush())

	out := buf.String()
	expect.True(t, strings.HasPrefix(out, "##fileformat=VCFv4.1\n"))
	assert.HasSubstr(t, out, "##contig=<ID=chr1,length=248956422>\n")
	assert.HasSubstr(t, out, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsample1\n")
	assert.HasSubstr(t, out,
		"chr1\t1000\t.\tN\t<DEL>\t.\tPASS\tIMPRECISE;SVTYPE=DEL;END=2000;SVLEN=-1000;SOURCES=BreakDancer,Pindel\tGT\t./.\n")
	assert.HasSubstr(t, out,
		"chr2\t5000\t.\tN\t<INS>\t.\tLowQual\tPRECISE;SVTYPE=INS;END=5000;SVLEN=0;SOURCES=Pindel\tGT\t./.\n")
}

func TestBEDWriter(t *testing.T) {
	var buf strings.Builder
	w := NewBEDWriter(&buf)
	for _, iv := range testMerged() {
		assert.NoError(t, w.Write(&iv))
	}
	assert.NoError(t, w.Flush())
	expect.EQ(t, buf.String(),
		"chr1\t1000\t2000\tDEL;BreakDancer,Pindel\t2\n"+
			"chr2\t5000\t5001\tINS;Pindel\t1\n")
}
