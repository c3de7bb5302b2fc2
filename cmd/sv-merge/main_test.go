package main

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil/expect"
)

func TestContigAllowList(t *testing.T) {
	chr1, _ := sam.NewReference("chr1", "", "", 248956422, nil, nil)
	chrM, _ := sam.NewReference("chrM", "", "", 16569, nil, nil)
	allow := contigAllowList([]*sam.Reference{chr1, chrM})
	expect.True(t, allow["chr1"])
	expect.True(t, allow["chrM"])
	expect.False(t, allow["chrUn_gl000220"])
	expect.EQ(t, len(allow), 2)
}

func TestStandardContigs(t *testing.T) {
	allow := standardContigs()
	for _, name := range []string{"1", "22", "X", "Y", "MT", "chr1", "chrX", "chrM"} {
		expect.True(t, allow[name], "%s must be allowed", name)
	}
	expect.False(t, allow["chrUn_gl000220"])
	expect.False(t, allow["GL000192.1"])
}
