package faidx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	refs, err := Read(strings.NewReader("chr1\t248956422\t112\t70\t71\nchr2\t242193529\t252513167\t70\t71\n"))
	require.NoError(t, err)
	require.Equal(t, 2, len(refs))
	assert.Equal(t, "chr1", refs[0].Name())
	assert.Equal(t, 248956422, refs[0].Len())
	assert.Equal(t, "chr2", refs[1].Name())
	assert.Equal(t, 242193529, refs[1].Len())
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("chr1\tnotanumber\t112\t70\t71\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid index line")
}
