package svcall

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

const breakDancerTool = "BreakDancer"

// BreakDancerReader parses BreakDancer-Max native output.  Each data line
// holds two breakpoints, an SV type tag, and a size estimate:
//
//	Chr1 Pos1 Orient1 Chr2 Pos2 Orient2 Type Size Score NumReads ...
//
// Positions are 1-based.  Inter-chromosomal translocations (CTX) span two
// sequences and cannot be represented as a single interval, so they are
// skipped with a warning.
type BreakDancerReader struct {
	scanner *bufio.Scanner
	rec     RawRecord
	err     error
}

// NewBreakDancerReader returns a reader for BreakDancer-Max output.
func NewBreakDancerReader(r io.Reader) *BreakDancerReader {
	return &BreakDancerReader{scanner: bufio.NewScanner(r)}
}

// Scan implements Reader.
func (r *BreakDancerReader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 8 {
			r.err = errors.Errorf("breakdancer: short line %q", line)
			return false
		}
		chrom1, chrom2 := fields[0], fields[3]
		typ := fields[6]
		if typ == "CTX" || chrom1 != chrom2 {
			log.Printf("breakdancer: skipping inter-chromosomal call %s:%s-%s:%s", chrom1, fields[1], chrom2, fields[4])
			continue
		}
		pos1, err := strconv.Atoi(fields[1])
		if err != nil {
			r.err = errors.Wrapf(err, "breakdancer: bad Pos1 in %q", line)
			return false
		}
		pos2, err := strconv.Atoi(fields[4])
		if err != nil {
			r.err = errors.Wrapf(err, "breakdancer: bad Pos2 in %q", line)
			return false
		}
		size, err := strconv.Atoi(fields[7])
		if err != nil {
			r.err = errors.Wrapf(err, "breakdancer: bad size in %q", line)
			return false
		}
		if size < 0 {
			size = -size
		}
		rec := RawRecord{
			Chrom: chrom1,
			Tool:  breakDancerTool,
			Type:  typ,
		}
		if typ == "INS" {
			rec.Start = pos1 - 1
			rec.End = rec.Start
			rec.InsLen = size
		} else {
			rec.Start = pos1 - 1
			rec.End = pos2
		}
		r.rec = rec
		return true
	}
	r.err = r.scanner.Err()
	return false
}

// Record implements Reader.
func (r *BreakDancerReader) Record() RawRecord { return r.rec }

// Err implements Reader.
func (r *BreakDancerReader) Err() error { return r.err }
