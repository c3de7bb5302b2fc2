package svcall

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const cnvnatorTool = "CNVnator"

// CNVnatorReader parses CNVnator native call output.  Each line is
//
//	type coords size normalized_RD e-val1 e-val2 e-val3 e-val4 q0
//
// where type is "deletion" or "duplication" and coords is
// "chrom:start-end" with 1-based inclusive positions.
type CNVnatorReader struct {
	scanner *bufio.Scanner
	rec     RawRecord
	err     error
}

// NewCNVnatorReader returns a reader for CNVnator call output.
func NewCNVnatorReader(r io.Reader) *CNVnatorReader {
	return &CNVnatorReader{scanner: bufio.NewScanner(r)}
}

// Scan implements Reader.
func (r *CNVnatorReader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			r.err = errors.Errorf("cnvnator: short line %q", line)
			return false
		}
		var typ string
		switch fields[0] {
		case "deletion":
			typ = "DEL"
		case "duplication":
			typ = "DUP"
		default:
			r.err = errors.Errorf("cnvnator: unknown call type %q", fields[0])
			return false
		}
		chrom, start, end, err := parseRegion(fields[1])
		if err != nil {
			r.err = errors.Wrapf(err, "cnvnator: bad coordinates in %q", line)
			return false
		}
		r.rec = RawRecord{
			Chrom: chrom,
			Start: start - 1,
			End:   end,
			Type:  typ,
			Tool:  cnvnatorTool,
		}
		return true
	}
	r.err = r.scanner.Err()
	return false
}

// Record implements Reader.
func (r *CNVnatorReader) Record() RawRecord { return r.rec }

// Err implements Reader.
func (r *CNVnatorReader) Err() error { return r.err }

// parseRegion splits a "chrom:start-end" region string with 1-based
// inclusive coordinates.
func parseRegion(s string) (chrom string, start, end int, err error) {
	colon := strings.LastIndexByte(s, ':')
	if colon < 0 {
		return "", 0, 0, errors.Errorf("missing ':' in region %q", s)
	}
	chrom = s[:colon]
	span := s[colon+1:]
	dash := strings.IndexByte(span, '-')
	if dash < 0 {
		return "", 0, 0, errors.Errorf("missing '-' in region %q", s)
	}
	if start, err = strconv.Atoi(span[:dash]); err != nil {
		return "", 0, 0, err
	}
	if end, err = strconv.Atoi(span[dash+1:]); err != nil {
		return "", 0, 0, err
	}
	return chrom, start, end, nil
}
