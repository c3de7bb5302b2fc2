package svcall

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const pindelTool = "Pindel"

// PindelReader parses Pindel native output (the _D, _SI, _LI, _INV and _TD
// files).  Records are separated by runs of '#' characters; each record
// starts with a whitespace-separated header line of keyword groups:
//
//	idx TYPE len NT ntlen "seq" ChrID chrom BP lo hi BP_range ... Supports ...
//
// The supporting-read lines that follow a header are ignored.  Pindel is a
// split-read caller, so its breakpoints are exact and records are marked
// precise.  BP positions are 1-based; the lower breakpoint is the last
// reference base before the event.
type PindelReader struct {
	scanner *bufio.Scanner
	rec     RawRecord
	err     error
}

// NewPindelReader returns a reader for Pindel native output.
func NewPindelReader(r io.Reader) *PindelReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	return &PindelReader{scanner: scanner}
}

// pindelTypes maps Pindel's event tags to engine SV types.
var pindelTypes = map[string]string{
	"D":   "DEL",
	"SI":  "INS",
	"LI":  "INS",
	"I":   "INS",
	"INV": "INV",
	"TD":  "DUP",
}

// Scan implements Reader.
func (r *PindelReader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if !strings.Contains(line, "ChrID") {
			continue
		}
		rec, err := parsePindelHeader(line)
		if err != nil {
			r.err = err
			return false
		}
		r.rec = rec
		return true
	}
	r.err = r.scanner.Err()
	return false
}

func parsePindelHeader(line string) (RawRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return RawRecord{}, errors.Errorf("pindel: short header %q", line)
	}
	typ, ok := pindelTypes[fields[1]]
	if !ok {
		return RawRecord{}, errors.Errorf("pindel: unknown event tag %q in %q", fields[1], line)
	}
	svlen, err := strconv.Atoi(fields[2])
	if err != nil {
		return RawRecord{}, errors.Wrapf(err, "pindel: bad length in %q", line)
	}
	var chrom string
	bp := -1
	for i, f := range fields {
		switch f {
		case "ChrID":
			if i+1 < len(fields) {
				chrom = fields[i+1]
			}
		case "BP":
			if i+1 < len(fields) {
				if bp, err = strconv.Atoi(fields[i+1]); err != nil {
					return RawRecord{}, errors.Wrapf(err, "pindel: bad breakpoint in %q", line)
				}
			}
		}
	}
	if chrom == "" || bp < 0 {
		return RawRecord{}, errors.Errorf("pindel: missing ChrID or BP in %q", line)
	}
	rec := RawRecord{
		Chrom:   chrom,
		Start:   bp, // 1-based base before the event == 0-based event start
		Type:    typ,
		Tool:    pindelTool,
		Precise: true,
	}
	if rec.Type == "INS" {
		rec.End = rec.Start
		rec.InsLen = svlen
	} else {
		rec.End = rec.Start + svlen
	}
	return rec, nil
}

// Record implements Reader.
func (r *PindelReader) Record() RawRecord { return r.rec }

// Err implements Reader.
func (r *PindelReader) Err() error { return r.err }
