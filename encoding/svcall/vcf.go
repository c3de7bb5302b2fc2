package svcall

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// VCFReader parses structural-variant calls from VCF, either symbolic
// records (<DEL>, <DUP>, ... with SVTYPE/END/SVLEN INFO keys) or literal
// indel records whose type and length come from the REF/ALT alleles.
// Records are marked imprecise when the IMPRECISE flag is set.
type VCFReader struct {
	scanner *bufio.Scanner
	tool    string
	rec     RawRecord
	err     error
}

// NewVCFReader returns a VCF reader attributing every record to the named
// detector.
func NewVCFReader(r io.Reader, tool string) *VCFReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &VCFReader{scanner: scanner, tool: tool}
}

// Scan implements Reader.
func (r *VCFReader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, ok, err := r.parseLine(line)
		if err != nil {
			r.err = err
			return false
		}
		if !ok {
			continue
		}
		r.rec = rec
		return true
	}
	r.err = r.scanner.Err()
	return false
}

// parseLine converts one VCF data line.  Records that are neither symbolic
// SVs nor indels (e.g. SNVs) are skipped, not errors.
func (r *VCFReader) parseLine(line string) (RawRecord, bool, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return RawRecord{}, false, errors.Errorf("%s: short VCF line %q", r.tool, line)
	}
	chrom, ref := fields[0], fields[3]
	alt := fields[4]
	if comma := strings.IndexByte(alt, ','); comma >= 0 {
		alt = alt[:comma]
	}
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return RawRecord{}, false, errors.Wrapf(err, "%s: bad POS in %q", r.tool, line)
	}
	info := parseInfo(fields[7])
	_, imprecise := info["IMPRECISE"]

	rec := RawRecord{Chrom: chrom, Tool: r.tool, Precise: !imprecise}
	if typ, ok := info["SVTYPE"]; ok {
		rec.Type = typ
	} else if strings.HasPrefix(alt, "<") {
		// Symbolic allele, e.g. <DUP:TANDEM>.
		tag := strings.Trim(alt, "<>")
		if colon := strings.IndexByte(tag, ':'); colon >= 0 {
			tag = tag[:colon]
		}
		rec.Type = tag
	} else if len(ref) > len(alt) && len(alt) > 0 {
		rec.Type = "DEL"
	} else if len(alt) > len(ref) && len(ref) > 0 {
		rec.Type = "INS"
	} else {
		return RawRecord{}, false, nil // SNV or other non-SV record
	}

	// POS is the 1-based anchor base before the event in both symbolic and
	// indel representations, which equals the 0-based event start.
	rec.Start = pos
	rec.End = rec.Start
	var svlen int
	if s, ok := info["SVLEN"]; ok {
		if svlen, err = strconv.Atoi(s); err != nil {
			return RawRecord{}, false, errors.Wrapf(err, "%s: bad SVLEN in %q", r.tool, line)
		}
		if svlen < 0 {
			svlen = -svlen
		}
	} else if len(ref) > 1 || len(alt) > 1 {
		svlen = len(ref) - len(alt)
		if svlen < 0 {
			svlen = -svlen
		}
	}
	if rec.Type == "INS" {
		rec.InsLen = svlen
	} else if s, ok := info["END"]; ok {
		if rec.End, err = strconv.Atoi(s); err != nil {
			return RawRecord{}, false, errors.Wrapf(err, "%s: bad END in %q", r.tool, line)
		}
	} else if svlen > 0 {
		rec.End = rec.Start + svlen
	} else {
		return RawRecord{}, false, errors.Errorf("%s: record without END or SVLEN in %q", r.tool, line)
	}
	return rec, true, nil
}

// Record implements Reader.
func (r *VCFReader) Record() RawRecord { return r.rec }

// Err implements Reader.
func (r *VCFReader) Err() error { return r.err }

// parseInfo splits a VCF INFO column into a key-value map.  Flag keys map
// to the empty string.
func parseInfo(s string) map[string]string {
	info := map[string]string{}
	if s == "." || s == "" {
		return info
	}
	for _, kv := range strings.Split(s, ";") {
		if eq := strings.IndexByte(kv, '='); eq >= 0 {
			info[kv[:eq]] = kv[eq+1:]
		} else {
			info[kv] = ""
		}
	}
	return info
}
