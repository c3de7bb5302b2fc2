// Package svcall parses the native and VCF output of structural-variant
// detectors into raw interval records, filters them, and serializes merged
// calls back out as VCF or BED.  The consensus engine itself never sees a
// file format; this package is the boundary where malformed detector
// output dies.
package svcall

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/svmerge/interval"
	"github.com/grailbio/svmerge/sv"
)

// RawRecord is one structural-variant call as read from detector output,
// before filtering and conversion to an engine call.
type RawRecord struct {
	Chrom string
	// Start and End are 0-based, half-open.  Point events (insertions)
	// carry Start == End.
	Start, End int
	// Type is the detector's SV-type tag (DEL, INS, ...).
	Type string
	// Tool names the detector that produced the call.
	Tool string
	// Precise is true when the detector reports exact breakpoints.
	Precise bool
	// InsLen is the estimated inserted-sequence length for point events,
	// or zero when the detector does not report one.
	InsLen int
}

// Reader produces a sequence of raw calls from one detector output file.
// The usual loop is:
//
//	for r.Scan() {
//		rec := r.Record()
//		...
//	}
//	if err := r.Err(); err != nil { ... }
type Reader interface {
	// Scan advances to the next record, returning false at EOF or on error.
	Scan() bool
	// Record returns the current record.  It is only valid after a true
	// Scan.
	Record() RawRecord
	// Err returns the first error encountered, or nil on clean EOF.
	Err() error
}

// Load drains r into dst, applying the gap, chromosome, and minimum-length
// filters and assigning per-type wiggle defaults.  Records with unknown
// type tags or broken coordinates are dropped with a warning and never
// reach the engine.  gaps and allow may be nil, disabling the respective
// filter.  Load returns the number of records kept and dropped.
func Load(dst sv.Calls, r Reader, opts sv.Opts, gaps *interval.GapUnion, allow map[string]bool) (kept, dropped int, err error) {
	for r.Scan() {
		rec := r.Record()
		typ, ok := sv.ParseType(rec.Type)
		if !ok {
			log.Error.Printf("%s: dropping record with unknown SV type %q at %s:%d", rec.Tool, rec.Type, rec.Chrom, rec.Start)
			dropped++
			continue
		}
		if rec.Chrom == "" || rec.Start < 0 || rec.End < rec.Start {
			log.Error.Printf("%s: dropping record with invalid coordinates %s:[%d,%d)", rec.Tool, rec.Chrom, rec.Start, rec.End)
			dropped++
			continue
		}
		if allow != nil && !allow[rec.Chrom] {
			dropped++
			continue
		}
		length := rec.End - rec.Start
		if typ.IsPoint() {
			length = rec.InsLen
		}
		// Only point events with no reported length are exempt from the
		// length filter; a zero-length span call is degenerate and dropped.
		if !(typ.IsPoint() && length == 0) && length < int(opts.MinSVLen) {
			dropped++
			continue
		}
		if gaps != nil {
			gapEnd := interval.PosType(rec.End)
			if rec.End == rec.Start {
				gapEnd++
			}
			if gaps.SpanOverlapsByName(rec.Chrom, interval.PosType(rec.Start), gapEnd) {
				dropped++
				continue
			}
		}
		dst.Add(rec.Tool, sv.NewInterval(
			rec.Chrom, sv.PosType(rec.Start), sv.PosType(rec.End), typ,
			rec.Tool, opts.EffectiveWiggle(typ), rec.Precise))
		kept++
	}
	return kept, dropped, r.Err()
}
