package interval

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// PosType is GapUnion's coordinate type.
type PosType int32

const posTypeMax = math.MaxInt32

// splitTokens identifies up to the first len(tokens) whitespace-separated
// tokens on curLine, returning the number of tokens saved.  Any (group of)
// characters <= ' ' is treated as a delimiter; this is cheaper than the
// standard library string-split functions for the three-column prefix of a
// BED line.
func splitTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// searchPosType returns the index of x in a[], or the position where x
// would be inserted if x isn't in a (possibly len(a)).  It's exactly
// sort.SearchInts for PosType.
func searchPosType(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// GapUnion is a per-chromosome collection of disjoint intervals stored as
// length-2N flattened sequences: the 0-based start of interval #k is
// element [2k] and its end element [2k+1], in increasing order.  The
// flattened form reuses plain []int32 binary search and makes the
// even/odd-index parity of a search result answer containment directly.
type GapUnion struct {
	// nameMap is a chromosome-keyed map with disjoint-interval-set values.
	nameMap map[string][]PosType
	// lastChrIntervals and lastChrName cache the most recently queried
	// chromosome's interval set.
	lastChrIntervals []PosType
	lastChrName      string
}

// ContainsByName checks whether the 0-based position pos is inside the
// union on the named chromosome.
func (u *GapUnion) ContainsByName(chrName string, pos PosType) bool {
	return u.SpanOverlapsByName(chrName, pos, pos+1)
}

// SpanOverlapsByName checks whether the 0-based interval [start, end)
// intersects the union on the named chromosome.
func (u *GapUnion) SpanOverlapsByName(chrName string, start, end PosType) bool {
	if chrName != u.lastChrName {
		u.lastChrName = chrName
		u.lastChrIntervals = u.nameMap[chrName]
	}
	intervals := u.lastChrIntervals
	if intervals == nil {
		return false
	}
	// The first union endpoint > start is at idxStart.  An odd index means
	// start itself is inside an interval; an even index means the next
	// interval begins at intervals[idxStart], which intersects [start, end)
	// iff it begins before end.
	idxStart := searchPosType(intervals, start+1)
	if idxStart&1 == 1 {
		return true
	}
	return idxStart != len(intervals) && intervals[idxStart] < end
}

// NumIntervals returns the total interval count across chromosomes.
func (u *GapUnion) NumIntervals() int {
	n := 0
	for _, intervals := range u.nameMap {
		n += len(intervals) / 2
	}
	return n
}

func scanGapUnion(scanner *bufio.Scanner) (gaps GapUnion, err error) {
	gaps.nameMap = make(map[string][]PosType)

	var tokens [3][]byte
	lineIdx := 0
	prevChr := ""
	var prevStart, prevEnd PosType
	var chrIntervals []PosType
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := splitTokens(tokens[:], curLine)
		if nToken != 3 {
			if nToken == 0 {
				continue
			}
			err = fmt.Errorf("interval.scanGapUnion: line %d has fewer tokens than expected", lineIdx)
			return
		}

		var parsedStart, parsedEnd int
		if parsedStart, err = strconv.Atoi(string(tokens[1])); err != nil {
			return
		}
		if parsedEnd, err = strconv.Atoi(string(tokens[2])); err != nil {
			return
		}
		if parsedStart < 0 || parsedEnd < parsedStart || parsedEnd >= posTypeMax {
			err = fmt.Errorf("interval.scanGapUnion: invalid coordinate pair on line %d", lineIdx)
			return
		}
		start := PosType(parsedStart)
		end := PosType(parsedEnd)

		if prevChr != string(tokens[0]) {
			if prevChr != "" {
				if prevEnd != -1 {
					chrIntervals = append(chrIntervals, prevStart, prevEnd)
				}
				gaps.nameMap[prevChr] = chrIntervals
			}
			// tokens[0] aliases scanner-owned bytes; the map key needs a copy.
			prevChr = string(tokens[0])
			if _, found := gaps.nameMap[prevChr]; found {
				err = fmt.Errorf("interval.scanGapUnion: unsorted input (split chromosome %s)", prevChr)
				return
			}
			chrIntervals = nil
			if end == start {
				prevStart, prevEnd = -1, -1
			} else {
				prevStart, prevEnd = start, end
			}
			continue
		}
		if end == start {
			continue
		}
		if prevEnd == -1 {
			prevStart, prevEnd = start, end
			continue
		}
		if start > prevEnd {
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
			prevStart, prevEnd = start, end
		} else {
			if start < prevStart {
				err = fmt.Errorf("interval.scanGapUnion: unsorted input on line %d", lineIdx)
				return
			}
			// Touching or overlapping intervals merge.
			if end > prevEnd {
				prevEnd = end
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}
	if prevChr != "" {
		if prevEnd != -1 {
			chrIntervals = append(chrIntervals, prevStart, prevEnd)
		}
		gaps.nameMap[prevChr] = chrIntervals
	}
	return
}

// NewGapUnion loads the intervals from a sorted (by first coordinate)
// BED-like stream, merging touching/overlapping intervals and eliminating
// empty ones in the process.
func NewGapUnion(reader io.Reader) (gaps GapUnion, err error) {
	scanner := bufio.NewScanner(reader)
	if gaps, err = scanGapUnion(scanner); err != nil {
		return
	}
	log.Printf("gap BED loaded, %d interval(s)", gaps.NumIntervals())
	return
}

// NewGapUnionFromPath is a wrapper for NewGapUnion that takes a path,
// transparently decompressing gzipped files.
func NewGapUnionFromPath(path string) (gaps GapUnion, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return NewGapUnion(reader)
}

// Clone returns a new GapUnion which shares the interval set, but has its
// own search state, so clones can be queried concurrently.
func (u *GapUnion) Clone() GapUnion {
	return GapUnion{nameMap: u.nameMap}
}
