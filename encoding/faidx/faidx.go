// Package faidx reads FASTA index (.fai) files, exposing the reference
// sequences as SAM references.  See http://www.htslib.org/doc/faidx.html
// for the format.  Only the name and length columns are consumed; the
// byte offsets that serve random access into the FASTA are ignored.
package faidx

import (
	"bufio"
	"io"
	"regexp"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
)

var indexRegExp = regexp.MustCompile(`(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)`)

// Read parses a .fai index, returning the references in file order.
func Read(index io.Reader) ([]*sam.Reference, error) {
	var refs []*sam.Reference
	scanner := bufio.NewScanner(index)
	for scanner.Scan() {
		matches := indexRegExp.FindStringSubmatch(scanner.Text())
		if len(matches) != 6 {
			return nil, errors.Errorf("invalid index line: %s", scanner.Text())
		}
		length, err := strconv.Atoi(matches[2])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid sequence length in index line: %s", scanner.Text())
		}
		ref, err := sam.NewReference(matches[1], "", "", length, nil, nil)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

// ReadFromPath parses the .fai index at the given path.
func ReadFromPath(path string) (refs []*sam.Reference, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Read(infile.Reader(ctx))
}
