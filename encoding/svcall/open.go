package svcall

import (
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	gzip "github.com/klauspost/compress/gzip"
)

// Open opens a detector output file, transparently decompressing gzip, and
// returns a reader together with a function that releases the underlying
// file.
func Open(path string) (io.Reader, func() error, error) {
	ctx := vcontext.Background()
	infile, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error { return infile.Close(ctx) }
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			closer() // nolint: errcheck
			return nil, nil, err
		}
	}
	return reader, closer, nil
}
