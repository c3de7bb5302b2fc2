package svcall

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/svmerge/sv"
)

// vcfHeader is the fixed portion of the output VCF header.  Per-contig
// lines and the column header are appended by NewVCFWriter.
const vcfHeader = `##fileformat=VCFv4.1
##source=sv-merge
##INFO=<ID=SVTYPE,Number=1,Type=String,Description="Type of structural variant">
##INFO=<ID=END,Number=1,Type=Integer,Description="End position of the variant described in this record">
##INFO=<ID=SVLEN,Number=1,Type=Integer,Description="Difference in length between REF and ALT alleles">
##INFO=<ID=SOURCES,Number=.,Type=String,Description="Detectors contributing to this call">
##INFO=<ID=IMPRECISE,Number=0,Type=Flag,Description="Imprecise structural variation">
##INFO=<ID=PRECISE,Number=0,Type=Flag,Description="Precise structural variation">
##FILTER=<ID=LowQual,Description="Insufficient detector support">
##ALT=<ID=DEL,Description="Deletion">
##ALT=<ID=INS,Description="Insertion">
##ALT=<ID=DUP,Description="Duplication">
##ALT=<ID=INV,Description="Inversion">
##ALT=<ID=ITX,Description="Intra-chromosomal translocation">
##ALT=<ID=CTX,Description="Inter-chromosomal translocation">
`

// VCFWriter serializes merged calls as symbolic-allele VCF records.
type VCFWriter struct {
	w   *bufio.Writer
	err error
}

// NewVCFWriter returns a writer for the named sample and writes the VCF
// header.  contigs, typically read from a FASTA index, populates the
// ##contig lines and may be nil.
func NewVCFWriter(w io.Writer, sample string, contigs []*sam.Reference) *VCFWriter {
	vw := &VCFWriter{w: bufio.NewWriter(w)}
	vw.w.WriteString(vcfHeader) // nolint: errcheck
	for _, ref := range contigs {
		fmt.Fprintf(vw.w, "##contig=<ID=%s,length=%d>\n", ref.Name(), ref.Len())
	}
	fmt.Fprintf(vw.w, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\t%s\n", sample)
	return vw
}

// Write appends one merged call.
func (vw *VCFWriter) Write(iv *sv.Interval) error {
	if vw.err != nil {
		return vw.err
	}
	filter := "PASS"
	if !iv.IsValidated {
		filter = "LowQual"
	}
	var info strings.Builder
	if iv.IsPrecise {
		info.WriteString("PRECISE")
	} else {
		info.WriteString("IMPRECISE")
	}
	fmt.Fprintf(&info, ";SVTYPE=%v", iv.Type)
	fmt.Fprintf(&info, ";END=%d", iv.End)
	svlen := int(iv.Length())
	if iv.Type == sv.DEL {
		svlen = -svlen
	}
	fmt.Fprintf(&info, ";SVLEN=%d", svlen)
	fmt.Fprintf(&info, ";SOURCES=%s", strings.Join(iv.SourceNames(), ","))
	// iv.Start is the 0-based base before the event; VCF POS is the same
	// base 1-based.
	_, vw.err = fmt.Fprintf(vw.w, "%s\t%d\t.\tN\t<%v>\t.\t%s\t%s\tGT\t./.\n",
		iv.Chrom, iv.Start, iv.Type, filter, info.String())
	return vw.err
}

// Flush flushes buffered records and returns the first write error.
func (vw *VCFWriter) Flush() error {
	if vw.err != nil {
		return vw.err
	}
	return vw.w.Flush()
}

// BEDWriter serializes merged calls as BED lines of the form
//
//	chrom start end type;source1,source2 numsources
type BEDWriter struct {
	w   *bufio.Writer
	err error
}

// NewBEDWriter returns a BED writer for merged calls.
func NewBEDWriter(w io.Writer) *BEDWriter {
	return &BEDWriter{w: bufio.NewWriter(w)}
}

// Write appends one merged call.
func (bw *BEDWriter) Write(iv *sv.Interval) error {
	if bw.err != nil {
		return bw.err
	}
	sources := iv.SourceNames()
	end := iv.End
	if end == iv.Start {
		end++ // BED cannot represent an empty interval
	}
	_, bw.err = fmt.Fprintf(bw.w, "%s\t%d\t%d\t%v;%s\t%d\n",
		iv.Chrom, iv.Start, end, iv.Type, strings.Join(sources, ","), len(sources))
	return bw.err
}

// Flush flushes buffered records and returns the first write error.
func (bw *BEDWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	return bw.w.Flush()
}
