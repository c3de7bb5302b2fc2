// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
sv-merge merges structural-variant calls from multiple detectors
(BreakDancer, CNVnator, Pindel, and arbitrary SV VCFs) into a consensus
call set, reported as VCF and/or BED.
*/

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/svmerge/encoding/faidx"
	"github.com/grailbio/svmerge/encoding/svcall"
	"github.com/grailbio/svmerge/interval"
	"github.com/grailbio/svmerge/sv"
)

// pathList collects the values of a repeatable flag.
type pathList []string

func (l *pathList) String() string { return strings.Join(*l, ",") }

func (l *pathList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

var (
	breakdancerPaths pathList
	cnvnatorPaths    pathList
	pindelPaths      pathList
	vcfSpecs         pathList

	gapsPath    = flag.String("gaps", "", "BED file of assembly gaps")
	filterGaps  = flag.Bool("filter-gaps", false, "Drop calls overlapping the -gaps regions")
	keepStd     = flag.Bool("keep-standard-contigs", false, "Restrict to chromosomes 1-22, X, Y and MT (with or without a chr prefix)")
	chromosomes = flag.String("chromosomes", "", "Comma-separated chromosome list; restricts input calls and fixes output chromosome order")
	wiggle      = flag.Int("wiggle", int(sv.DefaultOpts.Wiggle), "Maximum breakpoint slop in bases")
	insWiggle   = flag.Int("inswiggle", int(sv.DefaultOpts.InsWiggle), "Maximum insertion breakpoint slop in bases")
	minSVLen    = flag.Int("minsvlen", int(sv.DefaultOpts.MinSVLen), "Minimum length of reported variants")
	overlapR    = flag.Float64("overlap-ratio", sv.DefaultOpts.OverlapRatio, "Reciprocal overlap ratio for merging")
	minSupport  = flag.Int("min-support", sv.DefaultOpts.MinSupport, "Detectors required for a validated call")
	trusted     = flag.String("trusted-tools", strings.Join(sv.DefaultOpts.TrustedTools, ","), "Comma-separated detectors whose lone calls are still validated")
	sample      = flag.String("sample", "SAMPLE", "Sample name for the VCF header")
	outVCF      = flag.String("out-vcf", "-", "Merged VCF output path; '-' writes to stdout")
	outBED      = flag.String("out-bed", "", "Merged BED output path; empty disables BED output")
	faiPath     = flag.String("fai", "", "FASTA index providing ##contig header lines and, absent -chromosomes, the output chromosome order")
)

func init() {
	flag.Var(&breakdancerPaths, "breakdancer-native", "BreakDancer-Max output path; may be repeated")
	flag.Var(&cnvnatorPaths, "cnvnator-native", "CNVnator call output path; may be repeated")
	flag.Var(&pindelPaths, "pindel-native", "Pindel output path (_D, _SI, _INV, _TD); may be repeated")
	flag.Var(&vcfSpecs, "vcf", "SV VCF input as tool=path; may be repeated")
}

func svMergeUsage() {
	fmt.Printf("Usage: %s [OPTIONS]\n", os.Args[0])
	fmt.Printf("At least one of -breakdancer-native, -cnvnator-native, -pindel-native, -vcf is required.\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

// contigAllowList restricts input calls to the reference's contigs.
func contigAllowList(contigs []*sam.Reference) map[string]bool {
	allow := make(map[string]bool, len(contigs))
	for _, ref := range contigs {
		allow[ref.Name()] = true
	}
	return allow
}

// standardContigs returns the allowed chromosome set for
// -keep-standard-contigs, with and without a chr prefix.
func standardContigs() map[string]bool {
	allow := map[string]bool{}
	var names []string
	for i := 1; i <= 22; i++ {
		names = append(names, strconv.Itoa(i))
	}
	names = append(names, "X", "Y", "MT", "M")
	for _, name := range names {
		allow[name] = true
		allow["chr"+name] = true
	}
	return allow
}

// loadAll feeds every input file through its reader into calls.
func loadAll(calls sv.Calls, opts sv.Opts, gaps *interval.GapUnion, allow map[string]bool) error {
	type input struct {
		path string
		open func(r io.Reader) svcall.Reader
	}
	var inputs []input
	for _, path := range breakdancerPaths {
		inputs = append(inputs, input{path, func(r io.Reader) svcall.Reader { return svcall.NewBreakDancerReader(r) }})
	}
	for _, path := range cnvnatorPaths {
		inputs = append(inputs, input{path, func(r io.Reader) svcall.Reader { return svcall.NewCNVnatorReader(r) }})
	}
	for _, path := range pindelPaths {
		inputs = append(inputs, input{path, func(r io.Reader) svcall.Reader { return svcall.NewPindelReader(r) }})
	}
	for _, spec := range vcfSpecs {
		eq := strings.IndexByte(spec, '=')
		if eq <= 0 {
			return fmt.Errorf("-vcf wants tool=path, got %q", spec)
		}
		tool := spec[:eq]
		inputs = append(inputs, input{spec[eq+1:], func(r io.Reader) svcall.Reader { return svcall.NewVCFReader(r, tool) }})
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files given")
	}
	for _, in := range inputs {
		reader, closer, err := svcall.Open(in.path)
		if err != nil {
			return err
		}
		kept, dropped, err := svcall.Load(calls, in.open(reader), opts, gaps, allow)
		if cerr := closer(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %v", in.path, err)
		}
		log.Printf("%s: %d call(s) loaded, %d dropped", in.path, kept, dropped)
	}
	return nil
}

func writeOutputs(merged []sv.Interval, contigs []*sam.Reference) (err error) {
	ctx := vcontext.Background()
	if *outVCF != "" {
		w := io.Writer(os.Stdout)
		if *outVCF != "-" {
			var out file.File
			if out, err = file.Create(ctx, *outVCF); err != nil {
				return err
			}
			defer func() {
				if cerr := out.Close(ctx); cerr != nil && err == nil {
					err = cerr
				}
			}()
			w = out.Writer(ctx)
		}
		vw := svcall.NewVCFWriter(w, *sample, contigs)
		for i := range merged {
			if err = vw.Write(&merged[i]); err != nil {
				return err
			}
		}
		if err = vw.Flush(); err != nil {
			return err
		}
	}
	if *outBED != "" {
		var out file.File
		if out, err = file.Create(ctx, *outBED); err != nil {
			return err
		}
		defer func() {
			if cerr := out.Close(ctx); cerr != nil && err == nil {
				err = cerr
			}
		}()
		bw := svcall.NewBEDWriter(out.Writer(ctx))
		for i := range merged {
			if err = bw.Write(&merged[i]); err != nil {
				return err
			}
		}
		if err = bw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func run() error {
	opts := sv.Opts{
		OverlapRatio: *overlapR,
		Wiggle:       sv.PosType(*wiggle),
		InsWiggle:    sv.PosType(*insWiggle),
		MinSVLen:     sv.PosType(*minSVLen),
		MinSupport:   *minSupport,
	}
	if *trusted != "" {
		opts.TrustedTools = strings.Split(*trusted, ",")
	}
	var allow map[string]bool
	if *chromosomes != "" {
		opts.Contigs = strings.Split(*chromosomes, ",")
		allow = map[string]bool{}
		for _, name := range opts.Contigs {
			allow[name] = true
		}
	} else if *keepStd {
		allow = standardContigs()
	}

	var gaps *interval.GapUnion
	if *filterGaps {
		if *gapsPath == "" {
			return fmt.Errorf("-filter-gaps requires -gaps")
		}
		g, err := interval.NewGapUnionFromPath(*gapsPath)
		if err != nil {
			return err
		}
		gaps = &g
	}

	var contigs []*sam.Reference
	if *faiPath != "" {
		var err error
		if contigs, err = faidx.ReadFromPath(*faiPath); err != nil {
			return err
		}
		// Without -chromosomes, the .fai fixes the output chromosome order,
		// and without any explicit restriction it also becomes the
		// allow-list: calls on contigs the reference does not know are
		// dropped.
		if len(opts.Contigs) == 0 {
			for _, ref := range contigs {
				opts.Contigs = append(opts.Contigs, ref.Name())
			}
		}
		if allow == nil {
			allow = contigAllowList(contigs)
		}
	}

	calls := sv.Calls{}
	if err := loadAll(calls, opts, gaps, allow); err != nil {
		return err
	}
	merged, err := sv.Run(calls, opts)
	if err != nil {
		return err
	}
	log.Printf("%d merged call(s) total", len(merged))
	return writeOutputs(merged, contigs)
}

func main() {
	flag.Usage = svMergeUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 0 {
		log.Fatalf("Unexpected positional arguments; please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
