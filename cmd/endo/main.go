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
endo runs the DNA-to-RNA rewriter and the RNA-to-PNG renderer described by
the ICFP 2007 Endo challenge.
*/

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/endo/dna"
	"github.com/grailbio/endo/rna"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var (
	prefix        = flag.String("prefix", "", "Extra bases prepended to the input DNA before rewriting (spec's prefix_bases)")
	check         = flag.Bool("check", false, "Run Sequence.CheckInvariants after every rewrite iteration; expensive, for debugging")
	printChecksum = flag.Bool("print-checksum", false, "Print a checksum of the output alongside writing it")
	logEvery      = flag.Int("log-every", 0, "Log rewrite-loop progress every N iterations; 0 disables")
)

func endoUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s execute <in-dna-file> <out-rna-file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s build <in-rna-file> <out-png-file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = endoUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() < 1 {
		log.Fatalf("missing subcommand; want 'execute' or 'build'")
	}
	ctx := vcontext.Background()
	sub := flag.Arg(0)
	args := flag.Args()[1:]
	if len(args) != 2 {
		log.Fatalf("%s: want exactly 2 positional arguments, got %d: %s", sub, len(args), strings.Join(args, " "))
	}
	var err error
	switch sub {
	case "execute":
		err = runExecute(ctx, args[0], args[1])
	case "build":
		err = runBuild(ctx, args[0], args[1])
	default:
		log.Fatalf("unknown subcommand %q; want 'execute' or 'build'", sub)
	}
	if err != nil {
		log.Panicf("%s: %v", sub, err)
	}
}

func openInput(ctx context.Context, path string) ([]byte, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer file.CloseAndReport(ctx, f, &err)
	r := f.Reader(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "opening gzip stream %s", path)
		}
		defer gz.Close()
		r = gz
	}
	return ioutil.ReadAll(r)
}

func createOutput(ctx context.Context, path string) (file.File, io.Writer, func() error, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "creating %s", path)
	}
	w := f.Writer(ctx)
	closeFn := func() error { return f.Close(ctx) }
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(w)
		inner := closeFn
		closeFn = func() error {
			if err := gz.Close(); err != nil {
				return err
			}
			return inner()
		}
		w = gz
	}
	return f, w, closeFn, nil
}

func runExecute(ctx context.Context, inPath, outPath string) error {
	dnaBytes, err := openInput(ctx, inPath)
	if err != nil {
		return err
	}
	prefixBases, err := dna.Parse([]byte(*prefix))
	if err != nil {
		return errors.Wrap(err, "parsing -prefix")
	}
	var opts []dna.Opt
	if *check {
		opts = append(opts, dna.WithCheckInvariants())
	}
	if *logEvery > 0 {
		opts = append(opts, dna.WithLogEvery(*logEvery))
	}
	rnaBytes, err := dna.Execute(prefixBases, dnaBytes, opts...)
	if err != nil {
		return errors.Wrap(err, "running rewrite loop")
	}
	_, w, closeFn, err := createOutput(ctx, outPath)
	if err != nil {
		return err
	}
	if _, err := w.Write(rnaBytes); err != nil {
		closeFn()
		return errors.Wrapf(err, "writing %s", outPath)
	}
	if err := closeFn(); err != nil {
		return errors.Wrapf(err, "closing %s", outPath)
	}
	if *printChecksum {
		h := seahash.New()
		h.Write(rnaBytes)
		fmt.Printf("rna checksum: %x\n", h.Sum64())
	}
	log.Printf("execute: wrote %d RNA bases to %s", len(rnaBytes), outPath)
	return nil
}

func runBuild(ctx context.Context, inPath, outPath string) error {
	rnaBytes, err := openInput(ctx, inPath)
	if err != nil {
		return err
	}
	bmp, err := rna.Build(rnaBytes)
	if err != nil {
		return errors.Wrap(err, "rendering RNA stream")
	}
	_, w, closeFn, err := createOutput(ctx, outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(w, bmp.ToImage()); err != nil {
		closeFn()
		return errors.Wrapf(err, "encoding PNG to %s", outPath)
	}
	if err := closeFn(); err != nil {
		return errors.Wrapf(err, "closing %s", outPath)
	}
	if *printChecksum {
		fmt.Printf("bitmap checksum: %x\n", bmp.Checksum())
	}
	log.Printf("build: wrote %s", outPath)
	return nil
}
