// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Command readmap maps reads against reference sequences and prints
// every exact match as a SAM line.
//
//	readmap [-algo name] [-stats] genome.fa[.gz] reads.fq[.gz]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/pbnjay/memory"

	"github.com/nekitakamenev/strindex"
	"github.com/nekitakamenev/strindex/fastx"
)

const (
	exitOK       = 0
	exitUsage    = 1
	exitResource = 2
)

var errlog = color.New(color.FgRed)

func fail(code int, format string, args ...any) {
	errlog.Fprintf(os.Stderr, "readmap: "+format+"\n", args...)
	os.Exit(code)
}

// searcher produces a matcher for one read against one reference.
type searcher func(read []byte) strindex.Matcher

// newSearcher prepares the chosen algorithm for one reference
// sequence. The index-backed algorithms pay their construction cost
// here, once, and amortise it over all reads.
func newSearcher(algo string, seq []byte) (searcher, error) {
	switch algo {
	case "naive":
		return func(p []byte) strindex.Matcher { return strindex.NewNaiveMatcher(seq, p) }, nil
	case "ba":
		return func(p []byte) strindex.Matcher { return strindex.NewBorderMatcher(seq, p) }, nil
	case "kmp":
		return func(p []byte) strindex.Matcher { return strindex.NewKmpMatcher(seq, p) }, nil
	case "st", "mccreight":
		alpha, u, err := strindex.CodeText(seq)
		if err != nil {
			return nil, err
		}
		var st *strindex.SuffixTree
		if algo == "st" {
			st = strindex.NaiveSuffixTree(alpha, u)
		} else {
			st = strindex.McCreightSuffixTree(alpha, u)
		}
		return st.Search, nil
	case "sa":
		alpha, u, err := strindex.CodeText(seq)
		if err != nil {
			return nil, err
		}
		sa := strindex.Sais(u, alpha)
		return func(p []byte) strindex.Matcher { return strindex.SaSearch(sa, u, alpha, p) }, nil
	case "bwt":
		ld, err := strindex.LiDurbinPreprocess(seq)
		if err != nil {
			return nil, err
		}
		return ld.Search, nil
	}
	return nil, fmt.Errorf("unknown algorithm %q", algo)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			errlog.Fprintf(os.Stderr, "readmap: out of resources: %v\n", r)
			os.Exit(exitResource)
		}
	}()

	algo := flag.String("algo", "kmp",
		"matching algorithm: naive, ba, kmp, st, mccreight, sa, bwt")
	stats := flag.Bool("stats", false, "report index memory use on stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: readmap [-algo name] [-stats] genome.fa[.gz] reads.fq[.gz]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(exitUsage)
	}
	switch *algo {
	case "naive", "ba", "kmp", "st", "mccreight", "sa", "bwt":
	default:
		fail(exitUsage, "unknown algorithm %q", *algo)
	}

	refs := loadReferences(flag.Arg(0))
	searchers := make([]searcher, len(refs))
	for i, ref := range refs {
		s, err := newSearcher(*algo, ref.Seq)
		if err != nil {
			fail(exitUsage, "%s: %v", ref.Name, err)
		}
		searchers[i] = s
	}

	if *stats {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		fmt.Fprintf(os.Stderr, "readmap: %d reference(s), heap %.1f MB, system memory %.1f GB\n",
			len(refs),
			float64(ms.HeapAlloc)/(1<<20),
			float64(memory.TotalMemory())/(1<<30))
	}

	mapReads(flag.Arg(1), refs, searchers)
	os.Exit(exitOK)
}

func loadReferences(path string) []fastx.Record {
	f, err := fastx.Open(path)
	if err != nil {
		fail(exitUsage, "%v", err)
	}
	defer f.Close()
	refs, err := fastx.ReadFasta(f)
	if err != nil {
		fail(exitUsage, "%s: %v", path, err)
	}
	if len(refs) == 0 {
		fail(exitUsage, "%s: no FASTA records", path)
	}
	return refs
}

func mapReads(path string, refs []fastx.Record, searchers []searcher) {
	f, err := fastx.Open(path)
	if err != nil {
		fail(exitUsage, "%v", err)
	}
	defer f.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fq := fastx.NewFastqReader(f)
	var read fastx.FastqRecord
	for fq.Next(&read) {
		if len(read.Seq) == 0 {
			continue
		}
		cigar := fmt.Sprintf("%dM", len(read.Seq))
		for i, ref := range refs {
			m := searchers[i](read.Seq)
			for pos := m.Next(); pos != -1; pos = m.Next() {
				if err := fastx.WriteSAMLine(out, read.Name, ref.Name, pos+1, cigar, read.Seq, read.Qual); err != nil {
					fail(exitResource, "writing output: %v", err)
				}
			}
			m.Release()
		}
	}
	if err := fq.Err(); err != nil {
		fail(exitUsage, "%s: %v", path, err)
	}
}
