// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package fastx reads the FASTA and FASTQ flat files a read mapper
// consumes and writes SAM lines for the matches it produces.
package fastx

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// Record is a named sequence from a FASTA file.
type Record struct {
	Name string
	Seq  []byte
}

// maxLineSize bounds a single input line; chromosome-sized sequences
// are usually wrapped, but single-line FASTA exists in the wild.
const maxLineSize = 64 * 1024 * 1024

// ReadFasta parses every record from r. A header line starts with '>'
// and names the record up to the newline; sequence data may span any
// number of lines and has its surrounding whitespace folded away.
func ReadFasta(r io.Reader) ([]Record, error) {
	var recs []Record
	cur := -1
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			recs = append(recs, Record{Name: strings.TrimSpace(string(line[1:]))})
			cur = len(recs) - 1
			continue
		}
		if cur < 0 {
			return nil, errors.New("fastx: sequence data before the first FASTA header")
		}
		recs[cur].Seq = append(recs[cur].Seq, line...)
	}
	return recs, sc.Err()
}

// FastqRecord is one read: its name, sequence, and quality string when
// the input carries one.
type FastqRecord struct {
	Name string
	Seq  []byte
	Qual []byte
}

// FastqReader iterates over reads. Both the bare two-line name/sequence
// form and the four-line form with a '+' separator and quality line are
// accepted.
type FastqReader struct {
	sc      *bufio.Scanner
	pending string
	hasPend bool
}

// NewFastqReader wraps r for record-at-a-time reading.
func NewFastqReader(r io.Reader) *FastqReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &FastqReader{sc: sc}
}

func (fq *FastqReader) line() (string, bool) {
	if fq.hasPend {
		fq.hasPend = false
		return fq.pending, true
	}
	if fq.sc.Scan() {
		return fq.sc.Text(), true
	}
	return "", false
}

func (fq *FastqReader) unline(s string) {
	fq.pending, fq.hasPend = s, true
}

// Next fills rec with the next read and reports whether there was one.
func (fq *FastqReader) Next(rec *FastqRecord) bool {
	name, ok := fq.line()
	for ok && strings.TrimSpace(name) == "" {
		name, ok = fq.line()
	}
	if !ok {
		return false
	}
	seq, ok := fq.line()
	if !ok {
		return false
	}

	rec.Name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	rec.Seq = []byte(strings.TrimSpace(seq))
	rec.Qual = nil

	if sep, ok := fq.line(); ok {
		if strings.HasPrefix(sep, "+") {
			if qual, ok := fq.line(); ok {
				rec.Qual = []byte(strings.TrimSpace(qual))
			}
		} else {
			fq.unline(sep)
		}
	}
	return true
}

// Err reports the first error the underlying reader hit, if any.
func (fq *FastqReader) Err() error { return fq.sc.Err() }

// WriteSAMLine writes one unpaired forward-strand alignment line:
// qname, flag 0, rname, 1-based position, MAPQ 0, the cigar, and the
// read's sequence and quality ("*" when the read carried none).
func WriteSAMLine(w io.Writer, qname, rname string, pos int, cigar string, seq, qual []byte) error {
	q := "*"
	if len(qual) > 0 {
		q = string(qual)
	}
	_, err := fmt.Fprintf(w, "%s\t0\t%s\t%d\t0\t%s\t*\t0\t0\t%s\t%s\n",
		qname, rname, pos, cigar, seq, q)
	return err
}

// Open opens path for reading, transparently decompressing gzipped
// input by extension. Closing the returned reader closes both layers.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzFile{zr: zr, f: f}, nil
}

type gzFile struct {
	zr *pgzip.Reader
	f  *os.File
}

func (g *gzFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
