// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

import "slices"

// LiDurbin bundles the tables a read-mapping search backend works
// from: the alphabet, the suffix array, the C table shared by both
// directions, and O tables over the BWT of the text and of the
// reversed text. Backends interleave forward and backward
// backward-search steps over O and RO.
type LiDurbin struct {
	Alpha *Alphabet
	SA    []int32
	C     *CTable
	O     *OTable
	RO    *OTable
}

// LiDurbinPreprocess indexes x for approximate-search backends. The
// reverse tables are built first, from the coded text reversed in
// place; the text is then restored and the forward suffix array the
// bundle keeps is built from it.
func LiDurbinPreprocess(x []byte) (*LiDurbin, error) {
	alpha, u, err := CodeText(x)
	if err != nil {
		return nil, err
	}
	ld := &LiDurbin{Alpha: alpha}

	// Reverse everything but the sentinel, index that, and keep only
	// the tables; symbol counts are direction independent, so the C
	// table also serves the forward direction.
	reversePrefix(u)
	rsa := Sais(u, alpha)
	rbwt := Bwt(u, rsa)
	ld.C = BuildCTable(rbwt, alpha.Size())
	ld.RO = BuildOTable(rbwt, ld.C)

	reversePrefix(u)
	ld.SA = Sais(u, alpha)
	bwt := Bwt(u, ld.SA)
	ld.O = BuildOTable(bwt, ld.C)

	return ld, nil
}

// reversePrefix reverses all of u except its final sentinel.
func reversePrefix(u []int32) {
	slices.Reverse(u[:len(u)-1])
}

// Search serves exact queries from the forward tables.
func (ld *LiDurbin) Search(p []byte) Matcher {
	coded, err := ld.Alpha.Code(p)
	if err != nil {
		return emptyMatcher{}
	}
	return BwtMatcher(ld.SA, ld.C, ld.O, coded)
}
