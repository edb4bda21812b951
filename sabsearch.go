// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

import "sort"

// saMatcher walks a block of the suffix array, reporting the suffixes
// in lexicographic order. It backs both the binary-search matcher and
// backward search.
type saMatcher struct {
	sa        []int32
	next, end int32
}

func (m *saMatcher) Next() int {
	if m.next >= m.end {
		return -1
	}
	i := m.sa[m.next]
	m.next++
	return int(i)
}

func (m *saMatcher) Release() {
	m.sa = nil
	m.next, m.end = 0, 0
}

// lowerBound finds the first index in sa[lo:hi] whose suffix carries a
// symbol >= a at the given offset. Offsets past a suffix end read as
// the sentinel.
func lowerBound(x, sa []int32, lo, hi, offset, a int32) int32 {
	return lo + int32(sort.Search(int(hi-lo), func(k int) bool {
		return safeIdx(x, sa[lo+int32(k)]+offset) >= a
	}))
}

// SaBsearch narrows a suffix-array block over the coded pattern p one
// symbol at a time and returns the surviving block as a matcher.
func SaBsearch(sa, x, p []int32) Matcher {
	m := &saMatcher{sa: sa, next: 0, end: int32(len(sa))}
	for offset, a := range p {
		m.next = lowerBound(x, sa, m.next, m.end, int32(offset), a)
		m.end = lowerBound(x, sa, m.next, m.end, int32(offset), a+1)
		if m.next == m.end {
			break
		}
	}
	return m
}

// SaSearch maps a raw byte pattern through alpha and narrows the
// suffix array over it; unmappable patterns match nowhere.
func SaSearch(sa, x []int32, alpha *Alphabet, p []byte) Matcher {
	coded, err := alpha.Code(p)
	if err != nil {
		return emptyMatcher{}
	}
	return SaBsearch(sa, x, coded)
}
