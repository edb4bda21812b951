// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

// Matcher enumerates the positions where a pattern occurs in a text.
// Next resumes from the previous call and returns the next match, or
// -1 once the matches are exhausted; the order is algorithm specific
// but deterministic for a given input. Release frees whatever state
// the matcher holds; a released matcher must not be used again.
type Matcher interface {
	Next() int
	Release()
}

// emptyMatcher reports no matches. Searches hand it out when a pattern
// cannot occur at all, e.g. because it has bytes outside the alphabet.
type emptyMatcher struct{}

func (emptyMatcher) Next() int { return -1 }
func (emptyMatcher) Release()  {}

// naiveMatcher compares the pattern directly at every text position.
type naiveMatcher struct {
	x, p []byte
	i    int
}

// NewNaiveMatcher matches p against x position by position. Empty
// patterns match nowhere.
func NewNaiveMatcher(x, p []byte) Matcher {
	if len(p) == 0 || len(p) > len(x) {
		return emptyMatcher{}
	}
	return &naiveMatcher{x: x, p: p}
}

func (m *naiveMatcher) Next() int {
	for ; m.i <= len(m.x)-len(m.p); m.i++ {
		for j := 0; j < len(m.p); j++ {
			if m.x[m.i+j] != m.p[j] {
				break
			}
			if j == len(m.p)-1 {
				m.i++ // resume at the next position
				return m.i - 1
			}
		}
	}
	return -1
}

func (m *naiveMatcher) Release() { m.x, m.p = nil, nil }

// borderArray computes the strict border array of p: after the plain
// border pass, a border whose next pattern symbol would match again is
// replaced by the next shorter one. The final entry keeps its plain
// border, which is what a matcher falls back to after a full match.
func borderArray(p []byte) []int {
	ba := make([]int, len(p))
	for i := 1; i < len(p); i++ {
		b := ba[i-1]
		for b > 0 && p[i] != p[b] {
			b = ba[b-1]
		}
		if p[i] == p[b] {
			ba[i] = b + 1
		}
	}
	for i := 0; i+1 < len(p); i++ {
		if ba[i] > 0 && p[ba[i]] == p[i+1] {
			ba[i] = ba[ba[i]-1]
		}
	}
	return ba
}

// baMatcher scans the text once, shifting the pattern by its border
// array on mismatches.
type baMatcher struct {
	x, p []byte
	ba   []int
	i, b int
}

// NewBorderMatcher runs the border-array scan of p over x.
func NewBorderMatcher(x, p []byte) Matcher {
	if len(p) == 0 || len(p) > len(x) {
		return emptyMatcher{}
	}
	return &baMatcher{x: x, p: p, ba: borderArray(p)}
}

func (m *baMatcher) Next() int {
	b := m.b
	for i := m.i; i < len(m.x); i++ {
		for b > 0 && m.x[i] != m.p[b] {
			b = m.ba[b-1]
		}
		if m.x[i] == m.p[b] {
			b++
		} else {
			b = 0
		}
		if b == len(m.p) {
			m.i, m.b = i+1, m.ba[b-1]
			return i - len(m.p) + 1
		}
	}
	m.i, m.b = len(m.x), b
	return -1
}

func (m *baMatcher) Release() { m.x, m.p, m.ba = nil, nil, nil }

// kmpMatcher is the equivalent single-pass matcher phrased the
// Knuth-Morris-Pratt way.
type kmpMatcher struct {
	x, p []byte
	ba   []int
	i, j int
}

// NewKmpMatcher runs KMP over x.
func NewKmpMatcher(x, p []byte) Matcher {
	if len(p) == 0 || len(p) > len(x) {
		return emptyMatcher{}
	}
	return &kmpMatcher{x: x, p: p, ba: borderArray(p)}
}

func (m *kmpMatcher) Next() int {
	i, j := m.i, m.j
	for ; i < len(m.x); i++ {
		for j > 0 && m.x[i] != m.p[j] {
			j = m.ba[j-1]
		}
		if m.x[i] == m.p[j] {
			j++
			if j == len(m.p) {
				m.i, m.j = i+1, m.ba[j-1]
				return i - len(m.p) + 1
			}
		}
	}
	m.i, m.j = i, j
	return -1
}

func (m *kmpMatcher) Release() { m.x, m.p, m.ba = nil, nil, nil }
