// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

// Bwt builds the Burrows-Wheeler transform of the coded text x from
// its suffix array: bwt[i] is the symbol preceding suffix sa[i], with
// the sentinel wrapping around to the front.
func Bwt(x, sa []int32) []int32 {
	bwt := make([]int32, len(sa))
	for i, s := range sa {
		if s == 0 {
			bwt[i] = 0
		} else {
			bwt[i] = x[s-1]
		}
	}
	return bwt
}

// CTable holds, for each code, the number of smaller symbols in the
// text. It does not depend on the direction the text is read in.
type CTable struct {
	cumsum []int32
}

// BuildCTable counts the symbols of x (the text or equivalently its
// transform) and prefix-sums the counts.
func BuildCTable(x []int32, sigma int32) *CTable {
	c := &CTable{cumsum: make([]int32, sigma)}
	for _, a := range x {
		c.cumsum[a]++
	}
	var acc int32
	for i, k := range c.cumsum {
		c.cumsum[i] = acc
		acc += k
	}
	return c
}

// Sigma returns the alphabet size the table was built for.
func (c *CTable) Sigma() int32 { return int32(len(c.cumsum)) }

// Rank returns the number of symbols in the text smaller than a.
func (c *CTable) Rank(a int32) int32 { return c.cumsum[a] }

// OTable counts, for each code, its occurrences in every prefix of the
// BWT. Rows are laid out per code so lookups stay O(1); the all-zero
// column for the empty prefix is implicit and never stored.
type OTable struct {
	sigma, n int32
	table    []int32
}

// BuildOTable accumulates the occurrence counts over bwt.
func BuildOTable(bwt []int32, ctab *CTable) *OTable {
	sigma, n := ctab.Sigma(), int32(len(bwt))
	o := &OTable{sigma: sigma, n: n, table: make([]int32, sigma*n)}
	for a := int32(0); a < sigma; a++ {
		row := o.table[a*n : (a+1)*n]
		if bwt[0] == a {
			row[0] = 1
		}
		for i := int32(1); i < n; i++ {
			row[i] = row[i-1]
			if bwt[i] == a {
				row[i]++
			}
		}
	}
	return o
}

// Len returns the length of the transform the table was built over.
func (o *OTable) Len() int32 { return o.n }

// Rank returns the number of occurrences of a in bwt[0:i].
func (o *OTable) Rank(a, i int32) int32 {
	if i == 0 {
		return 0
	}
	return o.table[a*o.n+i-1]
}

// BwtSearch narrows [left, right) over the suffix array to the
// suffixes prefixed by p, processing the pattern backwards. The
// occurrences are sa[left:right]; left >= right means there are none.
func BwtSearch(ctab *CTable, otab *OTable, p []int32) (left, right int32) {
	left, right = 0, otab.n
	for i := len(p) - 1; i >= 0; i-- {
		a := p[i]
		left = ctab.Rank(a) + otab.Rank(a, left)
		right = ctab.Rank(a) + otab.Rank(a, right)
		if left >= right {
			break
		}
	}
	return left, right
}

// BwtMatcher serves a backward-search range through the common matcher
// contract, reporting sa[left:right] in suffix-array order.
func BwtMatcher(sa []int32, ctab *CTable, otab *OTable, p []int32) Matcher {
	left, right := BwtSearch(ctab, otab, p)
	if left >= right {
		return emptyMatcher{}
	}
	return &saMatcher{sa: sa, next: left, end: right}
}

// BwtReverse recovers the coded text from its transform by walking the
// LF-mapping backwards from the sentinel row.
func BwtReverse(bwt []int32, ctab *CTable, otab *OTable) []int32 {
	n := int32(len(bwt))
	x := make([]int32, n)
	// x[n-1] is the sentinel and already zero; row 0 is the rotation
	// that starts with it
	i := int32(0)
	for k := n - 2; k >= 0; k-- {
		a := bwt[i]
		x[k] = a
		i = ctab.Rank(a) + otab.Rank(a, i+1) - 1
	}
	return x
}
