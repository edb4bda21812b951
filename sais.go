// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

// Sais constructs the suffix array of the sentinel-terminated coded
// text x by induced sorting: classify positions S or L, place the LMS
// positions at the tails of their buckets, induce the L and S order
// from them, and recurse on the string of LMS-substring names when
// those are not all distinct.
func Sais(x []int32, alpha *Alphabet) []int32 {
	sa := make([]int32, len(x))
	if len(x) <= 1 {
		return sa
	}
	isS := NewBitVector(int32(len(x)))
	saisRec(sa, x, isS, alpha.Size())
	return sa
}

// saUndef marks suffix-array slots not filled in yet.
const saUndef = -1

// classifySL fills isS with the S/L classification: the sentinel is S,
// and position i is S when x[i] < x[i+1] or they are equal and i+1 is S.
func classifySL(x []int32, isS *BitVector) {
	n := int32(len(x))
	if n == 0 {
		return
	}
	isS.Set(n-1, true)
	for i := n - 1; i > 0; i-- {
		isS.Set(i-1, x[i-1] < x[i] || (x[i-1] == x[i] && isS.Get(i)))
	}
}

// isLMS reports whether i is an S position with an L predecessor.
func isLMS(isS *BitVector, i int32) bool {
	return i != 0 && isS.Get(i) && !isS.Get(i-1)
}

func countBuckets(x, buckets []int32) {
	clear(buckets)
	for _, c := range x {
		buckets[c]++
	}
}

func bucketsStart(buckets, ptr []int32) {
	var sum int32
	for i, n := range buckets {
		ptr[i] = sum
		sum += n
	}
}

func bucketsEnd(buckets, ptr []int32) {
	var sum int32
	for i, n := range buckets {
		sum += n
		ptr[i] = sum
	}
}

func undefine(sa []int32) {
	for i := range sa {
		sa[i] = saUndef
	}
}

// bucketLMS places the LMS positions at the current tails of their
// buckets, scanning the text backwards.
func bucketLMS(x, sa []int32, isS *BitVector, ends []int32) {
	for i := int32(len(x)) - 1; i >= 0; i-- {
		if isLMS(isS, i) {
			c := x[i]
			ends[c]--
			sa[ends[c]] = i
		}
	}
}

// induceFrontL walks sa front to back and drops the L-type predecessor
// of every placed suffix at the head of its bucket.
func induceFrontL(x, sa []int32, isS *BitVector, start []int32) {
	for i := 0; i < len(sa); i++ {
		if sa[i] <= 0 {
			continue // undefined, or position 0 has no predecessor
		}
		j := sa[i] - 1
		if !isS.Get(j) {
			sa[start[x[j]]] = j
			start[x[j]]++
		}
	}
}

// induceBackS walks sa back to front and drops the S-type predecessor
// of every placed suffix at the tail of its bucket.
func induceBackS(x, sa []int32, isS *BitVector, end []int32) {
	for i := int32(len(x)) - 1; i > 0; i-- {
		if sa[i] <= 0 {
			continue
		}
		j := sa[i] - 1
		if isS.Get(j) {
			end[x[j]]--
			sa[end[x[j]]] = j
		}
	}
}

// equalLMSStrings compares the LMS substrings starting at i and j,
// symbol for symbol up to and including the next LMS boundary.
func equalLMSStrings(x []int32, isS *BitVector, i, j int32) bool {
	if i == j {
		return true
	}
	n := int32(len(x))
	if i == n-1 || j == n-1 {
		// the sentinel substring equals nothing but itself
		return false
	}
	for k := int32(0); ; k++ {
		iLMS, jLMS := isLMS(isS, i+k), isLMS(isS, j+k)
		if k > 0 && iLMS && jLMS {
			return true
		}
		if iLMS != jLMS || x[i+k] != x[j+k] {
			return false
		}
	}
}

// reduceLMS compacts the LMS positions, in their induced order, to the
// front of sa and names their substrings in the tail; equal substrings
// share a name. It returns the front (working memory for the
// recursion), the reduced string (living in the tail of sa), and the
// reduced alphabet size.
func reduceLMS(x, sa []int32, isS *BitVector) (saU, u []int32, sigma int32) {
	k := 0
	for _, j := range sa {
		if j > 0 && isLMS(isS, j) {
			sa[k] = j
			k++
		}
	}
	compact, buffer := sa[:k], sa[k:]
	undefine(buffer)

	// Two LMS positions are never adjacent, so naming at index j/2
	// fits the table in the remaining space.
	var name int32
	prev := compact[0]
	buffer[prev/2] = name
	for _, j := range compact[1:] {
		if !equalLMSStrings(x, isS, prev, j) {
			name++
		}
		buffer[j/2] = name
		prev = j
	}
	sigma = name + 1

	m := 0
	for _, v := range buffer {
		if v >= 0 {
			buffer[m] = v
			m++
		}
	}
	return compact, buffer[:m], sigma
}

// expandLMS puts the LMS positions back into sa in the order the
// recursion decided, then buckets them into their final slots. offsets
// is scratch space with room for every LMS position.
func expandLMS(x, sa []int32, isS *BitVector, saU, offsets, ends []int32) {
	k := 0
	for i := int32(0); i < int32(len(x)); i++ {
		if isLMS(isS, i) {
			offsets[k] = i
			k++
		}
	}
	for i := 0; i < k; i++ {
		sa[i] = offsets[saU[i]]
	}
	undefine(sa[k:])
	for i := k - 1; i >= 0; i-- {
		j := sa[i]
		sa[i] = saUndef
		c := x[j]
		ends[c]--
		sa[ends[c]] = j
	}
}

func saisRec(sa, x []int32, isS *BitVector, sigma int32) {
	if sigma == int32(len(x)) {
		// all symbols are unique, bucketing them is sorting them
		for i, c := range x {
			sa[c] = int32(i)
		}
		return
	}

	buckets := make([]int32, sigma)
	ptr := make([]int32, sigma)
	countBuckets(x, buckets)
	undefine(sa)
	classifySL(x, isS)

	bucketsEnd(buckets, ptr)
	bucketLMS(x, sa, isS, ptr)
	bucketsStart(buckets, ptr)
	induceFrontL(x, sa, isS, ptr)
	bucketsEnd(buckets, ptr)
	induceBackS(x, sa, isS, ptr)

	saU, u, uSigma := reduceLMS(x, sa, isS)
	saisRec(saU, u, isS, uSigma)

	// the recursion reused the classification bits, restore them
	classifySL(x, isS)
	countBuckets(x, buckets)
	bucketsEnd(buckets, ptr)
	expandLMS(x, sa, isS, saU, u, ptr)
	bucketsStart(buckets, ptr)
	induceFrontL(x, sa, isS, ptr)
	bucketsEnd(buckets, ptr)
	induceBackS(x, sa, isS, ptr)
}
