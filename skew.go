// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

// Skew constructs the suffix array of the sentinel-terminated coded
// text x with the DC3/skew algorithm: sort the suffixes at positions
// i mod 3 != 0 by radix-sorting their leading triplets (recursing on a
// reduced string when the triplets are not unique), bucket-sort the
// remaining suffixes off that order, and merge the two groups.
func Skew(x []int32, alpha *Alphabet) []int32 {
	sa := make([]int32, len(x))
	if len(x) <= 1 {
		return sa
	}
	skewRec(sa, x, alpha.Size())
	return sa
}

// The group sizes only depend on the text length. Valid for n > 0,
// which the sentinel guarantees.
func sa3len(n int32) int32  { return (n-1)/3 + 1 }
func sa12len(n int32) int32 { return n - sa3len(n) }

// safeIdx reads x with positions past the end acting as sentinels.
func safeIdx(x []int32, i int32) int32 {
	if i >= int32(len(x)) {
		return 0
	}
	return x[i]
}

func getSA12(sa12, x []int32) {
	j := 0
	for i := int32(0); i < int32(len(x)); i++ {
		if i%3 != 0 {
			sa12[j] = i
			j++
		}
	}
}

// getSA3 collects the mod-3 positions in the order their successors
// appear in the sorted sa12, so a single stable bucket pass on the
// first symbol finishes their order.
func getSA3(sa3, sa12, x []int32) {
	k := 0
	if int32(len(x))%3 == 1 {
		sa3[k] = int32(len(x)) - 1
		k++
	}
	for _, i := range sa12 {
		if i%3 == 1 {
			sa3[k] = i - 1
			k++
		}
	}
}

// bucketSortIdx stably sorts idx by the symbol at idx[i]+offset.
func bucketSortIdx(x, idx []int32, offset, asize int32, buckets, buffer []int32) {
	clear(buckets)
	for _, i := range idx {
		buckets[safeIdx(x, i+offset)]++
	}
	var acc int32
	for i, k := range buckets {
		buckets[i] = acc
		acc += k
	}
	for _, i := range idx {
		b := safeIdx(x, i+offset)
		buffer[buckets[b]] = i
		buckets[b]++
	}
	copy(idx, buffer[:len(idx)])
}

// radix3 sorts idx by the three symbols starting at each position.
func radix3(x, idx []int32, asize int32) {
	buckets := make([]int32, asize)
	buffer := make([]int32, len(idx))
	bucketSortIdx(x, idx, 2, asize, buckets, buffer)
	bucketSortIdx(x, idx, 1, asize, buckets, buffer)
	bucketSortIdx(x, idx, 0, asize, buckets, buffer)
}

// skewLess compares suffixes i and j when at least one of them is a
// mod-3 suffix. After at most two first-symbol ties both shifted
// positions land in the sa12 group, where the inverse suffix array
// decides.
func skewLess(x []int32, i, j int32, isa []int32) bool {
	a, b := safeIdx(x, i), safeIdx(x, j)
	if a < b {
		return true
	}
	if a > b {
		return false
	}
	if i%3 != 0 && j%3 != 0 {
		return isa[i] < isa[j]
	}
	return skewLess(x, i+1, j+1, isa)
}

func skewMerge(sa, x, sa12, sa3 []int32) {
	isa := make([]int32, len(x))
	for i, s := range sa12 {
		isa[s] = int32(i)
	}

	i, j, k := 0, 0, 0
	for i < len(sa12) && j < len(sa3) {
		if skewLess(x, sa12[i], sa3[j], isa) {
			sa[k] = sa12[i]
			i++
		} else {
			sa[k] = sa3[j]
			j++
		}
		k++
	}
	for ; i < len(sa12); i++ {
		sa[k] = sa12[i]
		k++
	}
	for ; j < len(sa3); j++ {
		sa[k] = sa3[j]
		k++
	}
}

func equal3(x []int32, i, j int32) bool {
	return safeIdx(x, i) == safeIdx(x, j) &&
		safeIdx(x, i+1) == safeIdx(x, j+1) &&
		safeIdx(x, i+2) == safeIdx(x, j+2)
}

// mapXSA12 maps a text position to its slot in the reduced string and
// mapUX maps a reduced-string position back, with m the number of
// mod-1 positions.
func mapXSA12(k int32) int32 { return 2*(k/3) + k%3 - 1 }
func mapUX(i, m int32) int32 {
	if i < m {
		return 1 + 3*i
	}
	return 2 + 3*(i-m)
}

// rankTriplets names the sorted triplets, reserving 0 for the sentinel
// of the reduced string, and returns the reduced alphabet size.
func rankTriplets(encoding, x, sa12 []int32) int32 {
	asize := int32(1)
	encoding[mapXSA12(sa12[0])] = asize
	for i := 1; i < len(sa12); i++ {
		if !equal3(x, sa12[i-1], sa12[i]) {
			asize++
		}
		encoding[mapXSA12(sa12[i])] = asize
	}
	return asize + 1
}

// buildU concatenates the ranks of the mod-1 positions followed by the
// ranks of the mod-2 positions. The terminal sentinel of x doubles as
// the central sentinel, so none is inserted.
func buildU(u, encoding []int32) {
	k := 0
	for i := 0; i < len(u); i += 2 {
		u[k] = encoding[i]
		k++
	}
	for i := 1; i < len(u); i += 2 {
		u[k] = encoding[i]
		k++
	}
}

func skewRec(sa, x []int32, asize int32) {
	n := int32(len(x))
	sa12 := make([]int32, sa12len(n))
	getSA12(sa12, x)
	radix3(x, sa12, asize)

	encoding := make([]int32, len(sa12))
	uAsize := rankTriplets(encoding, x, sa12)

	// Unless every triplet is unique the sa12 order is not settled yet;
	// sort the reduced string recursively and translate back.
	if uAsize-1 < int32(len(sa12)) {
		u := make([]int32, len(sa12))
		buildU(u, encoding)
		usa := make([]int32, len(u))
		skewRec(usa, u, uAsize)
		m := (int32(len(usa)) + 1) / 2
		for i, ui := range usa {
			sa12[i] = mapUX(ui, m)
		}
	}

	sa3 := make([]int32, sa3len(n))
	getSA3(sa3, sa12, x)
	bucketSortIdx(x, sa3, 0, asize, make([]int32, asize), make([]int32, len(sa3)))

	skewMerge(sa, x, sa12, sa3)
}
