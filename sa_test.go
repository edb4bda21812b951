package strindex

import (
	"math/rand"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genRandDNA(size int) []byte {
	const bases = "ACGT"
	input := make([]byte, size)
	for i := 0; i < size; i++ {
		input[i] = bases[rand.Intn(len(bases))]
	}
	return input
}

func genRandText(size, sigma int) []byte {
	input := make([]byte, size)
	for i := 0; i < size; i++ {
		input[i] = byte('a' + rand.Intn(sigma))
	}
	return input
}

func codeOrDie(t *testing.T, x []byte) (*Alphabet, []int32) {
	t.Helper()
	alpha, u, err := CodeText(x)
	require.NoError(t, err)
	return alpha, u
}

// makeSA sorts the suffixes directly, as an oracle for the linear
// constructions.
func makeSA(u []int32) []int32 {
	sa := make([]int32, len(u))
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return slices.Compare(u[sa[i]:], u[sa[j]:]) < 0
	})
	return sa
}

func TestSuffixArrayConstruction(t *testing.T) {
	tests := map[string]struct {
		text []byte
	}{
		"empty string": {
			text: []byte{},
		},
		"single character": {
			text: []byte("a"),
		},
		"same characters": {
			text: []byte("aaaaaaaaaaaaaaaaaaaaa"),
		},
		"two characters": {
			text: []byte("ab"),
		},
		"banana": {
			text: []byte("banana"),
		},
		"mississippi": {
			text: []byte("mississippi"),
		},
		"abracadabra": {
			text: []byte("abracadabra"),
		},
		"repeated pattern": {
			text: []byte("abababab"),
		},
		"reverse sorted": {
			text: []byte("edcba"),
		},
		"ACGTGCCTAGCCTACCGTGCC": {
			text: []byte("ACGTGCCTAGCCTACCGTGCC"),
		},
		"long random dna": {
			text: genRandDNA(1000),
		},
		"long random text": {
			text: genRandText(1000, 26),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			alpha, u := codeOrDie(t, tc.text)
			want := makeSA(u)
			assert.Equal(t, want, Skew(u, alpha), "skew")
			assert.Equal(t, want, Sais(u, alpha), "sais")
		})
	}
}

func TestSuffixArrayProperties(t *testing.T) {
	for _, build := range []struct {
		name string
		fn   func([]int32, *Alphabet) []int32
	}{
		{"skew", Skew},
		{"sais", Sais},
	} {
		t.Run(build.name, func(t *testing.T) {
			text := genRandDNA(500)
			alpha, u := codeOrDie(t, text)
			sa := build.fn(u, alpha)

			n := int32(len(u))
			require.Equal(t, n, int32(len(sa)))
			assert.Equal(t, n-1, sa[0], "the sentinel suffix sorts first")

			seen := make([]int32, n)
			copy(seen, sa)
			slices.Sort(seen)
			for i, v := range seen {
				assert.Equal(t, int32(i), v, "sa must be a permutation")
			}

			for i := 1; i < len(sa); i++ {
				assert.Negative(t, slices.Compare(u[sa[i-1]:], u[sa[i]:]),
					"suffixes must be strictly increasing")
			}
		})
	}
}

func TestSkewSaisAgree(t *testing.T) {
	for i := 0; i < 20; i++ {
		text := genRandText(1+rand.Intn(300), 1+rand.Intn(8))
		alpha, u := codeOrDie(t, text)
		assert.Equal(t, Skew(u, alpha), Sais(u, alpha), "text %q", text)
	}
}

func TestMississippiSuffixArray(t *testing.T) {
	alpha, u := codeOrDie(t, []byte("mississippi"))
	want := []int32{11, 10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}
	assert.Equal(t, want, Skew(u, alpha))
	assert.Equal(t, want, Sais(u, alpha))
}

func TestSkewGroupLengths(t *testing.T) {
	// count group sizes directly for every length up to 100
	var n12, n3 int32
	for last := int32(0); last <= 100; last++ {
		if last%3 == 0 {
			n3++
		} else {
			n12++
		}
		n := last + 1
		assert.Equal(t, n12, sa12len(n))
		assert.Equal(t, n3, sa3len(n))
	}
}

func TestSLClassification(t *testing.T) {
	_, u := codeOrDie(t, []byte("mississippi"))
	isS := NewBitVector(int32(len(u)))
	classifySL(u, isS)
	want := BitVectorFromString("010010010001")
	assert.True(t, isS.Eq(want), "got %s, want %s", isS, want)
}

func TestSaBsearch(t *testing.T) {
	tests := map[string]struct {
		text, pattern []byte
		exp           []int
	}{
		"mississippi is": {
			text:    []byte("mississippi"),
			pattern: []byte("is"),
			exp:     []int{1, 4},
		},
		"mississippi i": {
			text:    []byte("mississippi"),
			pattern: []byte("i"),
			exp:     []int{1, 4, 7, 10},
		},
		"banana ana": {
			text:    []byte("banana"),
			pattern: []byte("ana"),
			exp:     []int{1, 3},
		},
		"absent": {
			text:    []byte("banana"),
			pattern: []byte("nab"),
			exp:     nil,
		},
		"unmappable": {
			text:    []byte("banana"),
			pattern: []byte("x"),
			exp:     nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			alpha, u := codeOrDie(t, tc.text)
			sa := Sais(u, alpha)
			got := sortedCollect(SaSearch(sa, u, alpha, tc.pattern))
			assert.Equal(t, tc.exp, got)
		})
	}
}

func TestSaBsearchEmptyPattern(t *testing.T) {
	alpha, u := codeOrDie(t, []byte("banana"))
	sa := Sais(u, alpha)
	got := collect(SaBsearch(sa, u, nil))
	// the whole suffix array, in lexicographic order
	want := make([]int, len(sa))
	for i, s := range sa {
		want[i] = int(s)
	}
	assert.Equal(t, want, got)
}

func BenchmarkSuffixArray(b *testing.B) {
	text := genRandDNA(10000)
	alpha, u, err := CodeText(text)
	if err != nil {
		b.Fatal(err)
	}
	b.Run("skew", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Skew(u, alpha)
		}
	})
	b.Run("sais", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Sais(u, alpha)
		}
	})
}
