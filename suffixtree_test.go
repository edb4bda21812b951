package strindex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeBuilders = []struct {
	name  string
	build func(*Alphabet, []int32) *SuffixTree
}{
	{"naive", NaiveSuffixTree},
	{"mccreight", McCreightSuffixTree},
}

func TestSuffixTreeLeaves(t *testing.T) {
	tests := map[string]struct {
		text []byte
	}{
		"empty":       {[]byte{}},
		"single":      {[]byte("a")},
		"unary":       {[]byte("aaaaaa")},
		"mississippi": {[]byte("mississippi")},
		"banana":      {[]byte("banana")},
		"random dna":  {genRandDNA(200)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			alpha, u := codeOrDie(t, tc.text)
			for _, tb := range treeBuilders {
				st := tb.build(alpha, u)
				require.Equal(t, len(u), st.Len(), tb.name)

				// the empty pattern reaches the root, so its matcher
				// enumerates every leaf
				leaves := sortedCollect(st.SearchCoded(nil))
				require.Len(t, leaves, len(u), tb.name)
				for i, l := range leaves {
					assert.Equal(t, i, l, "%s: every suffix has exactly one leaf", tb.name)
				}
			}
		})
	}
}

func TestSuffixTreeDepthFirstOrder(t *testing.T) {
	// the threaded traversal enumerates leaves in lexicographic order
	// of their suffixes, so the full enumeration is the suffix array
	alpha, u := codeOrDie(t, []byte("mississippi"))
	want := []int{11, 10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}
	for _, tb := range treeBuilders {
		st := tb.build(alpha, u)
		assert.Equal(t, want, collect(st.SearchCoded(nil)), tb.name)
	}
}

func TestSuffixTreeConstructionsAgree(t *testing.T) {
	for i := 0; i < 10; i++ {
		text := genRandText(1+rand.Intn(300), 1+rand.Intn(4))
		alpha, u := codeOrDie(t, text)
		naive := NaiveSuffixTree(alpha, u)
		mc := McCreightSuffixTree(alpha, u)
		assert.Equal(t, collect(naive.SearchCoded(nil)), collect(mc.SearchCoded(nil)),
			"depth-first enumeration differs for %q", text)
	}
}

func TestSuffixTreeSearch(t *testing.T) {
	tests := map[string]struct {
		text, pattern []byte
		exp           []int
	}{
		"missi": {
			text:    []byte("mississippi"),
			pattern: []byte("missi"),
			exp:     []int{0},
		},
		"i in depth-first order": {
			text:    []byte("mississippi"),
			pattern: []byte("i"),
			exp:     []int{10, 7, 4, 1},
		},
		"ssi": {
			text:    []byte("mississippi"),
			pattern: []byte("ssi"),
			exp:     []int{5, 2},
		},
		"absent": {
			text:    []byte("mississippi"),
			pattern: []byte("ssm"),
			exp:     nil,
		},
		"unmappable": {
			text:    []byte("mississippi"),
			pattern: []byte("x"),
			exp:     nil,
		},
		"whole text": {
			text:    []byte("banana"),
			pattern: []byte("banana"),
			exp:     []int{0},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			alpha, u := codeOrDie(t, tc.text)
			for _, tb := range treeBuilders {
				st := tb.build(alpha, u)
				assert.Equal(t, tc.exp, collect(st.Search(tc.pattern)), tb.name)
			}
		})
	}
}

func TestSuffixTreeMatchesAreOccurrences(t *testing.T) {
	text := genRandDNA(250)
	alpha, u := codeOrDie(t, text)
	for _, tb := range treeBuilders {
		st := tb.build(alpha, u)
		for i := 0; i < 30; i++ {
			beg := rand.Intn(len(text))
			end := beg + 1 + rand.Intn(min(10, len(text)-beg))
			pattern := text[beg:end]
			want := sortedCollect(NewNaiveMatcher(text, pattern))
			assert.Equal(t, want, sortedCollect(st.Search(pattern)),
				"%s: pattern %q", tb.name, pattern)
		}
	}
}

func TestNodePoolStableAddresses(t *testing.T) {
	// growing past a chunk boundary must not move nodes already
	// handed out
	pool := nodePool{sigma: 4}
	var nodes []*stNode
	for i := 0; i < 3*poolChunk; i++ {
		n := pool.get()
		n.beg = int32(i)
		nodes = append(nodes, n)
	}
	for i, n := range nodes {
		assert.Equal(t, int32(i), n.beg)
		assert.Len(t, n.children, 4)
	}
}

func BenchmarkSuffixTree(b *testing.B) {
	text := genRandDNA(10000)
	alpha, u, err := CodeText(text)
	if err != nil {
		b.Fatal(err)
	}
	b.Run("naive", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			NaiveSuffixTree(alpha, u)
		}
	})
	b.Run("mccreight", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			McCreightSuffixTree(alpha, u)
		}
	})
}
