// Copyright (c) 2025 Nikita Kamenev
// Licensed under the MIT License. See LICENSE file in the project root for details.
package strindex

// poolChunk is the number of inner nodes allocated per pool block.
const poolChunk = 256

// stNode is a suffix tree node. Inner nodes label their incoming edge
// with x[beg:end]; a leaf stores its suffix index in end instead (so
// end <= beg tags a leaf) and its edge always runs from beg to the end
// of the text. parent is only meaningful while the tree is under
// construction; threading fills next, the node's successor in a
// depth-first left-to-right walk.
type stNode struct {
	beg, end int32
	parent   *stNode
	next     *stNode
	slink    *stNode
	children []*stNode // nil for leaves, σ slots otherwise
}

func (n *stNode) isLeaf() bool { return n.end <= n.beg }

// nodePool hands out inner nodes whose addresses stay valid for the
// life of the tree. Nodes are carved from fixed-size blocks and the σ
// child slots of a block's nodes come from one shared backing array;
// growing the pool starts a new block and never moves an old one. The
// node size depends on σ, which is why the tree cannot simply grow one
// flat node array.
type nodePool struct {
	sigma int32
	nodes []stNode
	kids  []*stNode
}

func (p *nodePool) get() *stNode {
	if len(p.nodes) == 0 {
		p.nodes = make([]stNode, poolChunk)
		p.kids = make([]*stNode, poolChunk*int(p.sigma))
	}
	n := &p.nodes[0]
	n.children = p.kids[:p.sigma:p.sigma]
	p.nodes = p.nodes[1:]
	p.kids = p.kids[p.sigma:]
	return n
}

// SuffixTree indexes a sentinel-terminated coded text. It borrows the
// text and alphabet and owns its inner-node pool and leaf array.
type SuffixTree struct {
	alpha  *Alphabet
	x      []int32
	root   *stNode
	pool   nodePool
	leaves []stNode
}

func newSuffixTree(alpha *Alphabet, x []int32) *SuffixTree {
	st := &SuffixTree{
		alpha:  alpha,
		x:      x,
		pool:   nodePool{sigma: alpha.Size()},
		leaves: make([]stNode, len(x)),
	}
	// The root's edge label is never read; it only has to satisfy
	// end > beg so the root does not look like a leaf.
	st.root = st.newInner(0, int32(len(x)))
	for i := range st.leaves {
		st.leaves[i] = stNode{beg: int32(i), end: int32(i), parent: st.root}
	}
	return st
}

// Len returns the length of the indexed text, sentinel included, which
// is also the number of leaves.
func (st *SuffixTree) Len() int { return len(st.x) }

func (st *SuffixTree) newInner(beg, end int32) *stNode {
	n := st.pool.get()
	n.beg, n.end = beg, end
	return n
}

func (st *SuffixTree) leaf(i int32) *stNode { return &st.leaves[i] }

// edge returns the label of the edge into n.
func (st *SuffixTree) edge(n *stNode) []int32 {
	if n.isLeaf() {
		return st.x[n.beg:]
	}
	return st.x[n.beg:n.end]
}

// edgeLen is the length of the edge into n.
func (st *SuffixTree) edgeLen(n *stNode) int32 {
	if n.isLeaf() {
		return int32(len(st.x)) - n.beg
	}
	return n.end - n.beg
}

// firstCode is the symbol n's edge starts with, i.e. its slot in the
// parent's child table.
func (st *SuffixTree) firstCode(n *stNode) int32 { return st.x[n.beg] }

func (st *SuffixTree) setChild(parent, child *stNode) {
	parent.children[st.firstCode(child)] = child
	child.parent = parent
}

// setLeafEdge points the leaf's edge at the tail of the text that rest
// occupies. Construction only hands leaf edges that are suffixes of
// the text, so the offset is recoverable from the length alone.
func (st *SuffixTree) setLeafEdge(leaf *stNode, rest []int32) {
	leaf.beg = int32(len(st.x) - len(rest))
}

// breakEdge splits the edge into n after shared symbols, inserting a
// fresh inner node between n and its parent.
func (st *SuffixTree) breakEdge(n *stNode, shared int32) *stNode {
	mid := st.newInner(n.beg, n.beg+shared)
	parent := n.parent
	n.beg += shared
	st.setChild(parent, mid)
	st.setChild(mid, n)
	return mid
}

type scanKind int

const (
	nodeMatch scanKind = iota
	nodeMismatch
	edgeMatch
	edgeMismatch
)

// scanResult reports where a descent stopped: on the node n itself, or
// shared symbols down its edge. For the mismatch kinds rest is the
// query still to match on leaving n (nodeMismatch) or on entering n's
// edge (edgeMismatch, so its first shared symbols lie on that edge).
type scanResult struct {
	kind   scanKind
	n      *stNode
	rest   []int32
	shared int32
}

func lcpLen(a, b []int32) int32 {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int32(i)
		}
	}
	return int32(n)
}

// slowScan descends from `from`, comparing p symbol by symbol.
func (st *SuffixTree) slowScan(from *stNode, p []int32) scanResult {
	for {
		if len(p) == 0 {
			return scanResult{kind: nodeMatch, n: from}
		}
		to := from.children[p[0]]
		if to == nil {
			return scanResult{kind: nodeMismatch, n: from, rest: p}
		}
		edge := st.edge(to)
		shared := lcpLen(edge, p)
		if shared == int32(len(p)) {
			if shared == int32(len(edge)) {
				return scanResult{kind: nodeMatch, n: to}
			}
			return scanResult{kind: edgeMatch, n: to, shared: shared}
		}
		if shared < int32(len(edge)) {
			return scanResult{kind: edgeMismatch, n: to, rest: p, shared: shared}
		}
		p = p[shared:]
		from = to
	}
}

// fastScan descends knowing that p occurs below `from`, so it consumes
// whole edges and only compares first symbols.
func (st *SuffixTree) fastScan(from *stNode, p []int32) scanResult {
	for {
		if len(p) == 0 {
			return scanResult{kind: nodeMatch, n: from}
		}
		to := from.children[p[0]]
		edgeLen := st.edgeLen(to)
		if int32(len(p)) == edgeLen {
			return scanResult{kind: nodeMatch, n: to}
		}
		if int32(len(p)) < edgeLen {
			return scanResult{kind: edgeMatch, n: to, shared: int32(len(p))}
		}
		p = p[edgeLen:]
		from = to
	}
}

func (st *SuffixTree) naiveInsert(i int32) {
	leaf := st.leaf(i)
	res := st.slowScan(st.root, st.x[i:])
	switch res.kind {
	case nodeMismatch:
		st.setLeafEdge(leaf, res.rest)
		st.setChild(res.n, leaf)
	case edgeMismatch:
		mid := st.breakEdge(res.n, res.shared)
		st.setLeafEdge(leaf, res.rest[res.shared:])
		st.setChild(mid, leaf)
	}
}

// NaiveSuffixTree builds the suffix tree of the sentinel-terminated
// coded text x by scanning each suffix down from the root. Quadratic
// in the worst case, but free of the suffix-link machinery.
func NaiveSuffixTree(alpha *Alphabet, x []int32) *SuffixTree {
	st := newSuffixTree(alpha, x)
	for i := range x {
		st.naiveInsert(int32(i))
	}
	st.thread()
	return st
}

// pathSuffix returns the edge label of n without its first symbol when
// n hangs off the root, and the full label otherwise. It is the part
// of the previous head or tail that must be rescanned after a
// suffix-link hop.
func (st *SuffixTree) pathSuffix(n *stNode) []int32 {
	y := st.edge(n)
	if n.parent == st.root {
		return y[1:]
	}
	return y
}

// McCreightSuffixTree builds the suffix tree in linear time. Write the
// previously inserted suffix as a·y·z·w, where ay is the parent of
// head(i-1), ayz is head(i-1) itself and w the final edge down to its
// leaf. The suffix link of ayz (or of ay, plus a fast scan over z)
// leads to yz, and a slow scan over w from there finds head(i).
func McCreightSuffixTree(alpha *Alphabet, x []int32) *SuffixTree {
	st := newSuffixTree(alpha, x)

	leaf := st.leaf(0)
	leaf.beg = 0
	st.setChild(st.root, leaf)

	// The root being its own parent and suffix removes the special
	// cases from the hops below.
	st.root.parent = st.root
	st.root.slink = st.root

	for i := int32(1); i < int32(len(x)); i++ {
		w := st.pathSuffix(leaf)
		ayzNode := leaf.parent

		var yzNode *stNode
		if ayzNode.slink != nil {
			yzNode = ayzNode.slink
		} else {
			yNode := ayzNode.parent.slink
			z := st.pathSuffix(ayzNode)
			res := st.fastScan(yNode, z)
			if res.kind == edgeMatch {
				// head(i) sits inside this edge: split it, link it,
				// and hang the new leaf directly off the split.
				ayzNode.slink = st.breakEdge(res.n, res.shared)
				leaf = st.leaf(i)
				st.setLeafEdge(leaf, w)
				st.setChild(ayzNode.slink, leaf)
				continue
			}
			ayzNode.slink = res.n
			yzNode = res.n
		}

		res := st.slowScan(yzNode, w)
		switch res.kind {
		case nodeMismatch:
			leaf = st.leaf(i)
			st.setLeafEdge(leaf, res.rest)
			st.setChild(res.n, leaf)
		case edgeMismatch:
			head := st.breakEdge(res.n, res.shared)
			leaf = st.leaf(i)
			st.setLeafEdge(leaf, res.rest[res.shared:])
			st.setChild(head, leaf)
		}
	}

	st.thread()
	return st
}

// firstChild returns the leftmost child of an inner node.
func (st *SuffixTree) firstChild(n *stNode) *stNode {
	for _, c := range n.children {
		if c != nil {
			return c
		}
	}
	return nil
}

func (st *SuffixTree) lastChild(n *stNode) *stNode {
	for i := len(n.children) - 1; i >= 0; i-- {
		if n.children[i] != nil {
			return n.children[i]
		}
	}
	return nil
}

// nextNode finds n's depth-first successor, wiring the next pointers
// of the inner nodes it climbs out of along the way.
func (st *SuffixTree) nextNode(n *stNode) *stNode {
	if !n.isLeaf() {
		return st.firstChild(n)
	}
	for {
		p := n.parent
		if !n.isLeaf() {
			// climbing out of n, its successor is fixed now
			n.next = st.firstChild(n)
		}
		for a := st.firstCode(n) + 1; a < st.alpha.Size(); a++ {
			if p.children[a] != nil {
				return p.children[a]
			}
		}
		if p == st.root {
			return nil
		}
		n = p
	}
}

// thread runs one depth-first traversal to replace the construction
// parent pointers with successor pointers: first child for inner
// nodes, the node following the subtree for leaves.
func (st *SuffixTree) thread() {
	prev := st.root
	for prev != nil {
		n := st.nextNode(prev)
		if prev.isLeaf() {
			prev.next = n
		}
		prev = n
	}
	st.root.next = st.firstChild(st.root)
}

// rightmostLeaf descends along last children; the traversal of a
// subtree ends at it.
func (st *SuffixTree) rightmostLeaf(n *stNode) *stNode {
	for !n.isLeaf() {
		n = st.lastChild(n)
	}
	return n
}

// treeMatcher iterates the threaded leaves of a subtree; the subtree's
// rightmost leaf acts as the end sentinel.
type treeMatcher struct {
	n, sentinel *stNode
}

func (m *treeMatcher) Next() int {
	for m.n != nil {
		n := m.n
		m.advance()
		if n.isLeaf() {
			return int(n.end)
		}
	}
	return -1
}

func (m *treeMatcher) advance() {
	if m.n == m.sentinel {
		m.n = nil
	} else {
		m.n = m.n.next
	}
}

func (m *treeMatcher) Release() { m.n, m.sentinel = nil, nil }

func (st *SuffixTree) matcherFrom(n *stNode) Matcher {
	if n == nil {
		return emptyMatcher{}
	}
	return &treeMatcher{n: n, sentinel: st.rightmostLeaf(n)}
}

// SearchCoded returns a matcher over the occurrences of the coded
// pattern p, enumerated in depth-first order. The empty pattern
// matches every suffix.
func (st *SuffixTree) SearchCoded(p []int32) Matcher {
	res := st.slowScan(st.root, p)
	switch res.kind {
	case nodeMatch, edgeMatch:
		return st.matcherFrom(res.n)
	}
	return emptyMatcher{}
}

// Search maps a raw byte pattern through the tree's alphabet first;
// patterns with bytes outside the alphabet have no occurrences.
func (st *SuffixTree) Search(p []byte) Matcher {
	coded, err := st.alpha.Code(p)
	if err != nil {
		return emptyMatcher{}
	}
	return st.SearchCoded(coded)
}
