package contour

// The builder is the sequence store for one level: it converts an
// unordered stream of crossing segments into the minimal set of simple
// point chains, merging any two chains that come to share an endpoint.
//
// Chains are doubly linked sequences of points. Both the point nodes and
// the chain records live in index-addressed arenas rather than behind
// pointers: prev/next are indices with nilIdx as the null value, reversal
// is an index-swap walk, and a chain record that has been merged away is
// tombstoned and its slot recycled through a free list. A slot is never
// live and merged-away at the same time.

// nilIdx is the null value for arena indices.
const nilIdx = -1

// pointNode is one point in a chain, linked to its neighbors within the
// chain. A node belongs to exactly one chain and is never shared.
type pointNode struct {
	pt         Point
	prev, next int // node arena indices
}

// chainRec is one chain: a head-to-tail walk of point nodes plus links
// into the level's list of chains.
type chainRec struct {
	head, tail int  // node arena indices
	closed     bool // loop; excluded from further matching
	dead       bool // merged away; slot awaits recycling
	prev, next int  // chain arena indices, list links
}

// builder accumulates the chains of a single level.
type builder struct {
	eps2   float64
	nodes  []pointNode
	chains []chainRec
	free   []int // recycled chainRec slots
	head   int   // first chain in the level's list, nilIdx if none
	count  int   // live chains, diagnostic only
}

func newBuilder(eps2 float64) *builder {
	return &builder{eps2: eps2, head: nilIdx}
}

// endMatch locates the chain, if any, whose head or tail coincides with p.
// Only open chains participate; closed loops take no further segments.
// The head is checked before the tail so that a degenerate single-point
// chain matches deterministically.
type endMatch struct {
	chain  int
	atHead bool
	ok     bool
}

func (b *builder) match(p Point) endMatch {
	for ci := b.head; ci != nilIdx; ci = b.chains[ci].next {
		c := &b.chains[ci]
		if c.closed {
			continue
		}
		if b.nodes[c.head].pt.coincident(p, b.eps2) {
			return endMatch{chain: ci, atHead: true, ok: true}
		}
		if b.nodes[c.tail].pt.coincident(p, b.eps2) {
			return endMatch{chain: ci, atHead: false, ok: true}
		}
	}
	return endMatch{}
}

// addSegment feeds one crossing segment into the store. The endpoints are
// conceptually unordered, but which endpoint matched decides whether the
// other is prepended or appended. Exactly one of five cases applies:
// create, extend at p's match, extend at q's match, close, or merge.
func (b *builder) addSegment(p, q Point) {
	// Both ends are resolved against the pre-segment state; extending
	// first and then matching the second endpoint would see the chain's
	// new end instead.
	ma := b.match(p)
	mb := b.match(q)

	switch {
	case !ma.ok && !mb.ok:
		b.newChain(p, q)
	case ma.ok && !mb.ok:
		b.extend(ma, q)
	case !ma.ok && mb.ok:
		b.extend(mb, p)
	case ma.chain == mb.chain:
		// The chain's two free ends are this segment's two endpoints:
		// the segment closes the chain into a loop.
		b.close(ma.chain)
	default:
		b.merge(ma, mb)
	}
}

// newChain creates a two-point chain [p, q] and pushes it onto the front
// of the level's chain list.
func (b *builder) newChain(p, q Point) {
	na := b.newNode(p)
	nb := b.newNode(q)
	b.nodes[na].next = nb
	b.nodes[nb].prev = na

	ci := b.newChainRec()
	c := &b.chains[ci]
	c.head, c.tail = na, nb
	c.prev, c.next = nilIdx, b.head
	if b.head != nilIdx {
		b.chains[b.head].prev = ci
	}
	b.head = ci
	b.count++
}

// extend grows a chain by one point at the end where the segment matched:
// a match at the head prepends, a match at the tail appends.
func (b *builder) extend(m endMatch, p Point) {
	ni := b.newNode(p)
	c := &b.chains[m.chain]
	if m.atHead {
		b.nodes[ni].next = c.head
		b.nodes[c.head].prev = ni
		c.head = ni
	} else {
		b.nodes[ni].prev = c.tail
		b.nodes[c.tail].next = ni
		c.tail = ni
	}
}

// close turns an open chain into a loop by splicing a duplicate of the
// tail point in front of the head, so the walk starts and ends on the
// same point. Closed chains stay in the list but stop matching segments.
func (b *builder) close(ci int) {
	c := &b.chains[ci]
	ni := b.newNode(b.nodes[c.tail].pt)
	b.nodes[ni].next = c.head
	b.nodes[c.head].prev = ni
	c.head = ni
	c.closed = true
}

// merge splices the chain matched by b into the chain matched by a and
// discards its record. Head-tail and tail-head pairings splice directly;
// tail-tail and head-head first reverse the second chain so the merged
// result remains one consistent head-to-tail walk.
func (b *builder) merge(ma, mb endMatch) {
	if ma.atHead == mb.atHead {
		b.reverse(mb.chain)
		mb.atHead = !mb.atHead
	}
	ca := &b.chains[ma.chain]
	cb := &b.chains[mb.chain]
	if !ma.atHead {
		// a at tail, b at head: append b's chain after a's.
		b.nodes[ca.tail].next = cb.head
		b.nodes[cb.head].prev = ca.tail
		ca.tail = cb.tail
	} else {
		// a at head, b at tail: prepend b's chain before a's.
		b.nodes[cb.tail].next = ca.head
		b.nodes[ca.head].prev = cb.tail
		ca.head = cb.head
	}
	b.remove(mb.chain)
}

// reverse flips a chain's internal direction: every node swaps prev/next,
// then the record swaps head and tail.
func (b *builder) reverse(ci int) {
	c := &b.chains[ci]
	for ni := c.head; ni != nilIdx; {
		n := &b.nodes[ni]
		n.prev, n.next = n.next, n.prev
		ni = n.prev // the node's former next
	}
	c.head, c.tail = c.tail, c.head
}

// remove unlinks a chain record from the level's list, tombstones it, and
// recycles its slot. O(1) given the record's own list links.
func (b *builder) remove(ci int) {
	c := &b.chains[ci]
	if c.prev != nilIdx {
		b.chains[c.prev].next = c.next
	} else {
		b.head = c.next
	}
	if c.next != nilIdx {
		b.chains[c.next].prev = c.prev
	}
	c.dead = true
	c.prev, c.next = nilIdx, nilIdx
	b.free = append(b.free, ci)
	b.count--
}

func (b *builder) newNode(p Point) int {
	b.nodes = append(b.nodes, pointNode{pt: p, prev: nilIdx, next: nilIdx})
	return len(b.nodes) - 1
}

func (b *builder) newChainRec() int {
	if n := len(b.free); n > 0 {
		ci := b.free[n-1]
		b.free = b.free[:n-1]
		b.chains[ci] = chainRec{head: nilIdx, tail: nilIdx, prev: nilIdx, next: nilIdx}
		return ci
	}
	b.chains = append(b.chains, chainRec{head: nilIdx, tail: nilIdx, prev: nilIdx, next: nilIdx})
	return len(b.chains) - 1
}

// points materializes a chain's head-to-tail walk.
func (b *builder) points(ci int) []Point {
	var pts []Point
	for ni := b.chains[ci].head; ni != nilIdx; ni = b.nodes[ni].next {
		pts = append(pts, b.nodes[ni].pt)
	}
	return pts
}

// each calls fn for every live chain in list order.
func (b *builder) each(fn func(ci int, c *chainRec)) {
	for ci := b.head; ci != nilIdx; {
		c := &b.chains[ci]
		next := c.next
		fn(ci, c)
		ci = next
	}
}
