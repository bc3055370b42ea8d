package boolidx

import "container/heap"

// orHeap is a container/heap of child indices ordered by each child's
// current Peek() doc id.
type orHeap struct {
	idx      []int
	children []Cursor
}

func (h *orHeap) Len() int { return len(h.idx) }
func (h *orHeap) Less(i, j int) bool {
	a, _ := h.children[h.idx[i]].Peek()
	b, _ := h.children[h.idx[j]].Peek()
	return a < b
}
func (h *orHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *orHeap) Push(x any)    { h.idx = append(h.idx, x.(int)) }
func (h *orHeap) Pop() any {
	n := len(h.idx)
	x := h.idx[n-1]
	h.idx = h.idx[:n-1]
	return x
}

// orCursor implements n-ary OR via a min-heap over children's current doc
// ids: emit the minimum, advance every child currently sitting on
// it, drop exhausted children from the heap.
type orCursor struct {
	heap *orHeap
	cur  DocID
	have bool
}

// newOrCursor composes children into a single OR cursor. A single
// child is returned unwrapped, zero children is the empty cursor.
func newOrCursor(children []Cursor) Cursor {
	switch len(children) {
	case 0:
		return emptyCursor{}
	case 1:
		return children[0]
	}
	h := &orHeap{children: children}
	for i, ch := range children {
		if _, ok := ch.Peek(); ok {
			h.idx = append(h.idx, i)
		}
	}
	heap.Init(h)
	c := &orCursor{heap: h}
	c.settle()
	return c
}

func (c *orCursor) settle() {
	if c.heap.Len() == 0 {
		c.have = false
		return
	}
	v, _ := c.heap.children[c.heap.idx[0]].Peek()
	c.cur = v
	c.have = true
}

func (c *orCursor) Peek() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	return c.cur, true
}

func (c *orCursor) Next() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	target := c.cur
	for c.heap.Len() > 0 {
		rootIdx := c.heap.idx[0]
		v, ok := c.heap.children[rootIdx].Peek()
		if !ok || v != target {
			break
		}
		heap.Pop(c.heap)
		if _, ok := c.heap.children[rootIdx].Next(); ok {
			heap.Push(c.heap, rootIdx)
		}
	}
	c.settle()
	return c.Peek()
}

func (c *orCursor) SkipTo(target DocID) (DocID, bool) {
	if !c.have {
		return 0, false
	}
	if c.cur >= target {
		return c.Peek()
	}
	prev := append([]int(nil), c.heap.idx...)
	active := c.heap.idx[:0]
	for _, i := range prev {
		if _, ok := c.heap.children[i].SkipTo(target); ok {
			active = append(active, i)
		}
	}
	c.heap.idx = active
	heap.Init(c.heap)
	c.settle()
	return c.Peek()
}

func (c *orCursor) EstimateSize() int {
	total := 0
	for _, i := range c.heap.idx {
		total += c.heap.children[i].EstimateSize()
	}
	return total
}

func (c *orCursor) Err() error {
	for _, ch := range c.heap.children {
		if err := ch.Err(); err != nil {
			return err
		}
	}
	return nil
}
