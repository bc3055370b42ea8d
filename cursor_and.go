package boolidx

import (
	"math"
	"sort"
)

// andCursor implements n-ary AND over its children using the
// leapfrog-join style algorithm: children are sorted rarest
// first, then repeatedly skip_to'd to a shared candidate doc id until
// every child agrees, restarting the scan whenever a child reports a
// larger doc id than the current candidate.
type andCursor struct {
	children []Cursor
	cur      DocID
	have     bool
	err      error
}

// newAndCursor composes children into a single AND cursor. A single child
// is returned unwrapped ("n-ary AND with a single child behaves
// identically to the child"); zero children is the empty cursor.
func newAndCursor(children []Cursor) Cursor {
	switch len(children) {
	case 0:
		return emptyCursor{}
	case 1:
		return children[0]
	}
	ordered := make([]Cursor, len(children))
	copy(ordered, children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EstimateSize() < ordered[j].EstimateSize()
	})
	c := &andCursor{children: ordered}
	c.align()
	return c
}

func (c *andCursor) align() {
	candidate, ok := c.children[0].Peek()
	if !ok {
		c.have = false
		return
	}
	i := 0
	for i < len(c.children) {
		v, ok := c.children[i].SkipTo(candidate)
		if !ok {
			c.have = false
			return
		}
		if v > candidate {
			candidate = v
			i = 0
			continue
		}
		i++
	}
	c.cur = candidate
	c.have = true
}

func (c *andCursor) Peek() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	return c.cur, true
}

func (c *andCursor) Next() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	for _, ch := range c.children {
		if _, ok := ch.Next(); !ok {
			c.have = false
			return 0, false
		}
	}
	c.align()
	return c.Peek()
}

func (c *andCursor) SkipTo(target DocID) (DocID, bool) {
	if !c.have {
		return 0, false
	}
	if c.cur >= target {
		return c.Peek()
	}
	for _, ch := range c.children {
		if _, ok := ch.SkipTo(target); !ok {
			c.have = false
			return 0, false
		}
	}
	c.align()
	return c.Peek()
}

func (c *andCursor) EstimateSize() int {
	min := math.MaxInt
	for _, ch := range c.children {
		if e := ch.EstimateSize(); e < min {
			min = e
		}
	}
	return min
}

func (c *andCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	for _, ch := range c.children {
		if err := ch.Err(); err != nil {
			return err
		}
	}
	return nil
}
