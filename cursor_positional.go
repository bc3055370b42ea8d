package boolidx

// positionalCursor matches documents in which every child atom occurs at
// the position implied by its (already offset-normalised) Offset relative
// to a common phrase anchor. It first leapfrog-joins the
// children on doc id exactly like andCursor, then, for each doc-id
// candidate, leapfrog-joins their *adjusted* position streams
// (position - offset) looking for a shared value; a mismatch advances
// every child past the doc and the doc-id join resumes. A doc id emits at
// most once even when multiple phrase occurrences exist within it.
type positionalCursor struct {
	atoms   []*atomCursor
	offsets []int64
	cur     DocID
	have    bool
}

// newPositionalCursor builds the phrase cursor. offsets must already be
// normalised (minimum subtracted, so the smallest is 0) and len(offsets)
// == len(atoms).
func newPositionalCursor(atoms []*atomCursor, offsets []int64) Cursor {
	if len(atoms) == 0 {
		return emptyCursor{}
	}
	if len(atoms) == 1 {
		return atoms[0]
	}
	c := &positionalCursor{atoms: atoms, offsets: offsets}
	c.settle()
	return c
}

// alignDocs leapfrogs the atom cursors to a common doc id, identically to
// andCursor.align.
func (c *positionalCursor) alignDocs() (DocID, bool) {
	candidate, ok := c.atoms[0].Peek()
	if !ok {
		return 0, false
	}
	i := 0
	for i < len(c.atoms) {
		v, ok := c.atoms[i].SkipTo(candidate)
		if !ok {
			return 0, false
		}
		if v > candidate {
			candidate = v
			i = 0
			continue
		}
		i++
	}
	return candidate, true
}

// matchPositions checks, for the doc id every atom is currently sitting
// on, whether there is a position p such that p+offsets[i] occurs in
// atoms[i]'s positions for every i. Equivalently (and how it is actually
// computed): whether the streams of adjusted values positions[i]-offsets[i]
// share a common element, found with the same leapfrog technique used for
// doc ids.
func (c *positionalCursor) matchPositions() bool {
	n := len(c.atoms)
	pos := make([][]Pos, n)
	for i, a := range c.atoms {
		pos[i] = a.positions()
		if len(pos[i]) == 0 {
			return false
		}
	}
	idx := make([]int, n)
	candidate := int64(pos[0][0]) - c.offsets[0]
	i := 0
	for i < n {
		for idx[i] < len(pos[i]) && int64(pos[i][idx[i]])-c.offsets[i] < candidate {
			idx[i]++
		}
		if idx[i] >= len(pos[i]) {
			return false
		}
		adj := int64(pos[i][idx[i]]) - c.offsets[i]
		if adj > candidate {
			candidate = adj
			i = 0
			continue
		}
		i++
	}
	return true
}

func (c *positionalCursor) settle() {
	for {
		doc, ok := c.alignDocs()
		if !ok {
			c.have = false
			return
		}
		if c.matchPositions() {
			c.cur = doc
			c.have = true
			return
		}
		for _, a := range c.atoms {
			if _, ok := a.Next(); !ok {
				c.have = false
				return
			}
		}
	}
}

func (c *positionalCursor) Peek() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	return c.cur, true
}

func (c *positionalCursor) Next() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	for _, a := range c.atoms {
		if _, ok := a.Next(); !ok {
			c.have = false
			return 0, false
		}
	}
	c.settle()
	return c.Peek()
}

func (c *positionalCursor) SkipTo(target DocID) (DocID, bool) {
	if !c.have {
		return 0, false
	}
	if c.cur >= target {
		return c.Peek()
	}
	for _, a := range c.atoms {
		if _, ok := a.SkipTo(target); !ok {
			c.have = false
			return 0, false
		}
	}
	c.settle()
	return c.Peek()
}

func (c *positionalCursor) EstimateSize() int {
	min := c.atoms[0].EstimateSize()
	for _, a := range c.atoms[1:] {
		if e := a.EstimateSize(); e < min {
			min = e
		}
	}
	return min
}

func (c *positionalCursor) Err() error {
	for _, a := range c.atoms {
		if err := a.Err(); err != nil {
			return err
		}
	}
	return nil
}
