package boolidx

// filterCursor implements AND-NOT: it drives the subject cursor and
// rejects any candidate the exclude cursor also reaches, without ever
// materialising the excluded set.
type filterCursor struct {
	subject Cursor
	exclude Cursor
	cur     DocID
	have    bool
}

func newFilterCursor(subject, exclude Cursor) Cursor {
	c := &filterCursor{subject: subject, exclude: exclude}
	c.settle()
	return c
}

// settle advances subject past every candidate that exclude also matches,
// until it finds one exclude does not match or subject is exhausted.
func (c *filterCursor) settle() {
	for {
		v, ok := c.subject.Peek()
		if !ok {
			c.have = false
			return
		}
		ev, ok := c.exclude.SkipTo(v)
		if ok && ev == v {
			if _, ok := c.subject.Next(); !ok {
				c.have = false
				return
			}
			continue
		}
		c.cur = v
		c.have = true
		return
	}
}

func (c *filterCursor) Peek() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	return c.cur, true
}

func (c *filterCursor) Next() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	if _, ok := c.subject.Next(); !ok {
		c.have = false
		return 0, false
	}
	c.settle()
	return c.Peek()
}

func (c *filterCursor) SkipTo(target DocID) (DocID, bool) {
	if !c.have {
		return 0, false
	}
	if c.cur >= target {
		return c.Peek()
	}
	if _, ok := c.subject.SkipTo(target); !ok {
		c.have = false
		return 0, false
	}
	c.settle()
	return c.Peek()
}

func (c *filterCursor) EstimateSize() int {
	return c.subject.EstimateSize()
}

func (c *filterCursor) Err() error {
	if err := c.subject.Err(); err != nil {
		return err
	}
	return c.exclude.Err()
}
