package boolidx

// atomCursor drives a posting-list decoder over its skip-indexed chunks.
// It owns one chunkCursor, reused across chunks, and never decodes more
// than the chunk containing the current or sought-after doc id.
type atomCursor struct {
	reader   *postingListReader
	chunkIdx int
	cc       chunkCursor
	cur      Posting
	have     bool
	err      error
}

func newAtomCursor(reader *postingListReader) *atomCursor {
	c := &atomCursor{reader: reader}
	if reader.numChunks() == 0 {
		return c
	}
	if c.loadChunk(0) {
		c.advance()
	}
	return c
}

func (c *atomCursor) loadChunk(i int) bool {
	buf, err := c.reader.chunkBytes(i)
	if err != nil {
		c.err = err
		return false
	}
	c.cc.reset(buf, c.reader.baseDoc(i))
	return true
}

// advance decodes the next posting in the stream, moving to subsequent
// chunks as each is exhausted, and sets c.have accordingly.
func (c *atomCursor) advance() {
	for {
		if c.cc.done() {
			c.chunkIdx++
			if c.chunkIdx >= c.reader.numChunks() {
				c.have = false
				return
			}
			if !c.loadChunk(c.chunkIdx) {
				c.have = false
				return
			}
			continue
		}
		p, err := c.cc.advance()
		if err != nil {
			c.err = err
			c.have = false
			return
		}
		c.cur = p
		c.have = true
		return
	}
}

func (c *atomCursor) Peek() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	return c.cur.Doc, true
}

func (c *atomCursor) Next() (DocID, bool) {
	if !c.have {
		return 0, false
	}
	c.advance()
	return c.Peek()
}

func (c *atomCursor) SkipTo(target DocID) (DocID, bool) {
	if !c.have {
		return 0, false
	}
	if c.cur.Doc >= target {
		return c.Peek()
	}
	idx := c.reader.findChunk(c.chunkIdx, target)
	if idx >= c.reader.numChunks() {
		c.have = false
		return 0, false
	}
	if idx != c.chunkIdx {
		c.chunkIdx = idx
		if !c.loadChunk(idx) {
			c.have = false
			return 0, false
		}
	}
	for {
		if c.cc.done() {
			c.chunkIdx++
			if c.chunkIdx >= c.reader.numChunks() {
				c.have = false
				return 0, false
			}
			if !c.loadChunk(c.chunkIdx) {
				c.have = false
				return 0, false
			}
			continue
		}
		p, err := c.cc.advance()
		if err != nil {
			c.err = err
			c.have = false
			return 0, false
		}
		if p.Doc >= target {
			c.cur = p
			c.have = true
			return c.Peek()
		}
	}
}

// positions returns the current posting's decoded positions. Only valid
// while Peek reports the same doc id; callers that need to retain it past
// the next advance must copy.
func (c *atomCursor) positions() []Pos {
	if !c.have {
		return nil
	}
	return c.cur.Positions
}

func (c *atomCursor) EstimateSize() int {
	if c.reader == nil {
		return 0
	}
	remaining := c.reader.numChunks() - c.chunkIdx
	if remaining < 0 {
		remaining = 0
	}
	return remaining * MaxPostingsPerChunk
}

func (c *atomCursor) Err() error {
	return c.err
}
