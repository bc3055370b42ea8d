package boolidx

// Per-chunk posting-list wire format. A chunk is the unit of
// storage: it occupies exactly one Storage page, so its boundary is the
// page boundary and decoding simply runs until the page's bytes are
// exhausted — no separate posting count needs to be stored per chunk.
//
// Per posting, in order:
//   vbyte(doc_id_delta)   -- delta from the previous posting's doc id, or
//                             from the chunk's base doc id (the previous
//                             chunk's last doc id, 0 for the first chunk)
//                             for the chunk's first posting.
//   vbyte(position_count)
//   vbyte(position_delta) * position_count -- first delta is absolute
//                             (relative to position 0).

// MaxPostingsPerChunk bounds a chunk's posting count even when the
// backing page has room for more; it keeps skip_to's worst-case decode
// work bounded independent of page size.
const MaxPostingsPerChunk = 64

// appendPosting appends one posting's wire encoding to buf, given the doc
// id immediately preceding it in the stream (baseDoc), and returns the
// extended buffer.
func appendPosting(buf []byte, p Posting, baseDoc DocID) []byte {
	buf = appendVbyte(buf, p.Doc-baseDoc)
	buf = appendVbyte(buf, uint64(len(p.Positions)))
	var prev Pos
	for _, pos := range p.Positions {
		buf = appendVbyte(buf, uint64(pos-prev))
		prev = pos
	}
	return buf
}

// decodeChunk decodes every posting encoded in buf, given the doc id that
// precedes the chunk's first posting (baseDoc). It returns the decoded
// postings and the last doc id seen, which becomes the next chunk's
// baseDoc.
func decodeChunk(buf []byte, baseDoc DocID) ([]Posting, DocID, error) {
	r := vbyteReader{}
	r.reset(buf)
	last := baseDoc
	var out []Posting
	for !r.done() {
		delta, err := r.next()
		if err != nil {
			return nil, 0, err
		}
		last += delta
		count, err := r.next()
		if err != nil {
			return nil, 0, err
		}
		positions := make([]Pos, count)
		var pos Pos
		for i := uint64(0); i < count; i++ {
			d, err := r.next()
			if err != nil {
				return nil, 0, err
			}
			pos += Pos(d)
			positions[i] = pos
		}
		out = append(out, Posting{Doc: last, Positions: positions})
	}
	return out, last, nil
}

// chunkCursor decodes one chunk's postings lazily, one posting at a time,
// so an atom cursor never has to materialise a whole chunk to read its
// first matching posting. It reuses its positions buffer across postings
// within the same chunk to avoid per-posting allocation.
type chunkCursor struct {
	r    vbyteReader
	last DocID
	buf  []Pos
}

func (c *chunkCursor) reset(buf []byte, baseDoc DocID) {
	c.r.reset(buf)
	c.last = baseDoc
}

func (c *chunkCursor) done() bool {
	return c.r.done()
}

// advance decodes the next posting in the chunk.
func (c *chunkCursor) advance() (Posting, error) {
	delta, err := c.r.next()
	if err != nil {
		return Posting{}, err
	}
	c.last += delta
	count, err := c.r.next()
	if err != nil {
		return Posting{}, err
	}
	if cap(c.buf) < int(count) {
		c.buf = make([]Pos, count)
	}
	c.buf = c.buf[:count]
	var pos Pos
	for i := uint64(0); i < count; i++ {
		d, err := c.r.next()
		if err != nil {
			return Posting{}, err
		}
		pos += Pos(d)
		c.buf[i] = pos
	}
	return Posting{Doc: c.last, Positions: c.buf}, nil
}
