package boolidx

// On-disk posting-list layout: an entry holds one
// vbyte-encoded chunk of postings (chunk.go) per data page, followed by a
// final header page -- the chunk count followed by one (last_doc_id,
// page_id) skip-table pair per chunk. The header is written last, and its
// page index is recorded separately in the vocabulary (vocabEntry.HeaderPage),
// because pages are immutable once written and the chunk count is not known
// until every posting for the term has been streamed.

type skipEntry struct {
	LastDoc DocID
	Page    int
}

// encodePostingListHeader serialises the skip table for an entry with the
// given chunk boundaries.
func encodePostingListHeader(skip []skipEntry) []byte {
	buf := appendVbyte(nil, uint64(len(skip)))
	for _, e := range skip {
		buf = appendVbyte(buf, e.LastDoc)
		buf = appendVbyte(buf, uint64(e.Page))
	}
	return buf
}

func decodePostingListHeader(buf []byte) ([]skipEntry, error) {
	r := vbyteReader{}
	r.reset(buf)
	n, err := r.next()
	if err != nil {
		return nil, err
	}
	skip := make([]skipEntry, n)
	for i := range skip {
		last, err := r.next()
		if err != nil {
			return nil, err
		}
		page, err := r.next()
		if err != nil {
			return nil, err
		}
		skip[i] = skipEntry{LastDoc: last, Page: int(page)}
	}
	return skip, nil
}

// postingListReader provides random access to one term's posting list via
// its skip table, used by atomCursor to implement SkipTo without decoding
// intervening chunks.
type postingListReader struct {
	storage Storage
	entry   EntryID
	skip    []skipEntry
}

func openPostingList(storage Storage, entry EntryID, headerPage int) (*postingListReader, error) {
	header, err := storage.ReadChunk(entry, headerPage)
	if err != nil {
		return nil, err
	}
	skip, err := decodePostingListHeader(header)
	if err != nil {
		return nil, CorruptedEntry(entry, err.Error())
	}
	return &postingListReader{storage: storage, entry: entry, skip: skip}, nil
}

func (r *postingListReader) numChunks() int {
	return len(r.skip)
}

// baseDoc returns the doc id that chunk i's deltas are relative to: the
// previous chunk's last doc id, or 0 for the first chunk.
func (r *postingListReader) baseDoc(i int) DocID {
	if i == 0 {
		return 0
	}
	return r.skip[i-1].LastDoc
}

func (r *postingListReader) lastDoc(i int) DocID {
	return r.skip[i].LastDoc
}

// chunkBytes returns the raw encoded bytes of chunk i.
func (r *postingListReader) chunkBytes(i int) ([]byte, error) {
	return r.storage.ReadChunk(r.entry, r.skip[i].Page)
}

// findChunk returns the index of the first chunk whose last doc id is >=
// target, or len(r.skip) if target is past every chunk. Chunks are
// ordered by ascending LastDoc, so a linear scan from lo suffices for the
// typical small skip tables this engine produces; a binary search would
// also be correct and is used when the table grows large.
func (r *postingListReader) findChunk(lo int, target DocID) int {
	n := len(r.skip)
	if n-lo > 16 {
		i, j := lo, n
		for i < j {
			m := (i + j) / 2
			if r.skip[m].LastDoc < target {
				i = m + 1
			} else {
				j = m
			}
		}
		return i
	}
	i := lo
	for i < n && r.skip[i].LastDoc < target {
		i++
	}
	return i
}
