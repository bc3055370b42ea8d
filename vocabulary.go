package boolidx

import (
	"bytes"
	"sort"

	"github.com/cockroachdb/errors"
)

// vocabEntry maps one term to its document frequency and the EntryID of
// its posting list.
type vocabEntry[T any] struct {
	Term       T
	DocFreq    uint64
	Entry      EntryID
	HeaderPage int
}

// vocabulary is the read-only, build-time-immutable term -> posting-list
// mapping. Entries are kept sorted by codec.Compare so lookups are
// O(log n); encode writes them ordered by encoded term bytes so the
// persisted "vocab" file is deterministic.
type vocabulary[T any] struct {
	codec   TermCodec[T]
	entries []vocabEntry[T]
}

func newVocabulary[T any](codec TermCodec[T], entries []vocabEntry[T]) *vocabulary[T] {
	sort.Slice(entries, func(i, j int) bool {
		return codec.Compare(entries[i].Term, entries[j].Term) < 0
	})
	return &vocabulary[T]{codec: codec, entries: entries}
}

func (v *vocabulary[T]) lookup(term T) (vocabEntry[T], bool) {
	i := sort.Search(len(v.entries), func(i int) bool {
		return v.codec.Compare(v.entries[i].Term, term) >= 0
	})
	if i < len(v.entries) && v.codec.Compare(v.entries[i].Term, term) == 0 {
		return v.entries[i], true
	}
	return vocabEntry[T]{}, false
}

// encodeVocab serialises entries (one record per term, sorted by
// term bytes) into the "vocab" file format:
//
//	vbyte(len(term_bytes)) | term_bytes | vbyte(document_frequency) | vbyte(entry_id) | vbyte(header_page)
//
// header_page is the page index, within the entry, holding that posting
// list's skip table -- the skip table is written last (after every data
// chunk) rather than first, since Storage pages are immutable once
// written and the chunk count is not known until the posting list is
// complete.
func (v *vocabulary[T]) encode() []byte {
	termBytes := make([][]byte, len(v.entries))
	order := make([]int, len(v.entries))
	for i, e := range v.entries {
		termBytes[i] = v.codec.Encode(nil, e.Term)
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return bytes.Compare(termBytes[order[i]], termBytes[order[j]]) < 0
	})
	var buf []byte
	for _, i := range order {
		e := v.entries[i]
		buf = appendVbyte(buf, uint64(len(termBytes[i])))
		buf = append(buf, termBytes[i]...)
		buf = appendVbyte(buf, e.DocFreq)
		buf = appendVbyte(buf, e.Entry)
		buf = appendVbyte(buf, uint64(e.HeaderPage))
	}
	return buf
}

// decodeVocab parses the "vocab" file format produced by encode.
func decodeVocab[T any](codec TermCodec[T], data []byte) (*vocabulary[T], error) {
	r := vbyteReader{}
	r.reset(data)
	var entries []vocabEntry[T]
	for !r.done() {
		n, err := r.next()
		if err != nil {
			return nil, errors.Wrap(err, "vocab: term length")
		}
		if int(n) > len(r.buf)-r.pos {
			return nil, errors.Wrap(ErrTruncated, "vocab: term bytes")
		}
		termBytes := r.buf[r.pos : r.pos+int(n)]
		r.pos += int(n)
		term, err := codec.Decode(termBytes)
		if err != nil {
			return nil, errors.Wrap(err, "vocab: decode term")
		}
		freq, err := r.next()
		if err != nil {
			return nil, errors.Wrap(err, "vocab: document frequency")
		}
		entry, err := r.next()
		if err != nil {
			return nil, errors.Wrap(err, "vocab: entry id")
		}
		headerPage, err := r.next()
		if err != nil {
			return nil, errors.Wrap(err, "vocab: header page")
		}
		entries = append(entries, vocabEntry[T]{Term: term, DocFreq: freq, Entry: entry, HeaderPage: int(headerPage)})
	}
	// Entries are sorted by term bytes on disk; newVocabulary re-sorts
	// them by codec.Compare, the order lookup relies on.
	return newVocabulary(codec, entries), nil
}
