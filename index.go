package boolidx

import "github.com/cockroachdb/errors"

// Index is the immutable, built inverted index: a vocabulary plus the
// Storage backing its posting lists. It is safe for concurrent use
// by arbitrarily many readers once built -- all per-query state lives in
// the Cursor returned by ExecuteQuery, never in the Index itself.
type Index[T any] struct {
	codec    TermCodec[T]
	storage  Storage
	vocab    *vocabulary[T]
	docCount DocID
}

// Load reconstructs an Index from a Storage previously produced by
// Builder.Build, reading its "meta" and "vocab" blobs. Storage's
// entry pages are read lazily by cursors as queries execute.
func Load[T any](storage Storage, codec TermCodec[T]) (*Index[T], error) {
	metaBytes, err := storage.ReadMeta("meta")
	if err != nil {
		return nil, errors.Wrap(err, "read meta")
	}
	info, err := decodeMeta(metaBytes)
	if err != nil {
		return nil, err
	}
	vocabBytes, err := storage.ReadMeta("vocab")
	if err != nil {
		return nil, errors.Wrap(err, "read vocab")
	}
	vocab, err := decodeVocab(codec, vocabBytes)
	if err != nil {
		return nil, err
	}
	return &Index[T]{codec: codec, storage: storage, vocab: vocab, docCount: info.DocCount}, nil
}

// DocumentCount returns the number of documents consumed when this Index
// was built, including empty ones.
func (ix *Index[T]) DocumentCount() DocID {
	return ix.docCount
}

// TermStats reports a term's document frequency, or false if the term
// never appeared in the indexed corpus.
func (ix *Index[T]) TermStats(term T) (docFreq uint64, ok bool) {
	e, ok := ix.vocab.lookup(term)
	if !ok {
		return 0, false
	}
	return e.DocFreq, true
}

// Close releases the Index's Storage.
func (ix *Index[T]) Close() error {
	return ix.storage.Close()
}

// openAtom resolves term to an atomCursor over its posting list. A term
// absent from the vocabulary yields an inert atomCursor (Peek reports
// exhausted) rather than an error -- an atom on an unknown term
// is not a QueryError.
func (ix *Index[T]) openAtom(term T) (*atomCursor, error) {
	e, ok := ix.vocab.lookup(term)
	if !ok {
		return &atomCursor{}, nil
	}
	reader, err := openPostingList(ix.storage, e.Entry, e.HeaderPage)
	if err != nil {
		return nil, err
	}
	return newAtomCursor(reader), nil
}

// ExecuteQuery compiles q against this Index and returns a lazy Cursor
// over the matching doc ids, ascending and duplicate-free. It is pure: it
// may be called repeatedly and concurrently against the same Index, since
// every call builds fresh cursor state.
func (ix *Index[T]) ExecuteQuery(q Query[T]) (Cursor, error) {
	return compileQuery(ix, q)
}

func compileQuery[T any](ix *Index[T], q Query[T]) (Cursor, error) {
	switch n := q.(type) {
	case Atom[T]:
		return ix.openAtom(n.Term)

	case NAry[T]:
		children := make([]Cursor, len(n.Children))
		for i, ch := range n.Children {
			c, err := compileQuery(ix, ch)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}
		switch n.Op {
		case And:
			return newAndCursor(children), nil
		case Or:
			return newOrCursor(children), nil
		default:
			return nil, errors.Wrap(ErrMalformedQuery, "unknown boolean operator")
		}

	case Positional[T]:
		if len(n.Children) == 0 {
			return nil, errors.Wrap(ErrMalformedQuery, "positional query with no children")
		}
		minOffset := n.Children[0].Offset
		for _, c := range n.Children[1:] {
			if c.Offset < minOffset {
				minOffset = c.Offset
			}
		}
		atoms := make([]*atomCursor, len(n.Children))
		offsets := make([]int64, len(n.Children))
		for i, c := range n.Children {
			a, err := ix.openAtom(c.Term)
			if err != nil {
				return nil, err
			}
			atoms[i] = a
			offsets[i] = int64(c.Offset - minOffset)
		}
		return newPositionalCursor(atoms, offsets), nil

	case Filter[T]:
		subject, err := compileQuery(ix, n.Subject)
		if err != nil {
			return nil, err
		}
		exclude, err := compileQuery(ix, n.Exclude)
		if err != nil {
			return nil, err
		}
		return newFilterCursor(subject, exclude), nil

	default:
		return nil, errors.Wrap(ErrMalformedQuery, "unknown query node type")
	}
}
