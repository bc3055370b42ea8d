package boolidx

import (
	"github.com/cockroachdb/errors"
)

// TermOccurrence is one (term, position) pair as streamed from a document
// during indexing. Positions must be strictly ascending within a
// document for a given term's occurrences as they are streamed.
type TermOccurrence[T any] struct {
	Term T
	Pos  Pos
}

// Terms converts a plain ordered term sequence into TermOccurrences with
// positions derived as the 0-based index into the sequence -- the common
// case described by the external analyzer contract. Document is the
// same []T shape the data model uses elsewhere.
func Terms[T any](doc []T) []TermOccurrence[T] {
	out := make([]TermOccurrence[T], len(doc))
	for i, t := range doc {
		out[i] = TermOccurrence[T]{Term: t, Pos: Pos(i)}
	}
	return out
}

// Builder ingests documents and produces an Index in one streaming pass
//. A Builder is single-producer: it must not be shared across
// goroutines during construction.
type Builder[T comparable] struct {
	codec TermCodec[T]
}

// NewBuilder constructs a Builder for term type T, using codec to order
// and (de)serialise terms.
func NewBuilder[T comparable](codec TermCodec[T]) *Builder[T] {
	return &Builder[T]{codec: codec}
}

// termAccum is the builder's per-term scratch state: the positions buffer
// for the posting currently being accumulated (lastDoc), any postings
// already completed but not yet flushed as a storage chunk, and the
// term's posting list entry and growing skip table.
type termAccum struct {
	entry         EntryID
	lastDoc       DocID
	haveOpen      bool
	openPositions []Pos
	pending       []Posting
	skip          []skipEntry
	docFreq       uint64
}

// flushChunk encodes every pending posting into one chunk and appends it
// as a single Storage page, extending the term's skip table.
func flushChunk(storage Storage, a *termAccum) error {
	if len(a.pending) == 0 {
		return nil
	}
	var buf []byte
	base := DocID(0)
	if len(a.skip) > 0 {
		base = a.skip[len(a.skip)-1].LastDoc
	}
	for _, p := range a.pending {
		buf = appendPosting(buf, p, base)
		base = p.Doc
	}
	page, err := storage.AppendPage(a.entry, buf)
	if err != nil {
		return errors.Wrapf(err, "entry %d: append chunk", a.entry)
	}
	a.skip = append(a.skip, skipEntry{LastDoc: base, Page: page})
	a.pending = a.pending[:0]
	return nil
}

// closeOpenPosting finishes the posting currently being accumulated (if
// any), queuing it for the next chunk flush.
func closeOpenPosting(storage Storage, a *termAccum) error {
	if !a.haveOpen {
		return nil
	}
	positions := append([]Pos(nil), a.openPositions...)
	a.pending = append(a.pending, Posting{Doc: a.lastDoc, Positions: positions})
	a.docFreq++
	a.haveOpen = false
	a.openPositions = a.openPositions[:0]
	if len(a.pending) >= MaxPostingsPerChunk {
		return flushChunk(storage, a)
	}
	return nil
}

// Build ingests docs into storage in one pass and returns the resulting
// Index. storage must be freshly created and exclusively owned by this
// call; on success it has been finalised and must not be written to
// again. On any error, storage is left as-is and is not finalised; for a
// filestore Storage that means the partial build stays in its temp
// directory (never at the target directory), and nothing here removes
// that temp directory.
func (b *Builder[T]) Build(storage Storage, docs func(yield func([]TermOccurrence[T]) bool)) (*Index[T], error) {
	terms := make(map[T]*termAccum)
	var docCount DocID

	var buildErr error
	docs(func(doc []TermOccurrence[T]) bool {
		for _, occ := range doc {
			a, ok := terms[occ.Term]
			if !ok {
				entry, err := storage.NewEntry()
				if err != nil {
					buildErr = errors.Wrap(err, "allocate posting-list entry")
					return false
				}
				a = &termAccum{entry: entry}
				terms[occ.Term] = a
			}
			if a.haveOpen && a.lastDoc == docCount {
				if len(a.openPositions) > 0 && occ.Pos <= a.openPositions[len(a.openPositions)-1] {
					buildErr = errors.Wrapf(ErrNonAscendingPositions, "doc %d", docCount)
					return false
				}
				a.openPositions = append(a.openPositions, occ.Pos)
				continue
			}
			if err := closeOpenPosting(storage, a); err != nil {
				buildErr = err
				return false
			}
			a.lastDoc = docCount
			a.haveOpen = true
			a.openPositions = append(a.openPositions[:0], occ.Pos)
		}
		docCount++
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}

	entries := make([]vocabEntry[T], 0, len(terms))
	for term, a := range terms {
		if err := closeOpenPosting(storage, a); err != nil {
			return nil, err
		}
		if err := flushChunk(storage, a); err != nil {
			return nil, err
		}
		header := encodePostingListHeader(a.skip)
		headerPage, err := storage.AppendPage(a.entry, header)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d: append header", a.entry)
		}
		entries = append(entries, vocabEntry[T]{
			Term:       term,
			DocFreq:    a.docFreq,
			Entry:      a.entry,
			HeaderPage: headerPage,
		})
	}
	// An empty vocabulary (no terms at all, e.g. every document was
	// empty) is explicitly permitted: it produces a valid, queryable
	// index that simply never matches anything.
	vocab := newVocabulary(b.codec, entries)

	if err := storage.WriteMeta("meta", encodeMeta(docCount, storage.PageSize())); err != nil {
		return nil, errors.Wrap(err, "write meta")
	}
	if err := storage.WriteMeta("vocab", vocab.encode()); err != nil {
		return nil, errors.Wrap(err, "write vocab")
	}
	if err := storage.Finalize(); err != nil {
		return nil, errors.Wrap(err, "finalize storage")
	}

	return &Index[T]{codec: b.codec, storage: storage, vocab: vocab, docCount: docCount}, nil
}
