package boolidx

// Cursor is a stateful, forward-only, skippable iterator over a strictly
// ascending sequence of DocIDs. Every composer (AND, OR, Positional,
// Filter) is itself a Cursor, so compositions nest arbitrarily without
// allocating intermediate result sets.
//
// All cursor operations are synchronous and do bounded work per call: at
// most one chunk decode per advance, amortised O(1) per emitted doc id
// given the skip table.
type Cursor interface {
	// Peek returns the current candidate doc id without advancing. Stable
	// across repeated calls until Next or SkipTo is called.
	Peek() (DocID, bool)
	// Next advances past the current candidate and returns the new one.
	Next() (DocID, bool)
	// SkipTo advances to the least doc id >= target and returns it, or
	// false if the cursor is exhausted in doing so.
	SkipTo(target DocID) (DocID, bool)
	// EstimateSize is an upper bound on the number of doc ids the cursor
	// may still emit, used by composers to order children rarest-first.
	EstimateSize() int
	// Err returns any decode error encountered during advancement. A
	// cursor that has encountered an error reports itself as exhausted
	// (Peek/Next/SkipTo return false); callers must check Err once the
	// cursor is drained to distinguish a clean end from a corrupt read.
	Err() error
}

// emptyCursor never yields any doc id. Used as the zero-children edge case
// inside composers. (An atom on an unknown term is not an error either;
// it gets an inert atomCursor, see Index.openAtom.)
type emptyCursor struct{}

func (emptyCursor) Peek() (DocID, bool)          { return 0, false }
func (emptyCursor) Next() (DocID, bool)          { return 0, false }
func (emptyCursor) SkipTo(DocID) (DocID, bool)   { return 0, false }
func (emptyCursor) EstimateSize() int            { return 0 }
func (emptyCursor) Err() error                   { return nil }

// Drain exhausts c and returns every doc id it emits, in order. It is a
// convenience for tests and small callers; production query loops should
// prefer pulling from the Cursor directly to stay lazy.
func Drain(c Cursor) ([]DocID, error) {
	var out []DocID
	for id, ok := c.Peek(); ok; id, ok = c.Next() {
		out = append(out, id)
	}
	return out, c.Err()
}
