package boolidx

// Query is a node in the boolean query AST. Construction
// is side-effect free; all behaviour lives in the cursors built by
// compileQuery (see index.go and cursor.go).
type Query[T any] interface {
	isQuery()
}

// Atom matches every document containing Term. Offset is non-zero only
// when the Atom is a child of a Positional node, where it names the
// term's position relative to the Positional's other children.
type Atom[T any] struct {
	Term   T
	Offset int
}

func (Atom[T]) isQuery() {}

// BoolOp names the n-ary boolean operator of a NAry node.
type BoolOp int

const (
	And BoolOp = iota
	Or
)

// NAry is a conjunction (And) or disjunction (Or) of one or more
// children, evaluated left to right for tie-breaking purposes.
type NAry[T any] struct {
	Op       BoolOp
	Children []Query[T]
}

func (NAry[T]) isQuery() {}

// Positional matches documents in which every child Atom occurs at the
// position implied by its Offset relative to Children[0] — a phrase query
// is the special case where offsets are 0, 1, 2, ....
//
// Offsets are relative: compileQuery always subtracts the minimum offset
// across all children before evaluating, so the smallest becomes 0 and
// callers may supply offsets in any consistent relative scale.
type Positional[T any] struct {
	Children []Atom[T]
}

func (Positional[T]) isQuery() {}

// Filter matches Subject ∧ ¬Exclude, evaluated lazily: Exclude's matches
// are skipped over, never materialised into a set.
type Filter[T any] struct {
	Subject Query[T]
	Exclude Query[T]
}

func (Filter[T]) isQuery() {}
