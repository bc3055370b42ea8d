// Package queryutil provides small, readable constructors for
// boolidx.Query values, the way callers actually build queries rather
// than composing the AST node types by hand.
package queryutil

import "github.com/fabxc/boolidx"

// Term matches every document containing t.
func Term[T any](t T) boolidx.Query[T] {
	return boolidx.Atom[T]{Term: t}
}

// And matches documents satisfying every child query. And() with no
// children matches nothing; And(q) with one child is equivalent to q.
func And[T any](children ...boolidx.Query[T]) boolidx.Query[T] {
	return boolidx.NAry[T]{Op: boolidx.And, Children: children}
}

// Or matches documents satisfying any child query. Or() with no children
// matches nothing; Or(q) with one child is equivalent to q.
func Or[T any](children ...boolidx.Query[T]) boolidx.Query[T] {
	return boolidx.NAry[T]{Op: boolidx.Or, Children: children}
}

// Phrase matches documents in which terms occur consecutively in the
// given order, e.g. Phrase("night", "keeper") matches the adjacent
// occurrence "night keeper".
func Phrase[T any](terms ...T) boolidx.Query[T] {
	atoms := make([]boolidx.Atom[T], len(terms))
	for i, t := range terms {
		atoms[i] = boolidx.Atom[T]{Term: t, Offset: i}
	}
	return boolidx.Positional[T]{Children: atoms}
}

// Not matches documents satisfying subject but not exclude.
func Not[T any](subject, exclude boolidx.Query[T]) boolidx.Query[T] {
	return boolidx.Filter[T]{Subject: subject, Exclude: exclude}
}
