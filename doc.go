// Package boolidx is a generic boolean information-retrieval engine built
// around an inverted index. It indexes sequences of documents, each a
// sequence of terms of an arbitrary ordered, hashable, byte-serialisable
// type, and answers boolean queries (atom, conjunction, disjunction,
// phrase, filter) over the resulting posting lists without materialising
// intermediate result sets.
//
// Tokenisation and query-syntax sugar are intentionally left to callers;
// see the queryutil subpackage for the latter.
package boolidx
