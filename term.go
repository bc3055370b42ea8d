package boolidx

import "bytes"

// TermCodec erases a term type T to the capability set the engine actually
// needs: total order (for sorting the in-memory vocabulary that lookups
// binary-search) and byte serialisation both ways (for the on-disk
// vocab format and for reconstructing T when an Index is loaded back).
// Equality falls out of Compare == 0.
type TermCodec[T any] interface {
	// Compare returns a negative number if a < b, zero if a == b, and a
	// positive number if a > b.
	Compare(a, b T) int
	// Encode appends the byte serialisation of t to buf and returns the
	// extended slice.
	Encode(buf []byte, t T) []byte
	// Decode parses a T from the bytes previously produced by Encode.
	Decode(buf []byte) (T, error)
}

// StringCodec is the TermCodec for plain string terms, the common case
// when terms come from a text analyzer.
type StringCodec struct{}

func (StringCodec) Compare(a, b string) int {
	return bytes.Compare([]byte(a), []byte(b))
}

func (StringCodec) Encode(buf []byte, t string) []byte {
	return append(buf, t...)
}

func (StringCodec) Decode(buf []byte) (string, error) {
	return string(buf), nil
}

var _ TermCodec[string] = StringCodec{}
