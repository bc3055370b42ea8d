package boolidx

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors identifying each error kind from the design's error
// taxonomy. Wrap these with errors.Wrap / errors.Mark rather than
// constructing ad-hoc strings so callers can errors.Is against them.
var (
	// CodecError kinds.
	ErrTruncated = errors.New("boolidx: truncated vbyte value")
	ErrOverflow  = errors.New("boolidx: vbyte value overflows 64 bits")

	// StorageError kinds.
	ErrEntryNotFound  = errors.New("boolidx: entry not found")
	ErrCorrupted      = errors.New("boolidx: storage corrupted")
	ErrEntryImmutable = errors.New("boolidx: entry is read-only after finalisation")

	// BuildError kinds.
	ErrNonAscendingPositions = errors.New("boolidx: analyzer emitted non-ascending positions")
	ErrEmptyVocabulary       = errors.New("boolidx: index built with no terms")

	// QueryError kinds.
	ErrMalformedQuery = errors.New("boolidx: malformed query")

	// LoadError kinds.
	ErrBadMagic           = errors.New("boolidx: bad magic bytes")
	ErrUnsupportedVersion = errors.New("boolidx: unsupported index format version")
)

// CorruptedEntry wraps ErrCorrupted with the offending entry id.
func CorruptedEntry(id EntryID, detail string) error {
	return errors.Wrapf(ErrCorrupted, "entry %d: %s", id, detail)
}

// NotFoundEntry wraps ErrEntryNotFound with the offending entry id.
func NotFoundEntry(id EntryID) error {
	return errors.Wrapf(ErrEntryNotFound, "entry %d", id)
}
