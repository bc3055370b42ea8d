// Package memstore is the volatile Storage realisation: every entry and
// meta blob lives in process memory and is discarded with the Storage
// value. It is the fast path for tests and for short-lived indexes that
// never need to survive a restart.
package memstore

import (
	"bytes"
	"io"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/fabxc/boolidx"
)

const defaultPageSize = 4096

// Storage is an in-memory boolidx.Storage. The zero value is not usable;
// construct with New.
type Storage struct {
	mu        sync.RWMutex
	entries   [][][]byte
	meta      map[string][]byte
	pageSize  uint32
	finalized bool
}

// New returns an empty, writable Storage.
func New() *Storage {
	return &Storage{
		meta:     make(map[string][]byte),
		pageSize: defaultPageSize,
	}
}

// NewWithPageSize is like New but records pageSize into the "meta" file at
// build time instead of the default.
func NewWithPageSize(pageSize uint32) *Storage {
	s := New()
	s.pageSize = pageSize
	return s
}

func (s *Storage) NewEntry() (boolidx.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return 0, boolidx.ErrEntryImmutable
	}
	id := boolidx.EntryID(len(s.entries))
	s.entries = append(s.entries, nil)
	return id, nil
}

func (s *Storage) AppendPage(id boolidx.EntryID, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return 0, boolidx.ErrEntryImmutable
	}
	if int(id) >= len(s.entries) {
		return 0, boolidx.NotFoundEntry(id)
	}
	page := append([]byte(nil), data...)
	s.entries[id] = append(s.entries[id], page)
	return len(s.entries[id]) - 1, nil
}

func (s *Storage) PageCount(id boolidx.EntryID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.entries) {
		return 0, boolidx.NotFoundEntry(id)
	}
	return len(s.entries[id]), nil
}

func (s *Storage) ReadChunk(id boolidx.EntryID, pageIndex int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.entries) {
		return nil, boolidx.NotFoundEntry(id)
	}
	pages := s.entries[id]
	if pageIndex < 0 || pageIndex >= len(pages) {
		return nil, boolidx.CorruptedEntry(id, "page index out of range")
	}
	return pages[pageIndex], nil
}

func (s *Storage) Read(id boolidx.EntryID) (io.ReadSeeker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.entries) {
		return nil, boolidx.NotFoundEntry(id)
	}
	var buf bytes.Buffer
	for _, page := range s.entries[id] {
		buf.Write(page)
	}
	return bytes.NewReader(buf.Bytes()), nil
}

func (s *Storage) WriteMeta(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return boolidx.ErrEntryImmutable
	}
	s.meta[name] = append([]byte(nil), data...)
	return nil
}

func (s *Storage) ReadMeta(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.meta[name]
	if !ok {
		return nil, errors.Wrapf(boolidx.ErrEntryNotFound, "meta %q", name)
	}
	return data, nil
}

// Finalize marks the Storage read-only. There is no temp directory or
// fsync step for a volatile store; it just flips the write guard.
func (s *Storage) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized = true
	return nil
}

// Close is a no-op: there are no file handles to release.
func (s *Storage) Close() error {
	return nil
}

func (s *Storage) PageSize() uint32 {
	return s.pageSize
}

var _ boolidx.Storage = (*Storage)(nil)
