// Package filestore is the persistent, directory-backed Storage
// realisation. Each entry is its own paged file managed by
// github.com/fabxc/pagebuf; meta blobs ("meta", "vocab") are plain files
// alongside them. A Storage under construction writes into a temp
// directory named with a random suffix (github.com/google/uuid) and is
// atomically published by Finalize, which os.Renames the temp directory
// into place. A reader never observes a
// partially built index.
package filestore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
	"github.com/fabxc/pagebuf"
	"github.com/google/uuid"

	"github.com/fabxc/boolidx"
)

const (
	defaultPageSize = 4096
	entriesDir      = "entries"
	checksumLen     = 8
)

// Options configures a Storage at construction time.
type Options struct {
	PageSize uint32
}

func (o Options) withDefaults() Options {
	if o.PageSize == 0 {
		o.PageSize = defaultPageSize
	}
	return o
}

// Storage is a directory-backed boolidx.Storage.
type Storage struct {
	mu sync.RWMutex

	workDir  string // temp dir while building, final dir once finalised or opened
	finalDir string // target directory; empty once finalisation has happened
	pageSize uint32

	entries    []*pagebuf.DB
	pageCounts []int

	readOnly  bool
	finalized bool
}

// Create prepares a new, writable Storage that will publish itself at dir
// once Finalize is called. dir must not already exist.
func Create(dir string, opts Options) (*Storage, error) {
	opts = opts.withDefaults()
	tmp := dir + ".building-" + uuid.New().String()
	if err := os.MkdirAll(filepath.Join(tmp, entriesDir), 0777); err != nil {
		return nil, errors.Wrapf(err, "create build directory %s", tmp)
	}
	return &Storage{workDir: tmp, finalDir: dir, pageSize: opts.PageSize}, nil
}

// Open opens a previously finalised Storage at dir for reading.
func Open(dir string, opts Options) (*Storage, error) {
	opts = opts.withDefaults()
	entDir := filepath.Join(dir, entriesDir)
	files, err := os.ReadDir(entDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read entries directory %s", entDir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	s := &Storage{workDir: dir, pageSize: opts.PageSize, readOnly: true, finalized: true}
	for _, f := range files {
		db, err := pagebuf.Open(filepath.Join(entDir, f.Name()), 0666, &pagebuf.Options{
			PageSize: int(opts.PageSize),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "open entry file %s", f.Name())
		}
		n, err := probePageCount(db)
		if err != nil {
			return nil, errors.Wrapf(err, "count pages in %s", f.Name())
		}
		s.entries = append(s.entries, db)
		s.pageCounts = append(s.pageCounts, n)
	}
	return s, nil
}

// probePageCount walks page ids from 0 until one is missing. Fresh
// per-entry pagebuf files are written with strictly sequential ids
// (filestore never skips an id), so the first miss is the page count.
func probePageCount(db *pagebuf.DB) (int, error) {
	tx, err := db.Begin(false)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	n := 0
	for {
		data, err := tx.Get(uint64(n))
		if err != nil || data == nil {
			break
		}
		n++
	}
	return n, nil
}

func entryFileName(id boolidx.EntryID) string {
	return fmt.Sprintf("%06d.pb", id)
}

func (s *Storage) NewEntry() (boolidx.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return 0, boolidx.ErrEntryImmutable
	}
	id := boolidx.EntryID(len(s.entries))
	path := filepath.Join(s.workDir, entriesDir, entryFileName(id))
	db, err := pagebuf.Open(path, 0666, &pagebuf.Options{PageSize: int(s.pageSize)})
	if err != nil {
		return 0, errors.Wrapf(err, "open entry file %s", path)
	}
	s.entries = append(s.entries, db)
	s.pageCounts = append(s.pageCounts, 0)
	return id, nil
}

// appendChecksum appends an xxhash64 trailer over data, detecting
// corruption from a torn write or a bit flip on disk.
func appendChecksum(data []byte) []byte {
	buf := make([]byte, len(data)+checksumLen)
	copy(buf, data)
	binary.LittleEndian.PutUint64(buf[len(data):], xxhash.Sum64(data))
	return buf
}

func verifyChecksum(buf []byte) ([]byte, error) {
	if len(buf) < checksumLen {
		return nil, errors.New("page too short to hold a checksum")
	}
	data := buf[:len(buf)-checksumLen]
	want := binary.LittleEndian.Uint64(buf[len(buf)-checksumLen:])
	if xxhash.Sum64(data) != want {
		return nil, errors.New("checksum mismatch")
	}
	return data, nil
}

func (s *Storage) AppendPage(id boolidx.EntryID, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return 0, boolidx.ErrEntryImmutable
	}
	if int(id) >= len(s.entries) {
		return 0, boolidx.NotFoundEntry(id)
	}
	db := s.entries[id]

	tx, err := db.Begin(true)
	if err != nil {
		return 0, errors.Wrapf(err, "entry %d: begin write", id)
	}
	pageID, err := tx.Add(appendChecksum(data))
	if err != nil {
		tx.Rollback()
		return 0, errors.Wrapf(err, "entry %d: add page", id)
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrapf(err, "entry %d: commit page", id)
	}
	s.pageCounts[id]++
	return int(pageID), nil
}

func (s *Storage) PageCount(id boolidx.EntryID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.pageCounts) {
		return 0, boolidx.NotFoundEntry(id)
	}
	return s.pageCounts[id], nil
}

func (s *Storage) ReadChunk(id boolidx.EntryID, pageIndex int) ([]byte, error) {
	s.mu.RLock()
	db, ok := s.entryAt(id)
	s.mu.RUnlock()
	if !ok {
		return nil, boolidx.NotFoundEntry(id)
	}

	tx, err := db.Begin(false)
	if err != nil {
		return nil, errors.Wrapf(err, "entry %d: begin read", id)
	}
	defer tx.Rollback()

	raw, err := tx.Get(uint64(pageIndex))
	if err != nil || raw == nil {
		return nil, boolidx.CorruptedEntry(id, "missing page")
	}
	data, err := verifyChecksum(raw)
	if err != nil {
		return nil, boolidx.CorruptedEntry(id, err.Error())
	}
	return data, nil
}

func (s *Storage) entryAt(id boolidx.EntryID) (*pagebuf.DB, bool) {
	if int(id) >= len(s.entries) {
		return nil, false
	}
	return s.entries[id], true
}

func (s *Storage) Read(id boolidx.EntryID) (io.ReadSeeker, error) {
	n, err := s.PageCount(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		chunk, err := s.ReadChunk(id, i)
		if err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}
	return bytes.NewReader(buf.Bytes()), nil
}

func (s *Storage) WriteMeta(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return boolidx.ErrEntryImmutable
	}
	path := filepath.Join(s.workDir, name)
	if err := os.WriteFile(path, data, 0666); err != nil {
		return errors.Wrapf(err, "write meta file %s", path)
	}
	return nil
}

func (s *Storage) ReadMeta(name string) ([]byte, error) {
	s.mu.RLock()
	dir := s.workDir
	s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(boolidx.ErrEntryNotFound, "meta %q", name)
		}
		return nil, errors.Wrapf(err, "read meta file %s", name)
	}
	return data, nil
}

// Finalize makes a Storage under construction durable and visible. Every
// page and meta write up to this point has already been committed (each
// AppendPage is its own committed pagebuf transaction), so the only
// remaining step is to atomically publish the build directory: rename it
// into place so a concurrent reader either sees the whole finished index
// or none of it. A Storage opened with Open is already final and
// Finalize is a no-op.
func (s *Storage) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finalized {
		return nil
	}
	if err := os.Rename(s.workDir, s.finalDir); err != nil {
		return errors.Wrapf(err, "publish %s as %s", s.workDir, s.finalDir)
	}
	s.workDir = s.finalDir
	s.finalDir = ""
	s.readOnly = true
	s.finalized = true
	return nil
}

// Close releases every open entry file's handle.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for _, db := range s.entries {
		if err := db.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Storage) PageSize() uint32 {
	return s.pageSize
}

var _ boolidx.Storage = (*Storage)(nil)
