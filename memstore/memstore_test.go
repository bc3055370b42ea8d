package memstore_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabxc/boolidx"
	"github.com/fabxc/boolidx/memstore"
)

func TestStorageAppendAndRead(t *testing.T) {
	s := memstore.New()

	id, err := s.NewEntry()
	require.NoError(t, err)

	p0, err := s.AppendPage(id, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 0, p0)

	p1, err := s.AppendPage(id, []byte("world"))
	require.NoError(t, err)
	require.Equal(t, 1, p1)

	n, err := s.PageCount(id)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := s.ReadChunk(id, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)

	r, err := s.Read(id)
	require.NoError(t, err)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("helloworld"), all)
}

func TestStorageMeta(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.WriteMeta("meta", []byte{1, 2, 3}))

	got, err := s.ReadMeta("meta")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)

	_, err = s.ReadMeta("missing")
	require.ErrorIs(t, err, boolidx.ErrEntryNotFound)
}

func TestStorageImmutableAfterFinalize(t *testing.T) {
	s := memstore.New()
	id, err := s.NewEntry()
	require.NoError(t, err)
	require.NoError(t, s.Finalize())

	_, err = s.NewEntry()
	require.ErrorIs(t, err, boolidx.ErrEntryImmutable)

	_, err = s.AppendPage(id, []byte("x"))
	require.ErrorIs(t, err, boolidx.ErrEntryImmutable)

	err = s.WriteMeta("meta", nil)
	require.ErrorIs(t, err, boolidx.ErrEntryImmutable)
}

func TestStorageUnknownEntry(t *testing.T) {
	s := memstore.New()
	_, err := s.ReadChunk(42, 0)
	require.ErrorIs(t, err, boolidx.ErrEntryNotFound)
}
