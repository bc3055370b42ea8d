package filestore_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabxc/boolidx"
	"github.com/fabxc/boolidx/filestore"
)

func TestCreateAppendFinalizeOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")

	s, err := filestore.Create(dir, filestore.Options{PageSize: 512})
	require.NoError(t, err)

	id, err := s.NewEntry()
	require.NoError(t, err)

	p0, err := s.AppendPage(id, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 0, p0)

	p1, err := s.AppendPage(id, []byte("world"))
	require.NoError(t, err)
	require.Equal(t, 1, p1)

	require.NoError(t, s.WriteMeta("meta", []byte{9, 9}))
	require.NoError(t, s.Finalize())
	require.NoError(t, s.Close())

	opened, err := filestore.Open(dir, filestore.Options{PageSize: 512})
	require.NoError(t, err)
	defer opened.Close()

	n, err := opened.PageCount(id)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := opened.ReadChunk(id, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)

	r, err := opened.Read(id)
	require.NoError(t, err)
	all, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("helloworld"), all)

	meta, err := opened.ReadMeta("meta")
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9}, meta)
}

func TestOpenedStorageIsReadOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	s, err := filestore.Create(dir, filestore.Options{PageSize: 512})
	require.NoError(t, err)
	require.NoError(t, s.Finalize())
	require.NoError(t, s.Close())

	opened, err := filestore.Open(dir, filestore.Options{PageSize: 512})
	require.NoError(t, err)
	defer opened.Close()

	_, err = opened.NewEntry()
	require.ErrorIs(t, err, boolidx.ErrEntryImmutable)
}
