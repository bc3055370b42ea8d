package boolidx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabxc/boolidx"
	"github.com/fabxc/boolidx/memstore"
)

func TestBuilderRejectsNonAscendingPositions(t *testing.T) {
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	_, err := b.Build(memstore.New(), func(yield func([]boolidx.TermOccurrence[string]) bool) {
		yield([]boolidx.TermOccurrence[string]{
			{Term: "a", Pos: 3},
			{Term: "a", Pos: 1},
		})
	})
	require.ErrorIs(t, err, boolidx.ErrNonAscendingPositions)
}

func TestBuilderRejectsRepeatedPosition(t *testing.T) {
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	_, err := b.Build(memstore.New(), func(yield func([]boolidx.TermOccurrence[string]) bool) {
		yield([]boolidx.TermOccurrence[string]{
			{Term: "a", Pos: 2},
			{Term: "a", Pos: 2},
		})
	})
	require.ErrorIs(t, err, boolidx.ErrNonAscendingPositions)
}

func TestBuilderAllowsEmptyVocabulary(t *testing.T) {
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	ix, err := b.Build(memstore.New(), func(yield func([]boolidx.TermOccurrence[string]) bool) {
		yield(nil)
		yield(nil)
	})
	require.NoError(t, err)
	defer ix.Close()

	require.Equal(t, boolidx.DocID(2), ix.DocumentCount())
	_, ok := ix.TermStats("anything")
	require.False(t, ok)
}

func TestBuilderManyPostingsSpanMultipleChunks(t *testing.T) {
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	const docs = boolidx.MaxPostingsPerChunk*3 + 5
	ix, err := b.Build(memstore.New(), func(yield func([]boolidx.TermOccurrence[string]) bool) {
		for i := 0; i < docs; i++ {
			if !yield(boolidx.Terms([]string{"common"})) {
				return
			}
		}
	})
	require.NoError(t, err)
	defer ix.Close()

	freq, ok := ix.TermStats("common")
	require.True(t, ok)
	require.Equal(t, uint64(docs), freq)

	c, err := ix.ExecuteQuery(boolidx.Atom[string]{Term: "common"})
	require.NoError(t, err)
	got, err := boolidx.Drain(c)
	require.NoError(t, err)
	require.Len(t, got, docs)
	require.Equal(t, boolidx.DocID(0), got[0])
	require.Equal(t, boolidx.DocID(docs-1), got[docs-1])
}
