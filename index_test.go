package boolidx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fabxc/boolidx"
	"github.com/fabxc/boolidx/memstore"
	"github.com/fabxc/boolidx/queryutil"
)

// keeperCorpus is six short documents chosen so that every boolean and
// positional operator produces a distinct, hand-checkable result.
var keeperCorpus = [][]string{
	{"the", "night", "keeper", "will", "keep", "watch"},
	{"the", "day", "guard", "walked", "home"},
	{"keep", "the", "watch", "quietly"},
	{"night", "keeper", "sleeps", "again"},
	{"the", "night", "keeper", "will", "keep", "the", "watch"},
	{"the", "brave", "guard", "stands", "watch"},
}

func buildKeeperIndex(t *testing.T) *boolidx.Index[string] {
	t.Helper()
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	ix, err := b.Build(memstore.New(), func(yield func([]boolidx.TermOccurrence[string]) bool) {
		for _, doc := range keeperCorpus {
			if !yield(boolidx.Terms(doc)) {
				return
			}
		}
	})
	require.NoError(t, err)
	return ix
}

func runQuery(t *testing.T, ix *boolidx.Index[string], q boolidx.Query[string]) []boolidx.DocID {
	t.Helper()
	c, err := ix.ExecuteQuery(q)
	require.NoError(t, err)
	got, err := boolidx.Drain(c)
	require.NoError(t, err)
	return got
}

func TestIndexKeeperCorpus(t *testing.T) {
	ix := buildKeeperIndex(t)
	defer ix.Close()

	require.Equal(t, boolidx.DocID(6), ix.DocumentCount())

	cases := []struct {
		name string
		q    boolidx.Query[string]
		want []boolidx.DocID
	}{
		{"atom keeper", queryutil.Term("keeper"), []boolidx.DocID{0, 3, 4}},
		{"atom keep", queryutil.Term("keep"), []boolidx.DocID{0, 2, 4}},
		{"and keeper keep", queryutil.And[string](queryutil.Term("keeper"), queryutil.Term("keep")), []boolidx.DocID{0, 4}},
		{"or keeper keep", queryutil.Or[string](queryutil.Term("keeper"), queryutil.Term("keep")), []boolidx.DocID{0, 2, 3, 4}},
		{"phrase night keeper", queryutil.Phrase("night", "keeper"), []boolidx.DocID{0, 3, 4}},
		{"filter the not night", queryutil.Not[string](queryutil.Term("the"), queryutil.Term("night")), []boolidx.DocID{1, 2, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runQuery(t, ix, tc.q))
		})
	}
}

func TestIndexUnknownTerm(t *testing.T) {
	ix := buildKeeperIndex(t)
	defer ix.Close()
	require.Empty(t, runQuery(t, ix, queryutil.Term("dragon")))
}

func TestIndexSingleChildAndOr(t *testing.T) {
	ix := buildKeeperIndex(t)
	defer ix.Close()

	and := queryutil.And[string](queryutil.Term("keeper"))
	or := queryutil.Or[string](queryutil.Term("keeper"))
	require.Equal(t, []boolidx.DocID{0, 3, 4}, runQuery(t, ix, and))
	require.Equal(t, []boolidx.DocID{0, 3, 4}, runQuery(t, ix, or))
}

func TestIndexEmptyDocumentIsCounted(t *testing.T) {
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	ix, err := b.Build(memstore.New(), func(yield func([]boolidx.TermOccurrence[string]) bool) {
		yield(boolidx.Terms([]string{"lonely"}))
		yield(boolidx.Terms[string](nil))
	})
	require.NoError(t, err)
	defer ix.Close()

	require.Equal(t, boolidx.DocID(2), ix.DocumentCount())
	require.Equal(t, []boolidx.DocID{0}, runQuery(t, ix, queryutil.Term("lonely")))
}

func TestIndexLoadRoundTrip(t *testing.T) {
	s := memstore.New()
	b := boolidx.NewBuilder[string](boolidx.StringCodec{})
	_, err := b.Build(s, func(yield func([]boolidx.TermOccurrence[string]) bool) {
		for _, doc := range keeperCorpus {
			if !yield(boolidx.Terms(doc)) {
				return
			}
		}
	})
	require.NoError(t, err)

	loaded, err := boolidx.Load[string](s, boolidx.StringCodec{})
	require.NoError(t, err)
	defer loaded.Close()

	require.Equal(t, boolidx.DocID(6), loaded.DocumentCount())
	require.Equal(t, []boolidx.DocID{0, 3, 4}, runQuery(t, loaded, queryutil.Term("keeper")))

	freq, ok := loaded.TermStats("keeper")
	require.True(t, ok)
	require.Equal(t, uint64(3), freq)

	_, ok = loaded.TermStats("dragon")
	require.False(t, ok)
}
