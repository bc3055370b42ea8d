package boolidx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkRoundTrip(t *testing.T) {
	postings := []Posting{
		{Doc: 3, Positions: []Pos{0, 5, 9}},
		{Doc: 7, Positions: []Pos{2}},
		{Doc: 8, Positions: []Pos{0, 1, 2, 100}},
	}
	var buf []byte
	base := DocID(0)
	for _, p := range postings {
		buf = appendPosting(buf, p, base)
		base = p.Doc
	}

	got, last, err := decodeChunk(buf, 0)
	require.NoError(t, err)
	require.Equal(t, postings, got)
	require.Equal(t, DocID(8), last)
}

func TestChunkCursorAdvance(t *testing.T) {
	postings := []Posting{
		{Doc: 1, Positions: []Pos{0}},
		{Doc: 4, Positions: []Pos{1, 3}},
	}
	var buf []byte
	base := DocID(0)
	for _, p := range postings {
		buf = appendPosting(buf, p, base)
		base = p.Doc
	}

	c := &chunkCursor{}
	c.reset(buf, 0)

	var got []Posting
	for !c.done() {
		p, err := c.advance()
		require.NoError(t, err)
		cp := Posting{Doc: p.Doc, Positions: append([]Pos(nil), p.Positions...)}
		got = append(got, cp)
	}
	require.Equal(t, postings, got)
}

func TestChunkBaseDocNonZero(t *testing.T) {
	p := Posting{Doc: 20, Positions: []Pos{4, 5}}
	buf := appendPosting(nil, p, 15)

	got, last, err := decodeChunk(buf, 15)
	require.NoError(t, err)
	require.Equal(t, []Posting{p}, got)
	require.Equal(t, DocID(20), last)
}
