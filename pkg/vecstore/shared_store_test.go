package vecstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedStoreAddSearchPersist(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSharedStore(dir)
	require.NoError(t, err)

	err = s.Add(
		[][]float32{{1, 0}, {0, 1}},
		[]ChunkMeta{
			{Chunk: "first", Source: "a.txt", FileType: "txt"},
			{Chunk: "second", Source: "b.pdf", FileType: "pdf"},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.pdf"}, s.Documents())

	metas, dists, err := s.Search([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "first", metas[0].Chunk)
	assert.Equal(t, float32(0), dists[0])

	// Reopen from disk.
	s2, err := NewSharedStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, s2.Len())
	assert.Equal(t, 2, s2.Dim())
	assert.Equal(t, []string{"a.txt", "b.pdf"}, s2.Documents())
}

func TestSharedStoreDeduplicatesSources(t *testing.T) {
	s, err := NewSharedStore(t.TempDir())
	require.NoError(t, err)

	err = s.Add(
		[][]float32{{1}, {2}, {3}},
		[]ChunkMeta{
			{Chunk: "c1", Source: "a.txt"},
			{Chunk: "c2", Source: "a.txt"},
			{Chunk: "c3", Source: "b.txt"},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, s.Documents())
}

func TestSharedStoreLengthMismatch(t *testing.T) {
	s, err := NewSharedStore(t.TempDir())
	require.NoError(t, err)

	err = s.Add([][]float32{{1}}, []ChunkMeta{})
	assert.Error(t, err)
}
