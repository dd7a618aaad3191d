package vecstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTestDoc(t *testing.T, s *DocumentStore, id string, vectors [][]float32, chunks []string, source string) string {
	t.Helper()
	saved, err := s.SaveDocument(id, vectors, chunks, source, DocumentInfo{
		OriginalFilename: source,
		FileType:         "txt",
		UploadDate:       time.Now(),
		Characters:       100,
	})
	require.NoError(t, err)
	return saved
}

func TestDocumentStoreSaveAndReload(t *testing.T) {
	base := t.TempDir()

	s, err := NewDocumentStore(base)
	require.NoError(t, err)

	id := saveTestDoc(t, s, "report-2024", [][]float32{{1, 0}, {0, 1}}, []string{"alpha", "beta"}, "report.txt")
	assert.Equal(t, "report-2024", id)

	// Reopen from disk.
	s2, err := NewDocumentStore(base)
	require.NoError(t, err)
	require.True(t, s2.HasDocument("report-2024"))

	stats := s2.GetDocumentStats("report-2024")
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Vectors)
	assert.Equal(t, 2, stats.Chunks)
	assert.Equal(t, 2, stats.Dimension)
	assert.Equal(t, "report.txt", stats.OriginalFilename)
}

func TestDocumentStoreSanitizesID(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	id := saveTestDoc(t, s, "my doc/v1!", [][]float32{{1}}, []string{"x"}, "doc.txt")
	assert.Equal(t, "my_doc_v1_", id)
	assert.True(t, s.HasDocument("my doc/v1!"))
	assert.True(t, s.HasDocument("my_doc_v1_"))
}

func TestDocumentStoreDelete(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	saveTestDoc(t, s, "a", [][]float32{{1}}, []string{"x"}, "a.txt")

	deleted, err := s.DeleteDocument("a")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, s.HasDocument("a"))

	deleted, err = s.DeleteDocument("a")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDocumentStoreFederatedSearch(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	saveTestDoc(t, s, "near", [][]float32{{1, 0}, {2, 0}}, []string{"n1", "n2"}, "near.txt")
	saveTestDoc(t, s, "far", [][]float32{{10, 0}, {11, 0}}, []string{"f1", "f2"}, "far.txt")

	hits, err := s.SearchDocuments([]float32{0, 0}, 3, nil)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// Globally re-ranked: both chunks of "near" beat anything in "far".
	assert.Equal(t, "n1", hits[0].Chunk)
	assert.Equal(t, "n2", hits[1].Chunk)
	assert.Equal(t, "f1", hits[2].Chunk)
	assert.Equal(t, "near.txt", hits[0].Source)
	assert.True(t, hits[0].Distance <= hits[1].Distance)
	assert.True(t, hits[1].Distance <= hits[2].Distance)
}

func TestDocumentStoreSearchScope(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	saveTestDoc(t, s, "near", [][]float32{{1, 0}}, []string{"n1"}, "near.txt")
	saveTestDoc(t, s, "far", [][]float32{{10, 0}}, []string{"f1"}, "far.txt")

	// Scoped to "far" only; unknown IDs are skipped, not fatal.
	hits, err := s.SearchDocuments([]float32{0, 0}, 5, []string{"far", "missing"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "f1", hits[0].Chunk)
}

func TestDocumentStoreReplaceExisting(t *testing.T) {
	s, err := NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	saveTestDoc(t, s, "doc", [][]float32{{1}, {2}}, []string{"old1", "old2"}, "old.txt")
	saveTestDoc(t, s, "doc", [][]float32{{3}}, []string{"new"}, "new.txt")

	stats := s.GetDocumentStats("doc")
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Vectors)
	assert.Equal(t, "new.txt", stats.OriginalFilename)
	assert.Equal(t, 1, s.TotalVectors())
}
