package vecstore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatIndexSearchOrdersByDistance(t *testing.T) {
	idx := NewFlatIndex()
	require.NoError(t, idx.Add(
		[]float32{0, 0},
		[]float32{3, 0},
		[]float32{1, 0},
	))

	hits, err := idx.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, 0, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 1, hits[2].Position)

	// Squared L2, not Euclidean.
	assert.Equal(t, float32(9), hits[2].Distance)
}

func TestFlatIndexSearchTruncatesToK(t *testing.T) {
	idx := NewFlatIndex()
	require.NoError(t, idx.Add([]float32{0}, []float32{1}, []float32{2}))

	hits, err := idx.Search([]float32{0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	// k beyond the index size returns everything.
	hits, err = idx.Search([]float32{0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestFlatIndexDimensionMismatch(t *testing.T) {
	idx := NewFlatIndex()
	require.NoError(t, idx.Add([]float32{1, 2, 3}))

	err := idx.Add([]float32{1, 2})
	require.Error(t, err)
	var dimErr *DimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 3, dimErr.Want)
	assert.Equal(t, 2, dimErr.Got)

	_, err = idx.Search([]float32{1}, 1)
	require.ErrorAs(t, err, &dimErr)
}

func TestFlatIndexEmptySearch(t *testing.T) {
	idx := NewFlatIndex()
	hits, err := idx.Search([]float32{1, 2}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFlatIndexGobRoundTrip(t *testing.T) {
	idx := NewFlatIndex()
	require.NoError(t, idx.Add([]float32{1, 0}, []float32{0, 1}))

	var buf bytes.Buffer
	require.NoError(t, idx.WriteTo(&buf))

	restored, err := ReadFlatIndex(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Len())
	assert.Equal(t, 2, restored.Dim())

	hits, err := restored.Search([]float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Position)
}
