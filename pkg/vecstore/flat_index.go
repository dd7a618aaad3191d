// Package vecstore provides in-process vector storage: a flat L2 index,
// a single shared index for legacy ingestion, and a per-document store
// with federated search.
package vecstore

import (
	"encoding/gob"
	"fmt"
	"io"
	"sort"
	"sync"
)

// DimensionError is returned when a vector does not match the index dimension.
type DimensionError struct {
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: index expects %d, got %d", e.Want, e.Got)
}

// SearchResult is one nearest-neighbour hit. Distance is squared
// Euclidean, so smaller means closer.
type SearchResult struct {
	Position int
	Distance float32
}

// FlatIndex is a brute-force index over float32 vectors. The dimension
// is fixed by the first vector added. Searches may run concurrently;
// adds take the write lock.
type FlatIndex struct {
	mu      sync.RWMutex
	dim     int
	vectors [][]float32
}

func NewFlatIndex() *FlatIndex {
	return &FlatIndex{}
}

// Add appends vectors to the index. All vectors must share the dimension
// established by the first insert; on mismatch nothing is added.
func (x *FlatIndex) Add(vectors ...[]float32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("cannot add empty vector")
		}
		if x.dim == 0 {
			x.dim = len(v)
		}
		if len(v) != x.dim {
			return &DimensionError{Want: x.dim, Got: len(v)}
		}
	}
	for _, v := range vectors {
		cp := make([]float32, len(v))
		copy(cp, v)
		x.vectors = append(x.vectors, cp)
	}
	return nil
}

// Len returns the number of stored vectors.
func (x *FlatIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vectors)
}

// Dim returns the index dimension, 0 if nothing was added yet.
func (x *FlatIndex) Dim() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dim
}

// Search returns up to k results ordered by ascending distance. Ties keep
// insertion order. An empty index yields no results.
func (x *FlatIndex) Search(query []float32, k int) ([]SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(x.vectors) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != x.dim {
		return nil, &DimensionError{Want: x.dim, Got: len(query)}
	}

	results := make([]SearchResult, len(x.vectors))
	for i, v := range x.vectors {
		var dist float32
		for j := range v {
			d := query[j] - v[j]
			dist += d * d
		}
		results[i] = SearchResult{Position: i, Distance: dist}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Distance < results[b].Distance
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// flatIndexSnapshot is the gob wire form of a FlatIndex.
type flatIndexSnapshot struct {
	Dim     int
	Vectors [][]float32
}

// WriteTo serializes the index with gob.
func (x *FlatIndex) WriteTo(w io.Writer) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return gob.NewEncoder(w).Encode(flatIndexSnapshot{
		Dim:     x.dim,
		Vectors: x.vectors,
	})
}

// ReadFlatIndex restores an index previously written with WriteTo.
func ReadFlatIndex(r io.Reader) (*FlatIndex, error) {
	var snap flatIndexSnapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &FlatIndex{
		dim:     snap.Dim,
		vectors: snap.Vectors,
	}, nil
}
