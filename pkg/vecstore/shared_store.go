package vecstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	sharedIndexFile    = "index.gob"
	sharedMetadataFile = "metadata.json"
	sharedDocsFile     = "documents.json"
)

// ChunkMeta is the metadata stored alongside each vector of the shared index.
type ChunkMeta struct {
	Chunk    string `json:"chunk"`
	Source   string `json:"source"`
	FileType string `json:"file_type"`
}

// SharedStore is the legacy single-index store: every uploaded document
// appends its vectors to one shared FlatIndex. Chunk metadata is kept in
// a parallel slice, positions returned by the index address it directly.
type SharedStore struct {
	mu    sync.RWMutex
	dir   string
	index *FlatIndex
	metas []ChunkMeta
	docs  []string // document names in upload order, deduplicated
}

// NewSharedStore opens (or creates) a shared store rooted at dir.
func NewSharedStore(dir string) (*SharedStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := &SharedStore{
		dir:   dir,
		index: NewFlatIndex(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SharedStore) load() error {
	f, err := os.Open(filepath.Join(s.dir, sharedIndexFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	idx, err := ReadFlatIndex(f)
	if err != nil {
		return err
	}

	metaBytes, err := os.ReadFile(filepath.Join(s.dir, sharedMetadataFile))
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	var metas []ChunkMeta
	if err := json.Unmarshal(metaBytes, &metas); err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}

	var docs []string
	if docBytes, err := os.ReadFile(filepath.Join(s.dir, sharedDocsFile)); err == nil {
		if err := json.Unmarshal(docBytes, &docs); err != nil {
			return fmt.Errorf("parse documents: %w", err)
		}
	}

	if idx.Len() != len(metas) {
		return fmt.Errorf("store corrupted: %d vectors but %d metadata entries", idx.Len(), len(metas))
	}

	s.index = idx
	s.metas = metas
	s.docs = docs
	return nil
}

// Add appends vectors with their metadata and persists the store.
// Vectors and metas must be parallel.
func (s *SharedStore) Add(vectors [][]float32, metas []ChunkMeta) error {
	if len(vectors) != len(metas) {
		return fmt.Errorf("vectors and metadata length mismatch: %d vs %d", len(vectors), len(metas))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Add(vectors...); err != nil {
		return err
	}
	s.metas = append(s.metas, metas...)

	for _, m := range metas {
		if !containsString(s.docs, m.Source) {
			s.docs = append(s.docs, m.Source)
		}
	}

	return s.persist()
}

// Search returns up to k chunk metadata entries ordered by ascending distance.
func (s *SharedStore) Search(query []float32, k int) ([]ChunkMeta, []float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits, err := s.index.Search(query, k)
	if err != nil {
		return nil, nil, err
	}
	metas := make([]ChunkMeta, len(hits))
	dists := make([]float32, len(hits))
	for i, h := range hits {
		metas[i] = s.metas[h.Position]
		dists[i] = h.Distance
	}
	return metas, dists, nil
}

// Documents returns the names of all uploaded documents in upload order.
func (s *SharedStore) Documents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.docs))
	copy(out, s.docs)
	return out
}

// Len returns the number of indexed vectors.
func (s *SharedStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}

// Dim returns the index dimension.
func (s *SharedStore) Dim() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Dim()
}

// persist writes index and metadata through temp files so a crash cannot
// leave a half-written store. Caller must hold the write lock.
func (s *SharedStore) persist() error {
	tmpIndex := filepath.Join(s.dir, sharedIndexFile+".tmp")
	f, err := os.Create(tmpIndex)
	if err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := s.index.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpIndex, filepath.Join(s.dir, sharedIndexFile)); err != nil {
		return err
	}

	if err := writeJSONAtomic(filepath.Join(s.dir, sharedMetadataFile), s.metas); err != nil {
		return err
	}
	return writeJSONAtomic(filepath.Join(s.dir, sharedDocsFile), s.docs)
}

func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
