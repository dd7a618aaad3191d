package vecstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const (
	docIndexFile  = "index.gob"
	docChunksFile = "chunks.json"
	docInfoFile   = "info.json"
)

// DocumentInfo describes one ingested document.
type DocumentInfo struct {
	DocID            string    `json:"doc_id,omitempty"`
	OriginalFilename string    `json:"original_filename"`
	FileType         string    `json:"file_type"`
	UploadDate       time.Time `json:"upload_date"`
	Characters       int       `json:"characters"`
	Chunks           int       `json:"chunks"`
	Vectors          int       `json:"vectors"`
}

// DocumentStats extends DocumentInfo with index-level detail.
type DocumentStats struct {
	DocumentInfo
	Dimension int `json:"dimension"`
}

// ScoredChunk is one hit of a federated search across documents.
type ScoredChunk struct {
	Chunk    string
	Source   string
	Distance float32
}

// chunkPayload is the on-disk form of a document's chunks.
type chunkPayload struct {
	Source string   `json:"source"`
	Chunks []string `json:"chunks"`
}

type documentEntry struct {
	index  *FlatIndex
	chunks []string
	source string
	info   DocumentInfo
}

// DocumentStore keeps one isolated FlatIndex per document under its own
// directory. Saves are atomic (temp dir then rename), deletes remove the
// whole directory, and search federates across the selected documents.
type DocumentStore struct {
	mu   sync.RWMutex
	base string
	docs map[string]*documentEntry
}

// NewDocumentStore opens a store rooted at base, loading every document
// directory found there.
func NewDocumentStore(base string) (*DocumentStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	s := &DocumentStore{
		base: base,
		docs: make(map[string]*documentEntry),
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("scan store dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		doc, err := loadDocument(filepath.Join(base, e.Name()))
		if err != nil {
			log.Printf("[WARN] Skipping unreadable document dir %s: %v", e.Name(), err)
			continue
		}
		s.docs[e.Name()] = doc
	}
	return s, nil
}

func loadDocument(dir string) (*documentEntry, error) {
	f, err := os.Open(filepath.Join(dir, docIndexFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := ReadFlatIndex(f)
	if err != nil {
		return nil, err
	}

	chunkBytes, err := os.ReadFile(filepath.Join(dir, docChunksFile))
	if err != nil {
		return nil, err
	}
	var payload chunkPayload
	if err := json.Unmarshal(chunkBytes, &payload); err != nil {
		return nil, err
	}

	infoBytes, err := os.ReadFile(filepath.Join(dir, docInfoFile))
	if err != nil {
		return nil, err
	}
	var info DocumentInfo
	if err := json.Unmarshal(infoBytes, &info); err != nil {
		return nil, err
	}

	if idx.Len() != len(payload.Chunks) {
		return nil, fmt.Errorf("document corrupted: %d vectors but %d chunks", idx.Len(), len(payload.Chunks))
	}

	return &documentEntry{
		index:  idx,
		chunks: payload.Chunks,
		source: payload.Source,
		info:   info,
	}, nil
}

// SanitizeDocID maps a raw document ID onto the filesystem-safe alphabet:
// letters, digits, '-' and '_' pass through, everything else becomes '_'.
func SanitizeDocID(docID string) string {
	out := make([]rune, 0, len(docID))
	for _, r := range docID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// SaveDocument stores a document's vectors, chunks and info under its own
// directory. An existing document with the same ID is replaced. Returns the
// sanitized ID the document is stored under.
func (s *DocumentStore) SaveDocument(docID string, vectors [][]float32, chunks []string, source string, info DocumentInfo) (string, error) {
	if len(vectors) != len(chunks) {
		return "", fmt.Errorf("vectors and chunks length mismatch: %d vs %d", len(vectors), len(chunks))
	}

	id := SanitizeDocID(docID)
	if id == "" {
		return "", fmt.Errorf("document ID is empty after sanitization")
	}

	idx := NewFlatIndex()
	if err := idx.Add(vectors...); err != nil {
		return "", err
	}
	info.DocID = id
	info.Chunks = len(chunks)
	info.Vectors = idx.Len()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Stage everything in a temp dir, then swap it in. The rename keeps a
	// crash from leaving a half-written document behind.
	tmpDir, err := os.MkdirTemp(s.base, ".tmp-"+id+"-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	f, err := os.Create(filepath.Join(tmpDir, docIndexFile))
	if err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	if err := idx.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(chunkPayload{Source: source, Chunks: chunks})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(tmpDir, docChunksFile), payload, 0o644); err != nil {
		return "", err
	}

	infoBytes, err := json.Marshal(info)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(tmpDir, docInfoFile), infoBytes, 0o644); err != nil {
		return "", err
	}

	final := filepath.Join(s.base, id)
	if err := os.RemoveAll(final); err != nil {
		return "", fmt.Errorf("replace document dir: %w", err)
	}
	if err := os.Rename(tmpDir, final); err != nil {
		return "", fmt.Errorf("commit document dir: %w", err)
	}

	s.docs[id] = &documentEntry{
		index:  idx,
		chunks: chunks,
		source: source,
		info:   info,
	}
	return id, nil
}

// DeleteDocument removes a document and its files. Returns false when the
// document does not exist. The in-memory entry is only dropped once the
// directory removal succeeded, so a failed delete leaves the document intact.
func (s *DocumentStore) DeleteDocument(docID string) (bool, error) {
	id := SanitizeDocID(docID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return false, nil
	}
	if err := os.RemoveAll(filepath.Join(s.base, id)); err != nil {
		return false, fmt.Errorf("delete document %s: %w", id, err)
	}
	delete(s.docs, id)
	return true, nil
}

// HasDocument reports whether a document exists under the given ID.
func (s *DocumentStore) HasDocument(docID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[SanitizeDocID(docID)]
	return ok
}

// ListDocuments returns info for every stored document, sorted by ID.
func (s *DocumentStore) ListDocuments() []DocumentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]DocumentInfo, 0, len(s.docs))
	for _, doc := range s.docs {
		infos = append(infos, doc.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].DocID < infos[j].DocID })
	return infos
}

// GetDocumentStats returns detailed stats for one document, nil if absent.
func (s *DocumentStore) GetDocumentStats(docID string) *DocumentStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[SanitizeDocID(docID)]
	if !ok {
		return nil
	}
	return &DocumentStats{
		DocumentInfo: doc.info,
		Dimension:    doc.index.Dim(),
	}
}

// TotalVectors returns the vector count across all documents.
func (s *DocumentStore) TotalVectors() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, doc := range s.docs {
		total += doc.index.Len()
	}
	return total
}

// SearchDocuments federates a search across the given documents (all
// documents when docIDs is empty). Each document is over-fetched with
// min(2k, ntotal) and the merged hits are re-ranked globally by ascending
// distance, truncated to k. Unknown IDs are skipped with a warning.
func (s *DocumentStore) SearchDocuments(query []float32, k int, docIDs []string) ([]ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var targets []string
	if len(docIDs) == 0 {
		for id := range s.docs {
			targets = append(targets, id)
		}
		sort.Strings(targets)
	} else {
		for _, raw := range docIDs {
			id := SanitizeDocID(raw)
			if _, ok := s.docs[id]; !ok {
				log.Printf("[WARN] Skipping unknown document ID in search scope: %s", raw)
				continue
			}
			targets = append(targets, id)
		}
	}

	var merged []ScoredChunk
	for _, id := range targets {
		doc := s.docs[id]
		fetch := 2 * k
		if n := doc.index.Len(); fetch > n {
			fetch = n
		}
		hits, err := doc.index.Search(query, fetch)
		if err != nil {
			return nil, fmt.Errorf("search document %s: %w", id, err)
		}
		source := doc.source
		if source == "" {
			source = id
		}
		for _, h := range hits {
			merged = append(merged, ScoredChunk{
				Chunk:    doc.chunks[h.Position],
				Source:   source,
				Distance: h.Distance,
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Distance < merged[j].Distance
	})
	if k < len(merged) {
		merged = merged[:k]
	}
	return merged, nil
}
