package rag

import (
	"fmt"
	"strings"
)

// NoDocumentsError indicates a query arrived before any document was ingested.
type NoDocumentsError struct {
	Scope string // "shared" or "multi"
}

func (e *NoDocumentsError) Error() string {
	return "no documents in database, upload documents first"
}

// InvalidScopeError indicates every requested document ID is unknown.
type InvalidScopeError struct {
	DocIDs []string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid document IDs: %s", strings.Join(e.DocIDs, ", "))
}

// EmbeddingError wraps a failure from the embedding provider.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding generation failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// SynthesisError wraps an LLM failure during answer drafting.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("answer synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// StorageError wraps a conversation store failure on the write path.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("conversation storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
