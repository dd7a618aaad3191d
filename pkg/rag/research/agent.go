// Package research implements the retrieval stage: it embeds the query and
// gathers the most relevant chunks from the shared index or the
// per-document store.
package research

import (
	"context"
	"fmt"

	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/embedding"
	"ai-docqa-be/pkg/rag"
	"ai-docqa-be/pkg/rag/state"
	"ai-docqa-be/pkg/vecstore"
)

// SharedSearcher is the slice of SharedStore the retrieval stage needs.
type SharedSearcher interface {
	Search(query []float32, k int) ([]vecstore.ChunkMeta, []float32, error)
	Len() int
}

// MultiSearcher is the slice of DocumentStore the retrieval stage needs.
type MultiSearcher interface {
	SearchDocuments(query []float32, k int, docIDs []string) ([]vecstore.ScoredChunk, error)
	ListDocuments() []vecstore.DocumentInfo
	HasDocument(docID string) bool
}

// sourceOverFetchFactor widens the shared-index search when a source filter
// is active, since filtering happens after ranking.
const sourceOverFetchFactor = 10

type Agent struct {
	embedder embedding.EmbeddingProvider
	shared   SharedSearcher
	multi    MultiSearcher
	log      logger.ILogger
}

func NewAgent(embedder embedding.EmbeddingProvider, shared SharedSearcher, multi MultiSearcher, log logger.ILogger) *Agent {
	return &Agent{
		embedder: embedder,
		shared:   shared,
		multi:    multi,
		log:      log,
	}
}

// Run retrieves chunks for the query in the state. Failures here are fatal
// for the workflow; the engine translates the returned error.
func (a *Agent) Run(ctx context.Context, st *state.WorkflowState) error {
	if st.UseMultiDoc {
		return a.runMultiDoc(ctx, st)
	}
	return a.runShared(ctx, st)
}

func (a *Agent) runShared(ctx context.Context, st *state.WorkflowState) error {
	st.Log("[1/4] Research Agent: Searching index for relevant information...")

	if a.shared.Len() == 0 {
		return &rag.NoDocumentsError{Scope: "shared"}
	}

	vec, err := a.embedQuery(st.Query)
	if err != nil {
		return err
	}

	// With a source filter active, ranking happens before filtering, so we
	// over-fetch. The filtered result may still come up short of TopK when
	// the source has few nearby chunks.
	searchK := st.TopK
	if st.Source != "" {
		searchK = st.TopK * sourceOverFetchFactor
	}

	metas, _, err := a.shared.Search(vec, searchK)
	if err != nil {
		return fmt.Errorf("shared index search: %w", err)
	}

	for _, m := range metas {
		if st.Source != "" && m.Source != st.Source {
			continue
		}
		st.Chunks = append(st.Chunks, m.Chunk)
		st.Sources = append(st.Sources, m.Source)
		if len(st.Chunks) >= st.TopK {
			break
		}
	}

	st.NumChunksFound = len(st.Chunks)
	st.ResearchComplete = true
	st.Status = state.StatusResearchComplete
	st.Log(fmt.Sprintf("[1/4] Complete - Found %d relevant chunks", st.NumChunksFound))

	a.log.Info("research", "Shared index search complete", map[string]interface{}{
		"query_length": len(st.Query),
		"source":       st.Source,
		"chunks_found": st.NumChunksFound,
	})
	return nil
}

func (a *Agent) runMultiDoc(ctx context.Context, st *state.WorkflowState) error {
	st.Log("[1/4] Research Agent: Searching multi-document store...")

	docs := a.multi.ListDocuments()
	if len(docs) == 0 {
		return &rag.NoDocumentsError{Scope: "multi"}
	}

	// Validate the requested scope. Unknown IDs are dropped; the query only
	// fails when nothing valid remains.
	var searched []string
	if len(st.DocIDs) > 0 {
		var invalid []string
		for _, id := range st.DocIDs {
			if a.multi.HasDocument(id) {
				searched = append(searched, vecstore.SanitizeDocID(id))
			} else {
				invalid = append(invalid, id)
			}
		}
		if len(invalid) > 0 {
			a.log.Warn("research", "Dropping invalid document IDs from search scope", map[string]interface{}{
				"invalid_ids": invalid,
			})
		}
		if len(searched) == 0 {
			return &rag.InvalidScopeError{DocIDs: st.DocIDs}
		}
	} else {
		for _, d := range docs {
			searched = append(searched, d.DocID)
		}
	}

	vec, err := a.embedQuery(st.Query)
	if err != nil {
		return err
	}

	hits, err := a.multi.SearchDocuments(vec, st.TopK, searched)
	if err != nil {
		return fmt.Errorf("multi-document search: %w", err)
	}

	for _, h := range hits {
		st.Chunks = append(st.Chunks, h.Chunk)
		st.Sources = append(st.Sources, h.Source)
	}

	st.SearchedDocs = searched
	st.NumChunksFound = len(st.Chunks)
	st.ResearchComplete = true
	st.Status = state.StatusResearchComplete
	st.Log(fmt.Sprintf("[1/4] Complete - Found %d chunks from %d document(s)", st.NumChunksFound, len(searched)))

	a.log.Info("research", "Multi-document search complete", map[string]interface{}{
		"searched_docs": len(searched),
		"chunks_found":  st.NumChunksFound,
	})
	return nil
}

func (a *Agent) embedQuery(query string) ([]float32, error) {
	res, err := a.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, &rag.EmbeddingError{Err: err}
	}
	return res.Embedding.Values, nil
}
