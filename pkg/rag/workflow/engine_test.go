package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/embedding"
	"ai-docqa-be/pkg/llm"
	"ai-docqa-be/pkg/rag/critic"
	"ai-docqa-be/pkg/rag/editor"
	"ai-docqa-be/pkg/rag/research"
	"ai-docqa-be/pkg/rag/state"
	"ai-docqa-be/pkg/rag/summarize"
	"ai-docqa-be/pkg/vecstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: s.vec},
	}, nil
}

// scriptedLLM replays queued responses in call order: synthesis first,
// then critique, then refinement.
type scriptedLLM struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, opts...)
}

func newTestEngine(t *testing.T, provider llm.LLMProvider, sharedChunks []string) (*Engine, *vecstore.DocumentStore) {
	t.Helper()
	nop := logger.NewNopLogger()

	shared, err := vecstore.NewSharedStore(t.TempDir())
	require.NoError(t, err)
	for i, c := range sharedChunks {
		require.NoError(t, shared.Add(
			[][]float32{{float32(i), 0}},
			[]vecstore.ChunkMeta{{Chunk: c, Source: "guide.txt", FileType: "txt"}},
		))
	}

	multi, err := vecstore.NewDocumentStore(t.TempDir())
	require.NoError(t, err)

	embedder := &stubEmbedder{vec: []float32{0, 0}}
	eng := NewEngine(
		research.NewAgent(embedder, shared, multi, nop),
		summarize.NewAgent(provider, nop),
		critic.NewAgent(provider, nop),
		editor.NewAgent(provider, nop),
		nop,
	)
	return eng, multi
}

func TestEngineHappyPathNoGaps(t *testing.T) {
	provider := &scriptedLLM{responses: []string{
		"Paris is the capital of France.",
		`{"has_gaps": false, "critique": "Accurate and complete.", "suggestions": []}`,
	}}
	eng, _ := newTestEngine(t, provider, []string{"The capital of France is Paris.", "The currency is the Euro."})

	res := eng.Ask(context.Background(), Request{Query: "What is the capital of France?", TopK: 2})

	assert.Equal(t, state.StatusComplete, res.Status)
	assert.Equal(t, "Paris is the capital of France.", res.Answer)
	assert.False(t, res.Metadata.EditingApplied)
	assert.False(t, res.Metadata.HasGaps)
	assert.Equal(t, 2, res.Metadata.NumChunks)
	assert.Equal(t, []string{"guide.txt"}, res.Sources)
	assert.Contains(t, res.WorkflowLog, "[4/4] Skipped - Initial summary is high quality, no editing needed")
}

func TestEngineGapsTriggerEditor(t *testing.T) {
	provider := &scriptedLLM{responses: []string{
		"Paris.",
		`{"has_gaps": true, "critique": "Misses the currency.", "suggestions": ["mention the Euro"]}`,
		"Paris is the capital of France and the currency is the Euro.",
	}}
	eng, _ := newTestEngine(t, provider, []string{"The capital of France is Paris.", "The currency is the Euro."})

	res := eng.Ask(context.Background(), Request{Query: "Capital and currency of France?", TopK: 2})

	assert.Equal(t, state.StatusComplete, res.Status)
	assert.True(t, res.Metadata.HasGaps)
	assert.True(t, res.Metadata.EditingApplied)
	assert.Equal(t, "Paris is the capital of France and the currency is the Euro.", res.Answer)
	assert.Contains(t, res.WorkflowLog, "[4/4] Complete - Final answer polished and ready")
}

func TestEngineCritiqueFailureDegrades(t *testing.T) {
	provider := &scriptedLLM{
		responses: []string{"Paris.", ""},
		errs:      []error{nil, errors.New("llm down")},
	}
	eng, _ := newTestEngine(t, provider, []string{"The capital of France is Paris."})

	res := eng.Ask(context.Background(), Request{Query: "Capital?", TopK: 1})

	// The run still completes with the unedited draft.
	assert.Equal(t, state.StatusComplete, res.Status)
	assert.Equal(t, "Paris.", res.Answer)
	assert.False(t, res.Metadata.HasGaps)
	assert.False(t, res.Metadata.EditingApplied)
	assert.Contains(t, res.WorkflowLog, "[3/4] Warning - Critique failed, using initial summary")
}

func TestEngineEditorFailureFallsBack(t *testing.T) {
	provider := &scriptedLLM{
		responses: []string{
			"Draft answer.",
			`{"has_gaps": true, "critique": "Incomplete.", "suggestions": []}`,
			"",
		},
		errs: []error{nil, nil, errors.New("llm down")},
	}
	eng, _ := newTestEngine(t, provider, []string{"Some content about the topic."})

	res := eng.Ask(context.Background(), Request{Query: "Question?", TopK: 1})

	assert.Equal(t, state.StatusComplete, res.Status)
	assert.Equal(t, "Draft answer.", res.Answer)
	assert.False(t, res.Metadata.EditingApplied)
	assert.Contains(t, res.WorkflowLog, "[4/4] Warning - Editing failed, using initial summary")
}

func TestEngineEmptyStoreFails(t *testing.T) {
	provider := &scriptedLLM{}
	eng, _ := newTestEngine(t, provider, nil)

	res := eng.Ask(context.Background(), Request{Query: "Anything?", TopK: 3})

	assert.Equal(t, state.StatusError, res.Status)
	assert.Empty(t, res.Answer)
	assert.Contains(t, res.Error, "no documents")
	assert.Zero(t, provider.calls)
}

func TestEngineSynthesisFailureFatal(t *testing.T) {
	provider := &scriptedLLM{errs: []error{errors.New("llm down")}}
	eng, _ := newTestEngine(t, provider, []string{"Some indexed content here."})

	res := eng.Ask(context.Background(), Request{Query: "Question?", TopK: 1})

	assert.Equal(t, state.StatusError, res.Status)
	assert.Empty(t, res.Answer)
	assert.Contains(t, res.Error, "synthesis")
}

func TestEngineMultiDocInvalidScope(t *testing.T) {
	provider := &scriptedLLM{}
	eng, multi := newTestEngine(t, provider, nil)

	_, err := multi.SaveDocument("known", [][]float32{{1, 0}}, []string{"content"}, "known.txt", vecstore.DocumentInfo{
		OriginalFilename: "known.txt",
		FileType:         "txt",
		UploadDate:       time.Now(),
	})
	require.NoError(t, err)

	res := eng.Ask(context.Background(), Request{
		Query:       "Question?",
		TopK:        1,
		UseMultiDoc: true,
		DocIDs:      []string{"missing-1", "missing-2"},
	})

	assert.Equal(t, state.StatusError, res.Status)
	assert.Contains(t, res.Error, "invalid document IDs")
}

func TestEngineMultiDocScopedSearch(t *testing.T) {
	provider := &scriptedLLM{responses: []string{
		"Answer from doc-a.",
		`{"has_gaps": false, "critique": "Fine.", "suggestions": []}`,
	}}
	eng, multi := newTestEngine(t, provider, nil)

	_, err := multi.SaveDocument("doc-a", [][]float32{{0, 0}}, []string{"alpha content"}, "a.txt", vecstore.DocumentInfo{OriginalFilename: "a.txt", FileType: "txt", UploadDate: time.Now()})
	require.NoError(t, err)
	_, err = multi.SaveDocument("doc-b", [][]float32{{9, 9}}, []string{"beta content"}, "b.txt", vecstore.DocumentInfo{OriginalFilename: "b.txt", FileType: "txt", UploadDate: time.Now()})
	require.NoError(t, err)

	res := eng.Ask(context.Background(), Request{
		Query:       "What does doc-a say?",
		TopK:        5,
		UseMultiDoc: true,
		DocIDs:      []string{"doc-a", "not-there"},
	})

	assert.Equal(t, state.StatusComplete, res.Status)
	assert.Equal(t, []string{"doc-a"}, res.Metadata.SearchedDocs)
	assert.Equal(t, "multi_document", res.Metadata.WorkflowType)
	assert.Equal(t, []string{"a.txt"}, res.Sources)
}
