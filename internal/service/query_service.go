package service

import (
	"context"
	"fmt"
	"strings"

	"ai-docqa-be/internal/dto"
	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/internal/repository/contract"
	"ai-docqa-be/pkg/embedding"
	"ai-docqa-be/pkg/llm"
	"ai-docqa-be/pkg/rag"
	"ai-docqa-be/pkg/rag/state"
	"ai-docqa-be/pkg/rag/workflow"
	"ai-docqa-be/pkg/vecstore"
)

type IQueryService interface {
	// Ask is the direct retrieval + completion path, no agent pipeline.
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)

	// AskAgents runs the four-stage workflow over the shared index with
	// conversation memory.
	AskAgents(ctx context.Context, req *dto.AskAgentsRequest) (*dto.WorkflowAnswerResponse, error)

	// AskMultiDoc runs the workflow over the per-document store.
	AskMultiDoc(ctx context.Context, req *dto.AskMultiDocRequest) (*dto.WorkflowAnswerResponse, error)
}

type queryService struct {
	engine        *workflow.Engine
	embedder      embedding.EmbeddingProvider
	llmProvider   llm.LLMProvider
	shared        *vecstore.SharedStore
	memory        contract.ConversationStore
	defaultTopK   int
	contextWindow int
	log           logger.ILogger
}

func NewQueryService(
	engine *workflow.Engine,
	embedder embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	shared *vecstore.SharedStore,
	memory contract.ConversationStore,
	defaultTopK int,
	contextWindow int,
	log logger.ILogger,
) IQueryService {
	return &queryService{
		engine:        engine,
		embedder:      embedder,
		llmProvider:   llmProvider,
		shared:        shared,
		memory:        memory,
		defaultTopK:   defaultTopK,
		contextWindow: contextWindow,
		log:           log,
	}
}

func (qs *queryService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	if qs.shared.Len() == 0 {
		return nil, &rag.NoDocumentsError{Scope: "shared"}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = qs.defaultTopK
	}

	res, err := qs.embedder.Generate(req.Question, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, &rag.EmbeddingError{Err: err}
	}

	searchK := topK
	if req.Source != "" {
		searchK = topK * 10
	}
	metas, _, err := qs.shared.Search(res.Embedding.Values, searchK)
	if err != nil {
		return nil, err
	}

	var chunks, sources []string
	for _, m := range metas {
		if req.Source != "" && m.Source != req.Source {
			continue
		}
		chunks = append(chunks, m.Chunk)
		sources = append(sources, m.Source)
		if len(chunks) >= topK {
			break
		}
	}
	if len(chunks) == 0 {
		return &dto.AskResponse{Answer: "This information is not found in the document.", Sources: []string{}}, nil
	}

	prompt := fmt.Sprintf(`Answer the question using only the context below.

Context:
%s

Question: %s

Answer:`, strings.Join(chunks, "\n\n---\n\n"), req.Question)

	answer, err := qs.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, &rag.SynthesisError{Err: err}
	}

	return &dto.AskResponse{
		Answer:  strings.TrimSpace(answer),
		Sources: dedupeStrings(sources),
	}, nil
}

func (qs *queryService) AskAgents(ctx context.Context, req *dto.AskAgentsRequest) (*dto.WorkflowAnswerResponse, error) {
	return qs.runWorkflow(ctx, req.SessionID, req.Question, workflow.Request{
		Query:  req.Question,
		TopK:   req.TopK,
		Source: req.Source,
	})
}

func (qs *queryService) AskMultiDoc(ctx context.Context, req *dto.AskMultiDocRequest) (*dto.WorkflowAnswerResponse, error) {
	return qs.runWorkflow(ctx, req.SessionID, req.Question, workflow.Request{
		Query:       req.Question,
		TopK:        req.TopK,
		DocIDs:      req.DocIDs,
		UseMultiDoc: true,
	})
}

func (qs *queryService) runWorkflow(ctx context.Context, sessionID, question string, wfReq workflow.Request) (*dto.WorkflowAnswerResponse, error) {
	sessionID, err := qs.memory.CreateSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := qs.memory.AddMessage(ctx, sessionID, "user", question, nil); err != nil {
		return nil, err
	}

	conversationContext, err := qs.memory.GetContext(ctx, sessionID, qs.contextWindow)
	if err != nil {
		return nil, err
	}
	wfReq.ConversationContext = conversationContext
	if wfReq.TopK <= 0 {
		wfReq.TopK = qs.defaultTopK
	}

	result := qs.engine.Ask(ctx, wfReq)

	if result.Status != state.StatusError {
		metadata := map[string]interface{}{
			"sources":      result.Sources,
			"workflow_log": result.WorkflowLog,
		}
		if len(result.Metadata.SearchedDocs) > 0 {
			metadata["searched_docs"] = result.Metadata.SearchedDocs
		}
		if err := qs.memory.AddMessage(ctx, sessionID, "assistant", result.Answer, metadata); err != nil {
			return nil, err
		}
	}

	return &dto.WorkflowAnswerResponse{
		SessionID:   sessionID,
		Status:      result.Status,
		Answer:      result.Answer,
		Error:       result.Error,
		Sources:     result.Sources,
		WorkflowLog: result.WorkflowLog,
		Metadata:    result.Metadata,
	}, nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
