// Package summarize implements the synthesis stage: it drafts a grounded
// answer from the retrieved chunks.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/llm"
	"ai-docqa-be/pkg/rag"
	"ai-docqa-be/pkg/rag/state"
)

const chunkSeparator = "\n\n---\n\n"

type Agent struct {
	llm llm.LLMProvider
	log logger.ILogger
}

func NewAgent(provider llm.LLMProvider, log logger.ILogger) *Agent {
	return &Agent{
		llm: provider,
		log: log,
	}
}

// Run drafts the initial answer. A failure here is fatal for the workflow.
func (a *Agent) Run(ctx context.Context, st *state.WorkflowState) error {
	st.Log("[2/4] Summarizer Agent: Creating comprehensive answer...")

	if len(st.Chunks) == 0 {
		return &rag.SynthesisError{Err: fmt.Errorf("no chunks available to summarize")}
	}

	prompt := buildPrompt(st.Query, st.Chunks, st.ConversationContext)

	answer, err := a.llm.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return &rag.SynthesisError{Err: err}
	}

	st.InitialSummary = strings.TrimSpace(answer)
	st.SummaryComplete = true
	st.Status = state.StatusSummaryComplete
	st.Log("[2/4] Complete - Initial summary generated")

	a.log.Info("summarize", "Initial summary generated", map[string]interface{}{
		"summary_length": len(st.InitialSummary),
		"num_chunks":     len(st.Chunks),
	})
	return nil
}

func buildPrompt(query string, chunks []string, conversationContext string) string {
	docContext := strings.Join(chunks, chunkSeparator)

	var b strings.Builder
	if conversationContext != "" {
		b.WriteString(conversationContext)
		b.WriteString("\n\n")
	}
	b.WriteString(`You are a precise assistant answering questions strictly from the provided document excerpts.

Document excerpts:
`)
	b.WriteString(docContext)
	b.WriteString(`

Question: `)
	b.WriteString(query)
	b.WriteString(`

Rules:
- Answer ONLY from the document excerpts above. Prefer the document's own wording.
- If the answer is not in the excerpts, reply exactly: "This information is not found in the document."
- For simple questions, answer in 1-2 sentences. For complex questions, give a detailed answer.
- Do not add outside knowledge or speculation.

Answer:`)
	return b.String()
}
