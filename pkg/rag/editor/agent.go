// Package editor implements the refinement stage: it rewrites the draft
// answer using the critic's feedback while staying inside the retrieved
// chunks. A failure falls back to the unedited draft.
package editor

import (
	"context"
	"strings"

	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/llm"
	"ai-docqa-be/pkg/rag/state"
)

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

// Run polishes the draft into the final answer. On failure the initial
// summary is kept and EditingApplied stays false.
func (a *Agent) Run(ctx context.Context, st *state.WorkflowState) {
	st.Log("[4/4] Editor Agent: Refining final answer...")

	prompt := buildPrompt(st)

	refined, err := a.llm.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		a.log.Warn("editor", "Refinement failed, keeping initial summary", map[string]interface{}{
			"error": err.Error(),
		})
		st.FinalAnswer = st.InitialSummary
		st.EditingApplied = false
		st.EditorComplete = true
		st.Log("[4/4] Warning - Editing failed, using initial summary")
		return
	}

	st.FinalAnswer = strings.TrimSpace(refined)
	st.EditingApplied = true
	st.EditorComplete = true
	st.Log("[4/4] Complete - Final answer polished and ready")

	a.log.Info("editor", "Final answer refined", map[string]interface{}{
		"final_length": len(st.FinalAnswer),
	})
}

func buildPrompt(st *state.WorkflowState) string {
	var b strings.Builder
	b.WriteString(`You are an editor improving an answer using reviewer feedback. Stay strictly within the document context: remove any claim not supported by it and add information the reviewer found missing, but only if it appears in the context.

Original Question: `)
	b.WriteString(st.Query)
	b.WriteString("\n\nInitial Answer:\n")
	b.WriteString(st.InitialSummary)
	b.WriteString("\n\nReviewer Feedback:\n")
	b.WriteString(st.Critique)
	if len(st.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n- ")
		b.WriteString(strings.Join(st.Suggestions, "\n- "))
	}
	b.WriteString("\n\nDocument Context:\n")
	b.WriteString(strings.Join(st.Chunks, "\n\n---\n\n"))
	b.WriteString("\n\nRewrite the answer. Output only the improved answer:")
	return b.String()
}
