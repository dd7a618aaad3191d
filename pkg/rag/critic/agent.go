// Package critic implements the critique stage: an LLM judges whether the
// draft answer is grounded and complete. The stage never blocks the
// workflow; any failure degrades to a neutral verdict.
package critic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/llm"
	"ai-docqa-be/pkg/rag/state"
)

// unavailableCritique is the degraded verdict used when the critic fails.
const unavailableCritique = "Critique unavailable"

type verdict struct {
	HasGaps     bool     `json:"has_gaps"`
	Critique    string   `json:"critique"`
	Suggestions []string `json:"suggestions"`
}

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

// Run evaluates the draft answer. It always leaves the state in
// critique_complete; on failure the verdict defaults to no gaps so the
// initial summary ships as-is.
func (a *Agent) Run(ctx context.Context, st *state.WorkflowState) {
	st.Log("[3/4] Critic Agent: Evaluating answer quality...")

	v, err := a.evaluate(ctx, st)
	if err != nil {
		a.log.Warn("critic", "Critique failed, falling back to initial summary", map[string]interface{}{
			"error": err.Error(),
		})
		st.Critique = unavailableCritique
		st.HasGaps = false
		st.Suggestions = nil
		st.CritiqueComplete = true
		st.Status = state.StatusCritiqueComplete
		st.Log("[3/4] Warning - Critique failed, using initial summary")
		return
	}

	st.Critique = v.Critique
	st.HasGaps = v.HasGaps
	st.Suggestions = v.Suggestions
	st.CritiqueComplete = true
	st.Status = state.StatusCritiqueComplete
	st.Log(fmt.Sprintf("[3/4] Complete - Critique completed (Gaps identified: %v)", v.HasGaps))
}

func (a *Agent) evaluate(ctx context.Context, st *state.WorkflowState) (*verdict, error) {
	prompt := buildPrompt(st.Query, st.InitialSummary, st.Chunks)

	raw, err := a.llm.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("critic generation: %w", err)
	}
	return parseVerdict(raw)
}

// parseVerdict extracts the JSON verdict from the model output, tolerating
// markdown code fences around it.
func parseVerdict(raw string) (*verdict, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Some models wrap the JSON in prose; cut to the outermost object.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in critic output")
	}

	var v verdict
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &v); err != nil {
		return nil, fmt.Errorf("parse critic output: %w", err)
	}
	return &v, nil
}

func buildPrompt(query, answer string, chunks []string) string {
	var b strings.Builder
	b.WriteString(`You are a strict reviewer. Judge whether the answer below is fully grounded in the document excerpts and completely addresses the question.

Question: `)
	b.WriteString(query)
	b.WriteString("\n\nAnswer:\n")
	b.WriteString(answer)
	b.WriteString("\n\nDocument excerpts:\n")
	b.WriteString(strings.Join(chunks, "\n\n---\n\n"))
	b.WriteString(`

Respond with ONLY a JSON object:
{"has_gaps": <true if the answer misses relevant information present in the excerpts or contains claims not supported by them>, "critique": "<one short paragraph>", "suggestions": ["<specific improvement>", ...]}`)
	return b.String()
}
