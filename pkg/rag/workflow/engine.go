// Package workflow runs the four-stage question-answering pipeline over a
// shared WorkflowState: retrieval, synthesis, critique, then conditional
// refinement. The branch structure is deliberately explicit: a straight
// sequence with one boolean fork after the critique.
package workflow

import (
	"context"

	"ai-docqa-be/internal/pkg/logger"
	"ai-docqa-be/pkg/rag/critic"
	"ai-docqa-be/pkg/rag/editor"
	"ai-docqa-be/pkg/rag/research"
	"ai-docqa-be/pkg/rag/state"
	"ai-docqa-be/pkg/rag/summarize"
)

// Request is the input of one workflow run.
type Request struct {
	Query               string
	TopK                int
	Source              string
	DocIDs              []string
	UseMultiDoc         bool
	ConversationContext string
}

// Metadata summarizes what happened during a run.
type Metadata struct {
	NumChunks            int      `json:"num_chunks"`
	InitialSummaryLength int      `json:"initial_summary_length"`
	FinalAnswerLength    int      `json:"final_answer_length"`
	CritiqueApplied      bool     `json:"critique_applied"`
	EditingApplied       bool     `json:"editing_applied"`
	HasGaps              bool     `json:"has_gaps"`
	WorkflowType         string   `json:"workflow_type"`
	SearchedDocs         []string `json:"searched_docs,omitempty"`
}

// Result is the outcome envelope of one workflow run.
type Result struct {
	Status      string   `json:"status"`
	Answer      string   `json:"answer"`
	Error       string   `json:"error,omitempty"`
	Sources     []string `json:"sources"`
	WorkflowLog []string `json:"workflow_log"`
	Metadata    Metadata `json:"metadata"`
}

const defaultTopK = 5

type Engine struct {
	research  *research.Agent
	summarize *summarize.Agent
	critic    *critic.Agent
	editor    *editor.Agent
	log       logger.ILogger
}

func NewEngine(
	researchAgent *research.Agent,
	summarizeAgent *summarize.Agent,
	criticAgent *critic.Agent,
	editorAgent *editor.Agent,
	log logger.ILogger,
) *Engine {
	return &Engine{
		research:  researchAgent,
		summarize: summarizeAgent,
		critic:    criticAgent,
		editor:    editorAgent,
		log:       log,
	}
}

// Ask runs the full workflow for one question. Retrieval and synthesis
// failures terminate the run with status "error"; critique and refinement
// failures degrade without failing the run.
func (e *Engine) Ask(ctx context.Context, req Request) *Result {
	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	st := state.New(req.Query, topK)
	st.Source = req.Source
	st.DocIDs = req.DocIDs
	st.UseMultiDoc = req.UseMultiDoc
	st.ConversationContext = req.ConversationContext

	e.run(ctx, st)
	return e.buildResult(st)
}

func (e *Engine) run(ctx context.Context, st *state.WorkflowState) {
	if err := e.research.Run(ctx, st); err != nil {
		st.Fail(err.Error())
		e.log.Error("workflow", "Research stage failed", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := e.summarize.Run(ctx, st); err != nil {
		st.Fail(err.Error())
		e.log.Error("workflow", "Synthesis stage failed", map[string]interface{}{"error": err.Error()})
		return
	}

	e.critic.Run(ctx, st)

	if st.HasGaps {
		e.editor.Run(ctx, st)
	} else {
		st.FinalAnswer = st.InitialSummary
		st.EditingApplied = false
		st.EditorComplete = true
		st.Log("[4/4] Skipped - Initial summary is high quality, no editing needed")
	}

	st.Status = state.StatusComplete
}

func (e *Engine) buildResult(st *state.WorkflowState) *Result {
	workflowType := "single_index"
	if st.UseMultiDoc {
		workflowType = "multi_document"
	}

	answer := st.FinalAnswer
	if st.Status == state.StatusError {
		answer = ""
	}

	return &Result{
		Status:      st.Status,
		Answer:      answer,
		Error:       st.ErrorMessage,
		Sources:     dedupe(st.Sources),
		WorkflowLog: st.WorkflowLog,
		Metadata: Metadata{
			NumChunks:            st.NumChunksFound,
			InitialSummaryLength: len(st.InitialSummary),
			FinalAnswerLength:    len(st.FinalAnswer),
			CritiqueApplied:      st.CritiqueComplete && st.Critique != "",
			EditingApplied:       st.EditingApplied,
			HasGaps:              st.HasGaps,
			WorkflowType:         workflowType,
			SearchedDocs:         st.SearchedDocs,
		},
	}
}

func dedupe(in []string) []string {
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
