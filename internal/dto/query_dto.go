package dto

import "ai-docqa-be/pkg/rag/workflow"

// AskRequest is the one-shot retrieval + completion endpoint input.
type AskRequest struct {
	Question string `json:"question" validate:"required"`
	TopK     int    `json:"top_k"`
	Source   string `json:"source"`
}

type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// AskAgentsRequest runs the four-stage workflow over the shared index.
type AskAgentsRequest struct {
	Question  string `json:"question" validate:"required"`
	TopK      int    `json:"top_k"`
	Source    string `json:"source"`
	SessionID string `json:"session_id"`
}

// AskMultiDocRequest runs the workflow over the per-document store.
type AskMultiDocRequest struct {
	Question  string   `json:"question" validate:"required"`
	TopK      int      `json:"top_k"`
	DocIDs    []string `json:"doc_ids"`
	SessionID string   `json:"session_id"`
}

type WorkflowAnswerResponse struct {
	SessionID   string            `json:"session_id,omitempty"`
	Status      string            `json:"status"`
	Answer      string            `json:"answer"`
	Error       string            `json:"error,omitempty"`
	Sources     []string          `json:"sources"`
	WorkflowLog []string          `json:"workflow_log"`
	Metadata    workflow.Metadata `json:"metadata"`
}
