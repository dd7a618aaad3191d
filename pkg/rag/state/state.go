// Package state holds the shared mutable state that flows through the
// question-answering workflow. Every stage reads the fields it needs and
// writes its outputs back onto the same struct.
package state

// Workflow status values. Each stage advances the status on success;
// "error" is absorbing.
const (
	StatusInitialized      = "initialized"
	StatusResearchComplete = "research_complete"
	StatusSummaryComplete  = "summary_complete"
	StatusCritiqueComplete = "critique_complete"
	StatusComplete         = "complete"
	StatusError            = "error"
)

// WorkflowState carries the full lifecycle of one question through the
// four stages: retrieval, synthesis, critique, refinement.
type WorkflowState struct {
	// Inputs
	Query               string
	TopK                int
	Source              string   // optional source filename filter (shared index)
	DocIDs              []string // optional document scope (multi-doc)
	UseMultiDoc         bool
	ConversationContext string

	// Retrieval outputs. Chunks and Sources are parallel slices.
	Chunks         []string
	Sources        []string
	NumChunksFound int
	SearchedDocs   []string

	// Synthesis / critique / refinement outputs
	InitialSummary string
	Critique       string
	HasGaps        bool
	Suggestions    []string
	FinalAnswer    string
	EditingApplied bool

	// Bookkeeping
	WorkflowLog  []string
	Status       string
	ErrorMessage string

	ResearchComplete bool
	SummaryComplete  bool
	CritiqueComplete bool
	EditorComplete   bool
}

func New(query string, topK int) *WorkflowState {
	return &WorkflowState{
		Query:       query,
		TopK:        topK,
		Status:      StatusInitialized,
		WorkflowLog: []string{},
	}
}

// Log appends a progress line. The log is append-only.
func (s *WorkflowState) Log(line string) {
	s.WorkflowLog = append(s.WorkflowLog, line)
}

// Fail moves the workflow into the terminal error status.
func (s *WorkflowState) Fail(message string) {
	s.Status = StatusError
	s.ErrorMessage = message
}
