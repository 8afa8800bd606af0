package store

import "time"

// Document is a retrieved encyclopedia article used as report evidence.
// Immutable once created; owned by its session for the session's lifetime.
type Document struct {
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
	Content   string `json:"content"`
}

// ResearchSession is the full in-memory state of one report workflow.
// It is mutated in place by each pipeline step and discarded when its
// TTL in the session store expires.
type ResearchSession struct {
	ID       string `json:"id"`
	Step     string `json:"step"` // StepInput | StepRetrieval | StepReport
	Industry string `json:"industry"`
	Model    string `json:"model"`

	// Retrieval output, in the external service's relevance order.
	Documents []Document `json:"documents"`

	// Context is derived from Documents (concatenation with per-document
	// truncation) and always rebuilt from them, never edited directly.
	Context string `json:"context"`

	// Report is the generated text; empty until generation succeeds,
	// overwritten on each new Generate request.
	Report string `json:"report"`

	// Warning carries the non-fatal partial-retrieval message, if any.
	Warning string `json:"warning,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	StepInput     = "input"
	StepRetrieval = "retrieval"
	StepReport    = "report"
)
