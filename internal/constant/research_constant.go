package constant

import "time"

const (
	// Pipeline parameters. Temperature is kept low for a factual,
	// citation-bound briefing; MaxOutputTokens caps the model output
	// comfortably above the 450-word report ceiling.
	ReportTemperature     = 0.2
	ReportMaxOutputTokens = 800

	// TopKResults is the fixed number of encyclopedia pages requested
	// per industry query.
	TopKResults = 5

	// MaxCharsPerDoc limits each document fed into the prompt. Prefix
	// cut only, no summarization.
	MaxCharsPerDoc = 6000

	// WikipediaArticleBase is used to synthesize a canonical URL when
	// the retrieval response omits one.
	WikipediaArticleBase = "https://en.wikipedia.org/wiki/"

	// Session TTL for the in-memory and Redis stores.
	SessionTTL           = 1 * time.Hour
	SessionPurgeInterval = 10 * time.Minute
)

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"
)

// Event topics published on the internal bus.
const (
	TopicRetrievalCompleted = "research.retrieval.completed"
	TopicReportGenerated    = "research.report.generated"
)
