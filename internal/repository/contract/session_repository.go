package contract

import "market-research-be/pkg/store"

// SessionRepository holds research sessions for their lifetime. Both
// implementations are TTL-bound caches; nothing outlives the session.
type SessionRepository interface {
	Save(session *store.ResearchSession)
	Get(sessionID string) (*store.ResearchSession, bool)
	Delete(sessionID string)
}
