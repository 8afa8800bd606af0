package memory

import (
	"market-research-be/internal/constant"
	"market-research-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions expire after an hour of inactivity; expired entries are
	// purged every 10 minutes.
	c := cache.New(constant.SessionTTL, constant.SessionPurgeInterval)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.ResearchSession) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.ResearchSession, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ResearchSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
