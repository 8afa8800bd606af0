package redisstore

import (
	"context"
	"encoding/json"
	"log"

	"market-research-be/internal/constant"
	"market-research-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps sessions in Redis with the same TTL as the
// in-memory store. Useful when the backend runs more than one replica;
// entries still expire, so no session survives its lifetime.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(id string) string {
	return "research:session:" + id
}

func (r *SessionRepository) Save(session *store.ResearchSession) {
	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[WARN] Failed to marshal session %s: %v", session.ID, err)
		return
	}
	if err := r.client.Set(context.Background(), sessionKey(session.ID), data, constant.SessionTTL).Err(); err != nil {
		log.Printf("[WARN] Failed to save session %s to Redis: %v", session.ID, err)
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.ResearchSession, bool) {
	data, err := r.client.Get(context.Background(), sessionKey(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var session store.ResearchSession
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[WARN] Corrupt session payload for %s: %v", sessionID, err)
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	r.client.Del(context.Background(), sessionKey(sessionID))
}
