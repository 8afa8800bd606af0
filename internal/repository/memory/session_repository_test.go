package memory

import (
	"testing"
	"time"

	"market-research-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.ResearchSession{
		ID:        "s-1",
		Step:      store.StepInput,
		CreatedAt: time.Now(),
	}
	repo.Save(session)

	got, found := repo.Get("s-1")
	assert.True(t, found)
	assert.Equal(t, store.StepInput, got.Step)

	// Mutations through the returned pointer are visible on re-read.
	got.Step = store.StepRetrieval
	repo.Save(got)
	again, _ := repo.Get("s-1")
	assert.Equal(t, store.StepRetrieval, again.Step)

	repo.Delete("s-1")
	_, found = repo.Get("s-1")
	assert.False(t, found)
}

func TestSessionRepositoryMissing(t *testing.T) {
	repo := NewSessionRepository()

	_, found := repo.Get("unknown")
	assert.False(t, found)
}
