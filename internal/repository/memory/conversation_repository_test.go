package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"growth-engine-be/pkg/analysis/conversation"
)

func TestSaveGetDelete(t *testing.T) {
	repo := NewConversationRepository(24 * time.Hour)

	state := &conversation.State{ID: "conv-1", StudentID: "s-1", CreatedAt: time.Now()}
	repo.Save(state)

	got, found := repo.Get("conv-1")
	assert.True(t, found)
	assert.Equal(t, "s-1", got.StudentID)

	repo.Delete("conv-1")
	_, found = repo.Get("conv-1")
	assert.False(t, found)
}

func TestGetUnknown(t *testing.T) {
	repo := NewConversationRepository(24 * time.Hour)
	_, found := repo.Get("nope")
	assert.False(t, found)
}

func TestEvictOlderThan(t *testing.T) {
	repo := NewConversationRepository(24 * time.Hour)

	repo.Save(&conversation.State{ID: "old", CreatedAt: time.Now().Add(-48 * time.Hour)})
	repo.Save(&conversation.State{ID: "fresh", CreatedAt: time.Now()})

	evicted := repo.EvictOlderThan(24 * time.Hour)
	assert.Equal(t, 1, evicted)

	_, found := repo.Get("old")
	assert.False(t, found)
	_, found = repo.Get("fresh")
	assert.True(t, found)
}
