package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"growth-engine-be/pkg/analysis/conversation"
)

// ConversationRepository keeps live conversation state in process memory.
// Entries carry a default TTL but there is no background janitor: stale
// entries disappear lazily on Get, or in bulk when EvictOlderThan is called
// by an operator or the sweeper.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository(defaultTTL time.Duration) *ConversationRepository {
	c := cache.New(defaultTTL, cache.NoExpiration)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(state *conversation.State) {
	r.cache.Set(state.ID, state, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(conversationID string) (*conversation.State, bool) {
	if x, found := r.cache.Get(conversationID); found {
		return x.(*conversation.State), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(conversationID string) {
	r.cache.Delete(conversationID)
}

// EvictOlderThan drops every conversation created more than maxAge ago and
// returns how many were removed. Expired-but-unswept entries count too.
func (r *ConversationRepository) EvictOlderThan(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	evicted := 0
	for id, item := range r.cache.Items() {
		state, ok := item.Object.(*conversation.State)
		if !ok {
			continue
		}
		if state.CreatedAt.Before(cutoff) {
			r.cache.Delete(id)
			evicted++
		}
	}
	r.cache.DeleteExpired()
	return evicted
}
