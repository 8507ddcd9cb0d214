package memory

import (
	"time"

	"talent-search-be/pkg/talent/conversation"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps conversation contexts in process memory.
// Contexts expire after the configured TTL of inactivity; every Save
// refreshes the clock.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(sessionCtx *conversation.Context) {
	r.cache.Set(sessionCtx.SessionId, sessionCtx, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionId string) (*conversation.Context, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*conversation.Context), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
