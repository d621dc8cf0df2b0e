package memory

import (
	"sync"
	"time"

	"station-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Idle sessions expire after 1 hour; expired items are purged every
	// 10 minutes. Flow TTL is NOT handled here; the flow checks its own
	// 90s window lazily on access.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

// GetOrCreate returns the session for a conversation, creating it on first
// use. The whole lookup runs under the repository mutex: a bare get-then-set
// would let two concurrent first requests mint two sessions for one id, and
// every caller must receive the SAME object or the per-session lock guards
// nothing. The returned pointer is shared; callers must use Session.Lock.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		sess := x.(*store.Session)
		r.cache.Set(sessionID, sess, cache.DefaultExpiration) // sliding expiry
		return sess
	}
	sess := store.NewSession(sessionID)
	r.cache.Set(sessionID, sess, cache.DefaultExpiration)
	return sess
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
