package store

import (
	"sync"
	"time"

	"station-chat-be/internal/entity"
)

// FlowState holds the pending disambiguation state for ONE conversation.
// A resolved selection is transient (it feeds one answer and the persisted
// city hint), so only the candidate set and the hint live here.
type FlowState struct {
	Candidates []*entity.POI
	CityHint   string
	CreatedAt  time.Time
}

// Pending reports whether a candidate set is waiting for the user's follow-up.
func (f *FlowState) Pending() bool {
	return len(f.Candidates) >= 2
}

// Expired reports whether the pending state outlived the TTL.
// Checked lazily on the next turn; there is no background timer.
func (f *FlowState) Expired(ttl time.Duration, now time.Time) bool {
	if f.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(f.CreatedAt) > ttl
}

// Clear resets the flow back to EMPTY.
func (f *FlowState) Clear() {
	f.Candidates = nil
	f.CityHint = ""
	f.CreatedAt = time.Time{}
}

// Session is the per-conversation resolver state. All resolver entry points
// must hold the session lock for the duration of a turn so concurrent requests
// on the same conversation cannot interleave read-modify-write on the flow.
type Session struct {
	ID string

	// Station the conversation is currently about, if any.
	Station *entity.Station

	// Pending POI disambiguation, if any.
	Flow FlowState

	mu sync.Mutex
}

func NewSession(id string) *Session {
	return &Session{ID: id}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }
