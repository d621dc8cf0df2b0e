package memory

import (
	"sync"
	"testing"

	"station-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateSharesOneSessionPerID(t *testing.T) {
	r := NewSessionRepository()

	a := r.GetOrCreate("conv-1")
	b := r.GetOrCreate("conv-1")
	assert.Same(t, a, b)

	c := r.GetOrCreate("conv-2")
	assert.NotSame(t, a, c)

	got, ok := r.Get("conv-1")
	require.True(t, ok)
	assert.Same(t, a, got)

	r.Delete("conv-1")
	_, ok = r.Get("conv-1")
	assert.False(t, ok)
}

// Concurrent first requests for one conversation id must all land on the
// same session object; distinct objects would mean distinct mutexes around
// what is supposed to be one conversation's state.
func TestGetOrCreateConcurrentFirstUse(t *testing.T) {
	const goroutines = 8
	for i := 0; i < 200; i++ {
		r := NewSessionRepository()
		start := make(chan struct{})
		got := make([]*store.Session, goroutines)

		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				<-start
				got[g] = r.GetOrCreate("conv-1")
			}(g)
		}
		close(start)
		wg.Wait()

		for g := 1; g < goroutines; g++ {
			require.Same(t, got[0], got[g],
				"iteration %d: goroutine %d received a different session", i, g)
		}
	}
}
