package resilience

import "sync"

// Group deduplicates concurrent calls for the same key. Callers that arrive
// while a call is in flight share its result.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

type call[T any] struct {
	wg  sync.WaitGroup
	val T
	err error
	// forgotten calls still finish but are no longer joined by new callers.
	forgotten bool
}

func (g *Group[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call[T]{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	if !c.forgotten {
		delete(g.calls, key)
	}
	g.mu.Unlock()

	return c.val, c.err, false
}

// Forget detaches the in-flight call for key, if any, so the next Do starts
// a fresh call.
func (g *Group[T]) Forget(key string) {
	g.mu.Lock()
	if c, ok := g.calls[key]; ok {
		c.forgotten = true
		delete(g.calls, key)
	}
	g.mu.Unlock()
}

// ForgetPrefix is Forget for every key sharing prefix.
func (g *Group[T]) ForgetPrefix(prefix string) {
	g.mu.Lock()
	for key, c := range g.calls {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			c.forgotten = true
			delete(g.calls, key)
		}
	}
	g.mu.Unlock()
}
