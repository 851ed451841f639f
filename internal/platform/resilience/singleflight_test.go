package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_Do(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("scope-key", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil || v != "ok" {
				t.Errorf("singleflight call failed: %v %q", err, v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestGroup_ForgetStartsFreshCall(t *testing.T) {
	var g Group[int]
	release := make(chan struct{})
	firstStarted := make(chan struct{})

	done := make(chan int)
	go func() {
		v, _, _ := g.Do("k", func() (int, error) {
			close(firstStarted)
			<-release
			return 1, nil
		})
		done <- v
	}()

	<-firstStarted
	g.Forget("k")

	v, _, shared := g.Do("k", func() (int, error) { return 2, nil })
	if shared || v != 2 {
		t.Fatalf("expected fresh call after Forget, got v=%d shared=%v", v, shared)
	}

	close(release)
	if got := <-done; got != 1 {
		t.Fatalf("first caller got %d, want 1", got)
	}
}
