package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	fn := func() (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 42, nil
	}

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	var shared atomic.Int32
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, wasShared := g.Do("k", fn)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if v.(int) != 42 {
				t.Errorf("unexpected value: %v", v)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("fn called %d times, want 1", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("%d callers shared the result, want %d", got, workers-1)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32

	fn := func() (any, error) {
		calls.Add(1)
		return "out", nil
	}

	if _, err, _ := g.Do("a", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err, _ := g.Do("b", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("fn called %d times, want 2", got)
	}
}

func TestSingleFlight_PropagatesError(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	boom := errors.New("boom")

	_, err, _ := g.Do("k", func() (any, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	// The failed call must not stay registered.
	v, err, _ := g.Do("k", func() (any, error) { return "ok", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(string) != "ok" {
		t.Fatalf("unexpected value: %v", v)
	}
}
