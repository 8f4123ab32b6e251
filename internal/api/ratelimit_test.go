package api

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"
)

// tolerance covers the gap between the pacer's reservation and the moment
// the caller observes its return.
const tolerance = 15 * time.Millisecond

func TestPacer_BackToBack(t *testing.T) {
	p := NewPacer(MinRequestInterval)

	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	first := p.LastDispatch()

	waited, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	second := p.LastDispatch()

	if gap := second.Sub(first); gap < MinRequestInterval-tolerance {
		t.Errorf("gap = %v, want >= %v", gap, MinRequestInterval)
	}
	if waited <= 0 {
		t.Errorf("waited = %v, want > 0", waited)
	}
}

func TestPacer_FirstCallImmediate(t *testing.T) {
	p := NewPacer(MinRequestInterval)
	waited, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if waited > tolerance {
		t.Errorf("first Wait() took %v, want immediate", waited)
	}
}

func TestPacer_ConcurrentCallers(t *testing.T) {
	p := NewPacer(MinRequestInterval)
	const callers = 5

	var mu sync.Mutex
	var times []time.Time
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Wait(context.Background()); err != nil {
				t.Errorf("Wait() error = %v", err)
				return
			}
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i := 1; i < len(times); i++ {
		if gap := times[i].Sub(times[i-1]); gap < MinRequestInterval-tolerance {
			t.Errorf("dispatch %d followed previous by %v, want >= %v", i, gap, MinRequestInterval)
		}
	}
}

func TestPacer_ContextCancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := p.Wait(ctx); err == nil {
		t.Error("Wait() should fail when the context ends before the slot")
	}
}

func TestPacer_Disabled(t *testing.T) {
	p := NewPacer(0)
	start := time.Now()
	for i := 0; i < 20; i++ {
		if _, err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled pacer took %v", elapsed)
	}
	if p.Interval() != 0 {
		t.Errorf("Interval() = %v, want 0", p.Interval())
	}
}

func TestClient_Execute_SharedPacerSpacesCalls(t *testing.T) {
	var mu sync.Mutex
	var dispatched []time.Time
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		mu.Lock()
		dispatched = append(dispatched, time.Now())
		mu.Unlock()
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	pacer := NewPacer(MinRequestInterval)
	a, _ := newTestClient(t, rt, WithPacer(pacer))
	b, _ := newTestClient(t, rt, WithPacer(pacer))

	if _, err := a.Execute(context.Background(), "/a", RequestOptions{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := b.Execute(context.Background(), "/b", RequestOptions{}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(dispatched) != 2 {
		t.Fatalf("dispatched = %d, want 2", len(dispatched))
	}
	if gap := dispatched[1].Sub(dispatched[0]); gap < MinRequestInterval-tolerance {
		t.Errorf("gap = %v, want >= %v", gap, MinRequestInterval)
	}
}
