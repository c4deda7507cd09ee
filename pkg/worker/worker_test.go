package worker

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerExecutesSubmittedTasks(t *testing.T) {
	w := New(Config{Name: "worker-0"})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		err := w.Submit(func() {
			ran.Add(1)
			wg.Done()
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if got := ran.Load(); got != 10 {
		t.Errorf("ran %d tasks, want 10", got)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestWorkerStopDrainsQueue(t *testing.T) {
	w := New(Config{Name: "worker-0", QueueDepth: 16})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var ran atomic.Int32
	for i := 0; i < 16; i++ {
		if err := w.Submit(func() { ran.Add(1) }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// Stop must not return until every enqueued task has run.
	if got := ran.Load(); got != 16 {
		t.Errorf("ran %d tasks before Stop returned, want 16", got)
	}
}

func TestWorkerSubmitAfterStop(t *testing.T) {
	w := New(Config{Name: "worker-0"})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	err := w.Submit(func() { t.Error("task ran after Stop") })
	if !errors.Is(err, ErrStopped) {
		t.Errorf("Submit after Stop: got %v, want ErrStopped", err)
	}

	// Give a leaked task a chance to run before the test ends.
	time.Sleep(10 * time.Millisecond)
}

func TestWorkerSubmitBeforeStart(t *testing.T) {
	w := New(Config{Name: "worker-0"})
	if err := w.Submit(func() {}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Submit before Start: got %v, want ErrNotStarted", err)
	}
}

func TestWorkerDoubleStart(t *testing.T) {
	w := New(Config{Name: "worker-0"})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start: got %v, want ErrAlreadyStarted", err)
	}
}

func TestWorkerStopBeforeStart(t *testing.T) {
	w := New(Config{Name: "worker-0"})
	if err := w.Stop(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Stop before Start: got %v, want ErrNotStarted", err)
	}
}

func TestWorkerStopIsIdempotent(t *testing.T) {
	w := New(Config{Name: "worker-0"})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("first Stop failed: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
	if w.Running() {
		t.Error("worker still running after Stop")
	}
}

func TestWorkerQueueFull(t *testing.T) {
	w := New(Config{Name: "worker-0", QueueDepth: 1})
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	block := make(chan struct{})
	started := make(chan struct{})
	if err := w.Submit(func() {
		close(started)
		<-block
	}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	<-started

	// One slot in the queue: fill it, then the next submit must fail.
	if err := w.Submit(func() {}); err != nil {
		t.Fatalf("Submit to empty queue failed: %v", err)
	}
	if err := w.Submit(func() {}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Submit to full queue: got %v, want ErrQueueFull", err)
	}

	close(block)
}

func TestWorkerIdentity(t *testing.T) {
	a := New(Config{Name: "worker-0"})
	b := New(Config{Name: "worker-1"})

	if a.ID() == "" || b.ID() == "" {
		t.Fatal("worker ID is empty")
	}
	if a.ID() == b.ID() {
		t.Error("two workers share an ID")
	}
	if a.Name() != "worker-0" {
		t.Errorf("Name: got %q, want %q", a.Name(), "worker-0")
	}
}
