package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/teamforge/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if !q.Enqueue(ctx, model.ScoreRequest{Revision: 1}) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	r := <-q.Dequeue(ctx)
	if r.Revision != 1 {
		t.Errorf("expected revision 1, got %d", r.Revision)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for rev := uint64(1); rev <= 2; rev++ {
		if !q.Enqueue(ctx, model.ScoreRequest{Revision: rev}) {
			t.Errorf("expected enqueue of revision %d to succeed", rev)
		}
	}
	if q.Enqueue(ctx, model.ScoreRequest{Revision: 3}) {
		t.Error("expected enqueue to fail when full")
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, model.ScoreRequest{Revision: 1}) {
		t.Error("expected enqueue with cancelled context to fail")
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue()
	ctx := context.Background()
	q.Enqueue(ctx, model.ScoreRequest{Revision: 1})

	out := q.Dequeue(ctx)
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}
	if q.Enqueue(ctx, model.ScoreRequest{Revision: 2}) {
		t.Error("expected enqueue after close to fail")
	}

	got := 0
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				if got != 1 {
					t.Errorf("expected 1 buffered request drained, got %d", got)
				}
				return
			}
			got++
		case <-timeout:
			t.Fatal("dequeue channel was not closed")
		}
	}
}

func TestInMemoryQueue_ConcurrentProducers(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()

	var wg sync.WaitGroup
	for p := 0; p < 10; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q.Enqueue(ctx, model.ScoreRequest{Revision: uint64(p*50 + i)})
			}
		}(p)
	}
	wg.Wait()

	if l := q.Len(ctx); l != 500 {
		t.Errorf("expected 500 queued requests, got %d", l)
	}
}
