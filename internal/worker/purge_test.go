package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type fakePurger struct {
	calls  atomic.Int64
	cutoff atomic.Value
}

func (f *fakePurger) PurgeDeletedUsers(before time.Time) (int64, error) {
	f.calls.Add(1)
	f.cutoff.Store(before)
	return 1, nil
}

func TestPurgerRuns(t *testing.T) {
	store := &fakePurger{}
	p := &Purger{Store: store, Interval: 10 * time.Millisecond, Retention: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for store.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("Purger never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cutoff := store.cutoff.Load().(time.Time)
	if since := time.Since(cutoff); since < p.Retention {
		t.Errorf("Cutoff %v does not respect the retention window", cutoff)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Purger did not stop on context cancel")
	}
}
