package worker

import (
	"context"
	"log"
	"time"
)

// UserPurger is the slice of the store the purge job needs.
type UserPurger interface {
	PurgeDeletedUsers(before time.Time) (int64, error)
}

// Purger permanently removes soft-deleted accounts once their retention
// window has passed.
type Purger struct {
	Store     UserPurger
	Interval  time.Duration
	Retention time.Duration
}

func (p *Purger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.purge()
		}
	}
}

func (p *Purger) purge() {
	cutoff := time.Now().Add(-p.Retention)
	n, err := p.Store.PurgeDeletedUsers(cutoff)
	if err != nil {
		log.Printf("purge: %v", err)
		return
	}
	if n > 0 {
		log.Printf("purge: removed %d deleted accounts", n)
	}
}
