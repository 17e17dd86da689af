package workers

import (
	"context"
	"log"
	"time"
)

type OverdueStore interface {
	MarkOverdueLoans(ctx context.Context) (int64, error)
}

// OverdueSweeper periodically persists the derived OVERDUE status so that
// stored-status filters stay accurate between reads. Read paths derive the
// status themselves; the sweep only exists for dashboards and filters.
type OverdueSweeper struct {
	store    OverdueStore
	interval time.Duration
}

func NewOverdueSweeper(store OverdueStore, interval time.Duration) *OverdueSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &OverdueSweeper{store: store, interval: interval}
}

// Start runs an immediate sweep and then ticks until ctx is cancelled.
func (s *OverdueSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		s.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *OverdueSweeper) sweep(ctx context.Context) {
	n, err := s.store.MarkOverdueLoans(ctx)
	if err != nil {
		log.Printf("overdue sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("overdue sweep: marked %d loans", n)
	}
}
