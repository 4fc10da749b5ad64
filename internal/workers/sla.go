package workers

import (
	"context"
	"log"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"
)

// SLASweeper auto-cancels marketplace orders whose vendor-acceptance
// deadline elapsed. The bulk update matches on current status, so an order a
// vendor accepted or rejected in the meantime is simply not in the match
// set; re-running finds nothing to change.
type SLASweeper struct {
	orders   repository.OrderRepository
	interval time.Duration
}

func NewSLASweeper(orders repository.OrderRepository, interval time.Duration) *SLASweeper {
	return &SLASweeper{orders: orders, interval: interval}
}

func (w *SLASweeper) Run(ctx context.Context) error {
	log.Println("SLA sweeper started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass. Failures are logged and retried on the next tick.
func (w *SLASweeper) Sweep(ctx context.Context) {
	n, err := w.orders.ExpireOverdueSLA(ctx, time.Now(), domain.SLAExpiredReason)
	if err != nil {
		log.Printf("sla sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("sla sweep: auto-cancelled %d orders", n)
	}
}
