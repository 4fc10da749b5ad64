package workers

import (
	"context"
	"log"
	"time"

	"fulfillment-service/internal/repository"
)

// VendorOfflineSweeper flips vendors offline when their heartbeat goes
// stale, so the splitter stops routing new orders to them.
type VendorOfflineSweeper struct {
	vendors  repository.VendorRepository
	interval time.Duration
	timeout  time.Duration
}

func NewVendorOfflineSweeper(vendors repository.VendorRepository, interval, timeout time.Duration) *VendorOfflineSweeper {
	return &VendorOfflineSweeper{vendors: vendors, interval: interval, timeout: timeout}
}

func (w *VendorOfflineSweeper) Run(ctx context.Context) error {
	log.Println("vendor offline sweeper started")
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

func (w *VendorOfflineSweeper) Sweep(ctx context.Context) {
	n, err := w.vendors.MarkStaleOffline(ctx, time.Now().Add(-w.timeout))
	if err != nil {
		log.Printf("vendor offline sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("vendor offline sweep: marked %d vendors offline", n)
	}
}
