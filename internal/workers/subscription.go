package workers

import (
	"context"
	"log"
	"time"

	"fulfillment-service/internal/services"
)

// SubscriptionWorker materializes due subscriptions into orders once a day,
// during the 02:00 minute.
type SubscriptionWorker struct {
	subs *services.SubscriptionService
}

func NewSubscriptionWorker(subs *services.SubscriptionService) *SubscriptionWorker {
	return &SubscriptionWorker{subs: subs}
}

func (w *SubscriptionWorker) Run(ctx context.Context) error {
	log.Println("subscription worker started")
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if now.Hour() != 2 || now.Minute() != 0 {
				continue
			}
			created, err := w.subs.RunDue(ctx)
			if err != nil {
				log.Printf("subscription worker: %v", err)
				continue
			}
			if created > 0 {
				log.Printf("subscription worker: created %d recurring orders", created)
			}
		}
	}
}
