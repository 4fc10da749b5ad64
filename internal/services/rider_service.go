package services

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"
)

// RiderService drives the strictly linear delivery workflow. The two
// OTP-gated checkpoints (pickup, delivery) have dedicated entry points; the
// remaining hops are plain status writes validated against the adjacency
// table.
type RiderService struct {
	riderOrders repository.RiderOrderRepository
}

func NewRiderService(riderOrders repository.RiderOrderRepository) *RiderService {
	return &RiderService{riderOrders: riderOrders}
}

func (s *RiderService) ListOrders(ctx context.Context, riderID uint64, status domain.RiderStatus) ([]domain.RiderOrder, error) {
	if status != "" && !domain.ValidRiderStatus(status) {
		return nil, domain.ErrInvalidTransition
	}
	return s.riderOrders.FindByRider(ctx, riderID, status)
}

func (s *RiderService) GetOrder(ctx context.Context, orderID, riderID uint64) (*domain.RiderOrder, error) {
	order, err := s.riderOrders.FindForRider(ctx, orderID, riderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// UpdateStatus handles the non-gated hops (picked -> enroute,
// enroute -> arrived). OTP-gated statuses must go through their checkpoint.
func (s *RiderService) UpdateStatus(ctx context.Context, orderID, riderID uint64, to domain.RiderStatus) (*domain.RiderOrder, error) {
	if to != domain.RiderEnroute && to != domain.RiderArrived {
		return nil, domain.ErrInvalidTransition
	}

	order, err := s.GetOrder(ctx, orderID, riderID)
	if err != nil {
		return nil, err
	}

	next, ok := domain.NextRiderStatus(order.Status)
	if !ok || next != to {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.riderOrders.SetStatus(ctx, orderID, riderID, order.Status, to, time.Now())
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrStateConflict
	}

	order.Status = to
	return order, nil
}

func (s *RiderService) VerifyPickupOTP(ctx context.Context, orderID, riderID uint64, otp string) (*domain.RiderOrder, error) {
	order, err := s.GetOrder(ctx, orderID, riderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.RiderAssigned {
		return nil, domain.ErrInvalidTransition
	}
	if otp == "" || otp != order.PickupOTP {
		return nil, domain.ErrInvalidOTP
	}

	now := time.Now()
	updated, err := s.riderOrders.SetStatus(ctx, orderID, riderID, domain.RiderAssigned, domain.RiderPicked, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrStateConflict
	}

	order.Status = domain.RiderPicked
	order.PickedAt = &now
	return order, nil
}

func (s *RiderService) VerifyDeliveryOTP(ctx context.Context, orderID, riderID uint64, otp string) (*domain.RiderOrder, error) {
	order, err := s.GetOrder(ctx, orderID, riderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.RiderArrived {
		return nil, domain.ErrInvalidTransition
	}
	if otp == "" || otp != order.DeliveryOTP {
		return nil, domain.ErrInvalidOTP
	}

	// Live-animal and fragile jobs may not complete without photo proof.
	if order.RequiresProof() && !order.HasProof() {
		return nil, domain.ErrProofRequired
	}

	now := time.Now()
	updated, err := s.riderOrders.SetStatus(ctx, orderID, riderID, domain.RiderArrived, domain.RiderDelivered, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrStateConflict
	}

	order.Status = domain.RiderDelivered
	order.DeliveredAt = &now
	return order, nil
}

func (s *RiderService) AttachProof(ctx context.Context, orderID, riderID uint64, photoURL, notes string) (*domain.DeliveryProof, error) {
	now := time.Now()
	proof := domain.DeliveryProof{PhotoURL: photoURL, Notes: notes, UploadedAt: &now}

	updated, err := s.riderOrders.AttachProof(ctx, orderID, riderID, proof)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrNotFound
	}
	return &proof, nil
}

type EarningsSummary struct {
	Range           string  `json:"range"`
	TotalEarning    int64   `json:"totalEarning"`
	DeliveriesCount int     `json:"deliveriesCount"`
	AvgPerJob       float64 `json:"avgPerJob"`
}

func (s *RiderService) EarningsSummary(ctx context.Context, riderID uint64, rng string) (*EarningsSummary, error) {
	now := time.Now()
	var since time.Time
	switch rng {
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	default:
		rng = "today"
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	delivered, err := s.riderOrders.DeliveredSince(ctx, riderID, since)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, o := range delivered {
		total += o.Earning
	}

	summary := &EarningsSummary{
		Range:           rng,
		TotalEarning:    total,
		DeliveriesCount: len(delivered),
	}
	if len(delivered) > 0 {
		summary.AvgPerJob = float64(total) / float64(len(delivered))
	}
	return summary, nil
}
