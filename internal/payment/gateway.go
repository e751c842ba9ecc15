// Package payment is the boundary to the external money-movement service.
// Every request carries an idempotency key so a retried refund or payout is
// executed at most once by the provider.
package payment

import (
	"context"
	"sync"

	"fanmeet-engine/utils"
)

// RefundRequest returns money to a fan
type RefundRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	BidID          string `json:"bid_id"`
	FanID          string `json:"fan_id"`
	Amount         int64  `json:"amount"`
	Reason         string `json:"reason"`
}

// PayoutRequest pays a creator for a delivered meeting
type PayoutRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	MeetingID      string `json:"meeting_id"`
	CreatorID      string `json:"creator_id"`
	Amount         int64  `json:"amount"`
	Commission     int64  `json:"commission"`
}

//go:generate mockgen -source=gateway.go -destination=mock_gateway.go -package=payment

// Gateway executes refunds and payouts and returns the provider reference
type Gateway interface {
	Refund(ctx context.Context, req RefundRequest) (string, error)
	Payout(ctx context.Context, req PayoutRequest) (string, error)
}

// LedgerGateway records money movement locally and derives references from
// the idempotency key. Used when no payment service is configured.
type LedgerGateway struct {
	mu      sync.Mutex
	refunds map[string]RefundRequest
	payouts map[string]PayoutRequest
}

// NewLedgerGateway creates an empty local ledger
func NewLedgerGateway() *LedgerGateway {
	return &LedgerGateway{
		refunds: make(map[string]RefundRequest),
		payouts: make(map[string]PayoutRequest),
	}
}

// Refund records the refund once per idempotency key
func (g *LedgerGateway) Refund(_ context.Context, req RefundRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.refunds[req.IdempotencyKey]; !ok {
		g.refunds[req.IdempotencyKey] = req
		utils.Info("payment: refund recorded", map[string]any{"idempotency_key": req.IdempotencyKey, "fan_id": req.FanID, "amount": req.Amount})
	}
	return "rfd_" + utils.DeterministicID("refund", req.IdempotencyKey), nil
}

// Payout records the payout once per idempotency key
func (g *LedgerGateway) Payout(_ context.Context, req PayoutRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.payouts[req.IdempotencyKey]; !ok {
		g.payouts[req.IdempotencyKey] = req
		utils.Info("payment: payout recorded", map[string]any{"idempotency_key": req.IdempotencyKey, "creator_id": req.CreatorID, "amount": req.Amount})
	}
	return "pay_" + utils.DeterministicID("payout", req.IdempotencyKey), nil
}

// Refunds returns the distinct refunds recorded so far
func (g *LedgerGateway) Refunds() []RefundRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]RefundRequest, 0, len(g.refunds))
	for _, r := range g.refunds {
		out = append(out, r)
	}
	return out
}

// Payouts returns the distinct payouts recorded so far
func (g *LedgerGateway) Payouts() []PayoutRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]PayoutRequest, 0, len(g.payouts))
	for _, p := range g.payouts {
		out = append(out, p)
	}
	return out
}
