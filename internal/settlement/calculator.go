// Package settlement splits finalized bid amounts into platform commission and
// the payout or refund owed to a party. All amounts are integer minor units.
package settlement

import (
	"fmt"

	"fanmeet-engine/internal/engineerrors"
	model "fanmeet-engine/internal/models"
)

const basisPoints = 10000

// DefaultCommissionBPS is 10%
const DefaultCommissionBPS = 1000

// Kind names the money movement a settlement asks for
type Kind string

const (
	KindCreatorPayout Kind = "creator_payout"
	KindLoserRefund   Kind = "loser_refund"
	KindNoShowRefund  Kind = "no_show_refund"
)

// Settlement is the computed split of one bid amount
type Settlement struct {
	BidID         string `json:"bid_id"`
	Kind          Kind   `json:"kind"`
	Amount        int64  `json:"amount"`
	Commission    int64  `json:"commission"`
	CreatorPayout int64  `json:"creator_payout,omitempty"`
	FanRefund     int64  `json:"fan_refund,omitempty"`
}

// Calculator is stateless apart from its commission rate
type Calculator struct {
	commissionBPS int64
}

// NewCalculator returns a calculator charging commissionBPS basis points
func NewCalculator(commissionBPS int64) *Calculator {
	return &Calculator{commissionBPS: commissionBPS}
}

// Commission floors amount * rate without overflowing int64
func (c *Calculator) Commission(amount int64) int64 {
	return amount/basisPoints*c.commissionBPS + amount%basisPoints*c.commissionBPS/basisPoints
}

// Settle splits a won or lost bid. Winners pay the creator amount - commission,
// losers get amount - commission back.
func (c *Calculator) Settle(bid model.Bid) (Settlement, error) {
	commission := c.Commission(bid.Amount)
	s := Settlement{BidID: bid.BidID, Amount: bid.Amount, Commission: commission}

	switch bid.Status {
	case model.BidWon:
		s.Kind = KindCreatorPayout
		s.CreatorPayout = bid.Amount - commission
	case model.BidLost:
		s.Kind = KindLoserRefund
		s.FanRefund = bid.Amount - commission
	default:
		return Settlement{}, fmt.Errorf("settle bid %s with status %s: %w", bid.BidID, bid.Status, engineerrors.ErrInvalidBid)
	}
	return s, nil
}

// FullRefund returns the whole winning amount to the fan after a creator no-show
func (c *Calculator) FullRefund(bid model.Bid) Settlement {
	return Settlement{
		BidID:     bid.BidID,
		Kind:      KindNoShowRefund,
		Amount:    bid.Amount,
		FanRefund: bid.Amount,
	}
}
