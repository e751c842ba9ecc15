package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fanmeet-engine/internal/meeting"
	"fanmeet-engine/internal/metrics"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/internal/payment"
	"fanmeet-engine/internal/settlement"
	"fanmeet-engine/utils"
)

// Reasons sent with refunds
const (
	RefundReasonAuctionLost   = "AUCTION_LOST"
	RefundReasonCreatorNoShow = "CREATOR_NO_SHOW"
)

// idempotency key prefixes
const (
	refundKeyPrefix    = "refund:"
	payoutKeyPrefix    = "payout:"
	bidRefundKeyPrefix = "bid-refund:"
)

func winningBid(m model.Meeting) model.Bid {
	return model.Bid{
		BidID:     m.WinningBidID,
		AuctionID: m.EventID,
		BidderID:  m.FanID,
		Amount:    m.WinningAmount,
		Status:    model.BidWon,
	}
}

// settleNoShow refunds the full winning amount of a no-show meeting and records
// the reference. The meeting id is the idempotency key, so a retry after a lost
// response cannot refund twice.
func (s *Service) settleNoShow(ctx context.Context, m model.Meeting) (model.Meeting, error) {
	if m.RefundID != "" {
		return m, nil
	}

	owed := s.calc.FullRefund(winningBid(m))
	ref, err := s.gateway.Refund(ctx, payment.RefundRequest{
		IdempotencyKey: refundKeyPrefix + m.MeetingID,
		BidID:          m.WinningBidID,
		FanID:          m.FanID,
		Amount:         owed.FanRefund,
		Reason:         RefundReasonCreatorNoShow,
	})
	metrics.Settlements.WithLabelValues(string(settlement.KindNoShowRefund), metrics.Result(err)).Inc()
	if err != nil {
		s.events.MeetingEvent(ctx, m.MeetingID, model.EventRefundFailed, map[string]string{
			"fan_id": m.FanID,
			"amount": strconv.FormatInt(owed.FanRefund, 10),
			"error":  err.Error(),
		})
		utils.Error("lifecycle: no-show refund failed", map[string]any{"meeting_id": m.MeetingID, "amount": owed.FanRefund, "error": err.Error()})
		return m, fmt.Errorf("lifecycle: refund meeting %s: %w", m.MeetingID, err)
	}

	t, err := s.apply(ctx, m.MeetingID, "record_refund", s.now(), func(current model.Meeting, _ time.Time) (meeting.Transition, error) {
		return s.machine.RecordRefund(current, ref)
	})
	if err != nil {
		utils.Error("lifecycle: refund issued but not recorded", map[string]any{"meeting_id": m.MeetingID, "refund_id": ref, "error": err.Error()})
		return m, err
	}
	return t.Meeting, nil
}

// settlePayout pays the creator amount - commission for a completed meeting
func (s *Service) settlePayout(ctx context.Context, m model.Meeting) (model.Meeting, error) {
	if m.PayoutID != "" {
		return m, nil
	}

	split, err := s.calc.Settle(winningBid(m))
	if err != nil {
		return m, err
	}
	ref, err := s.gateway.Payout(ctx, payment.PayoutRequest{
		IdempotencyKey: payoutKeyPrefix + m.MeetingID,
		MeetingID:      m.MeetingID,
		CreatorID:      m.CreatorID,
		Amount:         split.CreatorPayout,
		Commission:     split.Commission,
	})
	metrics.Settlements.WithLabelValues(string(settlement.KindCreatorPayout), metrics.Result(err)).Inc()
	if err != nil {
		s.events.MeetingEvent(ctx, m.MeetingID, model.EventPayoutFailed, map[string]string{
			"creator_id": m.CreatorID,
			"amount":     strconv.FormatInt(split.CreatorPayout, 10),
			"error":      err.Error(),
		})
		utils.Error("lifecycle: creator payout failed", map[string]any{"meeting_id": m.MeetingID, "amount": split.CreatorPayout, "error": err.Error()})
		return m, fmt.Errorf("lifecycle: payout meeting %s: %w", m.MeetingID, err)
	}

	t, err := s.apply(ctx, m.MeetingID, "record_payout", s.now(), func(current model.Meeting, _ time.Time) (meeting.Transition, error) {
		return s.machine.RecordPayout(current, ref)
	})
	if err != nil {
		utils.Error("lifecycle: payout issued but not recorded", map[string]any{"meeting_id": m.MeetingID, "payout_id": ref, "error": err.Error()})
		return m, err
	}
	return t.Meeting, nil
}

// refundLoser returns amount - commission of a lost bid and stores the reference
func (s *Service) refundLoser(ctx context.Context, bid model.Bid) error {
	if bid.RefundID != "" {
		return nil
	}

	split, err := s.calc.Settle(bid)
	if err != nil {
		return err
	}
	ref, err := s.gateway.Refund(ctx, payment.RefundRequest{
		IdempotencyKey: bidRefundKeyPrefix + bid.BidID,
		BidID:          bid.BidID,
		FanID:          bid.BidderID,
		Amount:         split.FanRefund,
		Reason:         RefundReasonAuctionLost,
	})
	metrics.Settlements.WithLabelValues(string(settlement.KindLoserRefund), metrics.Result(err)).Inc()
	if err != nil {
		s.events.AuctionEvent(ctx, bid.AuctionID, model.EventBidRefundFailed, map[string]string{
			"bid_id":    bid.BidID,
			"bidder_id": bid.BidderID,
			"amount":    strconv.FormatInt(split.FanRefund, 10),
			"error":     err.Error(),
		})
		utils.Error("lifecycle: loser refund failed", map[string]any{"bid_id": bid.BidID, "amount": split.FanRefund, "error": err.Error()})
		return fmt.Errorf("lifecycle: refund bid %s: %w", bid.BidID, err)
	}

	if err := s.ledger.RecordBidRefund(ctx, bid.BidID, ref); err != nil {
		utils.Error("lifecycle: refund issued but not recorded", map[string]any{"bid_id": bid.BidID, "refund_id": ref, "error": err.Error()})
		return err
	}
	s.events.AuctionEvent(ctx, bid.AuctionID, model.EventBidRefundIssued, map[string]string{
		"bid_id":     bid.BidID,
		"bidder_id":  bid.BidderID,
		"amount":     strconv.FormatInt(split.FanRefund, 10),
		"commission": strconv.FormatInt(split.Commission, 10),
		"refund_id":  ref,
	})
	return nil
}

// refundLosers attempts every refund and joins the failures
func (s *Service) refundLosers(ctx context.Context, bids []model.Bid) error {
	var errs []error
	for _, bid := range bids {
		if err := s.refundLoser(ctx, bid); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
