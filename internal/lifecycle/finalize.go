package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"fanmeet-engine/internal/engineerrors"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/internal/settlement"
	"fanmeet-engine/utils"
)

// Finalization is the outcome of closing an auction
type Finalization struct {
	model.FinalizationResult
	Meeting     *model.Meeting          `json:"meeting,omitempty"`
	Settlements []settlement.Settlement `json:"settlements"`
}

// FinalizeAuction closes the auction, schedules the winner's meeting and
// refunds the losers. Every step is idempotent, so both the auto-close job and
// an operator may call it for the same auction. Refund failures are logged and
// left for the sweep.
func (s *Service) FinalizeAuction(ctx context.Context, auctionID string) (Finalization, error) {
	result, err := s.ledger.CloseAuction(ctx, auctionID)
	if err != nil {
		return Finalization{}, err
	}

	out := Finalization{FinalizationResult: result, Settlements: []settlement.Settlement{}}

	if result.WinningBid != nil {
		auction, err := s.ledger.GetAuction(ctx, auctionID)
		if err != nil {
			return Finalization{}, err
		}
		m, err := s.scheduleMeeting(ctx, auction, *result.WinningBid)
		if err != nil {
			return Finalization{}, err
		}
		out.Meeting = &m

		split, err := s.calc.Settle(*result.WinningBid)
		if err != nil {
			return Finalization{}, err
		}
		out.Settlements = append(out.Settlements, split)
	}

	for _, bid := range result.LosingBids {
		split, err := s.calc.Settle(bid)
		if err != nil {
			return Finalization{}, err
		}
		out.Settlements = append(out.Settlements, split)
	}

	if err := s.refundLosers(ctx, result.LosingBids); err != nil {
		utils.Warn("lifecycle: loser refunds pending", map[string]any{"auction_id": auctionID, "error": err.Error()})
	}
	return out, nil
}

// scheduleMeeting creates the winner's meeting once per auction
func (s *Service) scheduleMeeting(ctx context.Context, auction model.Auction, winner model.Bid) (model.Meeting, error) {
	candidate := model.Meeting{
		MeetingID:       utils.GenerateID(),
		EventID:         auction.AuctionID,
		CreatorID:       auction.CreatorID,
		FanID:           winner.BidderID,
		WinningBidID:    winner.BidID,
		WinningAmount:   winner.Amount,
		ScheduledAt:     auction.MeetingScheduledAt.UTC(),
		DurationMinutes: auction.MeetingDurationMinutes,
		EndsAt:          model.EndTime(auction.MeetingScheduledAt.UTC(), auction.MeetingDurationMinutes),
		Status:          model.MeetingScheduled,
		CreatedAt:       s.now(),
	}

	stored, err := s.meetings.CreateMeeting(ctx, candidate)
	if err != nil {
		// a concurrent finalizer may have won the unique event index
		existing, getErr := s.meetings.GetMeetingByEvent(ctx, auction.AuctionID)
		if getErr != nil {
			return model.Meeting{}, fmt.Errorf("lifecycle: schedule meeting for auction %s: %w", auction.AuctionID, errors.Join(err, getErr))
		}
		return existing, nil
	}
	if stored.MeetingID != candidate.MeetingID {
		return stored, nil
	}

	s.events.MeetingEvent(ctx, stored.MeetingID, model.EventMeetingCreated, map[string]string{
		"auction_id":     auction.AuctionID,
		"creator_id":     stored.CreatorID,
		"fan_id":         stored.FanID,
		"winning_bid_id": stored.WinningBidID,
		"amount":         strconv.FormatInt(stored.WinningAmount, 10),
		"scheduled_at":   formatTime(&stored.ScheduledAt),
	})
	utils.Info("meeting scheduled", map[string]any{"meeting_id": stored.MeetingID, "auction_id": auction.AuctionID, "fan_id": stored.FanID})
	return stored, nil
}

// CloseDueAuctions finalizes every open auction whose bidding window has passed,
// then schedules any winner whose meeting was not created when the auction closed
func (s *Service) CloseDueAuctions(ctx context.Context) (int, error) {
	due, err := s.ledger.ListDueAuctions(ctx)
	if err != nil {
		return 0, err
	}

	closed := 0
	var errs []error
	for _, a := range due {
		if _, err := s.FinalizeAuction(ctx, a.AuctionID); err != nil {
			if errors.Is(err, engineerrors.ErrConflict) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		closed++
	}

	if err := s.recoverMeetings(ctx); err != nil {
		errs = append(errs, err)
	}
	return closed, errors.Join(errs...)
}

// recoverMeetings creates the missing meeting of every closed auction with a winner
func (s *Service) recoverMeetings(ctx context.Context) error {
	winners, err := s.meetings.ListWinnersWithoutMeeting(ctx)
	if err != nil {
		return fmt.Errorf("lifecycle: list winners without meeting: %w", err)
	}

	var errs []error
	for _, w := range winners {
		auction, err := s.ledger.GetAuction(ctx, w.AuctionID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m, err := s.scheduleMeeting(ctx, auction, w)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		utils.Info("meeting recovered for closed auction", map[string]any{"auction_id": w.AuctionID, "meeting_id": m.MeetingID})
	}
	return errors.Join(errs...)
}
