package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"fanmeet-engine/internal/engineerrors"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/utils"

	"golang.org/x/sync/errgroup"
)

// SweepReport counts what one sweep did
type SweepReport struct {
	NoShowCancelled  int `json:"no_show_cancelled"`
	Completed        int `json:"completed"`
	RefundsRetried   int `json:"refunds_retried"`
	PayoutsRetried   int `json:"payouts_retried"`
	BidRefundsIssued int `json:"bid_refunds_issued"`
	Failures         int `json:"failures"`
}

type sweepCounters struct {
	noShow, completed, refunds, payouts, bidRefunds, failures atomic.Int64
}

func (c *sweepCounters) report() SweepReport {
	return SweepReport{
		NoShowCancelled:  int(c.noShow.Load()),
		Completed:        int(c.completed.Load()),
		RefundsRetried:   int(c.refunds.Load()),
		PayoutsRetried:   int(c.payouts.Load()),
		BidRefundsIssued: int(c.bidRefunds.Load()),
		Failures:         int(c.failures.Load()),
	}
}

// benign reports errors that mean another writer already moved the meeting on
func benign(err error) bool {
	return errors.Is(err, engineerrors.ErrConflict) ||
		errors.Is(err, engineerrors.ErrTooEarly) ||
		errors.Is(err, engineerrors.ErrInvalidTransition) ||
		errors.Is(err, engineerrors.ErrMeetingEnded)
}

// Sweep is the proactive pass of the engine. It cancels meetings whose creator
// never started, completes live meetings past their end and retries every
// settlement that failed earlier. Work on one meeting never aborts the others.
func (s *Service) Sweep(ctx context.Context, now time.Time) (SweepReport, error) {
	var c sweepCounters

	// settlement backlog is read first so this run only retries earlier failures
	unsettled, err := s.meetings.ListUnsettled(ctx)
	if err != nil {
		return SweepReport{}, fmt.Errorf("lifecycle: sweep: %w", err)
	}
	lostBids, err := s.ledger.ListUnrefundedLostBids(ctx)
	if err != nil {
		return SweepReport{}, fmt.Errorf("lifecycle: sweep: %w", err)
	}
	noShows, err := s.meetings.ListScheduledBefore(ctx, s.machine.NoShowCutoff(now))
	if err != nil {
		return SweepReport{}, fmt.Errorf("lifecycle: sweep: %w", err)
	}
	ended, err := s.meetings.ListLiveEndedBy(ctx, now)
	if err != nil {
		return SweepReport{}, fmt.Errorf("lifecycle: sweep: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	run := func(kind, id string, counter *atomic.Int64, fn func(context.Context) (bool, error)) {
		g.Go(func() error {
			done, err := fn(gctx)
			if done {
				counter.Add(1)
			}
			if err != nil && !benign(err) {
				c.failures.Add(1)
				utils.Warn("lifecycle: sweep item failed", map[string]any{"kind": kind, "id": id, "error": err.Error()})
			}
			return nil
		})
	}

	for _, m := range noShows {
		id := m.MeetingID
		run("no_show", id, &c.noShow, func(ctx context.Context) (bool, error) {
			return s.cancelNoShow(ctx, id, now)
		})
	}
	for _, m := range ended {
		id := m.MeetingID
		run("complete", id, &c.completed, func(ctx context.Context) (bool, error) {
			return s.completeDue(ctx, id, now)
		})
	}
	for _, m := range unsettled {
		m := m
		switch m.Status {
		case model.MeetingCancelledNoShowCreator:
			run("refund", m.MeetingID, &c.refunds, func(ctx context.Context) (bool, error) {
				_, err := s.settleNoShow(ctx, m)
				return err == nil, err
			})
		case model.MeetingCompleted:
			run("payout", m.MeetingID, &c.payouts, func(ctx context.Context) (bool, error) {
				_, err := s.settlePayout(ctx, m)
				return err == nil, err
			})
		}
	}
	for _, b := range lostBids {
		b := b
		run("bid_refund", b.BidID, &c.bidRefunds, func(ctx context.Context) (bool, error) {
			err := s.refundLoser(ctx, b)
			return err == nil, err
		})
	}

	_ = g.Wait()

	report := c.report()
	utils.Info("sweep finished", map[string]any{
		"no_show_cancelled":  report.NoShowCancelled,
		"completed":          report.Completed,
		"refunds_retried":    report.RefundsRetried,
		"payouts_retried":    report.PayoutsRetried,
		"bid_refunds_issued": report.BidRefundsIssued,
		"failures":           report.Failures,
	})
	return report, nil
}
