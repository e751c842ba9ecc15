// Package lifecycle drives a won auction through its meeting: it applies the
// meeting rules with compare-and-swap, fans committed transitions out to the
// event log and moves money once the state that requires it is committed.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fanmeet-engine/internal/engineerrors"
	"fanmeet-engine/internal/meeting"
	"fanmeet-engine/internal/metrics"
	model "fanmeet-engine/internal/models"
	"fanmeet-engine/internal/payment"
	"fanmeet-engine/internal/repository"
	"fanmeet-engine/internal/settlement"
	"fanmeet-engine/utils"
)

const (
	DefaultMaxAttempts      = 5
	DefaultSweepConcurrency = 8
)

// Ledger is the part of the auction ledger the orchestrator drives
type Ledger interface {
	CloseAuction(ctx context.Context, auctionID string) (model.FinalizationResult, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListDueAuctions(ctx context.Context) ([]model.Auction, error)
	ListUnrefundedLostBids(ctx context.Context) ([]model.Bid, error)
	RecordBidRefund(ctx context.Context, bidID, refundID string) error
}

// EventSink receives committed transitions
type EventSink interface {
	MeetingEvent(ctx context.Context, meetID, eventType string, metadata map[string]string)
	AuctionEvent(ctx context.Context, auctionID, eventType string, metadata map[string]string)
}

type noopSink struct{}

func (noopSink) MeetingEvent(context.Context, string, string, map[string]string) {}
func (noopSink) AuctionEvent(context.Context, string, string, map[string]string) {}

// Service is the lifecycle orchestrator
type Service struct {
	meetings    repository.MeetingDB
	ledger      Ledger
	gateway     payment.Gateway
	events      EventSink
	machine     *meeting.Machine
	calc        *settlement.Calculator
	attempts    int
	concurrency int
	now         func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithNoShowGrace delays the creator no-show cancellation past scheduledAt
func WithNoShowGrace(grace time.Duration) Option {
	return func(s *Service) { s.machine = meeting.NewMachine(grace) }
}

// WithCommissionBPS sets the platform commission in basis points
func WithCommissionBPS(bps int64) Option {
	return func(s *Service) { s.calc = settlement.NewCalculator(bps) }
}

// WithMaxAttempts bounds how often a transition is re-evaluated after losing a race
func WithMaxAttempts(n int) Option {
	return func(s *Service) { s.attempts = n }
}

// WithSweepConcurrency bounds the meetings a sweep processes in parallel
func WithSweepConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

// WithEventSink sends committed transitions to sink
func WithEventSink(sink EventSink) Option {
	return func(s *Service) { s.events = sink }
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a lifecycle orchestrator
func NewService(meetings repository.MeetingDB, ledger Ledger, gateway payment.Gateway, opts ...Option) *Service {
	s := &Service{
		meetings:    meetings,
		ledger:      ledger,
		gateway:     gateway,
		events:      noopSink{},
		machine:     meeting.NewMachine(0),
		calc:        settlement.NewCalculator(settlement.DefaultCommissionBPS),
		attempts:    DefaultMaxAttempts,
		concurrency: DefaultSweepConcurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.attempts <= 0 {
		s.attempts = DefaultMaxAttempts
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultSweepConcurrency
	}
	return s
}

// Result is what a caller sees after a meeting action
type Result struct {
	Meeting model.Meeting   `json:"meeting"`
	Outcome meeting.Outcome `json:"outcome"`
	Applied bool            `json:"applied"`
}

func resultOf(t meeting.Transition) Result {
	return Result{Meeting: t.Meeting, Outcome: t.Outcome, Applied: t.Applied}
}

type rule func(m model.Meeting, now time.Time) (meeting.Transition, error)

// apply evaluates r against a fresh read and commits it conditionally on the
// version that was read. A lost race re-reads and re-evaluates, so a
// concurrent caller that already applied the transition turns this into a no-op.
func (s *Service) apply(ctx context.Context, meetingID, name string, now time.Time, r rule) (meeting.Transition, error) {
	for attempt := 0; attempt < s.attempts; attempt++ {
		current, err := s.meetings.GetMeeting(ctx, meetingID)
		if err != nil {
			return meeting.Transition{}, fmt.Errorf("lifecycle: %s: %w", name, err)
		}

		t, err := r(current, now)
		if err != nil {
			return meeting.Transition{}, err
		}
		if !t.Applied {
			metrics.MeetingTransitions.WithLabelValues(name, metrics.Applied(false)).Inc()
			return t, nil
		}

		updated, err := s.meetings.UpdateMeeting(ctx, t.Meeting, current.Version)
		if errors.Is(err, engineerrors.ErrConflict) {
			utils.Debug("lifecycle: lost transition race", map[string]any{"meeting_id": meetingID, "transition": name, "attempt": attempt + 1})
			continue
		}
		if err != nil {
			return meeting.Transition{}, fmt.Errorf("lifecycle: %s: %w", name, err)
		}

		t.Meeting = updated
		metrics.MeetingTransitions.WithLabelValues(name, metrics.Applied(true)).Inc()
		for _, ev := range t.Events {
			s.events.MeetingEvent(ctx, meetingID, ev, eventMetadata(ev, updated))
		}
		return t, nil
	}

	return meeting.Transition{}, fmt.Errorf("lifecycle: %s meeting %s: %w", name, meetingID, engineerrors.ErrConflict)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func eventMetadata(eventType string, m model.Meeting) map[string]string {
	meta := map[string]string{"status": string(m.Status)}
	switch eventType {
	case model.EventCreatorStarted:
		meta["creator_id"] = m.CreatorID
		meta["creator_started_at"] = formatTime(m.CreatorStartedAt)
	case model.EventCreatorJoined:
		meta["creator_id"] = m.CreatorID
		meta["creator_joined_at"] = formatTime(m.CreatorJoinedAt)
	case model.EventFanJoined:
		meta["fan_id"] = m.FanID
		meta["fan_joined_at"] = formatTime(m.FanJoinedAt)
	case model.EventRecordingStarted:
		meta["recording_started_at"] = formatTime(m.RecordingStartedAt)
	case model.EventRecordingStopped:
		meta["recording_stopped_at"] = formatTime(m.RecordingStoppedAt)
	case model.EventMeetingCompleted:
		meta["completed_at"] = formatTime(m.CompletedAt)
	case model.EventCancelledNoShow, model.EventMeetingCancelled:
		meta["cancelled_at"] = formatTime(m.CancelledAt)
		meta["reason"] = m.CancellationReason
	case model.EventRefundIssued:
		meta["refund_id"] = m.RefundID
		meta["fan_id"] = m.FanID
		meta["amount"] = strconv.FormatInt(m.WinningAmount, 10)
	case model.EventPayoutIssued:
		meta["payout_id"] = m.PayoutID
		meta["creator_id"] = m.CreatorID
	}
	return meta
}

// Now is the orchestrator's clock
func (s *Service) Now() time.Time { return s.now() }

// GetMeeting returns a meeting by id
func (s *Service) GetMeeting(ctx context.Context, meetingID string) (model.Meeting, error) {
	if meetingID == "" {
		return model.Meeting{}, fmt.Errorf("lifecycle: %w - empty meeting ID", engineerrors.ErrMeetingNotFound)
	}
	m, err := s.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		return model.Meeting{}, fmt.Errorf("lifecycle: %w", err)
	}
	return m, nil
}

// GetMeetingByAuction returns the meeting created for a won auction
func (s *Service) GetMeetingByAuction(ctx context.Context, auctionID string) (model.Meeting, error) {
	m, err := s.meetings.GetMeetingByEvent(ctx, auctionID)
	if err != nil {
		return model.Meeting{}, fmt.Errorf("lifecycle: %w", err)
	}
	return m, nil
}

// AttemptStart moves the meeting live on the creator's request. Calling it
// again while live is a successful no-op.
func (s *Service) AttemptStart(ctx context.Context, meetingID, creatorID string) (Result, error) {
	t, err := s.apply(ctx, meetingID, "start", s.now(), func(m model.Meeting, now time.Time) (meeting.Transition, error) {
		return s.machine.Start(m, creatorID, now)
	})
	if err != nil {
		return Result{}, err
	}
	return resultOf(t), nil
}

// AttemptJoin records a participant's arrival or tells them to wait
func (s *Service) AttemptJoin(ctx context.Context, meetingID, participantID string) (Result, error) {
	t, err := s.apply(ctx, meetingID, "join", s.now(), func(m model.Meeting, now time.Time) (meeting.Transition, error) {
		return s.machine.Join(m, participantID, now)
	})
	if err != nil {
		return Result{}, err
	}
	return resultOf(t), nil
}

// EndMeeting is the explicit end-of-call by either participant. The creator
// payout follows the committed completion.
func (s *Service) EndMeeting(ctx context.Context, meetingID, participantID string) (Result, error) {
	t, err := s.apply(ctx, meetingID, "end", s.now(), func(m model.Meeting, now time.Time) (meeting.Transition, error) {
		if participantID != m.CreatorID && participantID != m.FanID {
			return meeting.Transition{}, fmt.Errorf("end meeting %s: %w", m.MeetingID, engineerrors.ErrNotParticipant)
		}
		return s.machine.Complete(m, now, true)
	})
	if err != nil {
		return Result{}, err
	}

	if t.Applied {
		if settled, err := s.settlePayout(ctx, t.Meeting); err == nil {
			t.Meeting = settled
		}
	}
	return resultOf(t), nil
}

// CancelMeeting is the operator's manual cancellation. No money moves.
func (s *Service) CancelMeeting(ctx context.Context, meetingID, reason string) (Result, error) {
	t, err := s.apply(ctx, meetingID, "cancel", s.now(), func(m model.Meeting, now time.Time) (meeting.Transition, error) {
		return s.machine.Cancel(m, reason, now)
	})
	if err != nil {
		return Result{}, err
	}
	if t.Applied {
		utils.Info("meeting cancelled by operator", map[string]any{"meeting_id": meetingID, "reason": t.Meeting.CancellationReason})
	}
	return resultOf(t), nil
}

// cancelNoShow cancels a meeting whose creator never started and refunds the fan in full
func (s *Service) cancelNoShow(ctx context.Context, meetingID string, now time.Time) (bool, error) {
	t, err := s.apply(ctx, meetingID, "no_show", now, s.machine.CancelNoShow)
	if err != nil {
		return false, err
	}
	if !t.Applied {
		return false, nil
	}

	s.events.MeetingEvent(ctx, meetingID, model.EventFanJoinStatus, map[string]string{
		"fan_id":     t.Meeting.FanID,
		"fan_joined": strconv.FormatBool(t.Meeting.FanJoinedAt != nil),
	})
	utils.Info("meeting cancelled, creator did not show", map[string]any{"meeting_id": meetingID, "fan_id": t.Meeting.FanID})

	if _, err := s.settleNoShow(ctx, t.Meeting); err != nil {
		return true, err
	}
	return true, nil
}

// completeDue completes a live meeting whose scheduled end has passed
func (s *Service) completeDue(ctx context.Context, meetingID string, now time.Time) (bool, error) {
	t, err := s.apply(ctx, meetingID, "complete", now, func(m model.Meeting, now time.Time) (meeting.Transition, error) {
		return s.machine.Complete(m, now, false)
	})
	if err != nil {
		return false, err
	}
	if !t.Applied {
		return false, nil
	}

	if _, err := s.settlePayout(ctx, t.Meeting); err != nil {
		return true, err
	}
	return true, nil
}
