// Package meeting holds the transition rules of a scheduled session. Every
// function is pure: it takes the current row and the wall clock and returns
// the row to commit, leaving compare-and-swap to the caller.
package meeting

import (
	"fmt"
	"time"

	"fanmeet-engine/internal/engineerrors"
	model "fanmeet-engine/internal/models"
)

// Outcome tells a caller what to show after an attempt
type Outcome string

const (
	OutcomeLive          Outcome = "live"
	OutcomeWaitingRoom   Outcome = "waiting_room"
	OutcomeCanJoin       Outcome = "can_join"
	OutcomeStartRequired Outcome = "start_required"
	OutcomeCompleted     Outcome = "completed"
	OutcomeCancelled     Outcome = "cancelled"
	OutcomeSettled       Outcome = "settled"
)

const OperatorCancelReason = "OPERATOR_CANCELLED"

// Transition is the result of applying one rule. Applied is false when the
// meeting already was in the requested state; Meeting is then unchanged.
type Transition struct {
	Meeting model.Meeting
	Applied bool
	Outcome Outcome
	Events  []string
}

// Machine evaluates transition guards
type Machine struct {
	noShowGrace time.Duration
}

// NewMachine returns a machine that cancels for creator no-show once
// scheduledAt + noShowGrace has passed
func NewMachine(noShowGrace time.Duration) *Machine {
	return &Machine{noShowGrace: noShowGrace}
}

// NoShowDeadline is the earliest instant a creator no-show may be declared
func (m *Machine) NoShowDeadline(mt model.Meeting) time.Time {
	return mt.ScheduledAt.Add(m.noShowGrace)
}

// NoShowCutoff is the latest scheduledAt a meeting may have to be cancelled at now
func (m *Machine) NoShowCutoff(now time.Time) time.Time {
	return now.Add(-m.noShowGrace)
}

func noop(mt model.Meeting, outcome Outcome) Transition {
	return Transition{Meeting: mt, Outcome: outcome}
}

func stamp(now time.Time) *time.Time {
	t := now
	return &t
}

// Start moves a scheduled meeting to live on the creator's request
func (m *Machine) Start(mt model.Meeting, creatorID string, now time.Time) (Transition, error) {
	if creatorID != mt.CreatorID {
		return Transition{}, fmt.Errorf("start meeting %s: %w", mt.MeetingID, engineerrors.ErrNotParticipant)
	}

	switch {
	case mt.Status.Terminal():
		return Transition{}, fmt.Errorf("start meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrMeetingEnded)
	case mt.Status == model.MeetingLive:
		return noop(mt, OutcomeLive), nil
	case !now.Before(mt.EndsAt):
		return Transition{}, fmt.Errorf("start meeting %s: %w", mt.MeetingID, engineerrors.ErrPastEndTime)
	}

	next := mt
	next.Status = model.MeetingLive
	next.CreatorStartedAt = stamp(now)
	if next.CreatorJoinedAt == nil {
		next.CreatorJoinedAt = stamp(now)
	}

	t := Transition{Meeting: next, Applied: true, Outcome: OutcomeLive, Events: []string{model.EventCreatorStarted}}
	startRecording(&t, now)
	return t, nil
}

// Join records a participant's arrival. A fan arriving before the creator
// starts is sent to the waiting room without changing the meeting.
func (m *Machine) Join(mt model.Meeting, participantID string, now time.Time) (Transition, error) {
	isCreator := participantID == mt.CreatorID
	if !isCreator && participantID != mt.FanID {
		return Transition{}, fmt.Errorf("join meeting %s: %w", mt.MeetingID, engineerrors.ErrNotParticipant)
	}
	if mt.Status.Terminal() || !now.Before(mt.EndsAt) {
		return Transition{}, fmt.Errorf("join meeting %s: %w", mt.MeetingID, engineerrors.ErrMeetingEnded)
	}

	if mt.Status == model.MeetingScheduled {
		if isCreator {
			return noop(mt, OutcomeStartRequired), nil
		}
		return noop(mt, OutcomeWaitingRoom), nil
	}

	t := Transition{Meeting: mt, Outcome: OutcomeCanJoin}
	if isCreator {
		if mt.CreatorJoinedAt != nil {
			return t, nil
		}
		t.Meeting.CreatorJoinedAt = stamp(now)
		t.Events = append(t.Events, model.EventCreatorJoined)
	} else {
		if mt.FanJoinedAt != nil {
			return t, nil
		}
		t.Meeting.FanJoinedAt = stamp(now)
		t.Events = append(t.Events, model.EventFanJoined)
	}
	t.Applied = true
	startRecording(&t, now)
	return t, nil
}

// startRecording begins recording the first time both parties are present
func startRecording(t *Transition, now time.Time) {
	mt := &t.Meeting
	if mt.Status != model.MeetingLive || mt.RecordingStartedAt != nil {
		return
	}
	if mt.CreatorStartedAt == nil || mt.FanJoinedAt == nil {
		return
	}
	mt.RecordingStartedAt = stamp(now)
	t.Events = append(t.Events, model.EventRecordingStarted)
}

func stopRecording(t *Transition, now time.Time) {
	mt := &t.Meeting
	if mt.RecordingStartedAt == nil || mt.RecordingStoppedAt != nil {
		return
	}
	mt.RecordingStoppedAt = stamp(now)
	t.Events = append(t.Events, model.EventRecordingStopped)
}

// CancelNoShow cancels a meeting the creator never started
func (m *Machine) CancelNoShow(mt model.Meeting, now time.Time) (Transition, error) {
	switch mt.Status {
	case model.MeetingCancelledNoShowCreator:
		return noop(mt, OutcomeCancelled), nil
	case model.MeetingScheduled:
	default:
		return Transition{}, fmt.Errorf("no-show cancel meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrInvalidTransition)
	}
	if now.Before(m.NoShowDeadline(mt)) {
		return Transition{}, fmt.Errorf("no-show cancel meeting %s: %w", mt.MeetingID, engineerrors.ErrTooEarly)
	}

	next := mt
	next.Status = model.MeetingCancelledNoShowCreator
	next.CancelledAt = stamp(now)
	next.CancellationReason = model.CancellationCreatorNoShow
	return Transition{Meeting: next, Applied: true, Outcome: OutcomeCancelled, Events: []string{model.EventCancelledNoShow}}, nil
}

// Complete ends a live meeting. Before the scheduled end only an explicit
// end-of-call may complete it.
func (m *Machine) Complete(mt model.Meeting, now time.Time, explicit bool) (Transition, error) {
	switch {
	case mt.Status == model.MeetingCompleted:
		return noop(mt, OutcomeCompleted), nil
	case mt.Status.Terminal():
		return Transition{}, fmt.Errorf("complete meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrMeetingEnded)
	case mt.Status != model.MeetingLive:
		return Transition{}, fmt.Errorf("complete meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrInvalidTransition)
	case !explicit && now.Before(mt.EndsAt):
		return Transition{}, fmt.Errorf("complete meeting %s: %w", mt.MeetingID, engineerrors.ErrTooEarly)
	}

	t := Transition{Meeting: mt, Applied: true, Outcome: OutcomeCompleted}
	stopRecording(&t, now)
	t.Meeting.Status = model.MeetingCompleted
	t.Meeting.CompletedAt = stamp(now)
	t.Events = append(t.Events, model.EventMeetingCompleted)
	return t, nil
}

// Cancel is the operator's manual cancellation of any non-terminal meeting
func (m *Machine) Cancel(mt model.Meeting, reason string, now time.Time) (Transition, error) {
	switch {
	case mt.Status == model.MeetingCancelled:
		return noop(mt, OutcomeCancelled), nil
	case mt.Status.Terminal():
		return Transition{}, fmt.Errorf("cancel meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrMeetingEnded)
	}
	if reason == "" {
		reason = OperatorCancelReason
	}

	t := Transition{Meeting: mt, Applied: true, Outcome: OutcomeCancelled}
	stopRecording(&t, now)
	t.Meeting.Status = model.MeetingCancelled
	t.Meeting.CancelledAt = stamp(now)
	t.Meeting.CancellationReason = reason
	t.Events = append(t.Events, model.EventMeetingCancelled)
	return t, nil
}

// RecordRefund stores the refund reference of a no-show cancellation once
func (m *Machine) RecordRefund(mt model.Meeting, refundID string) (Transition, error) {
	if mt.Status != model.MeetingCancelledNoShowCreator {
		return Transition{}, fmt.Errorf("record refund for meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrInvalidTransition)
	}
	if mt.RefundID != "" {
		return noop(mt, OutcomeSettled), nil
	}
	next := mt
	next.RefundID = refundID
	return Transition{Meeting: next, Applied: true, Outcome: OutcomeSettled, Events: []string{model.EventRefundIssued}}, nil
}

// RecordPayout stores the creator payout reference of a completed meeting once
func (m *Machine) RecordPayout(mt model.Meeting, payoutID string) (Transition, error) {
	if mt.Status != model.MeetingCompleted {
		return Transition{}, fmt.Errorf("record payout for meeting %s (%s): %w", mt.MeetingID, mt.Status, engineerrors.ErrInvalidTransition)
	}
	if mt.PayoutID != "" {
		return noop(mt, OutcomeSettled), nil
	}
	next := mt
	next.PayoutID = payoutID
	return Transition{Meeting: next, Applied: true, Outcome: OutcomeSettled, Events: []string{model.EventPayoutIssued}}, nil
}
