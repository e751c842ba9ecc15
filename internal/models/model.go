package models

import "time"

// AuctionStatus is the bidding window state of an auction
type AuctionStatus string

const (
	AuctionOpen   AuctionStatus = "open"
	AuctionClosed AuctionStatus = "closed"
)

// BidStatus is the lifecycle state of a single bid row
type BidStatus string

const (
	BidActive    BidStatus = "active"
	BidOutbid    BidStatus = "outbid"
	BidWon       BidStatus = "won"
	BidLost      BidStatus = "lost"
	// BidCancelled is set by the operator tooling that voids an auction outside the engine
	BidCancelled BidStatus = "cancelled"
)

// MeetingStatus is the lifecycle state of a scheduled session
type MeetingStatus string

const (
	MeetingScheduled              MeetingStatus = "scheduled"
	MeetingLive                   MeetingStatus = "live"
	MeetingCompleted              MeetingStatus = "completed"
	MeetingCancelledNoShowCreator MeetingStatus = "cancelled_no_show_creator"
	MeetingCancelled              MeetingStatus = "cancelled"
)

// Terminal reports whether no further transition can leave this status
func (s MeetingStatus) Terminal() bool {
	switch s {
	case MeetingCompleted, MeetingCancelledNoShowCreator, MeetingCancelled:
		return true
	}
	return false
}

const CancellationCreatorNoShow = "CREATOR_NO_SHOW"

// Auction represents the bidding window of one event and the terms of the meeting it sells
type Auction struct {
	AuctionID              string        `json:"auction_id" gorm:"primaryKey;size:64"`
	CreatorID              string        `json:"creator_id" gorm:"size:64;not null"`
	BasePrice              int64         `json:"base_price" gorm:"not null"`
	BiddingClosesAt        time.Time     `json:"bidding_closes_at" gorm:"not null;index"`
	MeetingScheduledAt     time.Time     `json:"meeting_scheduled_at" gorm:"not null"`
	MeetingDurationMinutes int           `json:"meeting_duration_minutes" gorm:"not null"`
	Status                 AuctionStatus `json:"status" gorm:"size:16;not null;index"`
	ClosedAt               *time.Time    `json:"closed_at,omitempty"`
	Version                int64         `json:"version" gorm:"not null"`
	CreatedAt              time.Time     `json:"created_at"`
}

// Bid represents a bidder's cumulative commitment on an auction.
// Seq is the auction version the bid was recorded at, so it is unique and
// increasing within one auction.
type Bid struct {
	BidID     string    `json:"bid_id" gorm:"primaryKey;size:64"`
	AuctionID string    `json:"auction_id" gorm:"size:64;not null;index"`
	BidderID  string    `json:"bidder_id" gorm:"size:64;not null;index"`
	Amount    int64     `json:"amount" gorm:"not null"`
	Status    BidStatus `json:"status" gorm:"size:16;not null;index"`
	PlacedAt  time.Time `json:"placed_at" gorm:"not null"`
	Seq       int64     `json:"seq" gorm:"not null;default:0"`
	RefundID  string    `json:"refund_id,omitempty" gorm:"size:128"`
}

// PlacedBefore orders bids by placement time, then by sequence when the
// stored timestamps are equal
func (b Bid) PlacedBefore(other Bid) bool {
	if !b.PlacedAt.Equal(other.PlacedAt) {
		return b.PlacedAt.Before(other.PlacedAt)
	}
	return b.Seq < other.Seq
}

// Meeting represents the 1:1 session won through an auction
type Meeting struct {
	MeetingID          string        `json:"meeting_id" gorm:"primaryKey;size:64"`
	EventID            string        `json:"event_id" gorm:"size:64;not null;uniqueIndex"`
	CreatorID          string        `json:"creator_id" gorm:"size:64;not null"`
	FanID              string        `json:"fan_id" gorm:"size:64;not null"`
	WinningBidID       string        `json:"winning_bid_id" gorm:"size:64;not null"`
	WinningAmount      int64         `json:"winning_amount" gorm:"not null"`
	ScheduledAt        time.Time     `json:"scheduled_at" gorm:"not null;index"`
	DurationMinutes    int           `json:"duration_minutes" gorm:"not null"`
	EndsAt             time.Time     `json:"ends_at" gorm:"not null;index"`
	Status             MeetingStatus `json:"status" gorm:"size:32;not null;index"`
	CreatorStartedAt   *time.Time    `json:"creator_started_at,omitempty"`
	CreatorJoinedAt    *time.Time    `json:"creator_joined_at,omitempty"`
	FanJoinedAt        *time.Time    `json:"fan_joined_at,omitempty"`
	RecordingStartedAt *time.Time    `json:"recording_started_at,omitempty"`
	RecordingStoppedAt *time.Time    `json:"recording_stopped_at,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"size:64"`
	RefundID           string        `json:"refund_id,omitempty" gorm:"size:128"`
	PayoutID           string        `json:"payout_id,omitempty" gorm:"size:128"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty"`
	Version            int64         `json:"version" gorm:"not null"`
	CreatedAt          time.Time     `json:"created_at"`
}

// EndTime is scheduledAt + durationMinutes
func EndTime(scheduledAt time.Time, durationMinutes int) time.Time {
	return scheduledAt.Add(time.Duration(durationMinutes) * time.Minute)
}

// LogEntry is one append-only record of an auction or meeting event
type LogEntry struct {
	EntryID   string            `json:"id" gorm:"primaryKey;size:64"`
	MeetID    string            `json:"meet_id,omitempty" gorm:"size:64;index"`
	AuctionID string            `json:"auction_id,omitempty" gorm:"size:64;index"`
	EventType string            `json:"event_type" gorm:"size:64;not null;index"`
	Timestamp time.Time         `json:"timestamp" gorm:"not null;index"`
	Metadata  map[string]string `json:"metadata" gorm:"serializer:json;type:text"`
}

// FinalizationResult is the outcome of closing an auction
type FinalizationResult struct {
	AuctionID  string `json:"auction_id"`
	WinningBid *Bid   `json:"winning_bid"`
	LosingBids []Bid  `json:"losing_bids"`
}
